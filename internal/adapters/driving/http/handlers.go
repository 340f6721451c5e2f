package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/swaggo/swag"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
)

// maxBodyBytes caps request bodies; documents are small JSON
const maxBodyBytes = 4 << 20

var requestValidator = validator.New()

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// PresetsResponse lists the threshold profiles
// @Description Threshold profiles and the one in use
type PresetsResponse struct {
	Active       string                       `json:"active" example:"default"`
	Presets      map[string]domain.Thresholds `json:"presets"`
	Descriptions map[string]string            `json:"descriptions"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Pings the database and Redis when they are configured
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A dependency is unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	deps := []struct {
		name   string
		pinger Pinger
	}{
		{"database", s.db},
		{"redis", s.redisClient},
	}
	for _, dep := range deps {
		if dep.pinger == nil {
			continue
		}
		if err := dep.pinger.Ping(ctx); err != nil {
			s.logger.Warn("readiness check failed", "dependency", dep.name, "error", err)
			writeError(w, http.StatusServiceUnavailable, dep.name+" unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: s.version})
}

// handleAPIDoc serves the generated OpenAPI document
func (s *Server) handleAPIDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		writeError(w, http.StatusNotFound, "api documentation not available")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(doc))
}

// Auth endpoints

// handleIssueToken godoc
// @Summary      Issue access token
// @Description  Exchange API client credentials for a bearer token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.TokenRequest  true  "Client credentials"
// @Success      200      {object}  domain.TokenResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials"
// @Router       /auth/token [post]
func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	var req domain.TokenRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	resp, err := s.authService.IssueToken(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Validation endpoints

// handleValidate godoc
// @Summary      Validate a document
// @Description  Runs the validation pipeline without storing anything
// @Tags         Validation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.ValidationRequest  true  "Normalized document and optional context"
// @Success      200      {object}  domain.ValidationResult
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      403      {object}  ErrorResponse  "Missing scope"
// @Router       /reports/validate [post]
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req domain.ValidationRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	result, err := s.validationService.Validate(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handlePhotoCheck godoc
// @Summary      Cross-check a photo checklist
// @Description  Compares a checklist inferred from site photos with a document checklist
// @Tags         Validation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.PhotoCheckRequest  true  "Both checklists"
// @Success      200      {object}  domain.PhotoCrossCheckResult
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Router       /photo-checks [post]
func (s *Server) handlePhotoCheck(w http.ResponseWriter, r *http.Request) {
	var req domain.PhotoCheckRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.validationService.CrossCheckPhoto(req))
}

// handleListPresets godoc
// @Summary      List threshold profiles
// @Description  Returns every threshold profile and the one the pipeline runs with
// @Tags         Validation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PresetsResponse
// @Router       /presets [get]
func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	active := s.profiles.DefaultName()
	current := s.validationService.Thresholds()
	for _, name := range s.profiles.Names() {
		if th, _ := s.profiles.Resolve(name); th == current {
			active = name
			break
		}
	}
	writeJSON(w, http.StatusOK, PresetsResponse{
		Active:       active,
		Presets:      s.profiles.All(),
		Descriptions: s.profiles.Descriptions(),
	})
}

// Report endpoints

// handleSubmitReport godoc
// @Summary      Submit a report
// @Description  Validates a document and stores it with its issues
// @Tags         Reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.SubmitReportRequest  true  "Document, project and optional context"
// @Success      201      {object}  domain.ValidationResult
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      503      {object}  ErrorResponse  "Report storage not configured"
// @Router       /reports [post]
func (s *Server) handleSubmitReport(w http.ResponseWriter, r *http.Request) {
	if s.reportService == nil {
		writeError(w, http.StatusServiceUnavailable, "report storage not configured")
		return
	}

	var req domain.SubmitReportRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	result, err := s.reportService.Submit(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// handleGetReport godoc
// @Summary      Get a report
// @Description  Returns a stored report with its issues
// @Tags         Reports
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Report ID"
// @Success      200  {object}  domain.Report
// @Failure      404  {object}  ErrorResponse  "Report not found"
// @Router       /reports/{id} [get]
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	if s.reportService == nil {
		writeError(w, http.StatusServiceUnavailable, "report storage not configured")
		return
	}

	report, err := s.reportService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Helpers

// decodeRequest decodes and validates a JSON body, writing a 400 on failure
func decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	if err := requestValidator.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s is %s", strings.ToLower(fe.Field()), fe.Tag()))
			}
			writeError(w, http.StatusBadRequest, strings.Join(fields, "; "))
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeServiceError maps domain errors to HTTP status codes
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenInvalid):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
