package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates a threshold or pipeline configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrPlanMalformed indicates a persisted master safety plan could not be parsed
	ErrPlanMalformed = errors.New("master safety plan malformed")

	// ErrHistoryUnavailable indicates the report history could not be read
	ErrHistoryUnavailable = errors.New("report history unavailable")

	// ErrStageSkipped indicates a stage had no input to work on
	ErrStageSkipped = errors.New("stage skipped")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials indicates a wrong client id/secret combination
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")
)
