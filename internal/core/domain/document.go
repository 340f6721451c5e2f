package domain

import "strings"

// DocType identifies the kind of inspection document that was extracted
type DocType string

const (
	DocTypeSafetyChecklist DocType = "safety_checklist"
	DocTypeWorkPermit      DocType = "work_permit"
	DocTypeRiskAssessment  DocType = "risk_assessment"
	DocTypeTBMRecord       DocType = "tbm_record"
	DocTypeUnknown         DocType = "unknown"
)

// RiskLevel is a four-tier risk scale, either documented or calculated
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// Rank returns the ordinal position of the tier (low=0 .. critical=3), or -1 if unknown
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLevelLow:
		return 0
	case RiskLevelMedium:
		return 1
	case RiskLevelHigh:
		return 2
	case RiskLevelCritical:
		return 3
	default:
		return -1
	}
}

// IsValid checks if the risk level is one of the four tiers
func (r RiskLevel) IsValid() bool {
	return r.Rank() >= 0
}

// ChecklistValue is the recorded state of a checklist item
type ChecklistValue string

const (
	ValueChecked       ChecklistValue = "checked"
	ValueUnchecked     ChecklistValue = "unchecked"
	ValueNotApplicable ChecklistValue = "not-applicable"
	// ValueNull means the extractor could not read a value
	ValueNull ChecklistValue = "null"
)

// IsRecorded reports whether the item carries a readable value
func (v ChecklistValue) IsRecorded() bool {
	return v == ValueChecked || v == ValueUnchecked || v == ValueNotApplicable
}

// SignatureStatus is the state of one signature box
type SignatureStatus string

const (
	SignaturePresent SignatureStatus = "present"
	SignatureMissing SignatureStatus = "missing"
	SignatureUnknown SignatureStatus = "unknown"
)

// SignatureRole names a signer on the document
type SignatureRole string

const (
	SignatureRoleInspector  SignatureRole = "inspector"
	SignatureRoleSupervisor SignatureRole = "supervisor"
)

// Signature holds the two signature boxes found on inspection documents
type Signature struct {
	Inspector  SignatureStatus `json:"inspector"`
	Supervisor SignatureStatus `json:"supervisor"`
}

// Status returns the status for a role. Unset or unrecognised roles read as unknown.
func (s Signature) Status(role SignatureRole) SignatureStatus {
	var status SignatureStatus
	switch role {
	case SignatureRoleInspector:
		status = s.Inspector
	case SignatureRoleSupervisor:
		status = s.Supervisor
	}
	if status == "" {
		return SignatureUnknown
	}
	return status
}

// DocumentFields holds the free-text header fields of a document.
// Each field is nil when the extractor found nothing.
type DocumentFields struct {
	InspectionDate  *string `json:"inspection_date"`
	SiteName        *string `json:"site_name"`
	WorkDescription *string `json:"work_description"`
	WorkerCount     *string `json:"worker_count"`
}

// ChecklistItem is one line of a safety checklist
type ChecklistItem struct {
	ID          string         `json:"id"`
	Category    string         `json:"category"`
	DisplayName string         `json:"display_name"`
	Value       ChecklistValue `json:"value"`
	// Hazard is the taxonomy tag attached at ingestion; empty for legacy input
	Hazard HazardKind `json:"hazard,omitempty"`
}

// NormalizedDocument is the typed document shape every analyzer consumes.
// Missing data is always nil or unknown, never an error.
type NormalizedDocument struct {
	DocType       DocType         `json:"doc_type"`
	Fields        DocumentFields  `json:"fields"`
	Signature     Signature       `json:"signature"`
	InspectorName *string         `json:"inspector_name"`
	RiskLevel     *RiskLevel      `json:"risk_level"`
	Checklist     []ChecklistItem `json:"checklist"`
}

// Inspector returns the trimmed inspector name, or "" when absent
func (d *NormalizedDocument) Inspector() string {
	return Deref(d.InspectorName)
}

// Deref returns the trimmed string behind p, or "" for nil
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

// RiskLevelPtr returns a pointer to r
func RiskLevelPtr(r RiskLevel) *RiskLevel {
	return &r
}
