package domain

// PlanRequiredItem is a checklist item the project plan demands on every document
type PlanRequiredItem struct {
	ID     string     `json:"id"`
	Hazard HazardKind `json:"hazard,omitempty"`
	Label  string     `json:"label,omitempty"`
}

// MasterSafetyPlan is the project-level structured rule set.
// It is read-only to the pipeline.
type MasterSafetyPlan struct {
	ProjectID          string             `json:"project_id"`
	Version            string             `json:"version,omitempty"`
	RequiredItems      []PlanRequiredItem `json:"required_items,omitempty"`
	IdentifiedHazards  []HazardKind       `json:"identified_hazards,omitempty"`
	RequiredSignatures []SignatureRole    `json:"required_signatures,omitempty"`
	MaxWorkerCount     *int               `json:"max_worker_count,omitempty"`
	AllowedDocTypes    []DocType          `json:"allowed_doc_types,omitempty"`
}
