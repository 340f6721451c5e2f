package domain

// RiskFactor is one contribution to a calculated risk score
type RiskFactor struct {
	Category    HazardCategory `json:"category"`
	Description string         `json:"description"`
	Impact      int            `json:"impact"`
	Severity    Severity       `json:"severity"`
}

// RiskCalculation is the output of the risk matrix
type RiskCalculation struct {
	RiskScore      int          `json:"risk_score"`
	CalculatedTier RiskLevel    `json:"calculated_tier"`
	DocumentedTier *RiskLevel   `json:"documented_tier"`
	Factors        []RiskFactor `json:"factors"`
	// Inconsistency is true when calculated and documented tiers differ by more than one level
	Inconsistency bool `json:"inconsistency"`
}

// TierGap returns calculated minus documented rank, and false when nothing was documented
func (r *RiskCalculation) TierGap() (int, bool) {
	if r.DocumentedTier == nil || !r.DocumentedTier.IsValid() {
		return 0, false
	}
	return r.CalculatedTier.Rank() - r.DocumentedTier.Rank(), true
}
