// Package riskmatrix scores a document's checklist on a 0-100 scale and
// compares the resulting tier with the tier the document reports.
package riskmatrix

import (
	"fmt"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/hazard"
	"github.com/custodia-labs/safeaudit-core/internal/rules"
)

const (
	RuleTierUnderreported = "risk_tier_underreported"
	RuleTierOverreported  = "risk_tier_overreported"
	// RuleFactorPrefix is followed by the factor category
	RuleFactorPrefix = "risk_factor_"
)

const (
	MaxScore = 100

	mitigationPoints = 15
	helmetPoints     = 10
)

// Tier cutoffs, inclusive
const (
	CriticalFrom = 75
	HighFrom     = 50
	MediumFrom   = 25
)

// hazardPoints is the impact of each hazard category when its indicator is checked
var hazardPoints = map[domain.HazardCategory]int{
	domain.CategoryFall:          25,
	domain.CategoryFire:          20,
	domain.CategoryConfinedSpace: 30,
	domain.CategoryElectrical:    20,
	domain.CategoryExcavation:    25,
}

// Calculate scores the document checklist
func Calculate(doc *domain.NormalizedDocument) domain.RiskCalculation {
	calc := domain.RiskCalculation{Factors: []domain.RiskFactor{}}
	if doc == nil {
		calc.CalculatedTier = domain.RiskLevelLow
		return calc
	}

	kinds := hazard.ClassifyAll(doc.Checklist)
	values := make(map[domain.HazardKind][]domain.ChecklistValue)
	for i, k := range kinds {
		values[k] = append(values[k], doc.Checklist[i].Value)
	}

	total := 0
	for _, pair := range domain.HazardPairs {
		if !anyValue(values[pair.Indicator], domain.ValueChecked) {
			continue
		}
		category := pair.Indicator.Category()
		points := hazardPoints[category]
		total += points
		calc.Factors = append(calc.Factors, domain.RiskFactor{
			Category:    category,
			Description: fmt.Sprintf("%s is taking place", pair.Indicator),
			Impact:      points,
			Severity:    domain.SeverityWarn,
		})

		mitigation := values[pair.Mitigation]
		if anyValue(mitigation, domain.ValueChecked) {
			continue
		}
		if len(mitigation) == 0 || anyValue(mitigation, domain.ValueUnchecked) {
			total += mitigationPoints
			calc.Factors = append(calc.Factors, domain.RiskFactor{
				Category:    category,
				Description: fmt.Sprintf("required %s is missing or not in place", pair.Mitigation),
				Impact:      mitigationPoints,
				Severity:    domain.SeverityError,
			})
		}
	}

	helmet := values[domain.HazardHelmet]
	if len(helmet) == 0 || (anyValue(helmet, domain.ValueUnchecked) && !anyValue(helmet, domain.ValueChecked)) {
		total += helmetPoints
		calc.Factors = append(calc.Factors, domain.RiskFactor{
			Category:    domain.CategoryPPE,
			Description: "safety helmet is missing or not worn",
			Impact:      helmetPoints,
			Severity:    domain.SeverityWarn,
		})
	}

	if total > MaxScore {
		total = MaxScore
	}
	calc.RiskScore = total
	calc.CalculatedTier = TierFor(total)

	if doc.RiskLevel != nil && doc.RiskLevel.IsValid() {
		documented := *doc.RiskLevel
		calc.DocumentedTier = &documented
		gap, _ := calc.TierGap()
		calc.Inconsistency = gap > 1 || gap < -1
	}
	return calc
}

// TierFor maps a score to its tier
func TierFor(score int) domain.RiskLevel {
	switch {
	case score >= CriticalFrom:
		return domain.RiskLevelCritical
	case score >= HighFrom:
		return domain.RiskLevelHigh
	case score >= MediumFrom:
		return domain.RiskLevelMedium
	default:
		return domain.RiskLevelLow
	}
}

func anyValue(values []domain.ChecklistValue, want domain.ChecklistValue) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

// Issues turns an inconsistent calculation into issues: one headline plus
// one info issue per contributing factor. Consistent calculations yield none.
func Issues(calc domain.RiskCalculation) []domain.ValidationIssue {
	if !calc.Inconsistency || calc.DocumentedTier == nil {
		return nil
	}

	gap, _ := calc.TierGap()
	headline := domain.ValidationIssue{
		Path:  "risk_level",
		Stage: domain.StageRisk,
	}
	if gap > 0 {
		headline.Severity = domain.SeverityError
		headline.RuleID = RuleTierUnderreported
		headline.Title = "Risk level under-reported"
		headline.Message = rules.FormatMessage(
			fmt.Sprintf("The document reports %s risk, but the checklist scores %d (%s).",
				*calc.DocumentedTier, calc.RiskScore, calc.CalculatedTier),
			"Re-assess the work and raise the documented risk level.",
			"RISK-01",
		)
	} else {
		headline.Severity = domain.SeverityWarn
		headline.RuleID = RuleTierOverreported
		headline.Title = "Risk level over-reported"
		headline.Message = rules.FormatMessage(
			fmt.Sprintf("The document reports %s risk, but the checklist scores only %d (%s).",
				*calc.DocumentedTier, calc.RiskScore, calc.CalculatedTier),
			"Check whether hazards are missing from the checklist.",
			"RISK-01",
		)
	}

	issues := make([]domain.ValidationIssue, 0, len(calc.Factors)+1)
	issues = append(issues, headline)
	for _, f := range calc.Factors {
		issues = append(issues, domain.ValidationIssue{
			Severity: domain.SeverityInfo,
			Title:    fmt.Sprintf("Risk factor: %s", f.Category),
			Message:  fmt.Sprintf("+%d points: %s.", f.Impact, f.Description),
			RuleID:   RuleFactorPrefix + string(f.Category),
			Path:     "checklist",
			Stage:    domain.StageRisk,
		})
	}
	return issues
}
