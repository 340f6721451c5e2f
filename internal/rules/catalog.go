package rules

import "github.com/custodia-labs/safeaudit-core/internal/core/domain"

// Safety violations: hazard indicator checked without its mitigation
const (
	RuleHeightHarness       = "rule_height_harness"
	RuleHotWorkExtinguisher = "rule_hotwork_extinguisher"
	RuleConfinedOxygen      = "rule_confined_oxygen"
	RuleExcavationShoring   = "rule_excavation_shoring"
	RuleElectricalLockout   = "rule_electrical_lockout"
)

// Contradictions: mitigation checked while the hazard is marked absent
const (
	RuleContradictionHeightHarness       = "contradiction_height_harness"
	RuleContradictionHotWorkExtinguisher = "contradiction_hotwork_extinguisher"
	RuleContradictionConfinedOxygen      = "contradiction_confined_oxygen"
	RuleContradictionExcavationShoring   = "contradiction_excavation_shoring"
	RuleContradictionElectricalLockout   = "contradiction_electrical_lockout"
)

const (
	RuleSuspiciousCriticalNA  = "suspicious_critical_na"
	RuleSuspiciousExcessiveNA = "suspicious_excessive_na"

	RuleCompletenessMissingHelmet  = "completeness_missing_helmet"
	RuleCompletenessMissingHeight  = "completeness_missing_height"
	RuleCompletenessShortChecklist = "completeness_short_checklist"
	RuleCompletenessAllChecked     = "completeness_all_checked"
	RuleCompletenessAllNA          = "completeness_all_na"

	RuleFieldMissingInspectionDate = "field_missing_inspection_date"
	RuleFieldMissingSiteName       = "field_missing_site_name"
	RuleFieldMissingInspector      = "field_missing_inspector"

	// RuleSignatureMissingPrefix is followed by the signer role
	RuleSignatureMissingPrefix = "signature_missing_"
)

// pairRule describes the two rules derived from one indicator/mitigation pair
type pairRule struct {
	pair         domain.HazardPair
	violationID  string
	contradictID string
	hazardLabel  string
	controlLabel string
	ref          string
	recommendFix string
}

var pairRules = []pairRule{
	{
		pair:         domain.HazardPairs[0],
		violationID:  RuleHeightHarness,
		contradictID: RuleContradictionHeightHarness,
		hazardLabel:  "work at height",
		controlLabel: "safety harness",
		ref:          "FALL-02",
		recommendFix: "Stop work at height until every worker is wearing a harness attached to a rated anchor point.",
	},
	{
		pair:         domain.HazardPairs[1],
		violationID:  RuleHotWorkExtinguisher,
		contradictID: RuleContradictionHotWorkExtinguisher,
		hazardLabel:  "hot work",
		controlLabel: "fire extinguisher",
		ref:          "FIRE-02",
		recommendFix: "Place a charged extinguisher within reach of the hot work area before work resumes.",
	},
	{
		pair:         domain.HazardPairs[2],
		violationID:  RuleConfinedOxygen,
		contradictID: RuleContradictionConfinedOxygen,
		hazardLabel:  "confined space entry",
		controlLabel: "oxygen/gas measurement",
		ref:          "CONF-02",
		recommendFix: "Measure oxygen and toxic gas levels before entry and record the readings.",
	},
	{
		pair:         domain.HazardPairs[3],
		violationID:  RuleExcavationShoring,
		contradictID: RuleContradictionExcavationShoring,
		hazardLabel:  "excavation",
		controlLabel: "shoring",
		ref:          "EXC-02",
		recommendFix: "Install shoring or slope the trench walls before anyone enters the excavation.",
	},
	{
		pair:         domain.HazardPairs[4],
		violationID:  RuleElectricalLockout,
		contradictID: RuleContradictionElectricalLockout,
		hazardLabel:  "electrical work",
		controlLabel: "lockout/tagout",
		ref:          "ELEC-02",
		recommendFix: "Isolate the circuit and apply lockout/tagout before touching conductors.",
	},
}

// IDs returns every fixed rule id in catalog order. Signature rules are
// listed once per known role.
func IDs() []string {
	ids := make([]string, 0, 2*len(pairRules)+12)
	for _, pr := range pairRules {
		ids = append(ids, pr.violationID)
	}
	for _, pr := range pairRules {
		ids = append(ids, pr.contradictID)
	}
	return append(ids,
		RuleSuspiciousCriticalNA,
		RuleSuspiciousExcessiveNA,
		RuleCompletenessMissingHelmet,
		RuleCompletenessMissingHeight,
		RuleCompletenessShortChecklist,
		RuleCompletenessAllChecked,
		RuleCompletenessAllNA,
		RuleFieldMissingInspectionDate,
		RuleFieldMissingSiteName,
		RuleFieldMissingInspector,
		RuleSignatureMissingPrefix+string(domain.SignatureRoleInspector),
		RuleSignatureMissingPrefix+string(domain.SignatureRoleSupervisor),
	)
}
