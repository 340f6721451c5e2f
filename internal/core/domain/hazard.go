package domain

// HazardKind is the explicit taxonomy tag of a checklist item
type HazardKind string

const (
	// Hazard indicators: the work activity is taking place
	HazardHeightWork     HazardKind = "height_work"
	HazardHotWork        HazardKind = "hot_work"
	HazardConfinedSpace  HazardKind = "confined_space"
	HazardExcavation     HazardKind = "excavation"
	HazardElectricalWork HazardKind = "electrical_work"

	// Mitigations: the control that must accompany an indicator
	HazardHarness           HazardKind = "harness"
	HazardFireExtinguisher  HazardKind = "fire_extinguisher"
	HazardOxygenMeasurement HazardKind = "oxygen_measurement"
	HazardShoring           HazardKind = "shoring"
	HazardLockout           HazardKind = "lockout"

	// General PPE
	HazardHelmet HazardKind = "helmet"

	HazardOther HazardKind = "other"
)

// HazardCategory is the coarse grouping used for scoring and coverage checks
type HazardCategory string

const (
	CategoryFall          HazardCategory = "fall"
	CategoryFire          HazardCategory = "fire"
	CategoryConfinedSpace HazardCategory = "confined_space"
	CategoryElectrical    HazardCategory = "electrical"
	CategoryExcavation    HazardCategory = "excavation"
	CategoryPPE           HazardCategory = "ppe"
	CategoryGeneral       HazardCategory = "general"
)

var hazardCategories = map[HazardKind]HazardCategory{
	HazardHeightWork:        CategoryFall,
	HazardHarness:           CategoryFall,
	HazardHotWork:           CategoryFire,
	HazardFireExtinguisher:  CategoryFire,
	HazardConfinedSpace:     CategoryConfinedSpace,
	HazardOxygenMeasurement: CategoryConfinedSpace,
	HazardExcavation:        CategoryExcavation,
	HazardShoring:           CategoryExcavation,
	HazardElectricalWork:    CategoryElectrical,
	HazardLockout:           CategoryElectrical,
	HazardHelmet:            CategoryPPE,
}

// Category returns the coarse category of the kind
func (k HazardKind) Category() HazardCategory {
	if c, ok := hazardCategories[k]; ok {
		return c
	}
	return CategoryGeneral
}

// IsIndicator reports whether the kind marks a hazardous activity
func (k HazardKind) IsIndicator() bool {
	switch k {
	case HazardHeightWork, HazardHotWork, HazardConfinedSpace, HazardExcavation, HazardElectricalWork:
		return true
	}
	return false
}

// IsMitigation reports whether the kind is a control paired with an indicator
func (k HazardKind) IsMitigation() bool {
	switch k {
	case HazardHarness, HazardFireExtinguisher, HazardOxygenMeasurement, HazardShoring, HazardLockout:
		return true
	}
	return false
}

// IsValid checks the kind against the taxonomy
func (k HazardKind) IsValid() bool {
	if k == HazardOther {
		return true
	}
	_, ok := hazardCategories[k]
	return ok
}

// HazardPair links a hazard indicator to its required mitigation
type HazardPair struct {
	Indicator  HazardKind
	Mitigation HazardKind
}

// HazardPairs is the fixed indicator/mitigation table, in evaluation order
var HazardPairs = []HazardPair{
	{Indicator: HazardHeightWork, Mitigation: HazardHarness},
	{Indicator: HazardHotWork, Mitigation: HazardFireExtinguisher},
	{Indicator: HazardConfinedSpace, Mitigation: HazardOxygenMeasurement},
	{Indicator: HazardExcavation, Mitigation: HazardShoring},
	{Indicator: HazardElectricalWork, Mitigation: HazardLockout},
}

// MitigationFor returns the mitigation paired with an indicator
func MitigationFor(indicator HazardKind) (HazardKind, bool) {
	for _, p := range HazardPairs {
		if p.Indicator == indicator {
			return p.Mitigation, true
		}
	}
	return "", false
}
