// Package hazard maps checklist items and free text onto the hazard taxonomy.
//
// Items normally arrive tagged with a HazardKind. Untagged items from legacy
// extraction are classified by a known-ID table first, then by keyword
// matching on the item's id, category and display name. The keyword fallback
// recognises controls by name but hazard indicators only by the work being
// done.
package hazard

import (
	"strings"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
)

// knownIDs maps the stable checklist ids of the standard forms to their kind
var knownIDs = map[string]domain.HazardKind{
	"ppe_01":  domain.HazardHelmet,
	"ppe_03":  domain.HazardHarness,
	"fall_01": domain.HazardHeightWork,
	"fire_01": domain.HazardHotWork,
	"fire_02": domain.HazardFireExtinguisher,
	"conf_01": domain.HazardConfinedSpace,
	"conf_02": domain.HazardOxygenMeasurement,
	"exc_01":  domain.HazardExcavation,
	"exc_02":  domain.HazardShoring,
	"elec_01": domain.HazardElectricalWork,
	"elec_02": domain.HazardLockout,
}

type kindKeywords struct {
	kind     domain.HazardKind
	keywords []string
}

// controlKeywords is checked first so "fall arrest harness" resolves to
// harness, not height work. Oxygen only counts as a measurement, never a
// bare mention (cylinders, cutting gas).
var controlKeywords = []kindKeywords{
	{domain.HazardHarness, []string{"harness", "safety belt", "fall arrest", "안전대", "안전벨트", "하네스"}},
	{domain.HazardFireExtinguisher, []string{"extinguisher", "소화기"}},
	{domain.HazardOxygenMeasurement, []string{
		"oxygen level", "oxygen concentration", "oxygen measure", "oxygen test", "oxygen reading",
		"o2 level", "o2 measure", "gas detect", "gas measurement", "gas test",
		"산소농도", "산소 농도", "산소측정", "산소 측정", "가스농도", "가스 농도", "가스측정", "가스 측정",
	}},
	{domain.HazardShoring, []string{"shoring", "sheet pile", "흙막이", "토류"}},
	{domain.HazardLockout, []string{"lockout", "lock-out", "loto", "tagout", "잠금", "전원 차단"}},
	{domain.HazardHelmet, []string{"helmet", "hard hat", "hardhat", "안전모"}},
}

// activityKeywords infer a hazard indicator. They name the work being done,
// so equipment lines that merely mention a word like "electric" or "ladder"
// stay out.
var activityKeywords = []kindKeywords{
	{domain.HazardHeightWork, []string{
		"work at height", "working at height", "height work", "work on height",
		"aerial work", "aerial lift", "scaffold work", "work on scaffold", "ladder work", "roof work",
		"고소작업", "고소 작업", "비계작업", "비계 작업", "사다리작업", "사다리 작업",
	}},
	{domain.HazardHotWork, []string{"hot work", "hot_work", "welding work", "cutting work", "welding operation", "화기작업", "화기 작업", "용접작업", "용접 작업", "용단작업", "용단 작업"}},
	{domain.HazardConfinedSpace, []string{"confined space", "tank entry", "manhole entry", "밀폐공간", "밀폐 공간", "맨홀 작업", "맨홀작업"}},
	{domain.HazardExcavation, []string{"excavation work", "trench work", "trenching", "굴착작업", "굴착 작업", "터파기"}},
	{domain.HazardElectricalWork, []string{
		"electrical work", "electric work", "live wire", "live line", "energized work", "work on energized",
		"전기작업", "전기 작업", "활선", "충전부 작업",
	}},
}

// routineKeywords mark inspection, storage and equipment lines. Such items
// never become hazard indicators even when they contain activity wording.
var routineKeywords = []string{
	"inspected", "inspection", "checked for", "stored", "storage", "cord", "tool", "cylinder",
	"signage", "sign posted", "available", "condition",
	"점검", "보관", "공구", "표지",
}

// Classify returns the taxonomy kind of an item
func Classify(item domain.ChecklistItem) domain.HazardKind {
	if item.Hazard != "" && item.Hazard.IsValid() {
		return item.Hazard
	}

	if kind, ok := knownIDs[strings.ToLower(strings.TrimSpace(item.ID))]; ok {
		return kind
	}

	return classifyText(itemText(item))
}

// ClassifyAll returns the kind of every item, index-aligned with the checklist
func ClassifyAll(items []domain.ChecklistItem) []domain.HazardKind {
	kinds := make([]domain.HazardKind, len(items))
	for i, item := range items {
		kinds[i] = Classify(item)
	}
	return kinds
}

func classifyText(text string) domain.HazardKind {
	if text == "" {
		return domain.HazardOther
	}
	for _, kk := range controlKeywords {
		if containsAny(text, kk.keywords) {
			return kk.kind
		}
	}
	if containsAny(text, routineKeywords) {
		return domain.HazardOther
	}
	for _, kk := range activityKeywords {
		if containsAny(text, kk.keywords) {
			return kk.kind
		}
	}
	return domain.HazardOther
}

func itemText(item domain.ChecklistItem) string {
	return Fold(strings.Join([]string{item.ID, item.Category, item.DisplayName}, " "))
}
