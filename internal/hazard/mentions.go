package hazard

import "github.com/custodia-labs/safeaudit-core/internal/core/domain"

// BriefingCategories are the categories checked against toolbox meeting hazards, in report order
var BriefingCategories = []domain.HazardCategory{
	domain.CategoryFall,
	domain.CategoryFire,
	domain.CategoryElectrical,
	domain.CategoryConfinedSpace,
}

var categoryKeywords = map[domain.HazardCategory][]string{
	domain.CategoryFall: {
		"fall", "height", "scaffold", "ladder", "harness", "opening",
		"추락", "고소", "떨어짐", "비계", "사다리", "안전대", "개구부",
	},
	domain.CategoryFire: {
		"fire", "hot work", "welding", "spark", "flammable", "extinguisher",
		"화재", "화기", "용접", "불티", "인화", "소화기",
	},
	domain.CategoryElectrical: {
		"electric", "shock", "live wire", "energized", "lockout", "loto",
		"감전", "전기", "활선", "충전부", "누전",
	},
	domain.CategoryConfinedSpace: {
		"confined", "oxygen", "suffocat", "asphyxia", "toxic gas", "manhole",
		"질식", "밀폐", "산소", "유해가스", "맨홀",
	},
	domain.CategoryExcavation: {
		"excavat", "trench", "collapse", "cave-in",
		"굴착", "붕괴", "터파기", "흙막이",
	},
}

// Keywords returns the keyword set of a category
func Keywords(category domain.HazardCategory) []string {
	return categoryKeywords[category]
}

// Mentions reports whether free text refers to the category
func Mentions(text string, category domain.HazardCategory) bool {
	folded := Fold(text)
	if folded == "" {
		return false
	}
	return containsAny(folded, categoryKeywords[category])
}

// ItemInCategory reports whether a checklist item covers the category, by
// taxonomy first and by keyword match on id/category/name as a fallback
func ItemInCategory(item domain.ChecklistItem, category domain.HazardCategory) bool {
	if Classify(item).Category() == category {
		return true
	}
	return containsAny(itemText(item), categoryKeywords[category])
}
