package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Threshold preset names
const (
	PresetStrict  = "strict"
	PresetDefault = "default"
	PresetLenient = "lenient"
)

// Thresholds configures the rule catalog and the inspector pattern analyzer
type Thresholds struct {
	// NAThreshold is the fraction of not-applicable items above which a checklist is suspicious
	NAThreshold float64 `json:"na_threshold" yaml:"na_threshold" validate:"gt=0,lte=1"`

	// MinChecklistLength is the shortest checklist considered complete
	MinChecklistLength int `json:"min_checklist_length" yaml:"min_checklist_length" validate:"gte=1,lte=500"`

	// AlwaysCheckedRate is the weighted checked-rate above which an inspector is flagged
	AlwaysCheckedRate float64 `json:"always_checked_rate" yaml:"always_checked_rate" validate:"gt=0,lte=1"`

	// CopyPasteCount is the number of identical checklists that counts as copy-paste
	CopyPasteCount int `json:"copy_paste_count" yaml:"copy_paste_count" validate:"gte=2"`

	// RapidCompletionMinutes is the completion time under which a report counts as rushed
	RapidCompletionMinutes float64 `json:"rapid_completion_minutes" yaml:"rapid_completion_minutes" validate:"gt=0"`

	// MinPatternSample is the number of reports needed before patterns are evaluated
	MinPatternSample int `json:"min_pattern_sample" yaml:"min_pattern_sample" validate:"gte=1"`
}

var thresholdValidator = validator.New()

// Validate checks every threshold is in range
func (t Thresholds) Validate() error {
	err := thresholdValidator.Struct(t)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(fields, "; "))
}

// DefaultThresholds returns the default preset
func DefaultThresholds() Thresholds {
	return Thresholds{
		NAThreshold:            0.5,
		MinChecklistLength:     5,
		AlwaysCheckedRate:      0.95,
		CopyPasteCount:         3,
		RapidCompletionMinutes: 30,
		MinPatternSample:       3,
	}
}

// StrictThresholds flags earlier; meant for high-risk sites and audits
func StrictThresholds() Thresholds {
	return Thresholds{
		NAThreshold:            0.3,
		MinChecklistLength:     8,
		AlwaysCheckedRate:      0.9,
		CopyPasteCount:         2,
		RapidCompletionMinutes: 45,
		MinPatternSample:       3,
	}
}

// LenientThresholds tolerates short checklists and fast form completion
func LenientThresholds() Thresholds {
	return Thresholds{
		NAThreshold:            0.7,
		MinChecklistLength:     3,
		AlwaysCheckedRate:      0.98,
		CopyPasteCount:         5,
		RapidCompletionMinutes: 15,
		MinPatternSample:       5,
	}
}

// Presets returns the built-in presets keyed by name
func Presets() map[string]Thresholds {
	return map[string]Thresholds{
		PresetStrict:  StrictThresholds(),
		PresetDefault: DefaultThresholds(),
		PresetLenient: LenientThresholds(),
	}
}
