// Package aggregate merges the issues of every pipeline stage into one list.
package aggregate

import (
	"sort"

	"github.com/google/uuid"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
)

// StageIssues is the output of one stage
type StageIssues struct {
	Stage  domain.Stage
	Issues []domain.ValidationIssue
}

// Aggregator assigns ids with NewID, or uuid.NewString when nil
type Aggregator struct {
	NewID func() string
}

// Aggregate concatenates stage outputs in domain.StageOrder and assigns each
// issue a fresh id. Nothing is deduplicated; the inputs are not modified.
func (a Aggregator) Aggregate(stages ...StageIssues) []domain.ValidationIssue {
	newID := a.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	ordered := make([]StageIssues, len(stages))
	copy(ordered, stages)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Stage.Order() < ordered[j].Stage.Order()
	})

	total := 0
	for _, s := range ordered {
		total += len(s.Issues)
	}

	out := make([]domain.ValidationIssue, 0, total)
	for _, s := range ordered {
		for _, issue := range s.Issues {
			issue.ID = newID()
			if issue.Stage == "" {
				issue.Stage = s.Stage
			}
			out = append(out, issue)
		}
	}
	return out
}

// Aggregate merges with uuid ids
func Aggregate(stages ...StageIssues) []domain.ValidationIssue {
	return Aggregator{}.Aggregate(stages...)
}
