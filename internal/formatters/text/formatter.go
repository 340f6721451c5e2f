// Package text renders a validation result for a terminal
package text

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/rules"
)

// Options controls text output
type Options struct {
	NoColor bool
	// Verbose prints recommendations and references under each issue
	Verbose bool
}

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[domain.Severity]*color.Color
	dim    *color.Color
	bold   *color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[domain.Severity]*color.Color{
			domain.SeverityError: color.New(color.FgRed, color.Bold),
			domain.SeverityWarn:  color.New(color.FgYellow),
			domain.SeverityInfo:  color.New(color.FgCyan),
		},
		dim:  color.New(color.FgHiBlack),
		bold: color.New(color.FgWhite, color.Bold),
	}
}

// Format renders issues grouped by stage followed by a summary
func (f *Formatter) Format(result *domain.ValidationResult, opts Options) string {
	if opts.NoColor {
		color.NoColor = true
	}

	var b strings.Builder
	if len(result.Issues) == 0 {
		b.WriteString(color.New(color.FgGreen).Sprint("No issues found."))
		b.WriteString("\n")
	}

	var stage domain.Stage
	for _, issue := range result.Issues {
		if issue.Stage != stage {
			stage = issue.Stage
			fmt.Fprintf(&b, "\n%s\n", f.bold.Sprint(strings.ToUpper(string(stage))))
		}
		f.appendIssue(&b, issue, opts)
	}

	if result.Risk != nil {
		fmt.Fprintf(&b, "\nRisk score %d (%s)", result.Risk.RiskScore, result.Risk.CalculatedTier)
		if result.Risk.DocumentedTier != nil {
			fmt.Fprintf(&b, ", documented %s", *result.Risk.DocumentedTier)
		}
		b.WriteString("\n")
	}
	for _, failure := range result.StageFailures {
		fmt.Fprintf(&b, "%s %s: %s\n", f.colors[domain.SeverityWarn].Sprint("stage failed"), failure.Stage, failure.Reason)
	}

	fmt.Fprintf(&b, "\n%s, %s, %s\n",
		f.colors[domain.SeverityError].Sprintf("%d error(s)", result.Counts.Error),
		f.colors[domain.SeverityWarn].Sprintf("%d warning(s)", result.Counts.Warn),
		f.colors[domain.SeverityInfo].Sprintf("%d info", result.Counts.Info))
	return b.String()
}

func (f *Formatter) appendIssue(b *strings.Builder, issue domain.ValidationIssue, opts Options) {
	body, recommendation, ref := rules.SplitMessage(issue.Message)

	label := fmt.Sprintf("%-5s", strings.ToUpper(string(issue.Severity)))
	if c, ok := f.colors[issue.Severity]; ok {
		label = c.Sprint(label)
	}

	fmt.Fprintf(b, "  %s %s", label, issue.Title)
	if issue.Path != "" {
		fmt.Fprintf(b, " %s", f.dim.Sprintf("(%s)", issue.Path))
	}
	if issue.IsAIFixable {
		fmt.Fprintf(b, " %s", f.dim.Sprint("[auto-fixable]"))
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "        %s\n", body)

	if !opts.Verbose {
		return
	}
	if recommendation != "" {
		fmt.Fprintf(b, "        -> %s\n", recommendation)
	}
	if ref != "" {
		fmt.Fprintf(b, "        %s\n", f.dim.Sprintf("ref %s, rule %s", ref, issue.RuleID))
	}
}
