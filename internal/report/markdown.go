package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/grokify/releaseconductor/pkg/model"
)

// MarkdownFormatter formats results as Markdown.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new Markdown formatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// FormatPlanResult formats a planning result as Markdown.
func (f *MarkdownFormatter) FormatPlanResult(result *model.PlanResult) (string, error) {
	var sb strings.Builder

	sb.WriteString("# Release Plan\n\n")
	sb.WriteString(fmt.Sprintf("**Time:** %s\n\n", result.Timestamp.Format(time.RFC3339)))

	if result.NoOp {
		sb.WriteString(fmt.Sprintf("Nothing to release: %s\n", result.Reason))
		return sb.String(), nil
	}

	p := result.Plan
	sb.WriteString("| Field | Value |\n")
	sb.WriteString("|-------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Release | %s |\n", p.ReleaseVersion))
	if p.NextVersion != "" {
		sb.WriteString(fmt.Sprintf("| Next snapshot | %s |\n", p.NextVersion))
	}
	sb.WriteString(fmt.Sprintf("| Type | %s (%s) |\n", p.ReleaseType, p.Bump))
	sb.WriteString(fmt.Sprintf("| Target branch | %s |\n", p.TargetBranch))
	sb.WriteString(fmt.Sprintf("| Create branch | %t |\n", p.MustCreateBranch))
	sb.WriteString(fmt.Sprintf("| Tag | %s |\n", p.TagName))
	sb.WriteString(fmt.Sprintf("| Commits | %d |\n", p.CommitCount))

	return sb.String(), nil
}

// FormatCutResult formats a release execution result as Markdown.
func (f *MarkdownFormatter) FormatCutResult(result *model.CutResult) (string, error) {
	var sb strings.Builder

	if result.DryRun {
		sb.WriteString("# Release Dry Run Results\n\n")
	} else {
		sb.WriteString("# Release Results\n\n")
	}
	sb.WriteString(fmt.Sprintf("**Time:** %s\n\n", result.Timestamp.Format(time.RFC3339)))

	if result.NoOp {
		sb.WriteString(fmt.Sprintf("Nothing to release: %s\n", result.Reason))
		return sb.String(), nil
	}

	if result.Tag != "" {
		sb.WriteString(fmt.Sprintf("**Tag:** %s\n\n", result.Tag))
	}
	if result.ReleaseURL != "" {
		sb.WriteString(fmt.Sprintf("**Release:** %s\n\n", result.ReleaseURL))
	}

	writeActionsMarkdown(&sb, result.Actions)

	return sb.String(), nil
}

// FormatHotfixResult formats a hotfix result as Markdown.
func (f *MarkdownFormatter) FormatHotfixResult(result *model.HotfixResult) (string, error) {
	var sb strings.Builder

	if result.DryRun {
		sb.WriteString("# Hotfix Dry Run Results\n\n")
	} else {
		sb.WriteString("# Hotfix Results\n\n")
	}
	sb.WriteString(fmt.Sprintf("**Time:** %s\n\n", result.Timestamp.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("**Base:** %s\n\n", result.BaseTag))
	if result.Tag != "" {
		sb.WriteString(fmt.Sprintf("**Tag:** %s\n\n", result.Tag))
	}

	if len(result.Applied) > 0 {
		sb.WriteString("## Applied Commits\n\n")
		for _, id := range result.Applied {
			sb.WriteString(fmt.Sprintf("- `%s`\n", id))
		}
		sb.WriteString("\n")
	}

	writeActionsMarkdown(&sb, result.Actions)

	return sb.String(), nil
}

func writeActionsMarkdown(sb *strings.Builder, actions []model.Action) {
	if len(actions) == 0 {
		return
	}

	sb.WriteString("## Actions\n\n")
	for _, a := range actions {
		if a.Skipped {
			sb.WriteString(fmt.Sprintf("- [dry-run] **%s:** %s\n", a.Kind, a.Detail))
		} else {
			sb.WriteString(fmt.Sprintf("- **%s:** %s\n", a.Kind, a.Detail))
		}
	}
}
