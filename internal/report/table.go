package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/grokify/releaseconductor/pkg/model"
)

// TableFormatter formats results as text tables.
type TableFormatter struct{}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

// FormatPlanResult formats a planning result as a text table.
func (f *TableFormatter) FormatPlanResult(result *model.PlanResult) (string, error) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Release Plan (%s)\n", result.Timestamp.Format(time.RFC3339)))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if result.NoOp {
		sb.WriteString(fmt.Sprintf("Nothing to release: %s\n", result.Reason))
		return sb.String(), nil
	}

	p := result.Plan
	sb.WriteString(fmt.Sprintf("%-20s %s\n", "Release:", p.ReleaseVersion))
	if p.NextVersion != "" {
		sb.WriteString(fmt.Sprintf("%-20s %s\n", "Next snapshot:", p.NextVersion))
	}
	sb.WriteString(fmt.Sprintf("%-20s %s (%s)\n", "Type:", p.ReleaseType, p.Bump))
	sb.WriteString(fmt.Sprintf("%-20s %s\n", "Target branch:", p.TargetBranch))
	if p.MustCreateBranch {
		sb.WriteString(fmt.Sprintf("%-20s yes\n", "Create branch:"))
	}
	sb.WriteString(fmt.Sprintf("%-20s %s\n", "Tag:", p.TagName))
	if p.PreviousTag != "" {
		sb.WriteString(fmt.Sprintf("%-20s %s (%d commits since)\n", "Previous tag:", p.PreviousTag, p.CommitCount))
	} else {
		sb.WriteString(fmt.Sprintf("%-20s none (%d commits in history)\n", "Previous tag:", p.CommitCount))
	}

	return sb.String(), nil
}

// FormatCutResult formats a release execution result as a text table.
func (f *TableFormatter) FormatCutResult(result *model.CutResult) (string, error) {
	var sb strings.Builder

	if result.DryRun {
		sb.WriteString("Release Dry Run Results")
	} else {
		sb.WriteString("Release Results")
	}
	sb.WriteString(fmt.Sprintf(" (%s)\n", result.Timestamp.Format(time.RFC3339)))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if result.NoOp {
		sb.WriteString(fmt.Sprintf("Nothing to release: %s\n", result.Reason))
		return sb.String(), nil
	}

	if result.Tag != "" {
		sb.WriteString(fmt.Sprintf("Tag: %s\n", result.Tag))
	}
	if result.ReleaseURL != "" {
		sb.WriteString(fmt.Sprintf("Release: %s\n", result.ReleaseURL))
	}

	if len(result.Actions) > 0 {
		sb.WriteString("\nActions:\n")
		for _, a := range result.Actions {
			sb.WriteString("  " + formatAction(a) + "\n")
		}
	}

	return sb.String(), nil
}

// FormatHotfixResult formats a hotfix result as a text table.
func (f *TableFormatter) FormatHotfixResult(result *model.HotfixResult) (string, error) {
	var sb strings.Builder

	if result.DryRun {
		sb.WriteString("Hotfix Dry Run Results")
	} else {
		sb.WriteString("Hotfix Results")
	}
	sb.WriteString(fmt.Sprintf(" (%s)\n", result.Timestamp.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Base: %s | Applied: %d\n", result.BaseTag, len(result.Applied)))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if result.Tag != "" {
		sb.WriteString(fmt.Sprintf("Tag: %s\n", result.Tag))
	}

	if len(result.Actions) > 0 {
		sb.WriteString("\nActions:\n")
		for _, a := range result.Actions {
			sb.WriteString("  " + formatAction(a) + "\n")
		}
	}

	return sb.String(), nil
}

func formatAction(a model.Action) string {
	if a.Skipped {
		return fmt.Sprintf("[dry-run] %-12s %s", a.Kind, a.Detail)
	}
	return fmt.Sprintf("✅ %-12s %s", a.Kind, a.Detail)
}
