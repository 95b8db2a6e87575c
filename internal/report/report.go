package report

import "github.com/grokify/releaseconductor/pkg/model"

// Formatter defines the interface for formatting results.
type Formatter interface {
	// FormatPlanResult formats a planning result.
	FormatPlanResult(result *model.PlanResult) (string, error)

	// FormatCutResult formats a release execution result.
	FormatCutResult(result *model.CutResult) (string, error)

	// FormatHotfixResult formats a hotfix result.
	FormatHotfixResult(result *model.HotfixResult) (string, error)
}

// ForFormat returns the formatter for a --format value, defaulting to table.
func ForFormat(format string) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	case "markdown", "md":
		return NewMarkdownFormatter()
	case "csv":
		return NewCSVFormatter()
	default:
		return NewTableFormatter()
	}
}
