package report

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/grokify/releaseconductor/pkg/model"
)

// CSVFormatter formats results as CSV.
type CSVFormatter struct{}

// NewCSVFormatter creates a new CSV formatter.
func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

// FormatPlanResult formats a planning result as CSV.
func (f *CSVFormatter) FormatPlanResult(result *model.PlanResult) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Release", "Next", "Type", "Bump", "Target Branch", "Create Branch", "Tag", "Commits"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	if !result.NoOp {
		p := result.Plan
		row := []string{
			p.ReleaseVersion,
			p.NextVersion,
			string(p.ReleaseType),
			string(p.Bump),
			p.TargetBranch,
			fmt.Sprintf("%t", p.MustCreateBranch),
			p.TagName,
			fmt.Sprintf("%d", p.CommitCount),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	return buf.String(), w.Error()
}

// FormatCutResult formats a release execution result as CSV.
func (f *CSVFormatter) FormatCutResult(result *model.CutResult) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Action", "Detail", "Skipped"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	if err := writeActionRows(w, result.Actions); err != nil {
		return "", err
	}

	w.Flush()
	return buf.String(), w.Error()
}

// FormatHotfixResult formats a hotfix result as CSV.
func (f *CSVFormatter) FormatHotfixResult(result *model.HotfixResult) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Action", "Detail", "Skipped"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	if err := writeActionRows(w, result.Actions); err != nil {
		return "", err
	}

	w.Flush()
	return buf.String(), w.Error()
}

func writeActionRows(w *csv.Writer, actions []model.Action) error {
	for _, a := range actions {
		row := []string{a.Kind, a.Detail, fmt.Sprintf("%t", a.Skipped)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
