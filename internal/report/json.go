package report

import (
	"encoding/json"

	"github.com/grokify/releaseconductor/pkg/model"
)

// JSONFormatter formats results as JSON.
type JSONFormatter struct {
	Indent bool
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{Indent: true}
}

// FormatPlanResult formats a planning result as JSON.
func (f *JSONFormatter) FormatPlanResult(result *model.PlanResult) (string, error) {
	return f.marshal(result)
}

// FormatCutResult formats a release execution result as JSON.
func (f *JSONFormatter) FormatCutResult(result *model.CutResult) (string, error) {
	return f.marshal(result)
}

// FormatHotfixResult formats a hotfix result as JSON.
func (f *JSONFormatter) FormatHotfixResult(result *model.HotfixResult) (string, error) {
	return f.marshal(result)
}

func (f *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if f.Indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
