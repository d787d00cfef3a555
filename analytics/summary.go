package analytics

import "github.com/mbolis/formbox/model"

// Summary kinds, matching the chart each field type is rendered with.
const (
	KindDistribution = "distribution"
	KindPie          = "pie"
	KindStatistics   = "statistics"
)

type FieldSummary struct {
	Field        model.FormField `json:"field"`
	Kind         string          `json:"type"`
	Distribution map[string]int  `json:"distribution,omitempty"`
	Statistics   *Stats          `json:"statistics,omitempty"`
}

// Summarize builds one summary per chartable form field: a value
// distribution for select/radio, a pie breakdown for checkboxes, numeric
// statistics for number fields. Fields with no submitted data are skipped,
// as are free-text fields.
func Summarize(form model.FormConfig, responses []model.FormResponse) []FieldSummary {
	summaries := []FieldSummary{}
	for _, field := range form.Fields {
		if len(fieldValues(responses, field.Name)) == 0 {
			continue
		}

		switch field.Type {
		case model.FieldSelect, model.FieldRadio:
			summaries = append(summaries, FieldSummary{
				Field:        field,
				Kind:         KindDistribution,
				Distribution: FieldDistribution(responses, field),
			})
		case model.FieldCheckbox:
			summaries = append(summaries, FieldSummary{
				Field:        field,
				Kind:         KindPie,
				Distribution: CheckboxDistribution(responses, field),
			})
		case model.FieldNumber:
			stats := NumericStatistics(responses, field)
			if stats.Count == 0 {
				continue
			}
			summaries = append(summaries, FieldSummary{
				Field:      field,
				Kind:       KindStatistics,
				Statistics: &stats,
			})
		}
	}
	return summaries
}
