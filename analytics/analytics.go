// Package analytics derives read-only summaries from a set of submitted
// responses, scoped to one form. All functions are pure: they never mutate
// their inputs.
package analytics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mbolis/formbox/model"
)

// FilterByForm returns the responses belonging to the given form, in their
// original order.
func FilterByForm(responses []model.FormResponse, formID string) []model.FormResponse {
	filtered := []model.FormResponse{}
	for _, r := range responses {
		if r.FormID == formID {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// TimeSeries groups responses by the calendar day (local time) they were
// submitted on. Buckets are sorted by the actual date, not by the formatted
// label, so Dec 31 always precedes the following Jan 1.
func TimeSeries(responses []model.FormResponse) []DayCount {
	counts := map[time.Time]int{}
	for _, r := range responses {
		t := time.UnixMilli(r.SubmittedAt).Local()
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		counts[day]++
	}

	days := make([]time.Time, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	series := make([]DayCount, len(days))
	for i, day := range days {
		series[i] = DayCount{
			Date:  day.Format("2 Jan 2006"),
			Count: counts[day],
		}
	}
	return series
}

// FieldDistribution counts submitted values for a select or radio field.
// List values (multi-selects) are counted under their comma-joined label.
func FieldDistribution(responses []model.FormResponse, field model.FormField) map[string]int {
	distribution := map[string]int{}
	for _, v := range fieldValues(responses, field.Name) {
		distribution[valueLabel(v)]++
	}
	return distribution
}

// CheckboxDistribution counts answers to a checkbox field. For a field with
// options every submitted token is counted separately; a bare boolean
// checkbox yields Yes/No counts.
func CheckboxDistribution(responses []model.FormResponse, field model.FormField) map[string]int {
	distribution := map[string]int{}
	values := fieldValues(responses, field.Name)

	if len(field.Options) > 0 {
		for _, v := range values {
			tokens, ok := v.([]any)
			if !ok {
				tokens = []any{v}
			}
			for _, t := range tokens {
				switch t {
				case true, "true":
					distribution["Selected"]++
				case false, "false":
					distribution["Not Selected"]++
				default:
					distribution[valueLabel(t)]++
				}
			}
		}
		return distribution
	}

	for _, v := range values {
		if v == true || v == "true" {
			distribution["Yes"]++
		} else {
			distribution["No"]++
		}
	}
	return distribution
}

type Stats struct {
	Count   int     `json:"count"`
	Sum     float64 `json:"total"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// NumericStatistics summarizes a number field. Values that cannot be parsed
// as a number are skipped silently; Count reports how many could.
func NumericStatistics(responses []model.FormResponse, field model.FormField) Stats {
	stats := Stats{}
	for _, v := range fieldValues(responses, field.Name) {
		n, ok := asNumber(v)
		if !ok {
			continue
		}

		if stats.Count == 0 || n < stats.Min {
			stats.Min = n
		}
		if stats.Count == 0 || n > stats.Max {
			stats.Max = n
		}
		stats.Sum += n
		stats.Count++
	}
	if stats.Count > 0 {
		stats.Average = stats.Sum / float64(stats.Count)
	}
	return stats
}

// fieldValues extracts the submitted values for one field name, skipping
// absent and empty entries.
func fieldValues(responses []model.FormResponse, name string) []any {
	values := []any{}
	for _, r := range responses {
		v, ok := r.Data[name]
		if !ok || v == nil || v == "" {
			continue
		}
		values = append(values, v)
	}
	return values
}

func valueLabel(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = valueLabel(e)
		}
		return strings.Join(parts, ", ")
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

func asNumber(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return n, err == nil
	default:
		return 0, false
	}
}
