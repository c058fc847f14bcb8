package models

import "strings"

// Intent is the task category a query is routed to.
type Intent string

const (
	IntentDataRetrieval    Intent = "data_retrieval"
	IntentAnalysis         Intent = "analysis"
	IntentReportGeneration Intent = "report_generation"
	IntentGeneralResponse  Intent = "general_response"
)

var intents = []Intent{
	IntentDataRetrieval,
	IntentAnalysis,
	IntentReportGeneration,
	IntentGeneralResponse,
}

// ParseIntent lower-cases and trims raw model output. The second return value
// reports whether it names a known intent.
func ParseIntent(raw string) (Intent, bool) {
	v := Intent(strings.ToLower(strings.TrimSpace(raw)))
	return v, v.Valid()
}

func (i Intent) Valid() bool {
	for _, known := range intents {
		if i == known {
			return true
		}
	}
	return false
}

func (i Intent) String() string { return string(i) }

// NeedsData reports whether the intent benefits from fetching instrument data first.
func (i Intent) NeedsData() bool {
	return i == IntentAnalysis || i == IntentReportGeneration
}
