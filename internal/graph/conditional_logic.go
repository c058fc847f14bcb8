package graph

import (
	"context"

	"github.com/dyike/CortexFin/consts"
	"github.com/dyike/CortexFin/internal/agents"
	"github.com/dyike/CortexFin/models"
	"github.com/dyike/CortexFin/pkg/logger"
)

var intentNodes = map[models.Intent]string{
	models.IntentDataRetrieval:    consts.DataRetrieval,
	models.IntentAnalysis:         consts.Analysis,
	models.IntentReportGeneration: consts.ReportGeneration,
	models.IntentGeneralResponse:  consts.GeneralResponse,
}

// routeAfterRouter picks the first stage. Analysis and report requests that
// name an instrument go through data retrieval first.
func routeAfterRouter(_ context.Context, s models.WorkflowState) (string, error) {
	if s.Route.NeedsData() && agents.MentionsInstrument(s.UserInput) {
		logger.Named("graph").Infow("instrument mentioned, fetching data first", "route", s.Route)
		return consts.DataRetrieval, nil
	}
	if node, ok := intentNodes[s.Route]; ok {
		return node, nil
	}
	return consts.GeneralResponse, nil
}

// routeAfterAnalysis only looks at FinalGoal, never at the live Route.
func routeAfterAnalysis(_ context.Context, s models.WorkflowState) (string, error) {
	if s.FinalGoal == models.IntentReportGeneration {
		return consts.ReportGeneration, nil
	}
	return consts.End, nil
}

// FinalOutput extracts the answer for the user. The second value is true
// when the answer is one of the fixed texts: the no-result text, or the
// General stage's apology.
func FinalOutput(s models.WorkflowState) (string, bool) {
	out, fallback := finalText(s)
	return out, fallback || out == consts.GeneralFallback
}

func finalText(s models.WorkflowState) (string, bool) {
	switch s.FinalGoal {
	case models.IntentReportGeneration, models.IntentAnalysis:
		if s.ReportContent != "" {
			return s.ReportContent, false
		}
	case models.IntentDataRetrieval:
		if s.DataContext != "" {
			return s.DataContext, false
		}
	}

	for _, v := range []string{s.ReportContent, s.AnalysisResult, s.DataContext} {
		if v != "" {
			return v, false
		}
	}
	return consts.NoResult, true
}
