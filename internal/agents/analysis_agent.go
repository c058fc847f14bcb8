package agents

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/dyike/CortexFin/consts"
	"github.com/dyike/CortexFin/internal/tools"
	"github.com/dyike/CortexFin/models"
)

var AnalysisTools = []consts.ToolName{consts.ToolCandlestick}

// AnalysisAgent interprets the collected data and may ask for a chart.
type AnalysisAgent struct {
	stage *stage
}

func NewAnalysisAgent(cm model.ToolCallingChatModel, reg *tools.Registry) (*AnalysisAgent, error) {
	sub, err := reg.Subset(AnalysisTools...)
	if err != nil {
		return nil, fmt.Errorf("analysis agent tools: %w", err)
	}
	s, err := newStage(consts.Analysis, cm, sub,
		schema.SystemMessage(analysisSystemPrompt),
		schema.MessagesPlaceholder("chat_history", true),
		schema.UserMessage(analysisHumanPrompt),
	)
	if err != nil {
		return nil, err
	}
	return &AnalysisAgent{stage: s}, nil
}

func (a *AnalysisAgent) Run(ctx context.Context, in models.StageInput) string {
	out, err := a.stage.run(ctx, map[string]any{
		"input":        in.Query,
		"chat_history": in.History,
		"data_context": orEmpty(in.DataContext),
	})
	if err != nil {
		a.stage.log.Errorw("analysis stage failed", "error", err)
		return fmt.Sprintf(consts.AnalysisStageFailed, err)
	}
	return out
}
