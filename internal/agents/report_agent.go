package agents

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/dyike/CortexFin/consts"
	"github.com/dyike/CortexFin/models"
)

type ReportAgent struct {
	stage *stage
}

func NewReportAgent(cm model.ToolCallingChatModel) (*ReportAgent, error) {
	s, err := newStage(consts.ReportGeneration, cm, nil,
		schema.SystemMessage(reportSystemPrompt),
		schema.MessagesPlaceholder("chat_history", true),
		schema.UserMessage(reportHumanPrompt),
	)
	if err != nil {
		return nil, err
	}
	return &ReportAgent{stage: s}, nil
}

func (a *ReportAgent) Run(ctx context.Context, in models.StageInput) string {
	out, err := a.stage.run(ctx, map[string]any{
		"input":           in.Query,
		"chat_history":    in.History,
		"data_context":    orEmpty(in.DataContext),
		"analysis_result": orEmpty(in.AnalysisResult),
	})
	if err != nil {
		a.stage.log.Errorw("report stage failed", "error", err)
		return fmt.Sprintf(consts.ReportStageFailed, err)
	}
	return out
}
