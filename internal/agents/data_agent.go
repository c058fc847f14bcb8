package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/dyike/CortexFin/consts"
	"github.com/dyike/CortexFin/internal/dataflows"
	"github.com/dyike/CortexFin/internal/tools"
	"github.com/dyike/CortexFin/models"
)

// DataTools are the tools the data stage may call.
var DataTools = []consts.ToolName{consts.ToolStockPrice, consts.ToolCompanyInfo, consts.ToolCompanyNews}

// DataAgent collects quotes, company profiles and news through tools.
type DataAgent struct {
	stage *stage
}

func NewDataAgent(cm model.ToolCallingChatModel, reg *tools.Registry) (*DataAgent, error) {
	sub, err := reg.Subset(DataTools...)
	if err != nil {
		return nil, fmt.Errorf("data agent tools: %w", err)
	}
	s, err := newStage(consts.DataRetrieval, cm, sub,
		schema.SystemMessage(dataSystemPrompt),
		schema.MessagesPlaceholder("chat_history", true),
		schema.UserMessage("{input}"),
	)
	if err != nil {
		return nil, err
	}
	return &DataAgent{stage: s}, nil
}

func (a *DataAgent) Run(ctx context.Context, in models.StageInput) string {
	out, err := a.stage.run(ctx, map[string]any{
		"input":        in.Query,
		"chat_history": in.History,
		"instruments":  instrumentHint(),
	})
	if err != nil {
		a.stage.log.Errorw("data stage failed", "error", err)
		return fmt.Sprintf(consts.DataStageFailed, err)
	}
	return out
}

func instrumentHint() string {
	parts := make([]string, 0, 4)
	for _, ins := range dataflows.Instruments() {
		parts = append(parts, ins.Name+" "+ins.Code)
	}
	return strings.Join(parts, "、")
}
