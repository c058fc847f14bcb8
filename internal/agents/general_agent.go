package agents

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/dyike/CortexFin/consts"
	"github.com/dyike/CortexFin/models"
)

// GeneralAgent answers requests no other stage handles. Without a model it
// returns the fixed apology text.
type GeneralAgent struct {
	stage *stage
}

// NewGeneralAgent returns the fixed-text agent when cm is nil.
func NewGeneralAgent(cm model.ToolCallingChatModel) (*GeneralAgent, error) {
	if cm == nil {
		return &GeneralAgent{}, nil
	}
	s, err := newStage(consts.GeneralResponse, cm, nil,
		schema.SystemMessage(generalSystemPrompt),
		schema.MessagesPlaceholder("chat_history", true),
		schema.UserMessage("{input}"),
	)
	if err != nil {
		return nil, err
	}
	return &GeneralAgent{stage: s}, nil
}

func (a *GeneralAgent) Run(ctx context.Context, in models.StageInput) string {
	if a.stage == nil {
		return consts.GeneralFallback
	}
	out, err := a.stage.run(ctx, map[string]any{
		"input":        in.Query,
		"chat_history": in.History,
	})
	if err != nil || strings.TrimSpace(out) == "" {
		a.stage.log.Warnw("general chat failed, using fixed reply", "error", err)
		return consts.GeneralFallback
	}
	return out
}
