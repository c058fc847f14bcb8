package agents

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
	"github.com/dyike/CortexFin/internal/dataflows"
	"github.com/dyike/CortexFin/models"
	"github.com/dyike/CortexFin/pkg/logger"
)

// Rule maps a set of keywords to an intent.
type Rule struct {
	Intent   models.Intent
	Keywords []string
}

func (r Rule) Match(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range r.Keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// Rules are evaluated top to bottom; the first match wins.
var Rules = []Rule{
	{Intent: models.IntentDataRetrieval, Keywords: []string{"价格", "股价", "行情", "报价", "信息", "数据", "price", "quote", "data"}},
	{Intent: models.IntentAnalysis, Keywords: []string{"分析", "建议", "价值", "analysis", "analyze", "recommend", "value"}},
	{Intent: models.IntentReportGeneration, Keywords: []string{"报告", "总结", "report", "summary", "summarize"}},
}

// Classify applies the keyword rules. Queries matching no rule are general.
func Classify(query string) models.Intent {
	for _, r := range Rules {
		if r.Match(query) {
			return r.Intent
		}
	}
	return models.IntentGeneralResponse
}

// MentionsInstrument reports whether the query names a known instrument or a 6-digit code.
func MentionsInstrument(query string) bool {
	return dataflows.MentionsInstrument(query)
}

// Router asks the model for an intent and then lets the keyword rules decide.
type Router struct {
	model    model.BaseChatModel
	template prompt.ChatTemplate
	log      *logger.Logger
}

func NewRouter(cm model.BaseChatModel) *Router {
	return &Router{
		model: cm,
		template: prompt.FromMessages(schema.FString,
			schema.SystemMessage(routerSystemPrompt),
			schema.MessagesPlaceholder("chat_history", true),
			schema.UserMessage("{input}"),
		),
		log: logger.Named("router"),
	}
}

func (r *Router) Classify(ctx context.Context, query string, history []*schema.Message) models.Intent {
	msgs, err := r.template.Format(ctx, map[string]any{
		"input":        query,
		"chat_history": history,
	})
	if err != nil {
		r.log.Errorw("format router prompt", "error", err)
		return models.IntentGeneralResponse
	}

	resp, err := r.model.Generate(ctx, msgs)
	if err != nil {
		r.log.Errorw("router model call failed", "error", err)
		return models.IntentGeneralResponse
	}

	var content string
	if resp != nil {
		content = resp.Content
	}
	suggested, known := models.ParseIntent(content)
	intent := Classify(query)
	if intent != suggested {
		r.log.Infow("keyword rules override model intent",
			"model", suggested, "model_known", known, "intent", intent)
	}
	return intent
}
