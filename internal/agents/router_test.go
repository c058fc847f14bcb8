package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/dyike/CortexFin/internal/agents/agenttest"
	"github.com/dyike/CortexFin/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		query string
		want  models.Intent
	}{
		{"贵州茅台的股价是多少", models.IntentDataRetrieval},
		{"查一下平安银行的行情", models.IntentDataRetrieval},
		{"五粮液的公司信息", models.IntentDataRetrieval},
		{"Show me the PRICE of 600519", models.IntentDataRetrieval},
		{"帮我分析一下价格走势", models.IntentDataRetrieval},
		{"给我一份贵州茅台的分析报告", models.IntentAnalysis},
		{"这只股票有投资价值吗", models.IntentAnalysis},
		{"给我一份贵州茅台的报告", models.IntentReportGeneration},
		{"帮我总结一下", models.IntentReportGeneration},
		{"今天天气怎么样", models.IntentGeneralResponse},
		{"", models.IntentGeneralResponse},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.query))
		})
	}
}

func TestRulesPriorityOrder(t *testing.T) {
	require.Len(t, Rules, 3)
	assert.Equal(t, models.IntentDataRetrieval, Rules[0].Intent)
	assert.Equal(t, models.IntentAnalysis, Rules[1].Intent)
	assert.Equal(t, models.IntentReportGeneration, Rules[2].Intent)
}

func TestRouterKeywordsOverrideModel(t *testing.T) {
	for _, raw := range []string{"analysis", " REPORT_GENERATION\n", "general_response", "I think it's data", ""} {
		cm := agenttest.NewFakeModel(agenttest.Text(raw))
		r := NewRouter(cm)

		got := r.Classify(context.Background(), "贵州茅台的股价是多少", nil)

		assert.Equal(t, models.IntentDataRetrieval, got, "model said %q", raw)
	}
}

func TestRouterIgnoresModelWithoutKeywords(t *testing.T) {
	cm := agenttest.NewFakeModel(agenttest.Text("analysis"))
	r := NewRouter(cm)

	assert.Equal(t, models.IntentGeneralResponse, r.Classify(context.Background(), "你好", nil))
}

func TestRouterModelFailureIsGeneral(t *testing.T) {
	cm := agenttest.NewFakeModel(agenttest.Fail(errors.New("connection refused")))
	r := NewRouter(cm)

	got := r.Classify(context.Background(), "贵州茅台的股价是多少", nil)

	assert.Equal(t, models.IntentGeneralResponse, got)
}

func TestRouterPromptCarriesHistory(t *testing.T) {
	cm := agenttest.NewFakeModel(agenttest.Text("analysis"))
	r := NewRouter(cm)
	history := []*schema.Message{
		schema.UserMessage("之前的问题"),
		schema.AssistantMessage("之前的回答", nil),
	}

	r.Classify(context.Background(), "分析一下", history)

	calls := cm.Calls()
	require.Len(t, calls, 1)
	msgs := calls[0].Messages
	require.Len(t, msgs, 4)
	assert.Equal(t, schema.System, msgs[0].Role)
	assert.Equal(t, "之前的问题", msgs[1].Content)
	assert.Equal(t, "分析一下", msgs[3].Content)
}
