package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dyike/CortexFin/consts"
	"github.com/dyike/CortexFin/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStocks struct {
	codes []string
}

func (f *fakeStocks) FetchQuote(_ context.Context, code string) models.Quote {
	f.codes = append(f.codes, code)
	return models.Quote{Code: code, Name: "贵州茅台", Source: "fake"}
}

func (f *fakeStocks) FetchProfile(_ context.Context, code string) models.Profile {
	f.codes = append(f.codes, code)
	return models.Profile{Code: code, Fields: map[string]string{"公司名称": "贵州茅台酒股份有限公司"}}
}

type fakeNews struct {
	companies []string
	result    *models.NewsResult
}

func (f *fakeNews) FetchNews(_ context.Context, company string) models.NewsResult {
	f.companies = append(f.companies, company)
	if f.result != nil {
		return *f.result
	}
	return models.NewsResult{Company: company, Error: "未找到 '" + company + "' 相关新闻"}
}

func TestStockPriceTool(t *testing.T) {
	ctx := context.Background()
	stocks := &fakeStocks{}
	tl := NewStockPriceTool(stocks)

	info, err := tl.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, consts.ToolStockPrice.String(), info.Name)

	out, err := tl.InvokableRun(ctx, `{"ts_code":"000858.SZ"}`)
	require.NoError(t, err)

	var q models.Quote
	require.NoError(t, json.Unmarshal([]byte(out), &q))
	assert.Equal(t, "000858.SZ", q.Code)
	assert.Equal(t, "贵州茅台", q.Name)

	_, err = tl.InvokableRun(ctx, `{}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"000858.SZ", consts.DefaultStockCode}, stocks.codes)
}

func TestCompanyInfoTool(t *testing.T) {
	stocks := &fakeStocks{}
	out, err := NewCompanyInfoTool(stocks).InvokableRun(context.Background(), `{"ts_code":"600519.SH"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "贵州茅台酒股份有限公司")
}

func TestCompanyNewsToolMapsCodeToName(t *testing.T) {
	news := &fakeNews{}
	out, err := NewCompanyNewsTool(news).InvokableRun(context.Background(), `{"company_name":"600519.SH"}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"贵州茅台"}, news.companies)
	assert.Contains(t, out, "未找到")
}

func TestCompanyNewsToolUniformNoNews(t *testing.T) {
	cases := []struct {
		name   string
		result models.NewsResult
	}{
		{"empty list", models.NewsResult{Company: "贵州茅台"}},
		{"fetch failure", models.NewsResult{Company: "贵州茅台", Error: "获取新闻失败: timeout"}},
		{"not found", models.NewsResult{Company: "贵州茅台", Error: "未找到 '贵州茅台' 相关新闻"}},
	}

	var outputs []string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := tc.result
			out, err := NewCompanyNewsTool(&fakeNews{result: &res}).InvokableRun(context.Background(), `{"company_name":"贵州茅台"}`)
			require.NoError(t, err)

			var got models.NewsResult
			require.NoError(t, json.Unmarshal([]byte(out), &got))
			assert.Equal(t, "未找到 '贵州茅台' 相关新闻", got.Error)
			assert.Empty(t, got.Items)
			outputs = append(outputs, out)
		})
	}
	require.Len(t, outputs, 3)
	assert.Equal(t, outputs[0], outputs[1])
	assert.Equal(t, outputs[0], outputs[2])
}

func TestCompanyNewsToolPassesItems(t *testing.T) {
	res := models.NewsResult{Company: "贵州茅台", Items: []models.NewsItem{{Title: "茅台发布年报", Date: "2024-01-05 10:30"}}}
	out, err := NewCompanyNewsTool(&fakeNews{result: &res}).InvokableRun(context.Background(), `{"company_name":"贵州茅台"}`)
	require.NoError(t, err)

	assert.Contains(t, out, "茅台发布年报")
	assert.NotContains(t, out, "error")
}

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	stocks := &fakeStocks{}
	reg, err := NewRegistry(ctx, NewStockPriceTool(stocks), NewCompanyInfoTool(stocks), NewCompanyNewsTool(&fakeNews{}))
	require.NoError(t, err)
	assert.Equal(t, 3, reg.Len())

	sub, err := reg.Subset(consts.ToolCompanyNews, consts.ToolStockPrice)
	require.NoError(t, err)
	assert.Equal(t, []consts.ToolName{consts.ToolCompanyNews, consts.ToolStockPrice}, sub.Names())

	infos := sub.Infos()
	require.Len(t, infos, 2)
	assert.Equal(t, consts.ToolCompanyNews.String(), infos[0].Name)

	_, ok := sub.Lookup(consts.ToolCompanyInfo.String())
	assert.False(t, ok)
	_, ok = sub.Lookup(consts.ToolStockPrice.String())
	assert.True(t, ok)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	stocks := &fakeStocks{}
	_, err := NewRegistry(context.Background(), NewStockPriceTool(stocks), NewStockPriceTool(stocks))
	assert.ErrorIs(t, err, ErrDuplicateTool)
}

func TestRegistrySubsetRejectsUnknown(t *testing.T) {
	reg, err := NewRegistry(context.Background(), NewStockPriceTool(&fakeStocks{}))
	require.NoError(t, err)

	_, err = reg.Subset(consts.ToolCandlestick)
	assert.ErrorIs(t, err, ErrUnknownTool)
}
