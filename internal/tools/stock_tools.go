package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	t_utils "github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
	"github.com/dyike/CortexFin/consts"
	"github.com/dyike/CortexFin/internal/dataflows"
	"github.com/dyike/CortexFin/models"
)

// StockFetcher is the part of the data source adapter the tools need.
type StockFetcher interface {
	FetchQuote(ctx context.Context, code string) models.Quote
	FetchProfile(ctx context.Context, code string) models.Profile
}

type NewsFetcher interface {
	FetchNews(ctx context.Context, company string) models.NewsResult
}

type StockCodeInput struct {
	TSCode string `json:"ts_code"`
}

type CompanyNewsInput struct {
	CompanyName string `json:"company_name"`
}

var tsCodeParam = map[string]*schema.ParameterInfo{
	"ts_code": {
		Type:     "string",
		Desc:     "股票代码，带交易所后缀，例如 600519.SH、000001.SZ",
		Required: true,
	},
}

func NewStockPriceTool(stocks StockFetcher) tool.InvokableTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name:        consts.ToolStockPrice.String(),
			Desc:        "获取指定股票最近的日线行情（开盘、最高、最低、收盘、成交量）",
			ParamsOneOf: schema.NewParamsOneOfByParams(tsCodeParam),
		},
		func(ctx context.Context, input StockCodeInput) (*models.Quote, error) {
			code := strings.TrimSpace(input.TSCode)
			if code == "" {
				code = consts.DefaultStockCode
			}
			q := stocks.FetchQuote(ctx, code)
			return &q, nil
		},
	)
}

func NewCompanyInfoTool(stocks StockFetcher) tool.InvokableTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name:        consts.ToolCompanyInfo.String(),
			Desc:        "获取指定股票对应公司的基本资料",
			ParamsOneOf: schema.NewParamsOneOfByParams(tsCodeParam),
		},
		func(ctx context.Context, input StockCodeInput) (*models.Profile, error) {
			code := strings.TrimSpace(input.TSCode)
			if code == "" {
				code = consts.DefaultStockCode
			}
			p := stocks.FetchProfile(ctx, code)
			return &p, nil
		},
	)
}

func NewCompanyNewsTool(news NewsFetcher) tool.InvokableTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: consts.ToolCompanyNews.String(),
			Desc: "搜索公司相关的最新新闻",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"company_name": {
					Type:     "string",
					Desc:     "公司名称，例如 贵州茅台",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, input CompanyNewsInput) (*models.NewsResult, error) {
			name := strings.TrimSpace(input.CompanyName)
			// 模型有时会传股票代码
			if known := dataflows.NameForCode(name); known != "" {
				name = known
			}
			res := news.FetchNews(ctx, name)
			if !res.Available() {
				// 没有新闻和抓取失败对模型来说是一回事
				return &models.NewsResult{Company: name, Items: []models.NewsItem{}, Error: fmt.Sprintf(consts.NewsNotFound, name)}, nil
			}
			return &res, nil
		},
	)
}
