package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	t_utils "github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
	"github.com/dyike/CortexFin/consts"
	"github.com/dyike/CortexFin/models"
	"github.com/shopspring/decimal"
)

// ChartRenderer turns validated daily bars into a chart artifact and
// returns a description of it.
type ChartRenderer interface {
	Render(ctx context.Context, title string, bars []models.Bar) (string, error)
}

// ChartBar is the tool-side bar shape. Pointer fields let missing columns be detected.
type ChartBar struct {
	Date   string           `json:"date"`
	Open   *decimal.Decimal `json:"open"`
	High   *decimal.Decimal `json:"high"`
	Low    *decimal.Decimal `json:"low"`
	Close  *decimal.Decimal `json:"close"`
	Volume *int64           `json:"volume"`
}

type ChartInput struct {
	Data  []ChartBar `json:"data"`
	Title string     `json:"title"`
}

type ChartOutput struct {
	Result string `json:"result"`
}

func NewCandlestickTool(renderer ChartRenderer) tool.InvokableTool {
	num := func(desc string) *schema.ParameterInfo {
		return &schema.ParameterInfo{Type: schema.Number, Desc: desc, Required: true}
	}
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: consts.ToolCandlestick.String(),
			Desc: "根据日线数据生成股票K线图",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"data": {
					Type:     schema.Array,
					Desc:     "按日期排列的日线数据",
					Required: true,
					ElemInfo: &schema.ParameterInfo{
						Type: schema.Object,
						SubParams: map[string]*schema.ParameterInfo{
							"date":   {Type: schema.String, Desc: "交易日期 YYYY-MM-DD", Required: true},
							"open":   num("开盘价"),
							"high":   num("最高价"),
							"low":    num("最低价"),
							"close":  num("收盘价"),
							"volume": {Type: schema.Integer, Desc: "成交量", Required: true},
						},
					},
				},
				"title": {
					Type: schema.String,
					Desc: "图表标题",
				},
			}),
		},
		func(ctx context.Context, input ChartInput) (*ChartOutput, error) {
			bars, msg := validateChartBars(input.Data)
			if msg != "" {
				return &ChartOutput{Result: msg}, nil
			}
			title := strings.TrimSpace(input.Title)
			if title == "" {
				title = "股票K线图"
			}
			out, err := renderer.Render(ctx, title, bars)
			if err != nil {
				return nil, fmt.Errorf("render chart: %w", err)
			}
			return &ChartOutput{Result: out}, nil
		},
	)
}

// validateChartBars returns the bars sorted by date, or a user-facing message
// explaining why no chart can be drawn.
func validateChartBars(data []ChartBar) ([]models.Bar, string) {
	if len(data) == 0 {
		return nil, consts.ChartNoData
	}

	bars := make([]models.Bar, 0, len(data))
	for _, b := range data {
		if strings.TrimSpace(b.Date) == "" || b.Open == nil || b.High == nil || b.Low == nil || b.Close == nil || b.Volume == nil {
			return nil, consts.ChartIncomplete
		}
		bars = append(bars, models.Bar{
			Date:   strings.TrimSpace(b.Date),
			Open:   *b.Open,
			High:   *b.High,
			Low:    *b.Low,
			Close:  *b.Close,
			Volume: *b.Volume,
		})
	}

	if len(bars) < 2 {
		return nil, consts.ChartTooFew
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date < bars[j].Date })
	return bars, ""
}

// TextChartRenderer describes the chart instead of drawing it.
type TextChartRenderer struct{}

func (TextChartRenderer) Render(_ context.Context, title string, bars []models.Bar) (string, error) {
	first, last := bars[0], bars[len(bars)-1]

	high, low := first.High, first.Low
	var volume int64
	for _, b := range bars {
		if b.High.GreaterThan(high) {
			high = b.High
		}
		if b.Low.LessThan(low) {
			low = b.Low
		}
		volume += b.Volume
	}

	change := "N/A"
	if !first.Open.IsZero() {
		pct := last.Close.Sub(first.Open).Div(first.Open).Mul(decimal.NewFromInt(100))
		change = pct.StringFixed(2) + "%"
	}

	return fmt.Sprintf("K线图《%s》已生成：%s 至 %s，共 %d 个交易日；期初开盘 %s，期末收盘 %s，区间涨跌幅 %s；最高 %s，最低 %s；累计成交量 %d。",
		title, first.Date, last.Date, len(bars),
		first.Open.String(), last.Close.String(), change,
		high.String(), low.String(), volume), nil
}
