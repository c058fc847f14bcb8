package dataflows

import (
	"context"
	"fmt"
	"time"

	"github.com/dyike/CortexFin/models"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	fquote "github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
)

const SourceYahoo = "yahoo"

// YahooSource reads Yahoo Finance through finance-go. The library has no
// context support, so ctx is only checked before each request.
type YahooSource struct{}

func NewYahooSource() *YahooSource { return &YahooSource{} }

func (y *YahooSource) Name() string { return SourceYahoo }

func (y *YahooSource) Quote(ctx context.Context, code string, days int) (*models.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	symbol := YahooSymbol(code)

	// 自然日窗口放宽一倍以覆盖周末和节假日
	end := time.Now()
	start := end.AddDate(0, 0, -days*2-7)
	iter := chart.Get(&chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	})

	var bars []models.Bar
	for iter.Next() {
		bar := iter.Bar()
		bars = append(bars, models.Bar{
			Date:   time.Unix(int64(bar.Timestamp), 0).Format("2006-01-02"),
			Open:   bar.Open,
			High:   bar.High,
			Low:    bar.Low,
			Close:  bar.Close,
			Volume: int64(bar.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("yahoo chart for %s: %w", symbol, err)
	}
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}

	q := quoteFromBars(code, SourceYahoo, bars)
	if meta, err := fquote.Get(symbol); err == nil && meta != nil {
		q.Name = meta.ShortName
		q.PrevClose = decimal.NewFromFloat(meta.RegularMarketPreviousClose)
	}
	if q.Name == "" {
		q.Name = NameForCode(code)
	}
	return q, nil
}

func (y *YahooSource) Profile(ctx context.Context, code string) (*models.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	symbol := YahooSymbol(code)

	q, err := fquote.Get(symbol)
	if err != nil {
		return nil, fmt.Errorf("yahoo quote for %s: %w", symbol, err)
	}

	p := &models.Profile{Code: code, Source: SourceYahoo, Fields: map[string]string{}}
	if q == nil {
		return p, nil
	}
	setField(p.Fields, "公司名称", q.ShortName)
	setField(p.Fields, "交易所", q.FullExchangeName)
	setField(p.Fields, "交易币种", q.CurrencyID)
	setField(p.Fields, "证券类型", string(q.QuoteType))
	return p, nil
}
