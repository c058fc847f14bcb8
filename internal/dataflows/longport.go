package dataflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dyike/CortexFin/config"
	"github.com/dyike/CortexFin/models"
	lpconfig "github.com/longportapp/openapi-go/config"
	"github.com/longportapp/openapi-go/quote"
)

const SourceLongport = "longport"

var ErrNoLongportCredentials = errors.New("longport API credentials not configured")

type LongportSource struct {
	quoteCtx *quote.QuoteContext
}

func NewLongportSource(cfg *config.Config) (*LongportSource, error) {
	if !cfg.HasLongportCredentials() {
		return nil, ErrNoLongportCredentials
	}

	conf, err := lpconfig.New(lpconfig.WithConfigKey(cfg.LongportAppKey, cfg.LongportAppSecret, cfg.LongportAccessToken))
	if err != nil {
		return nil, err
	}

	quoteContext, err := quote.NewFromCfg(conf)
	if err != nil {
		return nil, err
	}

	return &LongportSource{quoteCtx: quoteContext}, nil
}

func (l *LongportSource) Name() string { return SourceLongport }

func (l *LongportSource) Quote(ctx context.Context, code string, days int) (*models.Quote, error) {
	sticks, err := l.quoteCtx.Candlesticks(ctx, code, quote.PeriodDay, int32(days), quote.AdjustTypeNo)
	if err != nil {
		return nil, fmt.Errorf("longport candlesticks for %s: %w", code, err)
	}

	bars := barsFromCandlesticks(sticks)

	q := quoteFromBars(code, SourceLongport, bars)
	q.Name = NameForCode(code)
	return q, nil
}

// barsFromCandlesticks drops candles with a missing price. Longport leaves a
// price nil when the upstream field is empty.
func barsFromCandlesticks(sticks []*quote.Candlestick) []models.Bar {
	bars := make([]models.Bar, 0, len(sticks))
	for _, stick := range sticks {
		if stick == nil || stick.Open == nil || stick.High == nil || stick.Low == nil || stick.Close == nil {
			continue
		}
		bars = append(bars, models.Bar{
			Date:   time.Unix(stick.Timestamp, 0).Format("2006-01-02"),
			Open:   *stick.Open,
			High:   *stick.High,
			Low:    *stick.Low,
			Close:  *stick.Close,
			Volume: stick.Volume,
		})
	}
	return bars
}

func (l *LongportSource) Profile(ctx context.Context, code string) (*models.Profile, error) {
	infos, err := l.quoteCtx.StaticInfo(ctx, []string{code})
	if err != nil {
		return nil, fmt.Errorf("longport static info for %s: %w", code, err)
	}

	p := &models.Profile{Code: code, Source: SourceLongport, Fields: map[string]string{}}
	for _, info := range infos {
		if info == nil {
			continue
		}
		setField(p.Fields, "公司名称", info.NameCn)
		setField(p.Fields, "英文名称", info.NameEn)
		setField(p.Fields, "交易所", info.Exchange)
		setField(p.Fields, "交易币种", info.Currency)
		setField(p.Fields, "每手股数", fmt.Sprint(info.LotSize))
	}
	return p, nil
}

func setField(fields map[string]string, key, value string) {
	if value != "" && value != "0" {
		fields[key] = value
	}
}
