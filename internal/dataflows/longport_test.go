package dataflows

import (
	"context"
	"testing"
	"time"

	"github.com/dyike/CortexFin/config"
	"github.com/longportapp/openapi-go/quote"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLongportSourceWithoutCredentials(t *testing.T) {
	_, err := NewLongportSource(&config.Config{})
	assert.ErrorIs(t, err, ErrNoLongportCredentials)
}

func TestBarsFromCandlesticks(t *testing.T) {
	price := func(v string) *decimal.Decimal {
		d := decimal.RequireFromString(v)
		return &d
	}
	day := time.Date(2024, 1, 5, 8, 0, 0, 0, time.Local).Unix()

	bars := barsFromCandlesticks([]*quote.Candlestick{
		nil,
		{Timestamp: day, Volume: 10},
		{Timestamp: day, Open: price("1700.10"), High: price("1720.00"), Low: nil, Close: price("1710.50"), Volume: 20},
		{Timestamp: day, Open: price("1700.10"), High: price("1720.00"), Low: price("1690.01"), Close: price("1710.50"), Volume: 30},
	})

	require.Len(t, bars, 1)
	assert.Equal(t, "2024-01-05", bars[0].Date)
	assert.Equal(t, "1700.1", bars[0].Open.String())
	assert.Equal(t, "1690.01", bars[0].Low.String())
	assert.True(t, bars[0].Close.Equal(decimal.RequireFromString("1710.50")))
	assert.Equal(t, int64(30), bars[0].Volume)
}

func TestBarsFromCandlesticksAllMissing(t *testing.T) {
	bars := barsFromCandlesticks([]*quote.Candlestick{{Volume: 1}})

	assert.Empty(t, bars)
	assert.Empty(t, quoteFromBars("600519.SH", SourceLongport, bars).History)
}

func TestLongportSourceLive(t *testing.T) {
	cfg, err := config.Load()
	if err != nil || !cfg.HasLongportCredentials() {
		t.Skip("Skipping test due to missing Longport API credentials")
	}

	source, err := NewLongportSource(cfg)
	if err != nil {
		t.Skipf("Skipping test, longport unavailable: %v", err)
	}

	q, err := source.Quote(context.Background(), "600519.SH", 5)
	require.NoError(t, err)
	assert.NotEmpty(t, q.History)
	assert.LessOrEqual(t, len(q.History), 5)

	p, err := source.Profile(context.Background(), "600519.SH")
	require.NoError(t, err)
	t.Logf("profile: %v", p.Fields)
}
