package dataflows

import (
	"context"

	"github.com/dyike/CortexFin/models"
)

// PrimarySource is a structured market data API. An error or an empty result
// from either method sends the caller to the secondary web source.
type PrimarySource interface {
	Name() string
	Quote(ctx context.Context, code string, days int) (*models.Quote, error)
	Profile(ctx context.Context, code string) (*models.Profile, error)
}

// quoteFromBars fills the headline fields of a quote from its latest bar.
func quoteFromBars(code, source string, bars []models.Bar) *models.Quote {
	q := &models.Quote{Code: code, Source: source, History: bars}
	if len(bars) == 0 {
		return q
	}
	last := bars[len(bars)-1]
	q.Date = last.Date
	q.Open = last.Open
	q.High = last.High
	q.Low = last.Low
	q.Close = last.Close
	q.Volume = last.Volume
	if len(bars) > 1 {
		q.PrevClose = bars[len(bars)-2].Close
	}
	return q
}
