package dataflows

import (
	"context"

	"github.com/dyike/CortexFin/config"
	"github.com/dyike/CortexFin/models"
	"github.com/dyike/CortexFin/pkg/logger"
)

// StockClient fetches quotes and profiles with a fixed two-tier fallback:
// the primary API when one is configured, then the secondary web source.
// There are no retries and nothing is cached.
type StockClient struct {
	primary     PrimarySource
	secondary   *WebSource
	historyDays int
	log         *logger.Logger
}

// NewStockClient wires the primary source selected by cfg. A primary source
// that cannot be constructed is logged and left out.
func NewStockClient(cfg *config.Config) *StockClient {
	web := NewWebSource(NewHTTPClient(cfg.HTTPTimeout, cfg.UserAgent), cfg.QuoteFeedURL, cfg.ProfilePageURL)

	var primary PrimarySource
	switch cfg.PrimarySource {
	case config.SourceLongport:
		lp, err := NewLongportSource(cfg)
		if err != nil {
			logger.Named("dataflows").Warnw("primary source unavailable, using web fallback only",
				"source", config.SourceLongport, "error", err)
		} else {
			primary = lp
		}
	case config.SourceYahoo:
		primary = NewYahooSource()
	}

	return NewStockClientWith(primary, web, cfg.PriceHistoryDays)
}

// NewStockClientWith assembles a client from explicit sources. primary may be nil.
func NewStockClientWith(primary PrimarySource, secondary *WebSource, historyDays int) *StockClient {
	if historyDays <= 0 {
		historyDays = 5
	}
	return &StockClient{
		primary:     primary,
		secondary:   secondary,
		historyDays: historyDays,
		log:         logger.Named("dataflows"),
	}
}

// FetchQuote never returns an error; check Quote.Error.
func (c *StockClient) FetchQuote(ctx context.Context, code string) models.Quote {
	code = NormalizeCode(code)

	if c.primary != nil {
		q, err := c.primary.Quote(ctx, code, c.historyDays)
		switch {
		case err != nil:
			c.log.Warnw("primary quote failed, falling back", "source", c.primary.Name(), "code", code, "error", err)
		case q == nil || len(q.History) == 0:
			c.log.Warnw("primary quote empty, falling back", "source", c.primary.Name(), "code", code)
		default:
			return *q
		}
	} else {
		c.log.Debugw("no primary source configured", "code", code)
	}

	q := c.secondary.Quote(ctx, code)
	if q.Failed() {
		c.log.Warnw("secondary quote failed", "code", code, "error", q.Error)
	}
	return q
}

// FetchProfile never returns an error; check Profile.Error.
func (c *StockClient) FetchProfile(ctx context.Context, code string) models.Profile {
	code = NormalizeCode(code)

	if c.primary != nil {
		p, err := c.primary.Profile(ctx, code)
		switch {
		case err != nil:
			c.log.Warnw("primary profile failed, falling back", "source", c.primary.Name(), "code", code, "error", err)
		case p == nil || len(p.Fields) == 0:
			c.log.Warnw("primary profile empty, falling back", "source", c.primary.Name(), "code", code)
		default:
			return *p
		}
	}

	p := c.secondary.Profile(ctx, code)
	switch {
	case p.Failed():
		c.log.Warnw("secondary profile failed", "code", code, "error", p.Error)
	case p.Error != "":
		c.log.Debugw("secondary profile incomplete", "code", code, "note", p.Error)
	}
	return p
}
