// Command dataflow fetches quote, profile and news for one instrument and
// prints them as JSON. Handy for checking data source credentials.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/dyike/CortexFin/config"
	"github.com/dyike/CortexFin/consts"
	"github.com/dyike/CortexFin/internal/dataflows"
	"github.com/dyike/CortexFin/pkg/logger"
)

func main() {
	code := flag.String("code", consts.DefaultStockCode, "instrument code, e.g. 600519.SH")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	_ = logger.Init(cfg.LogLevel, cfg.Env)
	defer logger.Sync()

	ctx := context.Background()
	stocks := dataflows.NewStockClient(cfg)
	news := dataflows.NewNewsClient(cfg)

	normalized := dataflows.NormalizeCode(*code)
	company := dataflows.NameForCode(normalized)
	if company == "" {
		company = normalized
	}

	payload, _ := json.MarshalIndent(map[string]any{
		"quote":   stocks.FetchQuote(ctx, normalized),
		"profile": stocks.FetchProfile(ctx, normalized),
		"news":    news.FetchNews(ctx, company),
	}, "", "  ")
	fmt.Println(string(payload))
}
