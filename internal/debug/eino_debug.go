package debug

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/devops"
	"github.com/dyike/CortexFin/config"
	"github.com/dyike/CortexFin/pkg/logger"
)

// DefaultDevServerPort is where the eino devops server listens unless told otherwise.
const DefaultDevServerPort = 52538

type EinoDebugger struct {
	enabled bool
	init    func(ctx context.Context) error
	log     *logger.Logger
}

func NewEinoDebugger(cfg *config.Config) *EinoDebugger {
	return &EinoDebugger{
		enabled: cfg.EinoDebugEnabled,
		init:    func(ctx context.Context) error { return devops.Init(ctx) },
		log:     logger.Named("eino-debug"),
	}
}

// Initialize starts the visual debug server. It must run before graphs are compiled.
func (d *EinoDebugger) Initialize(ctx context.Context) error {
	if !d.enabled {
		return nil
	}
	if err := d.init(ctx); err != nil {
		return fmt.Errorf("failed to initialize Eino debug plugin: %w", err)
	}
	d.log.Infow("debug server started", "url", d.URL())
	return nil
}

func (d *EinoDebugger) IsEnabled() bool {
	return d.enabled
}

func (d *EinoDebugger) URL() string {
	if !d.enabled {
		return ""
	}
	return fmt.Sprintf("http://localhost:%d", DefaultDevServerPort)
}
