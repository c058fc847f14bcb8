package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/dyike/CortexFin/config"
	"github.com/dyike/CortexFin/internal/agents"
	"github.com/dyike/CortexFin/internal/dataflows"
	"github.com/dyike/CortexFin/internal/graph"
	"github.com/dyike/CortexFin/internal/storage"
	"github.com/dyike/CortexFin/internal/tools"
	"github.com/dyike/CortexFin/pkg/logger"
)

// Engine holds everything a chat session needs.
type Engine struct {
	Config   *config.Config
	Workflow *graph.Workflow
	Store    *storage.TurnStore
	BuiltAt  time.Time
}

type options struct {
	chatModel model.ToolCallingChatModel
	stocks    tools.StockFetcher
	news      tools.NewsFetcher
	chart     tools.ChartRenderer
	progress  func(string)
}

type Option func(*options)

// WithChatModel replaces the model built from config.
func WithChatModel(cm model.ToolCallingChatModel) Option {
	return func(o *options) { o.chatModel = cm }
}

// WithDataSources replaces the stock and news adapters built from config.
func WithDataSources(stocks tools.StockFetcher, news tools.NewsFetcher) Option {
	return func(o *options) {
		o.stocks = stocks
		o.news = news
	}
}

func WithChartRenderer(r tools.ChartRenderer) Option {
	return func(o *options) { o.chart = r }
}

func WithProgress(fn func(node string)) Option {
	return func(o *options) { o.progress = fn }
}

func BuildEngine(ctx context.Context, cfg *config.Config, opts ...Option) (*Engine, error) {
	o := &options{chart: tools.TextChartRenderer{}}
	for _, opt := range opts {
		opt(o)
	}

	cm := o.chatModel
	if cm == nil {
		var err error
		if cm, err = agents.NewChatModel(ctx, cfg); err != nil {
			return nil, err
		}
	}
	if o.stocks == nil {
		o.stocks = dataflows.NewStockClient(cfg)
	}
	if o.news == nil {
		o.news = dataflows.NewNewsClient(cfg)
	}

	reg, err := tools.NewRegistry(ctx,
		tools.NewStockPriceTool(o.stocks),
		tools.NewCompanyInfoTool(o.stocks),
		tools.NewCompanyNewsTool(o.news),
		tools.NewCandlestickTool(o.chart),
	)
	if err != nil {
		return nil, err
	}

	stages, err := buildStages(cm, reg, cfg.GeneralChatEnabled)
	if err != nil {
		return nil, err
	}

	e := &Engine{Config: cfg, BuiltAt: time.Now()}

	wfOpts := []graph.Option{}
	if o.progress != nil {
		wfOpts = append(wfOpts, graph.WithProgress(o.progress))
	}
	if cfg.TranscriptDB != "" {
		store, err := storage.NewTurnStore(cfg.TranscriptDB)
		if err != nil {
			return nil, fmt.Errorf("open transcript store: %w", err)
		}
		e.Store = store
		wfOpts = append(wfOpts, graph.WithRecorder(store))
	}

	wf, err := graph.NewWorkflow(ctx, stages, wfOpts...)
	if err != nil {
		_ = e.Close()
		return nil, err
	}
	e.Workflow = wf

	logger.Named("app").Infow("engine built",
		"provider", cfg.LLMProvider, "model", cfg.LLMModel,
		"primary_source", cfg.PrimarySource, "transcript", e.Store != nil)
	return e, nil
}

func buildStages(cm model.ToolCallingChatModel, reg *tools.Registry, generalChat bool) (graph.Stages, error) {
	data, err := agents.NewDataAgent(cm, reg)
	if err != nil {
		return graph.Stages{}, err
	}
	analysis, err := agents.NewAnalysisAgent(cm, reg)
	if err != nil {
		return graph.Stages{}, err
	}
	report, err := agents.NewReportAgent(cm)
	if err != nil {
		return graph.Stages{}, err
	}
	var generalModel model.ToolCallingChatModel
	if generalChat {
		generalModel = cm
	}
	general, err := agents.NewGeneralAgent(generalModel)
	if err != nil {
		return graph.Stages{}, err
	}

	return graph.Stages{
		Router:   agents.NewRouter(cm),
		Data:     data,
		Analysis: analysis,
		Report:   report,
		General:  general,
	}, nil
}

func (e *Engine) Close() error {
	if e == nil || e.Store == nil {
		return nil
	}
	return e.Store.Close()
}
