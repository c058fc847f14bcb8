package graph

import (
	"context"
	"time"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/schema"
	"github.com/dyike/CortexFin/consts"
	"github.com/dyike/CortexFin/pkg/logger"
)

type startKey struct{}

var workflowNodes = map[string]bool{
	consts.Router:           true,
	consts.DataRetrieval:    true,
	consts.Analysis:         true,
	consts.ReportGeneration: true,
	consts.GeneralResponse:  true,
}

// LoggerCallback logs workflow node start, end and failure. Components
// running inside a node (prompts, chat models, tools) are ignored.
type LoggerCallback struct {
	log *logger.Logger
	// OnNode is called when a workflow node starts.
	OnNode func(node string)
}

func NewLoggerCallback(onNode func(node string)) *LoggerCallback {
	return &LoggerCallback{
		log:    logger.Named("graph"),
		OnNode: onNode,
	}
}

func (cb *LoggerCallback) OnStart(ctx context.Context, info *callbacks.RunInfo, input callbacks.CallbackInput) context.Context {
	if info == nil || !workflowNodes[info.Name] {
		return ctx
	}
	cb.log.Debugw("node start", "node", info.Name)
	if cb.OnNode != nil {
		cb.OnNode(info.Name)
	}
	return context.WithValue(ctx, startKey{}, time.Now())
}

func (cb *LoggerCallback) OnEnd(ctx context.Context, info *callbacks.RunInfo, output callbacks.CallbackOutput) context.Context {
	if info == nil || !workflowNodes[info.Name] {
		return ctx
	}
	if started, ok := ctx.Value(startKey{}).(time.Time); ok {
		cb.log.Infow("node end", "node", info.Name, "elapsed", time.Since(started))
	} else {
		cb.log.Infow("node end", "node", info.Name)
	}
	return ctx
}

func (cb *LoggerCallback) OnError(ctx context.Context, info *callbacks.RunInfo, err error) context.Context {
	name := ""
	if info != nil {
		name = info.Name
	}
	cb.log.Errorw("node error", "node", name, "error", err)
	return ctx
}

func (cb *LoggerCallback) OnStartWithStreamInput(ctx context.Context, info *callbacks.RunInfo,
	input *schema.StreamReader[callbacks.CallbackInput]) context.Context {
	input.Close()
	return ctx
}

func (cb *LoggerCallback) OnEndWithStreamOutput(ctx context.Context, info *callbacks.RunInfo,
	output *schema.StreamReader[callbacks.CallbackOutput]) context.Context {
	output.Close()
	return ctx
}
