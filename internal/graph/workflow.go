package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/dyike/CortexFin/consts"
	"github.com/dyike/CortexFin/internal/memory"
	"github.com/dyike/CortexFin/internal/storage"
	"github.com/dyike/CortexFin/models"
	"github.com/dyike/CortexFin/pkg/logger"
	"github.com/google/uuid"
)

// Classifier picks the intent of a query.
type Classifier interface {
	Classify(ctx context.Context, query string, history []*schema.Message) models.Intent
}

// Stage is one pipeline step. Stages report failures as text and never return errors.
type Stage interface {
	Run(ctx context.Context, in models.StageInput) string
}

type Stages struct {
	Router   Classifier
	Data     Stage
	Analysis Stage
	Report   Stage
	General  Stage
}

func (s Stages) validate() error {
	if s.Router == nil || s.Data == nil || s.Analysis == nil || s.Report == nil || s.General == nil {
		return fmt.Errorf("workflow requires all five stages")
	}
	return nil
}

// Recorder persists completed turns.
type Recorder interface {
	Record(ctx context.Context, t storage.Turn) error
}

type Option func(*Workflow)

func WithRecorder(r Recorder) Option {
	return func(w *Workflow) { w.recorder = r }
}

// WithProgress registers a hook called as each node starts.
func WithProgress(fn func(node string)) Option {
	return func(w *Workflow) { w.progress = fn }
}

// TurnResult is the outcome of one user turn.
type TurnResult struct {
	ID       string
	Output   string
	Fallback bool // Output is a fixed text, not a produced answer
	State    models.WorkflowState
	Duration time.Duration
}

type Workflow struct {
	stages   Stages
	runnable compose.Runnable[models.WorkflowState, models.WorkflowState]
	callback *LoggerCallback
	recorder Recorder
	progress func(node string)
	log      *logger.Logger
}

func NewWorkflow(ctx context.Context, stages Stages, opts ...Option) (*Workflow, error) {
	if err := stages.validate(); err != nil {
		return nil, err
	}
	w := &Workflow{stages: stages, log: logger.Named("graph")}
	for _, opt := range opts {
		opt(w)
	}
	w.callback = NewLoggerCallback(w.progress)

	runnable, err := w.compile(ctx)
	if err != nil {
		return nil, err
	}
	w.runnable = runnable
	return w, nil
}

func (w *Workflow) compile(ctx context.Context) (compose.Runnable[models.WorkflowState, models.WorkflowState], error) {
	g := compose.NewGraph[models.WorkflowState, models.WorkflowState]()

	nodes := []struct {
		key string
		fn  func(context.Context, models.WorkflowState) (models.WorkflowState, error)
	}{
		{consts.Router, w.routerNode},
		{consts.DataRetrieval, w.dataNode},
		{consts.Analysis, w.analysisNode},
		{consts.ReportGeneration, w.reportNode},
		{consts.GeneralResponse, w.generalNode},
	}
	for _, n := range nodes {
		if err := g.AddLambdaNode(n.key, compose.InvokableLambda(n.fn), compose.WithNodeName(n.key)); err != nil {
			return nil, fmt.Errorf("add node %s: %w", n.key, err)
		}
	}

	edges := [][2]string{
		{compose.START, consts.Router},
		{consts.DataRetrieval, consts.Analysis},
		{consts.ReportGeneration, compose.END},
		{consts.GeneralResponse, compose.END},
	}
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			return nil, fmt.Errorf("add edge %s -> %s: %w", e[0], e[1], err)
		}
	}

	if err := g.AddBranch(consts.Router, compose.NewGraphBranch(routeAfterRouter, map[string]bool{
		consts.DataRetrieval:    true,
		consts.Analysis:         true,
		consts.ReportGeneration: true,
		consts.GeneralResponse:  true,
	})); err != nil {
		return nil, fmt.Errorf("add router branch: %w", err)
	}
	if err := g.AddBranch(consts.Analysis, compose.NewGraphBranch(routeAfterAnalysis, map[string]bool{
		consts.ReportGeneration: true,
		compose.END:             true,
	})); err != nil {
		return nil, fmt.Errorf("add analysis branch: %w", err)
	}

	r, err := g.Compile(ctx,
		compose.WithGraphName(consts.WorkflowName),
		compose.WithNodeTriggerMode(compose.AnyPredecessor),
	)
	if err != nil {
		return nil, fmt.Errorf("compile workflow: %w", err)
	}
	return r, nil
}

func (w *Workflow) routerNode(ctx context.Context, in models.WorkflowState) (models.WorkflowState, error) {
	intent := w.stages.Router.Classify(ctx, in.UserInput, in.ChatHistory)
	return in.Apply(models.StateUpdate{Node: consts.Router, Route: intent, FinalGoal: intent}), nil
}

func (w *Workflow) dataNode(ctx context.Context, in models.WorkflowState) (models.WorkflowState, error) {
	out := w.stages.Data.Run(ctx, in.StageInput())
	return in.Apply(models.StateUpdate{Node: consts.DataRetrieval, DataContext: &out}), nil
}

func (w *Workflow) analysisNode(ctx context.Context, in models.WorkflowState) (models.WorkflowState, error) {
	out := w.stages.Analysis.Run(ctx, in.StageInput())
	return in.Apply(models.StateUpdate{Node: consts.Analysis, AnalysisResult: &out, ReportContent: &out}), nil
}

func (w *Workflow) reportNode(ctx context.Context, in models.WorkflowState) (models.WorkflowState, error) {
	out := w.stages.Report.Run(ctx, in.StageInput())
	return in.Apply(models.StateUpdate{Node: consts.ReportGeneration, ReportContent: &out}), nil
}

func (w *Workflow) generalNode(ctx context.Context, in models.WorkflowState) (models.WorkflowState, error) {
	out := w.stages.General.Run(ctx, in.StageInput())
	return in.Apply(models.StateUpdate{Node: consts.GeneralResponse, ReportContent: &out}), nil
}

// Run executes one turn and appends the exchange to sess. The returned error
// is non-nil only when the graph itself failed; Output is still set.
func (w *Workflow) Run(ctx context.Context, sess *memory.Session, query string) (*TurnResult, error) {
	started := time.Now()
	res := &TurnResult{ID: uuid.NewString()}

	final, err := w.runnable.Invoke(ctx, models.NewWorkflowState(query, sess.Messages()), compose.WithCallbacks(w.callback))
	if err != nil {
		w.log.Errorw("workflow run failed", "turn", res.ID, "error", err)
		res.Output, res.Fallback = consts.NoState, true
		err = fmt.Errorf("run workflow: %w", err)
	} else {
		res.State = final
		res.Output, res.Fallback = FinalOutput(final)
	}
	res.Duration = time.Since(started)

	sess.Add(query, res.Output)

	if w.recorder != nil {
		turn := storage.Turn{
			ID:        res.ID,
			SessionID: sess.ID(),
			Query:     query,
			Intent:    string(res.State.FinalGoal),
			Path:      res.State.Path,
			Output:    res.Output,
			Fallback:  res.Fallback,
			StartedAt: started,
			Duration:  res.Duration,
		}
		if rerr := w.recorder.Record(ctx, turn); rerr != nil {
			w.log.Warnw("record turn failed", "turn", res.ID, "error", rerr)
		}
	}
	return res, err
}
