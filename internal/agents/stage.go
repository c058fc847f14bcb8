package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
	"github.com/dyike/CortexFin/consts"
	"github.com/dyike/CortexFin/internal/tools"
	"github.com/dyike/CortexFin/pkg/logger"
)

var errEmptyResponse = errors.New("model returned no message")

// stage is one prompt template plus a chat model, optionally bound to tools.
// A tool call round trip is performed at most once per run.
type stage struct {
	name     string
	template prompt.ChatTemplate
	model    model.BaseChatModel
	tools    *tools.Registry
	log      *logger.Logger
}

func newStage(name string, cm model.ToolCallingChatModel, reg *tools.Registry, msgs ...schema.MessagesTemplate) (*stage, error) {
	s := &stage{
		name:     name,
		template: prompt.FromMessages(schema.FString, msgs...),
		model:    cm,
		log:      logger.Named(name),
	}
	if reg != nil && reg.Len() > 0 {
		bound, err := cm.WithTools(reg.Infos())
		if err != nil {
			return nil, fmt.Errorf("bind tools to %s: %w", name, err)
		}
		s.model = bound
		s.tools = reg
		s.log.Debugw("tools bound", "tools", reg.Names())
	}
	return s, nil
}

func (s *stage) run(ctx context.Context, vars map[string]any) (string, error) {
	msgs, err := s.template.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("format prompt: %w", err)
	}

	resp, err := s.generate(ctx, msgs)
	if err != nil {
		return "", err
	}
	if len(resp.ToolCalls) == 0 || s.tools == nil {
		return resp.Content, nil
	}

	follow := make([]*schema.Message, 0, len(msgs)+1+len(resp.ToolCalls))
	follow = append(follow, msgs...)
	follow = append(follow, resp)

	outputs := make([]string, 0, len(resp.ToolCalls))
	for _, call := range resp.ToolCalls {
		out, err := s.invoke(ctx, call)
		if err != nil {
			return "", err
		}
		outputs = append(outputs, fmt.Sprintf(consts.ToolOutputHeader, call.Function.Name, out))
		follow = append(follow, schema.ToolMessage(out, call.ID))
	}

	final, err := s.generate(ctx, follow)
	if err != nil {
		return "", err
	}
	return final.Content + "\n" + strings.Join(outputs, "\n"), nil
}

func (s *stage) generate(ctx context.Context, msgs []*schema.Message) (*schema.Message, error) {
	resp, err := s.model.Generate(ctx, msgs)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errEmptyResponse
	}
	return resp, nil
}

func (s *stage) invoke(ctx context.Context, call schema.ToolCall) (string, error) {
	name := call.Function.Name
	t, ok := s.tools.Lookup(name)
	if !ok {
		s.log.Warnw("model requested unknown tool", "tool", name)
		return fmt.Sprintf(consts.UnknownTool, name), nil
	}

	s.log.Infow("invoking tool", "tool", name, "arguments", call.Function.Arguments)
	out, err := t.InvokableRun(ctx, call.Function.Arguments)
	if err != nil {
		return "", fmt.Errorf("tool %s: %w", name, err)
	}
	return out, nil
}

func orEmpty(v string) string {
	if strings.TrimSpace(v) == "" {
		return emptyContext
	}
	return v
}
