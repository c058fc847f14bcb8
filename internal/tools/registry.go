package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"github.com/dyike/CortexFin/consts"
)

var (
	ErrDuplicateTool = errors.New("duplicate tool")
	ErrUnknownTool   = errors.New("unknown tool")
)

// Registry maps tool names to handlers. It is validated when built, so a
// stage can never be configured with a name nothing handles.
type Registry struct {
	order []consts.ToolName
	infos map[consts.ToolName]*schema.ToolInfo
	tools map[consts.ToolName]tool.InvokableTool
}

func NewRegistry(ctx context.Context, ts ...tool.InvokableTool) (*Registry, error) {
	r := &Registry{
		infos: make(map[consts.ToolName]*schema.ToolInfo, len(ts)),
		tools: make(map[consts.ToolName]tool.InvokableTool, len(ts)),
	}
	for _, t := range ts {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("read tool info: %w", err)
		}
		name := consts.ToolName(info.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: empty tool name", ErrUnknownTool)
		}
		if _, ok := r.tools[name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTool, name)
		}
		r.order = append(r.order, name)
		r.infos[name] = info
		r.tools[name] = t
	}
	return r, nil
}

// Subset returns a registry restricted to names, in the given order.
func (r *Registry) Subset(names ...consts.ToolName) (*Registry, error) {
	sub := &Registry{
		infos: make(map[consts.ToolName]*schema.ToolInfo, len(names)),
		tools: make(map[consts.ToolName]tool.InvokableTool, len(names)),
	}
	for _, name := range names {
		t, ok := r.tools[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
		}
		if _, dup := sub.tools[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTool, name)
		}
		sub.order = append(sub.order, name)
		sub.infos[name] = r.infos[name]
		sub.tools[name] = t
	}
	return sub, nil
}

func (r *Registry) Lookup(name string) (tool.InvokableTool, bool) {
	t, ok := r.tools[consts.ToolName(name)]
	return t, ok
}

func (r *Registry) Names() []consts.ToolName {
	out := make([]consts.ToolName, len(r.order))
	copy(out, r.order)
	return out
}

// Infos returns the tool schemas for binding to a chat model.
func (r *Registry) Infos() []*schema.ToolInfo {
	out := make([]*schema.ToolInfo, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.infos[name])
	}
	return out
}

func (r *Registry) Len() int { return len(r.order) }
