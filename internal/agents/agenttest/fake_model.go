// Package agenttest provides a scripted chat model for tests.
package agenttest

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Reply is one scripted model turn.
type Reply struct {
	Message *schema.Message
	Err     error
}

func Text(content string) Reply {
	return Reply{Message: schema.AssistantMessage(content, nil)}
}

// ToolCall scripts a reply asking for a single tool.
func ToolCall(id, name, arguments string) Reply {
	return Reply{Message: schema.AssistantMessage("", []schema.ToolCall{{
		ID:   id,
		Type: "function",
		Function: schema.FunctionCall{
			Name:      name,
			Arguments: arguments,
		},
	}})}
}

func Fail(err error) Reply {
	return Reply{Err: err}
}

// FakeModel returns scripted replies in order and records every call. Models
// returned by WithTools share the script and the call log.
type FakeModel struct {
	mu    *sync.Mutex
	state *fakeState
	tools []*schema.ToolInfo
}

type fakeState struct {
	replies []Reply
	calls   []Call
}

// Call is a recorded Generate invocation.
type Call struct {
	Messages []*schema.Message
	Tools    []*schema.ToolInfo
}

func NewFakeModel(replies ...Reply) *FakeModel {
	return &FakeModel{
		mu:    &sync.Mutex{},
		state: &fakeState{replies: replies},
	}
}

func (m *FakeModel) Push(replies ...Reply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.replies = append(m.state.replies, replies...)
}

func (m *FakeModel) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.state.calls))
	copy(out, m.state.calls)
	return out
}

func (m *FakeModel) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.state.replies)
}

func (m *FakeModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msgs := make([]*schema.Message, len(input))
	copy(msgs, input)
	m.state.calls = append(m.state.calls, Call{Messages: msgs, Tools: m.tools})

	if len(m.state.replies) == 0 {
		return nil, fmt.Errorf("fake model: no scripted reply for call %d", len(m.state.calls))
	}
	r := m.state.replies[0]
	m.state.replies = m.state.replies[1:]
	return r.Message, r.Err
}

func (m *FakeModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func (m *FakeModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return &FakeModel{mu: m.mu, state: m.state, tools: tools}, nil
}

var _ model.ToolCallingChatModel = (*FakeModel)(nil)
