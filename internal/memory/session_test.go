package memory

import (
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionAppendsInOrder(t *testing.T) {
	s := NewSession()
	s.Add("贵州茅台的股价是多少", "1700元")
	s.Add("分析一下", "估值合理")

	msgs := s.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, schema.User, msgs[0].Role)
	assert.Equal(t, "贵州茅台的股价是多少", msgs[0].Content)
	assert.Equal(t, schema.Assistant, msgs[1].Role)
	assert.Equal(t, "估值合理", msgs[3].Content)
	assert.Equal(t, "Human: 贵州茅台的股价是多少\nAI: 1700元\nHuman: 分析一下\nAI: 估值合理\n", s.Transcript())
}

func TestSessionMessagesIsACopy(t *testing.T) {
	s := NewSession()
	s.Add("q", "a")

	msgs := s.Messages()
	msgs[0] = schema.UserMessage("changed")

	assert.Equal(t, "q", s.Messages()[0].Content)
}

func TestSessionClear(t *testing.T) {
	s := NewSession()
	id := s.ID()
	s.Add("q", "a")

	s.Clear()

	assert.Zero(t, s.Len())
	assert.Empty(t, s.Transcript())
	assert.Equal(t, id, s.ID())
	assert.NotEqual(t, id, NewSession().ID())
}
