package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNamedAddsComponent(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	restore := Replace(zap.New(core))
	defer restore()

	Named("dataflows").Infow("fallback", "code", "600519.SH")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "fallback", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "dataflows", fields["component"])
	assert.Equal(t, "600519.SH", fields["code"])
}

func TestInitUnknownLevelFallsBackToInfo(t *testing.T) {
	prev := globalLogger
	defer func() { globalLogger = prev }()

	require.NoError(t, Init("nonsense", "production"))
	l := Get()
	assert.False(t, l.Desugar().Core().Enabled(zap.DebugLevel))
	assert.True(t, l.Desugar().Core().Enabled(zap.InfoLevel))
}
