package debug

import (
	"context"
	"errors"
	"testing"

	"github.com/dyike/CortexFin/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEinoDebuggerDisabled(t *testing.T) {
	d := NewEinoDebugger(&config.Config{})
	called := false
	d.init = func(context.Context) error { called = true; return nil }

	require.NoError(t, d.Initialize(context.Background()))
	assert.False(t, called)
	assert.False(t, d.IsEnabled())
	assert.Empty(t, d.URL())
}

func TestEinoDebuggerEnabled(t *testing.T) {
	d := NewEinoDebugger(&config.Config{EinoDebugEnabled: true})
	called := false
	d.init = func(context.Context) error { called = true; return nil }

	require.NoError(t, d.Initialize(context.Background()))
	assert.True(t, called)
	assert.Equal(t, "http://localhost:52538", d.URL())
}

func TestEinoDebuggerInitFailure(t *testing.T) {
	d := NewEinoDebugger(&config.Config{EinoDebugEnabled: true})
	boom := errors.New("port in use")
	d.init = func(context.Context) error { return boom }

	err := d.Initialize(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
