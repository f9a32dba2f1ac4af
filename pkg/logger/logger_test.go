package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Run("valid level", func(t *testing.T) {
		l, err := New("development", "warn")
		require.NoError(t, err)
		assert.False(t, l.Desugar().Core().Enabled(zapcore.InfoLevel))
		assert.True(t, l.Desugar().Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := New("development", "loud")
		assert.Error(t, err)
	})
}

func TestCtx(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := zap.New(core).Sugar()

	ctx := WithContext(context.Background(), "request_id", "abc")
	ctx = WithContext(ctx, "method", "GET")
	Ctx(ctx, l).Infow("handled")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "abc", fields["request_id"])
	assert.Equal(t, "GET", fields["method"])
}

func TestCtxWithoutFields(t *testing.T) {
	l := zap.NewNop().Sugar()
	assert.Same(t, l, Ctx(context.Background(), l))
}
