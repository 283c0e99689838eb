package bindtab

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embervm/bindsdk/call"
)

func TestPanicRecoveryMiddleware(t *testing.T) {
	tab, err := New("device",
		WithMiddleware(PanicRecoveryMiddleware()),
		WithFunc("boom", func() { panic("unplugged") }),
	)
	require.NoError(t, err)

	e, err := tab.Resolve("boom")
	require.NoError(t, err)

	_, err = e.(NativeFuncEntry).Adapter.Invoke(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unplugged")
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tab, err := New("device",
		WithMiddleware(LoggingMiddleware(logger)),
		WithFunc("get", nativeGet),
	)
	require.NoError(t, err)

	e, err := tab.Resolve("get")
	require.NoError(t, err)
	out, err := e.(NativeFuncEntry).Adapter.Invoke(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(99)}, out)
	assert.Contains(t, buf.String(), "member call")
}

func TestMiddleware_WrapsClosures(t *testing.T) {
	closure := call.FromFunc(0, func(ctx context.Context, args []any) ([]any, error) {
		panic("closure blew up")
	})

	tab, err := New("device",
		WithMiddleware(PanicRecoveryMiddleware()),
		WithClosure("init", closure),
	)
	require.NoError(t, err)

	e, err := tab.Resolve("init")
	require.NoError(t, err)

	wrapped := e.(ClosureEntry).Closure
	n, variadic := wrapped.Arity()
	assert.Equal(t, 0, n)
	assert.False(t, variadic)

	_, err = wrapped.Invoke(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closure blew up")
}

func TestMiddleware_PreservesArity(t *testing.T) {
	tab, err := New("device",
		WithMiddleware(PanicRecoveryMiddleware()),
		WithFunc("add", func(a, b int64) int64 { return a + b }),
	)
	require.NoError(t, err)

	e, err := tab.Resolve("add")
	require.NoError(t, err)
	adapter := e.(NativeFuncEntry).Adapter
	assert.Equal(t, 2, adapter.NumParams())

	out, err := adapter.Invoke(context.Background(), []any{int64(2), int64(3)})
	require.NoError(t, err)
	assert.Equal(t, []any{int64(5)}, out)
}
