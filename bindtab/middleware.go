package bindtab

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/embervm/bindsdk/call"
)

// Middleware wraps the uniform call path of invocable entries to add
// cross-cutting behavior. It sees native functions and precompiled
// closures alike.
type Middleware func(next call.Func) call.Func

// wrappedClosure carries a middleware-wrapped invoke path while
// preserving the inner closure's declared arity.
type wrappedClosure struct {
	inner call.Closure
	fn    call.Func
}

func (w wrappedClosure) Invoke(ctx context.Context, args []any) ([]any, error) {
	return w.fn(ctx, args)
}

func (w wrappedClosure) Arity() (int, bool) {
	return w.inner.Arity()
}

// PanicRecoveryMiddleware converts panics escaping a native function
// into ordinary call errors instead of tearing down the scripting
// thread.
func PanicRecoveryMiddleware() Middleware {
	return func(next call.Func) call.Func {
		return func(ctx context.Context, args []any) (out []any, err error) {
			defer func() {
				if r := recover(); r != nil {
					if e, ok := r.(error); ok {
						err = fmt.Errorf("panic in native call: %w", e)
					} else {
						err = fmt.Errorf("panic in native call: %v", r)
					}
				}
			}()
			return next(ctx, args)
		}
	}
}

// LoggingMiddleware logs every invocation with its duration and
// outcome through the given structured logger.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next call.Func) call.Func {
		return func(ctx context.Context, args []any) ([]any, error) {
			start := time.Now()
			out, err := next(ctx, args)
			if err != nil {
				logger.LogAttrs(ctx, slog.LevelWarn, "member call failed",
					slog.Int("args", len(args)),
					slog.Duration("took", time.Since(start)),
					slog.String("error", err.Error()))
				return out, err
			}
			logger.LogAttrs(ctx, slog.LevelDebug, "member call",
				slog.Int("args", len(args)),
				slog.Duration("took", time.Since(start)))
			return out, nil
		}
	}
}
