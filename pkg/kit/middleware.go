package kit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
)

// Named tags the context with the endpoint name and a request id when the
// transport did not set one.
func Named(name string) Middleware {
	return func(next Endpoint) Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			ctx = WithEndpoint(ctx, name)
			if GetRequestID(ctx) == "" {
				ctx = WithRequestID(ctx, ulid.Make().String())
			}
			return next(ctx, request)
		}
	}
}

// Logging logs every call with its duration and outcome.
func Logging(logger *slog.Logger) Middleware {
	return func(next Endpoint) Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			start := time.Now()
			resp, err := next(ctx, request)
			attrs := []any{
				"endpoint", GetEndpoint(ctx),
				"transport", GetTransport(ctx),
				"request_id", GetRequestID(ctx),
				"duration", time.Since(start),
			}
			if err != nil {
				logger.Warn("endpoint failed", append(attrs, "error", err)...)
			} else {
				logger.Debug("endpoint ok", attrs...)
			}
			return resp, err
		}
	}
}

// Recover turns a panic inside an endpoint into an error.
func Recover(logger *slog.Logger) Middleware {
	return func(next Endpoint) Endpoint {
		return func(ctx context.Context, request any) (resp any, err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("endpoint panic", "endpoint", GetEndpoint(ctx), "panic", r)
					resp, err = nil, fmt.Errorf("internal error in %s", GetEndpoint(ctx))
				}
			}()
			return next(ctx, request)
		}
	}
}
