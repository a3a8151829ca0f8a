package kit

import "context"

type contextKey string

// Keys under which the transports and middlewares store call metadata.
const (
	TransportKey contextKey = "kit_transport" // "http" or "mcp"
	RequestIDKey contextKey = "kit_request_id"
	EndpointKey  contextKey = "kit_endpoint"
)

func WithTransport(ctx context.Context, t string) context.Context {
	return context.WithValue(ctx, TransportKey, t)
}

// GetTransport returns the transport that carried the call, "http" when unset.
func GetTransport(ctx context.Context) string {
	if v, ok := ctx.Value(TransportKey).(string); ok {
		return v
	}
	return "http"
}

// WithRequestID sets the id reported in endpoint logs. The HTTP transport
// copies X-Request-ID; Named fills in a ULID otherwise.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(RequestIDKey).(string)
	return v
}

// WithEndpoint records the endpoint name (classify_template, ...).
func WithEndpoint(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, EndpointKey, name)
}

func GetEndpoint(ctx context.Context) string {
	v, _ := ctx.Value(EndpointKey).(string)
	return v
}
