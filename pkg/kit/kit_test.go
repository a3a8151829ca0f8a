package kit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestChainOrder(t *testing.T) {
	var trace []string
	mw := func(name string) Middleware {
		return func(next Endpoint) Endpoint {
			return func(ctx context.Context, req any) (any, error) {
				trace = append(trace, name)
				return next(ctx, req)
			}
		}
	}
	ep := Chain(mw("a"), mw("b"), mw("c"))(func(context.Context, any) (any, error) {
		trace = append(trace, "endpoint")
		return nil, nil
	})
	ep(context.Background(), nil)

	if got := strings.Join(trace, ","); got != "a,b,c,endpoint" {
		t.Errorf("order = %s", got)
	}
}

func TestNamedAndLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var seenID, seenName string
	ep := Chain(Named("classify"), Logging(logger))(func(ctx context.Context, _ any) (any, error) {
		seenID, seenName = GetRequestID(ctx), GetEndpoint(ctx)
		return "ok", nil
	})
	if _, err := ep(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if seenName != "classify" || len(seenID) != 26 {
		t.Errorf("context = endpoint %q request %q", seenName, seenID)
	}
	if !strings.Contains(buf.String(), "endpoint=classify") {
		t.Errorf("log output lacks endpoint: %s", buf.String())
	}

	ctx := WithRequestID(context.Background(), "fixed")
	ep(ctx, nil)
	if seenID != "fixed" {
		t.Errorf("Named overwrote request id: %q", seenID)
	}
}

func TestRecover(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ep := Recover(logger)(func(context.Context, any) (any, error) {
		panic("boom")
	})
	if _, err := ep(context.Background(), nil); err == nil {
		t.Error("panic was not turned into an error")
	}
}

func TestTransportDefault(t *testing.T) {
	if got := GetTransport(context.Background()); got != "http" {
		t.Errorf("default transport = %q", got)
	}
	if got := GetTransport(WithTransport(context.Background(), "cli")); got != "cli" {
		t.Errorf("transport = %q", got)
	}
}

func TestMCPHandler(t *testing.T) {
	var transport string
	h := MCPHandler(func(ctx context.Context, req any) (any, error) {
		transport = GetTransport(ctx)
		if req.(string) == "fail" {
			return nil, errors.New("nope")
		}
		return map[string]string{"echo": req.(string)}, nil
	}, func(req mcp.CallToolRequest) (*MCPDecodeResult, error) {
		v, _ := req.GetArguments()["value"].(string)
		if v == "" {
			return nil, errors.New("value is required")
		}
		return &MCPDecodeResult{Request: v}, nil
	})

	call := func(args map[string]any) *mcp.CallToolResult {
		var req mcp.CallToolRequest
		req.Params.Arguments = args
		res, err := h(context.Background(), req)
		if err != nil {
			t.Fatalf("handler returned protocol error: %v", err)
		}
		return res
	}

	res := call(map[string]any{"value": "hi"})
	if res.IsError || transport != "mcp" {
		t.Errorf("ok call: IsError=%v transport=%q", res.IsError, transport)
	}
	text := res.Content[0].(mcp.TextContent).Text
	if text != `{"echo":"hi"}` {
		t.Errorf("result text = %s", text)
	}

	if res := call(map[string]any{"value": "fail"}); !res.IsError {
		t.Error("endpoint error not reported as tool error")
	}
	if res := call(map[string]any{}); !res.IsError {
		t.Error("decode error not reported as tool error")
	}
}
