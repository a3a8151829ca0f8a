package mcpserver

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func echoServer() *Handler {
	srv := New("test")
	srv.AddTool(mcp.NewTool("echo", mcp.WithString("text", mcp.Required())),
		func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText(req.GetString("text", "")), nil
		})
	return NewHandler(srv, quietLogger())
}

const (
	initMsg = `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"t","version":"1"}}}`
	callMsg = `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"echo","arguments":{"text":"bonjour"}}}`
)

type rpcResponse struct {
	ID     int             `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
}

func TestServeStream(t *testing.T) {
	in := strings.NewReader(initMsg + "\n\n" + callMsg + "\n")
	var out bytes.Buffer

	if err := echoServer().ServeStream(context.Background(), "stdio", in, &out); err != nil {
		t.Fatalf("ServeStream: %v", err)
	}

	var responses []rpcResponse
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var r rpcResponse
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			t.Fatalf("bad response line %q: %v", sc.Text(), err)
		}
		if r.ID != 0 {
			responses = append(responses, r)
		}
	}
	if len(responses) != 2 {
		t.Fatalf("got %d responses, want 2: %s", len(responses), out.String())
	}
	if responses[1].ID != 2 || !strings.Contains(string(responses[1].Result), "bonjour") {
		t.Errorf("tools/call response = %s", responses[1].Result)
	}
}

func TestListener(t *testing.T) {
	l, err := Listen("127.0.0.1:0", echoServer().mcpServer, quietLogger())
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Serve(ctx) }()

	conn, err := net.Dial("tcp", l.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(5 * time.Second))

	io.WriteString(conn, initMsg+"\n"+callMsg+"\n")
	sc := bufio.NewScanner(conn)
	found := false
	for sc.Scan() {
		if strings.Contains(sc.Text(), "bonjour") {
			found = true
			break
		}
	}
	if !found {
		t.Error("no echo response over TCP")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Error("Serve did not stop after cancel")
	}
}
