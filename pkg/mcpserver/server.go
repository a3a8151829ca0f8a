// Package mcpserver serves an mcp-go server as line-delimited JSON-RPC over
// any byte stream: stdin/stdout for local agents, TCP for remote ones.
package mcpserver

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"github.com/hazyhaar/zemailer/pkg/kit"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MaxMessageSize bounds a single JSON-RPC line.
const MaxMessageSize = 10 * 1024 * 1024

// New creates the zemailer MCP server with tool support enabled.
func New(version string) *server.MCPServer {
	return server.NewMCPServer("zemailer", version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
}

// Handler runs MCP sessions over streams, sharing one MCPServer.
type Handler struct {
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewHandler creates a session handler.
func NewHandler(mcpSrv *server.MCPServer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{mcpServer: mcpSrv, logger: logger}
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ServeStream handles one MCP session until r is exhausted or ctx is done.
// transport tags the endpoint context ("stdio", "tcp").
func (h *Handler) ServeStream(ctx context.Context, transport string, r io.Reader, w io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sessionID := transport + "_" + randomHex(4)
	sess := newSession(sessionID, w)
	if err := h.mcpServer.RegisterSession(ctx, sess); err != nil {
		return err
	}
	defer h.mcpServer.UnregisterSession(ctx, sessionID)
	h.logger.Info("MCP session starting", "session", sessionID)

	ctx = kit.WithTransport(ctx, "mcp")
	ctx = h.mcpServer.WithContext(ctx, sess)

	go sess.writeNotifications(ctx)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), MaxMessageSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		response := h.mcpServer.HandleMessage(ctx, json.RawMessage(append([]byte(nil), line...)))
		if response == nil {
			continue
		}
		if err := sess.writeJSON(response); err != nil {
			h.logger.Error("MCP write error", "session", sessionID, "error", err)
			return err
		}
	}

	h.logger.Info("MCP session ended", "session", sessionID)
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// Listener accepts MCP sessions over TCP.
type Listener struct {
	listener net.Listener
	handler  *Handler
	logger   *slog.Logger
}

// Listen opens a TCP listener for MCP sessions.
func Listen(addr string, mcpSrv *server.MCPServer, logger *slog.Logger) (*Listener, error) {
	if logger == nil {
		logger = slog.Default()
	}
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	logger.Info("MCP TCP listener ready", "addr", l.Addr().String())
	return &Listener{listener: l, handler: NewHandler(mcpSrv, logger), logger: logger}, nil
}

// Addr returns the bound address.
func (l *Listener) Addr() net.Addr {
	return l.listener.Addr()
}

// Serve accepts connections until ctx is done or the listener is closed.
func (l *Listener) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		l.listener.Close()
	}()
	for {
		conn, err := l.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			l.logger.Error("MCP accept error", "error", err)
			continue
		}
		go func() {
			defer conn.Close()
			remote := conn.RemoteAddr().String()
			l.logger.Info("MCP connection accepted", "remote", remote)
			if err := l.handler.ServeStream(ctx, "tcp", conn, conn); err != nil {
				l.logger.Error("MCP session failed", "remote", remote, "error", err)
			}
		}()
	}
}

// Close stops accepting connections.
func (l *Listener) Close() error {
	return l.listener.Close()
}

// session implements server.ClientSession for one stream.
type session struct {
	id            string
	notifications chan mcp.JSONRPCNotification
	initialized   atomic.Bool
	writer        io.Writer
	mu            sync.Mutex
}

func newSession(id string, writer io.Writer) *session {
	return &session{
		id:            id,
		notifications: make(chan mcp.JSONRPCNotification, 100),
		writer:        writer,
	}
}

func (s *session) SessionID() string                                   { return s.id }
func (s *session) NotificationChannel() chan<- mcp.JSONRPCNotification { return s.notifications }
func (s *session) Initialize()                                         { s.initialized.Store(true) }
func (s *session) Initialized() bool                                   { return s.initialized.Load() }

func (s *session) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.writer.Write(data)
	return err
}

func (s *session) writeNotifications(ctx context.Context) {
	for {
		select {
		case notif := <-s.notifications:
			_ = s.writeJSON(notif)
		case <-ctx.Done():
			return
		}
	}
}
