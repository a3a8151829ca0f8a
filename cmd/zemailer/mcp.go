package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/hazyhaar/zemailer/pkg/api"
	"github.com/hazyhaar/zemailer/pkg/mcpserver"
)

// cmdMCP serves the MCP tools on stdio, or on TCP with -listen. Logs go to
// stderr so stdout stays a clean JSON-RPC stream.
func cmdMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	cfgPath := configFlag(fs)
	listen := fs.String("listen", "", "TCP address; empty serves on stdin/stdout")
	fs.Parse(args)

	e, err := setup(*cfgPath)
	if err != nil {
		return err
	}
	defer e.Close()

	svc := api.NewService(e.presets(), e.cfg.serviceOptions(), e.logger, nil)
	mcpSrv := mcpserver.New(version)
	svc.RegisterMCPTools(mcpSrv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *listen == "" {
		return mcpserver.NewHandler(mcpSrv, e.logger).ServeStream(ctx, "stdio", os.Stdin, os.Stdout)
	}

	l, err := mcpserver.Listen(*listen, mcpSrv, e.logger)
	if err != nil {
		return err
	}
	if err := l.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
