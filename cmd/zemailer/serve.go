package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hazyhaar/zemailer/pkg/api"
	"github.com/hazyhaar/zemailer/pkg/mcpserver"
	"github.com/prometheus/client_golang/prometheus"
)

func cmdServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := configFlag(fs)
	addr := fs.String("addr", "", "HTTP listen address (default from config)")
	mcpAddr := fs.String("mcp-addr", "", "MCP TCP listen address (default from config)")
	fs.Parse(args)

	e, err := setup(*cfgPath)
	if err != nil {
		return err
	}
	defer e.Close()
	if *addr != "" {
		e.cfg.Addr = *addr
	}
	if *mcpAddr != "" {
		e.cfg.MCPAddr = *mcpAddr
	}
	logger := e.logger
	logger.Info("presets loaded", "count", e.registry.Count())

	reg := prometheus.NewRegistry()
	svc := api.NewService(e.presets(), e.cfg.serviceOptions(), logger, reg)

	srv := &http.Server{
		Addr:              e.cfg.Addr,
		Handler:           svc.NewRouter(reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// SIGHUP: reload preset manifests.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	defer signal.Stop(sighup)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading presets")
			if err := e.registry.Reload(); err != nil {
				logger.Error("reload failed", "error", err)
				continue
			}
			if e.store != nil {
				if err := e.store.Seed(e.registry.List()); err != nil {
					logger.Error("reseed failed", "error", err)
					continue
				}
			}
			logger.Info("presets reloaded", "count", e.registry.Count())
		}
	}()

	if e.cfg.MCPAddr != "" {
		mcpSrv := mcpserver.New(version)
		svc.RegisterMCPTools(mcpSrv)
		l, err := mcpserver.Listen(e.cfg.MCPAddr, mcpSrv, logger)
		if err != nil {
			return err
		}
		go func() {
			if err := l.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("MCP listener error", "error", err)
			}
		}()
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("zemailer listening", "addr", e.cfg.Addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
