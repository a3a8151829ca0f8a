package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hazyhaar/zemailer/pkg/preset"
	"github.com/hazyhaar/zemailer/pkg/store"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "generate":
		err = cmdGenerate(os.Args[2:])
	case "expand":
		err = cmdExpand(os.Args[2:], os.Stdout)
	case "classify":
		err = cmdClassify(os.Args[2:], os.Stdout)
	case "presets":
		err = cmdPresets(os.Args[2:], os.Stdout)
	case "history":
		err = cmdHistory(os.Args[2:], os.Stdout)
	case "send":
		err = cmdSend(os.Args[2:])
	case "serve":
		err = cmdServe(os.Args[2:])
	case "mcp":
		err = cmdMCP(os.Args[2:])
	case "version":
		fmt.Println("zemailer", version)
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "zemailer %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: zemailer <command> [flags]

Commands:
  generate   Build one address per name and template from a CSV/XLSX file
  expand     List every separator/domain candidate for a few names
  classify   Show how templates are interpreted
  presets    List institutional presets or override one
  history    Show recorded generation runs
  send       Mail files over SMTP
  serve      Start the HTTP server (and MCP over TCP when mcp_addr is set)
  mcp        Serve MCP over stdio or TCP
  version    Print the version
`)
}

// configFlag registers the -config flag shared by every subcommand.
func configFlag(fs *flag.FlagSet) *string {
	return fs.String("config", "config.yaml", "path to config file")
}

// env bundles what most subcommands need once the config is read.
type env struct {
	cfg      config
	logger   *slog.Logger
	registry *preset.Registry
	store    *store.Store
}

// presets returns the store when one is open, the registry otherwise.
func (e *env) presets() preset.Lookup {
	if e.store != nil {
		return e.store
	}
	return e.registry
}

func (e *env) Close() {
	if e.store != nil {
		e.store.Close()
	}
}

// setup loads the config, the preset registry and, when db_path is set,
// the SQLite store seeded with the registry contents.
func setup(cfgPath string) (*env, error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)

	reg := preset.NewRegistry(cfg.PresetsDir)
	if err := reg.Load(); err != nil {
		return nil, fmt.Errorf("load presets: %w", err)
	}
	logger.Debug("presets loaded", "count", reg.Count(), "dir", cfg.PresetsDir)

	e := &env{cfg: cfg, logger: logger, registry: reg}
	if cfg.DBPath == "" {
		return e, nil
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := st.Seed(reg.List()); err != nil {
		st.Close()
		return nil, err
	}
	e.store = st
	return e, nil
}
