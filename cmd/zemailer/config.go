package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/hazyhaar/zemailer/pkg/api"
	"github.com/hazyhaar/zemailer/pkg/batch"
	"github.com/hazyhaar/zemailer/pkg/names"
	"github.com/hazyhaar/zemailer/pkg/pattern"
	"github.com/hazyhaar/zemailer/pkg/rowio"
	"gopkg.in/yaml.v3"
)

type config struct {
	Addr       string        `yaml:"addr"`
	MCPAddr    string        `yaml:"mcp_addr"`
	PresetsDir string        `yaml:"presets_dir"`
	DBPath     string        `yaml:"db_path"`
	LogLevel   string        `yaml:"log_level"`
	EnvFile    string        `yaml:"env_file"`
	Defaults   defaults      `yaml:"defaults"`
	SMTP       smtpConfig    `yaml:"smtp"`
	Input      rowio.Options `yaml:"input"`
}

type defaults struct {
	MergeAtFront  bool     `yaml:"merge_at_front"`
	FlattenMode   string   `yaml:"flatten_mode"`
	InitialOrder  string   `yaml:"initial_order"`
	CompositeJoin string   `yaml:"composite_join"`
	EmailHeader   string   `yaml:"email_header"`
	Separators    []string `yaml:"separators"`
	Domains       []string `yaml:"domains"`
}

type smtpConfig struct {
	Server string `yaml:"server"`
	From   string `yaml:"from"`
}

func defaultConfig() config {
	return config{
		Addr:       ":8421",
		PresetsDir: "presets",
		DBPath:     "zemailer.db",
		LogLevel:   "info",
		EnvFile:    ".env",
		Defaults: defaults{
			MergeAtFront: true,
			FlattenMode:  "table",
			InitialOrder: "template",
			EmailHeader:  batch.DefaultEmailHeader,
			Separators:   pattern.DefaultSeparators,
			Domains:      pattern.DefaultDomains,
		},
		SMTP: smtpConfig{Server: "gmail"},
	}
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if _, err := pattern.ParseInitialOrder(cfg.Defaults.InitialOrder); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level %q: %w", s, err)
	}
	return level, nil
}

func newLogger(cfg config) *slog.Logger {
	level, _ := parseLevel(cfg.LogLevel)
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// serviceOptions maps the defaults section onto api.Options.
func (c config) serviceOptions() api.Options {
	order, _ := pattern.ParseInitialOrder(c.Defaults.InitialOrder)
	return api.Options{
		FlattenMode:   c.Defaults.FlattenMode,
		InitialOrder:  order,
		CompositeJoin: c.Defaults.CompositeJoin,
		MergeAtFront:  c.Defaults.MergeAtFront,
		Separators:    c.Defaults.Separators,
		Domains:       c.Defaults.Domains,
	}
}

func (c config) runner(logger *slog.Logger) *batch.Runner {
	order, _ := pattern.ParseInitialOrder(c.Defaults.InitialOrder)
	classifier := pattern.NewCache(pattern.NewClassifier(pattern.WithInitialOrder(order)), 0)
	engine := pattern.NewEngine(names.NewToolkit(c.Defaults.FlattenMode),
		pattern.WithCompositeJoin(c.Defaults.CompositeJoin))
	return batch.NewRunner(classifier, engine, logger)
}

func (c config) expander(mergeAtFront bool) *pattern.Expander {
	return pattern.NewExpander(names.NewToolkit(c.Defaults.FlattenMode), mergeAtFront)
}
