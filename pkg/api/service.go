// Package api exposes classification, generation and expansion over HTTP
// and MCP. Both transports dispatch to the same kit.Endpoints.
package api

import (
	"log/slog"

	"github.com/hazyhaar/zemailer/pkg/batch"
	"github.com/hazyhaar/zemailer/pkg/kit"
	"github.com/hazyhaar/zemailer/pkg/names"
	"github.com/hazyhaar/zemailer/pkg/pattern"
	"github.com/hazyhaar/zemailer/pkg/preset"
	"github.com/prometheus/client_golang/prometheus"
)

// MaxNames bounds the names accepted by one generate or expand call.
const MaxNames = 1000

// Options configures a Service. Zero values fall back to the package defaults.
type Options struct {
	FlattenMode   string
	InitialOrder  pattern.InitialOrder
	CompositeJoin string
	MergeAtFront  bool
	Separators    []string
	Domains       []string
	CacheSize     int
}

// Service wires the core packages behind transport-agnostic endpoints.
type Service struct {
	cache    *pattern.Cache
	runner   *batch.Runner
	expander *pattern.Expander
	presets  preset.Lookup
	metrics  *Metrics
	logger   *slog.Logger
	opts     Options

	classify kit.Endpoint
	generate kit.Endpoint
	expand   kit.Endpoint
	list     kit.Endpoint
}

// NewService builds a service. reg receives the Prometheus collectors; a
// nil reg uses a private registry.
func NewService(presets preset.Lookup, opts Options, logger *slog.Logger, reg prometheus.Registerer) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if opts.Separators == nil {
		opts.Separators = pattern.DefaultSeparators
	}
	if opts.Domains == nil {
		opts.Domains = pattern.DefaultDomains
	}

	toolkit := names.NewToolkit(opts.FlattenMode)
	cache := pattern.NewCache(pattern.NewClassifier(pattern.WithInitialOrder(opts.InitialOrder)), opts.CacheSize)
	s := &Service{
		cache:    cache,
		runner:   batch.NewRunner(cache, pattern.NewEngine(toolkit, pattern.WithCompositeJoin(opts.CompositeJoin)), logger),
		expander: pattern.NewExpander(toolkit, opts.MergeAtFront),
		presets:  presets,
		metrics:  NewMetrics(reg),
		logger:   logger,
		opts:     opts,
	}

	s.classify = s.wrap("classify_template", s.classifyEndpoint)
	s.generate = s.wrap("generate_addresses", s.generateEndpoint)
	s.expand = s.wrap("expand_names", s.expandEndpoint)
	s.list = s.wrap("list_presets", s.listPresetsEndpoint)
	return s
}

func (s *Service) wrap(name string, ep kit.Endpoint) kit.Endpoint {
	return kit.Chain(
		kit.Named(name),
		kit.Recover(s.logger),
		kit.Logging(s.logger),
		s.metrics.Instrument(name),
	)(ep)
}
