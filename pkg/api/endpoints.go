package api

import (
	"context"
	"fmt"

	"github.com/hazyhaar/zemailer/pkg/batch"
	"github.com/hazyhaar/zemailer/pkg/pattern"
	"github.com/hazyhaar/zemailer/pkg/preset"
	"github.com/hazyhaar/zemailer/pkg/rowio"
)

// Shared request/response types used by both HTTP and MCP transports.

type classifyReq struct {
	Template string `json:"template"`
}

type generateReq struct {
	Names        []string   `json:"names,omitempty"`
	Records      [][]string `json:"records,omitempty"`
	Templates    []string   `json:"templates,omitempty"`
	Preset       string     `json:"preset,omitempty"`
	Domain       string     `json:"domain,omitempty"`
	MergeAtFront *bool      `json:"merge_at_front,omitempty"`
}

type skippedRecord struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

type generateResponse struct {
	Preset    string                     `json:"preset,omitempty"`
	Templates []string                   `json:"templates"`
	Domain    string                     `json:"domain,omitempty"`
	Addresses []pattern.GeneratedAddress `json:"addresses"`
	Skipped   []skippedRecord            `json:"skipped"`
}

type expandReq struct {
	Names      []string `json:"names"`
	Separators []string `json:"separators"`
	Domains    []string `json:"domains"`
}

type expandResponse struct {
	Addresses []string `json:"addresses"`
}

type presetsResponse struct {
	Presets []preset.Preset `json:"presets"`
}

// badRequest marks errors caused by the caller's input.
type badRequest struct {
	msg string
}

func (e *badRequest) Error() string { return e.msg }

func invalid(format string, args ...any) error {
	return &badRequest{msg: fmt.Sprintf(format, args...)}
}

func (s *Service) classifyEndpoint(_ context.Context, request any) (any, error) {
	req := request.(*classifyReq)
	if req.Template == "" {
		return nil, invalid("missing template")
	}
	return s.cache.Classify(req.Template)
}

func (s *Service) generateEndpoint(ctx context.Context, request any) (any, error) {
	req := request.(*generateReq)

	templates, domain := req.Templates, req.Domain
	if req.Preset != "" {
		if s.presets == nil {
			return nil, fmt.Errorf("%s: %w", req.Preset, preset.ErrNotFound)
		}
		p, err := s.presets.GetPreset(req.Preset)
		if err != nil {
			return nil, err
		}
		if len(templates) == 0 {
			templates = p.Templates
		}
		if domain == "" {
			domain = p.Domain
		}
	}
	if len(templates) == 0 {
		return nil, invalid("templates or preset is required")
	}
	if err := pattern.CheckDomain(domain); err != nil {
		return nil, invalid("%v", err)
	}

	n := len(req.Names) + len(req.Records)
	switch {
	case n == 0:
		return nil, invalid("names or records is required")
	case n > MaxNames:
		return nil, invalid("too many names (max %d, got %d)", MaxNames, n)
	case len(req.Names) > 0 && len(req.Records) > 0:
		return nil, invalid("names and records are mutually exclusive")
	}

	cfg := batch.Config{
		Templates:    templates,
		Domain:       domain,
		MergeAtFront: s.opts.MergeAtFront,
	}
	if req.MergeAtFront != nil {
		cfg.MergeAtFront = *req.MergeAtFront
	}

	table := &rowio.Table{}
	if len(req.Records) > 0 {
		table.Header = []string{"given", "family"}
		cfg.GivenColumn, cfg.FamilyColumn = "given", "family"
		for i, rec := range req.Records {
			if len(rec) != 2 {
				return nil, invalid("record %d: want [given, family], got %d fields", i, len(rec))
			}
			table.Rows = append(table.Rows, rec)
		}
	} else {
		table.Header = []string{"name"}
		for _, name := range req.Names {
			table.Rows = append(table.Rows, []string{name})
		}
	}

	res, err := s.runner.Run(ctx, table, cfg)
	if err != nil {
		return nil, err
	}

	resp := &generateResponse{
		Preset:    req.Preset,
		Templates: templates,
		Domain:    pattern.NormalizeDomain(domain),
		Addresses: res.Addresses,
		Skipped:   make([]skippedRecord, 0, len(res.Skipped)),
	}
	if resp.Addresses == nil {
		resp.Addresses = []pattern.GeneratedAddress{}
	}
	for _, sk := range res.Skipped {
		resp.Skipped = append(resp.Skipped, skippedRecord{Index: sk.Row, Name: sk.Name, Error: sk.Err.Error()})
	}
	s.metrics.Generated.Add(float64(len(res.Addresses)))
	s.metrics.Skipped.Add(float64(len(res.Skipped)))
	return resp, nil
}

func (s *Service) expandEndpoint(_ context.Context, request any) (any, error) {
	req := request.(*expandReq)
	if len(req.Names) == 0 {
		return nil, invalid("names is required")
	}
	if len(req.Names) > MaxNames {
		return nil, invalid("too many names (max %d, got %d)", MaxNames, len(req.Names))
	}
	seps, domains := req.Separators, req.Domains
	if seps == nil {
		seps = s.opts.Separators
	}
	if domains == nil {
		domains = s.opts.Domains
	}

	out := s.expander.ExpandList(req.Names, seps, domains)
	if out == nil {
		out = []string{}
	}
	s.metrics.Generated.Add(float64(len(out)))
	return expandResponse{Addresses: out}, nil
}

func (s *Service) listPresetsEndpoint(_ context.Context, _ any) (any, error) {
	if s.presets == nil {
		return presetsResponse{Presets: []preset.Preset{}}, nil
	}
	list, err := s.presets.ListPresets()
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []preset.Preset{}
	}
	return presetsResponse{Presets: list}, nil
}
