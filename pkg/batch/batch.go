// Package batch turns a table of person names into a table of addresses,
// one output row per person and template.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hazyhaar/zemailer/pkg/names"
	"github.com/hazyhaar/zemailer/pkg/pattern"
	"github.com/hazyhaar/zemailer/pkg/rowio"
)

// DefaultEmailHeader is the name of the column appended to the output.
const DefaultEmailHeader = "email"

// Config describes one generation run.
type Config struct {
	Templates    []string `json:"templates" yaml:"templates"`
	Domain       string   `json:"domain,omitempty" yaml:"domain"`
	MergeAtFront bool     `json:"merge_at_front" yaml:"merge_at_front"`

	// NameColumn holds full names. Ignored when GivenColumn and
	// FamilyColumn are both set. Empty means the first column.
	NameColumn   string `json:"name_column,omitempty" yaml:"name_column"`
	GivenColumn  string `json:"given_column,omitempty" yaml:"given_column"`
	FamilyColumn string `json:"family_column,omitempty" yaml:"family_column"`

	EmailHeader string `json:"email_header,omitempty" yaml:"email_header"`
}

// RowError records why a data row produced no address. Row is 0-based.
type RowError struct {
	Row  int
	Name string
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (%q): %v", e.Row, e.Name, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Result is the outcome of a run.
type Result struct {
	Table     *rowio.Table
	Addresses []pattern.GeneratedAddress
	Skipped   []*RowError
}

// Classifier classifies the run's templates; *pattern.Classifier and
// *pattern.Cache both satisfy it.
type Classifier interface {
	ClassifyAll(templates []string) ([]pattern.ClassifiedTemplate, error)
}

// Runner executes runs. It is stateless between runs.
type Runner struct {
	classifier Classifier
	engine     *pattern.Engine
	logger     *slog.Logger
}

// NewRunner creates a runner. A nil logger uses slog.Default().
func NewRunner(c Classifier, e *pattern.Engine, logger *slog.Logger) *Runner {
	if c == nil {
		c = pattern.NewClassifier()
	}
	if e == nil {
		e = pattern.NewEngine(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{classifier: c, engine: e, logger: logger}
}

// Run classifies the templates once, then resolves and substitutes every
// row. A bad template or a missing column fails the whole run; rows whose
// name cannot be resolved are skipped and reported.
func (r *Runner) Run(ctx context.Context, in *rowio.Table, cfg Config) (*Result, error) {
	cts, err := r.classifier.ClassifyAll(cfg.Templates)
	if err != nil {
		return nil, err
	}
	pick, err := newPicker(in, cfg)
	if err != nil {
		return nil, err
	}

	emailHeader := cfg.EmailHeader
	if emailHeader == "" {
		emailHeader = DefaultEmailHeader
	}
	domain := pattern.NormalizeDomain(cfg.Domain)
	width := len(in.Header)

	res := &Result{Table: &rowio.Table{Header: append(append([]string(nil), in.Header...), emailHeader)}}
	for i, row := range in.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		display, rec, err := pick(row, cfg.MergeAtFront)
		if err == nil {
			err = r.engine.Check(rec)
		}
		if err != nil {
			var se *names.StructureError
			if !errors.As(err, &se) {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			re := &RowError{Row: i, Name: display, Err: err}
			res.Skipped = append(res.Skipped, re)
			r.logger.Warn("row skipped", "row", i, "name", display, "error", err)
			continue
		}

		for _, ct := range cts {
			local, err := r.substitute(ct, rec)
			if err != nil {
				return nil, fmt.Errorf("row %d template %s: %w", i, ct.Template, err)
			}
			addr := pattern.NewAddress(i, rec, local, domain)
			res.Addresses = append(res.Addresses, addr)
			res.Table.Rows = append(res.Table.Rows, outputRow(row, width, addr.Value()))
		}
	}

	r.logger.Info("batch complete",
		"rows", len(in.Rows),
		"templates", len(cts),
		"generated", len(res.Addresses),
		"skipped", len(res.Skipped))
	return res, nil
}

func (r *Runner) substitute(ct pattern.ClassifiedTemplate, rec names.Record) (string, error) {
	if rec.IsMononym() {
		return r.engine.Mononym(rec)
	}
	return r.engine.Substitute(ct, rec)
}

// picker extracts a resolved record from a row and the raw text it came from.
type picker func(row []string, mergeAtFront bool) (string, names.Record, error)

func newPicker(in *rowio.Table, cfg Config) (picker, error) {
	if cfg.GivenColumn != "" && cfg.FamilyColumn != "" {
		gi, err := column(in, cfg.GivenColumn)
		if err != nil {
			return nil, err
		}
		fi, err := column(in, cfg.FamilyColumn)
		if err != nil {
			return nil, err
		}
		return func(row []string, _ bool) (string, names.Record, error) {
			given, family := cell(row, gi), cell(row, fi)
			display := strings.TrimSpace(given + " " + family)
			switch {
			case given != "" && family != "":
				return display, names.NewRecord(given, family), nil
			case display != "":
				return display, names.Record{display}, nil
			default:
				return display, nil, &names.StructureError{Name: display, Tokens: 0, Want: "a given or family name"}
			}
		}, nil
	}

	ni := 0
	if cfg.NameColumn != "" {
		var err error
		if ni, err = column(in, cfg.NameColumn); err != nil {
			return nil, err
		}
	}
	return func(row []string, mergeAtFront bool) (string, names.Record, error) {
		name := cell(row, ni)
		rec, err := names.Resolve(name, mergeAtFront)
		return name, rec, err
	}, nil
}

func column(in *rowio.Table, name string) (int, error) {
	idx := in.Column(name)
	if idx < 0 {
		return 0, fmt.Errorf("column %q not found in header %v", name, in.Header)
	}
	return idx, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// outputRow pads the input row to the header width and appends the address.
func outputRow(row []string, width int, value string) []string {
	out := make([]string, 0, width+1)
	out = append(out, row...)
	for len(out) < width {
		out = append(out, "")
	}
	return append(out[:width:width], value)
}
