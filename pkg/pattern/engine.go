package pattern

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hazyhaar/zemailer/pkg/names"
)

// Names is the name-handling collaborator injected into the engine.
type Names interface {
	Normalize(name string) string
	Flatten(name string) string
	Split(name string) []string
	Decompose(name string, mergeAtFront bool) (given, family string, err error)
}

// GeneratedAddress is one substitution result, traceable to its input record.
type GeneratedAddress struct {
	Index     int          `json:"index"`
	Record    names.Record `json:"record"`
	LocalPart string       `json:"local_part"`
	Address   string       `json:"address,omitempty"`
}

// Value returns the full address when a domain was configured, the local part otherwise.
func (a GeneratedAddress) Value() string {
	if a.Address != "" {
		return a.Address
	}
	return a.LocalPart
}

// Engine substitutes name records into classified templates. It holds no
// per-record state and is safe for concurrent use.
type Engine struct {
	names         Names
	compositeJoin string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithCompositeJoin sets the string replacing whitespace inside a merged
// slot ("pauline bouchard" -> "pauline" + join + "bouchard"). Default is "".
func WithCompositeJoin(join string) EngineOption {
	return func(e *Engine) { e.compositeJoin = join }
}

// NewEngine creates an engine. A nil collaborator defaults to the table flattener.
func NewEngine(n Names, opts ...EngineOption) *Engine {
	if n == nil {
		n = names.NewToolkit("table")
	}
	e := &Engine{names: n}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Substitute builds the local part for one [given, family] record.
func (e *Engine) Substitute(ct ClassifiedTemplate, rec names.Record) (string, error) {
	if ct.Shape == ShapeUnknown {
		return "", &UnrecognizedTemplateError{Template: ct.Template, Reason: "template was not classified"}
	}
	if len(rec) != 2 {
		return "", &MalformedRecordError{Record: append([]string(nil), rec...)}
	}
	given, family := e.token(rec[0]), e.token(rec[1])
	if given == "" || family == "" {
		return "", &MalformedRecordError{Record: append([]string(nil), rec...)}
	}

	switch ct.InitialSide {
	case SideFamily:
		family = firstRune(family)
	case SideGiven:
		given = firstRune(given)
	}

	if ct.Shape == ShapeSingle {
		if ct.FamilySlot != NoSlot {
			return family, nil
		}
		return given, nil
	}

	var slots [2]string
	slots[ct.FamilySlot] = family
	slots[ct.GivenSlot] = given
	return slots[0] + ct.Separator + slots[1], nil
}

// Apply substitutes every record in order and appends @domain when set.
// It stops at the first malformed record.
func (e *Engine) Apply(ct ClassifiedTemplate, records []names.Record, domain string) ([]GeneratedAddress, error) {
	domain = NormalizeDomain(domain)
	out := make([]GeneratedAddress, 0, len(records))
	for i, rec := range records {
		local, err := e.Substitute(ct, rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, NewAddress(i, rec, local, domain))
	}
	return out, nil
}

// Mononym flattens a single-name record for use as a bare local part.
func (e *Engine) Mononym(rec names.Record) (string, error) {
	if len(rec) != 1 {
		return "", &MalformedRecordError{Record: append([]string(nil), rec...)}
	}
	local := e.token(rec[0])
	if local == "" {
		return "", &MalformedRecordError{Record: append([]string(nil), rec...)}
	}
	return local, nil
}

// Check reports a record with a slot that flattens to nothing, such as a
// lone combining accent under the ascii mode, as a *names.StructureError
// so callers can skip it like any other unresolvable name.
func (e *Engine) Check(rec names.Record) error {
	words := 0
	empty := len(rec) == 0
	for _, tok := range rec {
		if t := e.token(tok); t != "" {
			words++
		} else {
			empty = true
		}
	}
	if !empty {
		return nil
	}
	return &names.StructureError{
		Name:   strings.Join(rec, " "),
		Tokens: words,
		Want:   "letters left in every part after flattening",
	}
}

// NewAddress assembles a GeneratedAddress; domain is expected normalized.
func NewAddress(index int, rec names.Record, local, domain string) GeneratedAddress {
	a := GeneratedAddress{
		Index:     index,
		Record:    append(names.Record(nil), rec...),
		LocalPart: local,
	}
	if domain != "" {
		a.Address = JoinAddress(local, domain)
	}
	return a
}

// token flattens a slot and compacts the words of a composite name.
func (e *Engine) token(s string) string {
	return strings.Join(e.names.Split(e.names.Flatten(s)), e.compositeJoin)
}

func firstRune(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	return s[:size]
}
