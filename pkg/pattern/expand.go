package pattern

import (
	"strings"

	"github.com/hazyhaar/zemailer/pkg/names"
)

var (
	// DefaultSeparators are used when no separator list is configured.
	DefaultSeparators = []string{".", "-", "_"}
	// DefaultDomains are used when no domain list is configured.
	DefaultDomains = []string{"gmail", "outlook"}
)

// Expander produces every given<sep>family@domain candidate for a name,
// without any template. It is meant for exploration.
type Expander struct {
	names        Names
	mergeAtFront bool
}

// NewExpander creates an expander. mergeAtFront resolves three-word names
// the same way names.Decompose does.
func NewExpander(n Names, mergeAtFront bool) *Expander {
	if n == nil {
		n = names.NewToolkit("table")
	}
	return &Expander{names: n, mergeAtFront: mergeAtFront}
}

// Expand returns the cross product of separators and domains for one name,
// separator-major. A mononym yields name@domain once per domain. An empty
// separator list means plain concatenation; an empty domain list yields
// bare local parts.
func (x *Expander) Expand(name string, separators, domains []string) []string {
	given, family, ok := x.split(name)
	if !ok {
		return nil
	}

	qualified := make([]string, 0, len(domains))
	for _, d := range domains {
		qualified = append(qualified, QualifyDomain(d))
	}
	if len(qualified) == 0 {
		qualified = []string{""}
	}

	if family == "" {
		out := make([]string, 0, len(qualified))
		for _, d := range qualified {
			out = append(out, JoinAddress(given, d))
		}
		return out
	}

	if len(separators) == 0 {
		separators = []string{""}
	}
	out := make([]string, 0, len(separators)*len(qualified))
	for _, sep := range separators {
		for _, d := range qualified {
			out = append(out, JoinAddress(given+sep+family, d))
		}
	}
	return out
}

// ExpandList expands several names and concatenates the results in input order.
func (x *Expander) ExpandList(fullNames []string, separators, domains []string) []string {
	var out []string
	for _, name := range fullNames {
		out = append(out, x.Expand(name, separators, domains)...)
	}
	return out
}

// ExpandString expands a comma-separated list of names.
func (x *Expander) ExpandString(list string, separators, domains []string) []string {
	return x.ExpandList(SplitList(list), separators, domains)
}

// SplitList splits a comma-separated value, trimming items and dropping empty ones.
func SplitList(list string) []string {
	var out []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (x *Expander) split(name string) (given, family string, ok bool) {
	tokens := x.names.Split(x.names.Flatten(name))
	switch len(tokens) {
	case 0:
		return "", "", false
	case 1:
		return tokens[0], "", true
	case 2:
		return tokens[0], tokens[1], true
	case 3:
		g, f, err := x.names.Decompose(strings.Join(tokens, " "), x.mergeAtFront)
		if err != nil {
			return "", "", false
		}
		return x.compact(g), x.compact(f), true
	default:
		return tokens[0], strings.Join(tokens[1:], ""), true
	}
}

func (x *Expander) compact(s string) string {
	return strings.Join(x.names.Split(s), "")
}
