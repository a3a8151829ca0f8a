package names

import (
	"fmt"
	"regexp"
	"strings"
)

// Structure tells whether a name is a single word or several words.
type Structure int

const (
	StructureEmpty Structure = iota
	StructureSingle
	StructureMulti
)

func (s Structure) String() string {
	switch s {
	case StructureSingle:
		return "single"
	case StructureMulti:
		return "multi"
	default:
		return "empty"
	}
}

var (
	singleRE = regexp.MustCompile(`^\S+$`)
	multiRE  = regexp.MustCompile(`^\S+(?:\s+\S+)+$`)
)

// StructureError reports a name that does not have the number of words an
// operation requires.
type StructureError struct {
	Name   string
	Tokens int
	Want   string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("name %q has %d word(s), want %s", e.Name, e.Tokens, e.Want)
}

// Record is a person name as ordered tokens. After resolution it holds
// [given, family], or a single token for a mononym.
type Record []string

// NewRecord builds a two-slot record.
func NewRecord(given, family string) Record {
	return Record{given, family}
}

// Given returns the given-name token, or "" when absent.
func (r Record) Given() string {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

// Family returns the family-name token, or "" when absent.
func (r Record) Family() string {
	if len(r) < 2 {
		return ""
	}
	return r[1]
}

// IsMononym reports whether the record holds a single name.
func (r Record) IsMononym() bool {
	return len(r) == 1
}

// Split breaks a name on whitespace ("Eugénie Bouchard" -> [Eugénie Bouchard]).
func Split(name string) []string {
	return strings.Fields(name)
}

// ClassifyStructure tells single-word names from multi-word names.
func ClassifyStructure(name string) Structure {
	name = strings.TrimSpace(name)
	switch {
	case singleRE.MatchString(name):
		return StructureSingle
	case multiRE.MatchString(name):
		return StructureMulti
	default:
		return StructureEmpty
	}
}

// Decompose reduces a three-word name to (given, family). With mergeAtFront
// the first two words form the given name ("Eugenie Pauline", "Bouchard"),
// otherwise the last two form the family name ("Eugenie", "Pauline Bouchard").
func Decompose(name string, mergeAtFront bool) (given, family string, err error) {
	tokens := Split(name)
	if len(tokens) != 3 {
		return "", "", &StructureError{Name: name, Tokens: len(tokens), Want: "3"}
	}
	if mergeAtFront {
		return tokens[0] + " " + tokens[1], tokens[2], nil
	}
	return tokens[0], tokens[1] + " " + tokens[2], nil
}

// Resolve turns a raw full name into a Record: one word is a mononym, two
// words map to given and family, three words go through Decompose.
func Resolve(name string, mergeAtFront bool) (Record, error) {
	tokens := Split(name)
	switch len(tokens) {
	case 1:
		return Record{tokens[0]}, nil
	case 2:
		return Record{tokens[0], tokens[1]}, nil
	case 3:
		given, family, err := Decompose(name, mergeAtFront)
		if err != nil {
			return nil, err
		}
		return Record{given, family}, nil
	default:
		return nil, &StructureError{Name: name, Tokens: len(tokens), Want: "1 to 3"}
	}
}
