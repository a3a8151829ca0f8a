// Package pattern classifies address templates such as "nom.prenom" or
// "pnom" and substitutes person names into them.
package pattern

import "fmt"

// Shape is the canonical form of a template.
type Shape int

const (
	ShapeUnknown Shape = iota
	// ShapeSeparated joins two full names with a separator (nom.prenom).
	ShapeSeparated
	// ShapeConcatenated glues two full names together (nomprenom).
	ShapeConcatenated
	// ShapeInitialPrefix puts a one-letter slot first (pnom, p.nom).
	ShapeInitialPrefix
	// ShapeInitialSuffix puts a one-letter slot last (nomp, nom-p).
	ShapeInitialSuffix
	// ShapeSingle keeps one name only (nom).
	ShapeSingle
)

func (s Shape) String() string {
	switch s {
	case ShapeSeparated:
		return "separated"
	case ShapeConcatenated:
		return "concatenated"
	case ShapeInitialPrefix:
		return "initial_prefix"
	case ShapeInitialSuffix:
		return "initial_suffix"
	case ShapeSingle:
		return "single"
	default:
		return "unknown"
	}
}

// MarshalText renders the shape name in JSON output.
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Side names the slot truncated to its first letter.
type Side int

const (
	SideNone Side = iota
	SideFamily
	SideGiven
)

func (s Side) String() string {
	switch s {
	case SideFamily:
		return "family"
	case SideGiven:
		return "given"
	default:
		return "none"
	}
}

// MarshalText renders the side name in JSON output.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// NoSlot marks a slot absent from the template.
const NoSlot = -1

// ClassifiedTemplate is the immutable result of classifying a template.
// FamilySlot and GivenSlot are output positions (0 or 1, NoSlot when absent).
type ClassifiedTemplate struct {
	Template    string `json:"template"`
	Shape       Shape  `json:"shape"`
	Separator   string `json:"separator,omitempty"`
	FamilySlot  int    `json:"family_slot"`
	GivenSlot   int    `json:"given_slot"`
	InitialSide Side   `json:"initial_side"`
}

// Slots returns how many name slots the template fills.
func (ct ClassifiedTemplate) Slots() int {
	if ct.Shape == ShapeSingle {
		return 1
	}
	return 2
}

func (ct ClassifiedTemplate) String() string {
	return fmt.Sprintf("%s(%s sep=%q family=%d given=%d initial=%s)",
		ct.Template, ct.Shape, ct.Separator, ct.FamilySlot, ct.GivenSlot, ct.InitialSide)
}
