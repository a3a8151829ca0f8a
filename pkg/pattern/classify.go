package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	fullKeyword    = `(nom|prenom|family|given)`
	initialKeyword = `(n|p)`
	separatorChar  = `([^[:alnum:][:space:]])`
)

// keyword is a template word and the name slot it stands for.
type keyword struct {
	role    Side
	initial bool
}

var keywords = map[string]keyword{
	"nom":    {role: SideFamily},
	"family": {role: SideFamily},
	"prenom": {role: SideGiven},
	"given":  {role: SideGiven},
	"n":      {role: SideFamily, initial: true},
	"p":      {role: SideGiven, initial: true},
}

// shapeRule is one row of the classification table. sepGroup is the index
// of the separator submatch, 0 when the shape has none.
type shapeRule struct {
	name     string
	re       *regexp.Regexp
	sepGroup int
	single   bool
}

// shapeRules is tested in order; the first matching rule decides.
var shapeRules = []shapeRule{
	{name: "separated", re: regexp.MustCompile(`^` + fullKeyword + separatorChar + fullKeyword + `$`), sepGroup: 2},
	{name: "separated_initial_first", re: regexp.MustCompile(`^` + initialKeyword + separatorChar + fullKeyword + `$`), sepGroup: 2},
	{name: "separated_initial_last", re: regexp.MustCompile(`^` + fullKeyword + separatorChar + initialKeyword + `$`), sepGroup: 2},
	{name: "concatenated_initial_first", re: regexp.MustCompile(`^` + initialKeyword + fullKeyword + `$`)},
	{name: "concatenated_initial_last", re: regexp.MustCompile(`^` + fullKeyword + initialKeyword + `$`)},
	{name: "concatenated", re: regexp.MustCompile(`^` + fullKeyword + fullKeyword + `$`)},
	{name: "single", re: regexp.MustCompile(`^` + fullKeyword + `$`), single: true},
}

// InitialOrder decides where the initial goes in templates that concatenate
// an initial and a full name without separator ("nomp").
type InitialOrder int

const (
	// OrderTemplate keeps the order written in the template.
	OrderTemplate InitialOrder = iota
	// OrderInitialFirst always puts the initial before the full name.
	OrderInitialFirst
	// OrderInitialLast always puts the initial after the full name.
	OrderInitialLast
)

// ParseInitialOrder maps a config value to an InitialOrder.
func ParseInitialOrder(s string) (InitialOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "template":
		return OrderTemplate, nil
	case "initial_first":
		return OrderInitialFirst, nil
	case "initial_last":
		return OrderInitialLast, nil
	default:
		return OrderTemplate, fmt.Errorf("unknown initial order %q (want template, initial_first or initial_last)", s)
	}
}

// Classifier turns template strings into ClassifiedTemplate values.
type Classifier struct {
	order InitialOrder
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithInitialOrder sets the slot order used for concatenated initial templates.
func WithInitialOrder(o InitialOrder) ClassifierOption {
	return func(c *Classifier) { c.order = o }
}

// NewClassifier creates a classifier. The zero configuration keeps template order.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultClassifier = NewClassifier()

// Classify classifies a template with the default classifier.
func Classify(template string) (ClassifiedTemplate, error) {
	return defaultClassifier.Classify(template)
}

// Classify matches the template against the shape table and extracts its
// separator and slot assignment. Templates are case-insensitive.
func (c *Classifier) Classify(template string) (ClassifiedTemplate, error) {
	t := strings.ToLower(strings.TrimSpace(template))
	if t == "" {
		return ClassifiedTemplate{}, &UnrecognizedTemplateError{Template: template, Reason: "empty template"}
	}
	for _, rule := range shapeRules {
		m := rule.re.FindStringSubmatch(t)
		if m == nil {
			continue
		}
		return c.assign(t, rule, m)
	}
	return ClassifiedTemplate{}, &UnrecognizedTemplateError{Template: template, Reason: "matches no known shape"}
}

// ClassifyAll classifies every template and stops at the first failure.
func (c *Classifier) ClassifyAll(templates []string) ([]ClassifiedTemplate, error) {
	if len(templates) == 0 {
		return nil, &UnrecognizedTemplateError{Reason: "no template configured"}
	}
	out := make([]ClassifiedTemplate, 0, len(templates))
	for _, t := range templates {
		ct, err := c.Classify(t)
		if err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	return out, nil
}

func (c *Classifier) assign(t string, rule shapeRule, m []string) (ClassifiedTemplate, error) {
	ct := ClassifiedTemplate{Template: t, FamilySlot: NoSlot, GivenSlot: NoSlot}
	initialPos := NoSlot
	pos := 0
	for i, group := range m[1:] {
		if i+1 == rule.sepGroup {
			ct.Separator = group
			continue
		}
		kw := keywords[group]
		switch kw.role {
		case SideFamily:
			if ct.FamilySlot != NoSlot {
				return ClassifiedTemplate{}, &UnrecognizedTemplateError{Template: t, Reason: "family name keyword appears twice"}
			}
			ct.FamilySlot = pos
		case SideGiven:
			if ct.GivenSlot != NoSlot {
				return ClassifiedTemplate{}, &UnrecognizedTemplateError{Template: t, Reason: "given name keyword appears twice"}
			}
			ct.GivenSlot = pos
		}
		if kw.initial {
			ct.InitialSide = kw.role
			initialPos = pos
		}
		pos++
	}

	if rule.single {
		ct.Shape = ShapeSingle
		return ct, nil
	}
	if ct.FamilySlot == NoSlot || ct.GivenSlot == NoSlot {
		return ClassifiedTemplate{}, &UnrecognizedTemplateError{Template: t, Reason: "needs one family and one given keyword"}
	}

	switch {
	case ct.InitialSide != SideNone:
		if ct.Separator == "" {
			initialPos = c.reorder(&ct, initialPos)
		}
		if initialPos == 0 {
			ct.Shape = ShapeInitialPrefix
		} else {
			ct.Shape = ShapeInitialSuffix
		}
	case ct.Separator != "":
		ct.Shape = ShapeSeparated
	default:
		ct.Shape = ShapeConcatenated
	}
	return ct, nil
}

// reorder applies the classifier's InitialOrder and returns the new
// position of the initial slot.
func (c *Classifier) reorder(ct *ClassifiedTemplate, initialPos int) int {
	want := initialPos
	switch c.order {
	case OrderInitialFirst:
		want = 0
	case OrderInitialLast:
		want = 1
	}
	if want != initialPos {
		ct.FamilySlot, ct.GivenSlot = ct.GivenSlot, ct.FamilySlot
	}
	return want
}
