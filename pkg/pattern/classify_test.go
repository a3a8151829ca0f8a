package pattern

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		template string
		shape    Shape
		sep      string
		family   int
		given    int
		initial  Side
	}{
		{"nom.prenom", ShapeSeparated, ".", 0, 1, SideNone},
		{"prenom.nom", ShapeSeparated, ".", 1, 0, SideNone},
		{"nom-prenom", ShapeSeparated, "-", 0, 1, SideNone},
		{"prenom_nom", ShapeSeparated, "_", 1, 0, SideNone},
		{"family.given", ShapeSeparated, ".", 0, 1, SideNone},
		{"given.family", ShapeSeparated, ".", 1, 0, SideNone},
		{"NOM.Prenom", ShapeSeparated, ".", 0, 1, SideNone},
		{"  prenom.nom  ", ShapeSeparated, ".", 1, 0, SideNone},
		{"pnom", ShapeInitialPrefix, "", 1, 0, SideGiven},
		{"nprenom", ShapeInitialPrefix, "", 0, 1, SideFamily},
		{"p.nom", ShapeInitialPrefix, ".", 1, 0, SideGiven},
		{"n-prenom", ShapeInitialPrefix, "-", 0, 1, SideFamily},
		{"nomp", ShapeInitialSuffix, "", 0, 1, SideGiven},
		{"prenom.n", ShapeInitialSuffix, ".", 1, 0, SideFamily},
		{"nomprenom", ShapeConcatenated, "", 0, 1, SideNone},
		{"prenomnom", ShapeConcatenated, "", 1, 0, SideNone},
		{"nom", ShapeSingle, "", 0, NoSlot, SideNone},
		{"prenom", ShapeSingle, "", NoSlot, 0, SideNone},
	}
	for _, tt := range tests {
		ct, err := Classify(tt.template)
		if err != nil {
			t.Errorf("Classify(%q): %v", tt.template, err)
			continue
		}
		if ct.Shape != tt.shape {
			t.Errorf("Classify(%q).Shape = %s, want %s", tt.template, ct.Shape, tt.shape)
		}
		if ct.Separator != tt.sep {
			t.Errorf("Classify(%q).Separator = %q, want %q", tt.template, ct.Separator, tt.sep)
		}
		if ct.FamilySlot != tt.family || ct.GivenSlot != tt.given {
			t.Errorf("Classify(%q) slots = family %d given %d, want %d %d",
				tt.template, ct.FamilySlot, ct.GivenSlot, tt.family, tt.given)
		}
		if ct.InitialSide != tt.initial {
			t.Errorf("Classify(%q).InitialSide = %s, want %s", tt.template, ct.InitialSide, tt.initial)
		}
	}
}

func TestClassifyRejects(t *testing.T) {
	bad := []string{
		"",
		"   ",
		"foo.bar",
		"nom..prenom",
		"nom prenom",
		"nom.nom",
		"prenom-prenom",
		"nomn",
		"pprenom",
		"np",
		"n",
		"nom.prenom.nom",
		"x.nom",
	}
	for _, tmpl := range bad {
		_, err := Classify(tmpl)
		if err == nil {
			t.Errorf("Classify(%q) succeeded, want error", tmpl)
			continue
		}
		var ute *UnrecognizedTemplateError
		if !errors.As(err, &ute) {
			t.Errorf("Classify(%q) error %T, want *UnrecognizedTemplateError", err, err)
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	for _, tmpl := range []string{"nom.prenom", "pnom", "nomp", "nom"} {
		a, errA := Classify(tmpl)
		b, errB := Classify(tmpl)
		if errA != nil || errB != nil {
			t.Fatalf("Classify(%q): %v / %v", tmpl, errA, errB)
		}
		if a != b {
			t.Errorf("Classify(%q) not deterministic: %v vs %v", tmpl, a, b)
		}
	}
}

func TestClassifySlotsDistinct(t *testing.T) {
	for _, tmpl := range []string{"nom.prenom", "prenom.nom", "pnom", "nomp", "nprenom", "nomprenom"} {
		ct, err := Classify(tmpl)
		if err != nil {
			t.Fatalf("Classify(%q): %v", tmpl, err)
		}
		if ct.FamilySlot == ct.GivenSlot {
			t.Errorf("Classify(%q): family and given share slot %d", tmpl, ct.FamilySlot)
		}
		if ct.Slots() != 2 {
			t.Errorf("Classify(%q).Slots() = %d, want 2", tmpl, ct.Slots())
		}
	}
}

func TestInitialOrder(t *testing.T) {
	tests := []struct {
		order  InitialOrder
		tmpl   string
		shape  Shape
		family int
		given  int
	}{
		{OrderTemplate, "nomp", ShapeInitialSuffix, 0, 1},
		{OrderInitialFirst, "nomp", ShapeInitialPrefix, 1, 0},
		{OrderInitialLast, "nomp", ShapeInitialSuffix, 0, 1},
		{OrderInitialLast, "pnom", ShapeInitialSuffix, 0, 1},
		{OrderInitialFirst, "pnom", ShapeInitialPrefix, 1, 0},
		// separated templates keep their written order
		{OrderInitialFirst, "nom.p", ShapeInitialSuffix, 0, 1},
	}
	for _, tt := range tests {
		c := NewClassifier(WithInitialOrder(tt.order))
		ct, err := c.Classify(tt.tmpl)
		if err != nil {
			t.Fatalf("Classify(%q): %v", tt.tmpl, err)
		}
		if ct.Shape != tt.shape || ct.FamilySlot != tt.family || ct.GivenSlot != tt.given {
			t.Errorf("order %d Classify(%q) = %v, want shape %s family %d given %d",
				tt.order, tt.tmpl, ct, tt.shape, tt.family, tt.given)
		}
	}
}

func TestParseInitialOrder(t *testing.T) {
	tests := map[string]InitialOrder{
		"":              OrderTemplate,
		"template":      OrderTemplate,
		"initial_first": OrderInitialFirst,
		"Initial_Last":  OrderInitialLast,
	}
	for in, want := range tests {
		got, err := ParseInitialOrder(in)
		if err != nil {
			t.Errorf("ParseInitialOrder(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseInitialOrder(%q) = %d, want %d", in, got, want)
		}
	}
	if _, err := ParseInitialOrder("sideways"); err == nil {
		t.Error("ParseInitialOrder(sideways) succeeded, want error")
	}
}

func TestClassifyAll(t *testing.T) {
	c := NewClassifier()
	cts, err := c.ClassifyAll([]string{"nomp", "nom"})
	if err != nil {
		t.Fatalf("ClassifyAll: %v", err)
	}
	if len(cts) != 2 || cts[0].Shape != ShapeInitialSuffix || cts[1].Shape != ShapeSingle {
		t.Errorf("ClassifyAll = %v", cts)
	}

	if _, err := c.ClassifyAll(nil); err == nil {
		t.Error("ClassifyAll(nil) succeeded, want error")
	}
	if _, err := c.ClassifyAll([]string{"nom.prenom", "foo"}); err == nil {
		t.Error("ClassifyAll with a bad template succeeded, want error")
	}
}
