package pattern

import (
	"errors"
	"strings"
	"testing"

	"github.com/hazyhaar/zemailer/pkg/names"
)

func mustClassify(t *testing.T, c *Classifier, tmpl string) ClassifiedTemplate {
	t.Helper()
	ct, err := c.Classify(tmpl)
	if err != nil {
		t.Fatalf("Classify(%q): %v", tmpl, err)
	}
	return ct
}

func TestSubstitute(t *testing.T) {
	e := NewEngine(nil)
	c := NewClassifier()
	eugenie := names.NewRecord("Eugénie", "Bouchard")

	tests := []struct {
		tmpl string
		rec  names.Record
		want string
	}{
		{"prenom.nom", eugenie, "eugenie.bouchard"},
		{"nom.prenom", eugenie, "bouchard.eugenie"},
		{"nom-prenom", eugenie, "bouchard-eugenie"},
		{"pnom", eugenie, "ebouchard"},
		{"p.nom", eugenie, "e.bouchard"},
		{"nprenom", eugenie, "beugenie"},
		{"n-prenom", eugenie, "b-eugenie"},
		{"nomp", eugenie, "boucharde"},
		{"nomprenom", eugenie, "bouchardeugenie"},
		{"prenomnom", eugenie, "eugeniebouchard"},
		{"nom", eugenie, "bouchard"},
		{"prenom", eugenie, "eugenie"},
		{"given.family", eugenie, "eugenie.bouchard"},
		{"prenom.nom", names.NewRecord("Eugénie Pauline", "Bouchard"), "eugeniepauline.bouchard"},
		{"prenom.nom", names.NewRecord("Aurélie", "Konaté"), "aurelie.konate"},
		{"pnom", names.NewRecord("Éric", "Zoë"), "ezoe"},
	}
	for _, tt := range tests {
		ct := mustClassify(t, c, tt.tmpl)
		got, err := e.Substitute(ct, tt.rec)
		if err != nil {
			t.Errorf("Substitute(%q, %v): %v", tt.tmpl, tt.rec, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Substitute(%q, %v) = %q, want %q", tt.tmpl, tt.rec, got, tt.want)
		}
	}
}

func TestSubstituteInitialFirstOrder(t *testing.T) {
	c := NewClassifier(WithInitialOrder(OrderInitialFirst))
	ct := mustClassify(t, c, "nomp")
	got, err := NewEngine(nil).Substitute(ct, names.NewRecord("Eugénie", "Bouchard"))
	if err != nil {
		t.Fatal(err)
	}
	if got != "ebouchard" {
		t.Errorf("Substitute(nomp) with initial_first = %q, want ebouchard", got)
	}
}

func TestSubstituteMalformed(t *testing.T) {
	e := NewEngine(nil)
	ct := mustClassify(t, NewClassifier(), "prenom.nom")
	bad := []names.Record{
		nil,
		{"solo"},
		{"a", "b", "c"},
		{"", "bouchard"},
		{"eugenie", "   "},
	}
	for _, rec := range bad {
		_, err := e.Substitute(ct, rec)
		var mre *MalformedRecordError
		if !errors.As(err, &mre) {
			t.Errorf("Substitute(%v) error = %v, want *MalformedRecordError", rec, err)
		}
	}
}

func TestSubstituteUnclassified(t *testing.T) {
	_, err := NewEngine(nil).Substitute(ClassifiedTemplate{Template: "foo"}, names.NewRecord("a", "b"))
	var ute *UnrecognizedTemplateError
	if !errors.As(err, &ute) {
		t.Errorf("Substitute(unknown shape) error = %v, want *UnrecognizedTemplateError", err)
	}
}

func TestCompositeJoin(t *testing.T) {
	e := NewEngine(names.NewToolkit("table"), WithCompositeJoin("-"))
	ct := mustClassify(t, NewClassifier(), "prenom.nom")
	got, err := e.Substitute(ct, names.NewRecord("Eugénie", "Pauline  Bouchard"))
	if err != nil {
		t.Fatal(err)
	}
	if got != "eugenie.pauline-bouchard" {
		t.Errorf("Substitute = %q, want eugenie.pauline-bouchard", got)
	}
}

func TestApply(t *testing.T) {
	e := NewEngine(nil)
	ct := mustClassify(t, NewClassifier(), "prenom.nom")
	records := []names.Record{
		names.NewRecord("Eugénie", "Bouchard"),
		names.NewRecord("Aurélie", "Konaté"),
	}
	orig := []string{records[0][0], records[0][1]}

	got, err := e.Apply(ct, records, " @EDHEC.com ")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := []string{"eugenie.bouchard@edhec.com", "aurelie.konate@edhec.com"}
	if len(got) != len(want) {
		t.Fatalf("Apply returned %d addresses, want %d", len(got), len(want))
	}
	for i, a := range got {
		if a.Index != i {
			t.Errorf("got[%d].Index = %d", i, a.Index)
		}
		if a.Address != want[i] || a.Value() != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, a.Address, want[i])
		}
	}
	if records[0][0] != orig[0] || records[0][1] != orig[1] {
		t.Errorf("Apply mutated its input: %v", records[0])
	}
}

func TestApplyNoDomain(t *testing.T) {
	e := NewEngine(nil)
	ct := mustClassify(t, NewClassifier(), "pnom")
	got, err := e.Apply(ct, []names.Record{names.NewRecord("Eugénie", "Bouchard")}, "")
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Address != "" || got[0].Value() != "ebouchard" {
		t.Errorf("Apply without domain = %+v", got[0])
	}
}

func TestApplyStopsOnMalformed(t *testing.T) {
	e := NewEngine(nil)
	ct := mustClassify(t, NewClassifier(), "prenom.nom")
	_, err := e.Apply(ct, []names.Record{names.NewRecord("a", "b"), {"solo"}}, "x.fr")
	var mre *MalformedRecordError
	if !errors.As(err, &mre) {
		t.Errorf("Apply error = %v, want wrapped *MalformedRecordError", err)
	}
}

func TestCheck(t *testing.T) {
	e := NewEngine(names.NewToolkit("ascii"))
	if err := e.Check(names.NewRecord("Zoë", "Konaté")); err != nil {
		t.Errorf("Check(valid) = %v", err)
	}
	var se *names.StructureError
	for _, rec := range []names.Record{{"Zoe", "\u0301"}, {"\u0301"}, nil} {
		if err := e.Check(rec); !errors.As(err, &se) {
			t.Errorf("Check(%q) = %v, want *names.StructureError", rec, err)
		}
	}
}

func TestMalformedRecordMessage(t *testing.T) {
	err := &MalformedRecordError{Record: []string{"zoe", " "}}
	if got := err.Error(); !strings.Contains(got, "got 1 of 2") {
		t.Errorf("Error() = %q, want the non-empty count", got)
	}
}

func TestMononym(t *testing.T) {
	e := NewEngine(nil)
	got, err := e.Mononym(names.Record{"Zoë"})
	if err != nil || got != "zoe" {
		t.Errorf("Mononym(Zoë) = %q, %v", got, err)
	}
	if _, err := e.Mononym(names.NewRecord("a", "b")); err == nil {
		t.Error("Mononym of a two-slot record succeeded, want error")
	}
}
