package names

import (
	"errors"
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Eugénie Bouchard", []string{"Eugénie", "Bouchard"}},
		{"Eugenie Pauline Bouchard", []string{"Eugenie", "Pauline", "Bouchard"}},
		{"Madonna", []string{"Madonna"}},
		{"  jean  dupont ", []string{"jean", "dupont"}},
	}
	for _, tt := range tests {
		got := Split(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Split(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
	if got := Split(""); len(got) != 0 {
		t.Errorf("Split(\"\") = %q, want no tokens", got)
	}
}

func TestClassifyStructure(t *testing.T) {
	tests := []struct {
		input string
		want  Structure
	}{
		{"Bouchard", StructureSingle},
		{" Bouchard ", StructureSingle},
		{"Eugenie Bouchard", StructureMulti},
		{"Eugenie Pauline Bouchard", StructureMulti},
		{"", StructureEmpty},
		{"   ", StructureEmpty},
	}
	for _, tt := range tests {
		got := ClassifyStructure(tt.input)
		if got != tt.want {
			t.Errorf("ClassifyStructure(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDecompose(t *testing.T) {
	given, family, err := Decompose("Eugenie Pauline Bouchard", true)
	if err != nil {
		t.Fatalf("Decompose(mergeAtFront=true): %v", err)
	}
	if given != "Eugenie Pauline" || family != "Bouchard" {
		t.Errorf("Decompose(mergeAtFront=true) = (%q, %q), want (\"Eugenie Pauline\", \"Bouchard\")", given, family)
	}

	given, family, err = Decompose("Eugenie Pauline Bouchard", false)
	if err != nil {
		t.Fatalf("Decompose(mergeAtFront=false): %v", err)
	}
	if given != "Eugenie" || family != "Pauline Bouchard" {
		t.Errorf("Decompose(mergeAtFront=false) = (%q, %q), want (\"Eugenie\", \"Pauline Bouchard\")", given, family)
	}
}

func TestDecompose_WrongTokenCount(t *testing.T) {
	for _, input := range []string{"Eugenie Bouchard", "Bouchard", "", "A B C D"} {
		_, _, err := Decompose(input, true)
		var se *StructureError
		if !errors.As(err, &se) {
			t.Fatalf("Decompose(%q) error = %v, want *StructureError", input, err)
		}
		if se.Name != input {
			t.Errorf("StructureError.Name = %q, want %q", se.Name, input)
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		input        string
		mergeAtFront bool
		want         Record
	}{
		{"Madonna", true, Record{"Madonna"}},
		{"Eugenie Bouchard", true, Record{"Eugenie", "Bouchard"}},
		{"Eugenie Pauline Bouchard", true, Record{"Eugenie Pauline", "Bouchard"}},
		{"Eugenie Pauline Bouchard", false, Record{"Eugenie", "Pauline Bouchard"}},
	}
	for _, tt := range tests {
		got, err := Resolve(tt.input, tt.mergeAtFront)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", tt.input, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Resolve(%q, %v) = %q, want %q", tt.input, tt.mergeAtFront, got, tt.want)
		}
	}

	for _, input := range []string{"", "Jean Marie Paul Dupont"} {
		if _, err := Resolve(input, true); err == nil {
			t.Errorf("Resolve(%q) expected error", input)
		}
	}
}

func TestRecordAccessors(t *testing.T) {
	r := NewRecord("eugenie", "bouchard")
	if r.Given() != "eugenie" || r.Family() != "bouchard" {
		t.Errorf("NewRecord accessors = (%q, %q)", r.Given(), r.Family())
	}
	if r.IsMononym() {
		t.Error("two-slot record reported as mononym")
	}
	m := Record{"madonna"}
	if !m.IsMononym() || m.Family() != "" {
		t.Errorf("mononym accessors = (%q, %q, %v)", m.Given(), m.Family(), m.IsMononym())
	}
}

func TestToolkit(t *testing.T) {
	tk := NewToolkit("ascii")
	if got := tk.Flatten("François"); got != "francois" {
		t.Errorf("Toolkit(ascii).Flatten = %q, want francois", got)
	}
	if got := tk.Normalize(" ABC "); got != "abc" {
		t.Errorf("Toolkit.Normalize = %q, want abc", got)
	}
	g, f, err := tk.Decompose("a b c", true)
	if err != nil || g != "a b" || f != "c" {
		t.Errorf("Toolkit.Decompose = (%q, %q, %v)", g, f, err)
	}
}
