package names

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Eugenie Bouchard ", "eugenie bouchard"},
		{"  DUPONT", "dupont"},
		{"Élodie", "élodie"},
		{"", ""},
	}
	for _, tt := range tests {
		got := Normalize(tt.input)
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFlattenTable(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Eugénie Bouchard", "eugenie bouchard"},
		{"Aurélie Konaté", "aurelie konate"},
		{"Hélène Mère", "helene mere"},
		{"Noël Anaïs", "noel anais"},
		{"Benoît Joël", "benoit joel"},
		{"Raphaël Müller", "raphael muller"},
		{"Où à", "ou a"},
		{"ÉRIC", "eric"},
		{"François", "françois"}, // ç is not in the table
		{"  Jean   Paul ", "jean   paul"},
		{"", ""},
	}
	for _, tt := range tests {
		got := FlattenTable(tt.input)
		if got != tt.want {
			t.Errorf("FlattenTable(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFlattenIdempotent(t *testing.T) {
	inputs := []string{
		"Eugénie Bouchard",
		"ÉLOÏSE",
		"  Ùrsula  ",
		"François Strauß",
		"Zoë",
		"",
	}
	for _, mode := range []string{"table", "ascii", "unidecode"} {
		flatten := GetFlattener(mode)
		for _, input := range inputs {
			once := flatten(input)
			twice := flatten(once)
			if once != twice {
				t.Errorf("%s: Flatten(Flatten(%q)) = %q, want %q", mode, input, twice, once)
			}
		}
	}
}

func TestFlattenASCII(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"FRANÇOIS", "francois"},
		{"Ñoño", "nono"},
		{"Eugénie Bouchard", "eugenie bouchard"},
	}
	for _, tt := range tests {
		got := FlattenASCII(tt.input)
		if got != tt.want {
			t.Errorf("FlattenASCII(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFlattenUnidecode(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Strauß", "strauss"},
		{"Éloïse", "eloise"},
		{"Aurélie Konaté", "aurelie konate"},
	}
	for _, tt := range tests {
		got := FlattenUnidecode(tt.input)
		if got != tt.want {
			t.Errorf("FlattenUnidecode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGetFlattener(t *testing.T) {
	tests := []struct {
		mode  string
		input string
		want  string
	}{
		{"table", "François Hélène", "françois helene"},
		{"ascii", "François Hélène", "francois helene"},
		{"", "François Hélène", "françois helene"},        // default = table
		{"unknown", "François Hélène", "françois helene"}, // fallback = table
	}
	for _, tt := range tests {
		got := GetFlattener(tt.mode)(tt.input)
		if got != tt.want {
			t.Errorf("GetFlattener(%q)(%q) = %q, want %q", tt.mode, tt.input, got, tt.want)
		}
	}
}
