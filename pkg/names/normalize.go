// Package names normalizes and decomposes person names before they are
// substituted into address templates.
package names

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Flattener lowercases a name and transliterates it to ASCII.
type Flattener func(string) string

// accents is the fixed transliteration table applied by FlattenTable.
var accents = strings.NewReplacer(
	"é", "e",
	"è", "e",
	"ê", "e",
	"ë", "e",
	"ï", "i",
	"î", "i",
	"ü", "u",
	"ù", "u",
	"à", "a",
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases a name and strips surrounding whitespace
// ("Eugenie Bouchard " -> "eugenie bouchard").
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FlattenTable lowercases, replaces the accented letters of the fixed table
// and trims. Unmapped runes and inner whitespace are kept as is.
func FlattenTable(name string) string {
	return strings.TrimSpace(accents.Replace(strings.ToLower(name)))
}

// FlattenASCII strips every combining mark after NFD decomposition (ç -> c, ñ -> n).
func FlattenASCII(name string) string {
	result, _, _ := transform.String(stripAccents, strings.ToLower(name))
	return strings.TrimSpace(result)
}

// FlattenUnidecode transliterates any script to ASCII (ß -> ss, ø -> o).
func FlattenUnidecode(name string) string {
	return Normalize(unidecode.Unidecode(Normalize(name)))
}

// GetFlattener returns the flattener for the given mode.
// Default is table.
func GetFlattener(mode string) Flattener {
	switch mode {
	case "table":
		return FlattenTable
	case "ascii":
		return FlattenASCII
	case "unidecode":
		return FlattenUnidecode
	default:
		return FlattenTable
	}
}
