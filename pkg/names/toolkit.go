package names

// Toolkit bundles a flatten mode with the splitting helpers. It satisfies
// the collaborator interface the substitution engine expects.
type Toolkit struct {
	flatten Flattener
}

// NewToolkit returns a toolkit using the flatten mode (table, ascii, unidecode).
func NewToolkit(mode string) *Toolkit {
	return &Toolkit{flatten: GetFlattener(mode)}
}

// Normalize lowercases and trims.
func (t *Toolkit) Normalize(name string) string { return Normalize(name) }

// Flatten transliterates with the toolkit's mode.
func (t *Toolkit) Flatten(name string) string { return t.flatten(name) }

// Split breaks a name on whitespace.
func (t *Toolkit) Split(name string) []string { return Split(name) }

// Decompose reduces a three-word name to (given, family).
func (t *Toolkit) Decompose(name string, mergeAtFront bool) (string, string, error) {
	return Decompose(name, mergeAtFront)
}
