package pattern

import (
	"fmt"
	"strings"
)

// UnrecognizedTemplateError is returned when a template matches none of the
// canonical shapes. It is fatal to the run that configured the template.
type UnrecognizedTemplateError struct {
	Template string
	Reason   string
}

func (e *UnrecognizedTemplateError) Error() string {
	return fmt.Sprintf("unrecognized template %q: %s", e.Template, e.Reason)
}

// MalformedRecordError is returned when a record reaches substitution
// without being resolved to exactly two non-empty tokens.
type MalformedRecordError struct {
	Record []string
}

func (e *MalformedRecordError) Error() string {
	nonEmpty := 0
	for _, tok := range e.Record {
		if strings.TrimSpace(tok) != "" {
			nonEmpty++
		}
	}
	return fmt.Sprintf("malformed record %q: want exactly 2 non-empty tokens, got %d of %d",
		e.Record, nonEmpty, len(e.Record))
}
