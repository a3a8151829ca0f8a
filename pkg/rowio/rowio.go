// Package rowio reads and writes the tabular files the batch generator
// consumes: CSV (any encoding, any delimiter) and XLSX.
package rowio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for file extensions other than csv, tsv, txt and xlsx.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Table is a header plus data rows. Rows may be shorter than the header.
type Table struct {
	Header []string
	Rows   [][]string
}

// Column returns the index of the named header, case-insensitive, or -1.
func (t *Table) Column(name string) int {
	name = strings.TrimSpace(name)
	for i, h := range t.Header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// Options tunes how files are read. Zero values mean UTF-8, comma (tab for
// .tsv) and the first sheet.
type Options struct {
	Encoding  string `yaml:"encoding"`
	Delimiter string `yaml:"delimiter"`
	Sheet     string `yaml:"sheet"`
}

// Format returns the normalized format name for a path: "csv" or "xlsx".
func Format(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return "csv", nil
	case ".xlsx":
		return "xlsx", nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// ReadFile loads a table from path, choosing the reader by extension.
func ReadFile(path string, opts Options) (*Table, error) {
	format, err := Format(path)
	if err != nil {
		return nil, err
	}
	if format == "xlsx" {
		return ReadXLSX(path, opts.Sheet)
	}
	if opts.Delimiter == "" && strings.EqualFold(filepath.Ext(path), ".tsv") {
		opts.Delimiter = "\t"
	}
	return ReadCSVFile(path, opts)
}

// WriteFile writes a table to path, choosing the writer by extension.
func WriteFile(path string, t *Table, opts Options) error {
	format, err := Format(path)
	if err != nil {
		return err
	}
	if format == "xlsx" {
		return WriteXLSX(path, t, opts.Sheet)
	}
	if opts.Delimiter == "" && strings.EqualFold(filepath.Ext(path), ".tsv") {
		opts.Delimiter = "\t"
	}
	return WriteCSVFile(path, t, opts)
}
