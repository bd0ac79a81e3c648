// Package dataset reads and writes the CSV files the pipeline exchanges.
//
// Files are consumed and produced whole within a single call: open, read
// or write everything, close. Rows are surfaced as name->value maps keyed
// by the header, alongside the header itself so callers that care about
// column order (the repair pass needs the first column) still have it.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/okian/roster/internal/domain/model"
)

// Output file and directory permissions.
const (
	filePermission = 0o644
	dirPermission  = 0o755
)

// Document is a parsed CSV file: the header in source order plus one
// map-backed row per data line.
type Document struct {
	Header []string
	Rows   []model.RawRow
}

// EnsureColumns appends any of cols missing from the header. Existing
// columns keep their position; row data is untouched (absent keys read
// as empty).
func (d *Document) EnsureColumns(cols ...string) {
	for _, c := range cols {
		if !d.hasColumn(c) {
			d.Header = append(d.Header, c)
		}
	}
}

func (d *Document) hasColumn(name string) bool {
	for _, h := range d.Header {
		if h == name {
			return true
		}
	}
	return false
}

// Read parses the CSV file at path into a Document. Rows with more or
// fewer fields than the header are tolerated: short rows simply lack the
// trailing keys, surplus fields are dropped. A file without a header row
// yields ErrEmptyDataset.
func Read(path string) (*Document, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %w", ErrMissingDataset, err)
	}
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only handle

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate shifted and ragged rows

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDataset, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	doc := &Document{Header: header}
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		row := make(model.RawRow, len(header))
		for i, h := range header {
			if i < len(fields) {
				row[h] = fields[i]
			}
		}
		doc.Rows = append(doc.Rows, row)
	}

	return doc, nil
}

// Write serializes doc back to path, overwriting it. Every row is written
// with exactly the header's columns; absent keys become empty cells.
func Write(path string, doc *Document) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(doc.Header); err != nil {
		_ = f.Close()
		return fmt.Errorf("write header: %w", err)
	}

	line := make([]string, len(doc.Header))
	for _, row := range doc.Rows {
		for i, h := range doc.Header {
			line[i] = row[h]
		}
		if err := w.Write(line); err != nil {
			_ = f.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush dataset: %w", err)
	}
	return f.Close()
}
