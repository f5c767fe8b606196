package index

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/benchlab/llr/errs"
)

// Mode selects how Store.Write updates the index file.
type Mode uint8

const (
	// ModeAppend appends the row under the current on-disk schema.
	ModeAppend Mode = iota
	// ModeSkip performs no file mutation at all.
	ModeSkip
	// ModeReplace drops every existing row with the incoming row's identity
	// key, then appends the incoming row and rewrites the file.
	ModeReplace
)

func (m Mode) String() string {
	switch m {
	case ModeAppend:
		return "append"
	case ModeSkip:
		return "skip"
	case ModeReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// ParseMode parses an update-mode token ("append", "skip" or "replace").
func ParseMode(token string) (Mode, error) {
	switch token {
	case "append":
		return ModeAppend, nil
	case "skip":
		return ModeSkip, nil
	case "replace":
		return ModeReplace, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidMode, token)
	}
}

// Store accumulates run rows into a single index file.
//
// A Store holds no open file handles; every Write is a complete
// read-merge-write or append cycle against the path. It is not safe for
// concurrent writers: replace mode is last-writer-wins across processes.
type Store struct {
	path string
}

// NewStore creates a Store bound to the index file at path. The file is
// created on first write.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the index file path.
func (s *Store) Path() string {
	return s.path
}

// Write records one run row according to mode.
//
// Append serializes the row under the current on-disk schema: columns the
// row lacks are written empty, row fields outside the schema are dropped.
// If the on-disk header predates columns in the canonical schema, the file
// is first migrated to the union schema, preserving every stored value
// under its original column. A missing or empty file gets a header line
// using the canonical schema merged with any columns the row introduces.
//
// Replace reads the whole file, migrates the schema the same way, discards
// every row whose identity key equals the incoming row's, appends the row
// and atomically rewrites the file.
//
// Skip does nothing.
//
// If the write cannot complete the prior file state remains intact: rewrites
// go through a temp file renamed over the target.
func (s *Store) Write(row Row, mode Mode) error {
	switch mode {
	case ModeSkip:
		return nil
	case ModeAppend:
		return s.appendRow(row)
	case ModeReplace:
		return s.replaceRow(row)
	default:
		return fmt.Errorf("%w: %d", errs.ErrInvalidMode, mode)
	}
}

// ReadAll returns the on-disk schema and every stored row.
//
// A missing file yields the canonical schema and no rows. Consumers must
// treat unknown trailing columns as optional.
func (s *Store) ReadAll() ([]string, []Row, error) {
	columns, rows, err := s.readFile()
	if err != nil {
		return nil, nil, err
	}
	if columns == nil {
		return mergeColumns(nil), nil, nil
	}

	return columns, rows, nil
}

func (s *Store) appendRow(row Row) error {
	columns, err := s.ensureColumns(row)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open index %s: %w", s.path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat index %s: %w", s.path, err)
	}

	w := csv.NewWriter(file)
	if stat.Size() == 0 {
		if err := w.Write(columns); err != nil {
			return fmt.Errorf("write index header %s: %w", s.path, err)
		}
	}
	if err := w.Write(row.project(columns)); err != nil {
		return fmt.Errorf("write index row %s: %w", s.path, err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write index row %s: %w", s.path, err)
	}

	return nil
}

func (s *Store) replaceRow(row Row) error {
	columns, rows, err := s.readFile()
	if err != nil {
		return err
	}

	if columns == nil {
		// No file yet: adopt the canonical schema plus whatever the row introduces.
		columns = mergeColumns(nil)
		columns = append(columns, row.extraColumns(columns)...)
	} else {
		columns = mergeColumns(columns)
	}

	key := row.Key()
	kept := rows[:0]
	for _, existing := range rows {
		if existing.Key() != key {
			kept = append(kept, existing)
		}
	}
	kept = append(kept, row)

	return s.rewrite(columns, kept)
}

// ensureColumns returns the schema appends must use, migrating the on-disk
// file first when its header predates canonical columns.
func (s *Store) ensureColumns(row Row) ([]string, error) {
	existing, err := s.readHeader()
	if err != nil {
		return nil, err
	}
	if existing == nil {
		columns := mergeColumns(nil)

		return append(columns, row.extraColumns(columns)...), nil
	}

	merged := mergeColumns(existing)
	if len(merged) == len(existing) {
		return existing, nil
	}

	// Older schema on disk: rewrite with the union before appending.
	_, rows, err := s.readFile()
	if err != nil {
		return nil, err
	}
	if err := s.rewrite(merged, rows); err != nil {
		return nil, err
	}

	return merged, nil
}

// readHeader returns the on-disk column schema, or nil for a missing or
// empty file.
func (s *Store) readHeader() ([]string, error) {
	file, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open index %s: %w", s.path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errs.ErrMalformedIndex, s.path, err)
	}

	return header, nil
}

// readFile parses the whole index. Returns a nil schema for a missing or
// empty file.
func (s *Store) readFile() ([]string, []Row, error) {
	file, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open index %s: %w", s.path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	// Rows written before a schema migration may be shorter than the header.
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", errs.ErrMalformedIndex, s.path, err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	columns := records[0]
	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return columns, rows, nil
}

// rewrite atomically replaces the index with the given schema and rows.
func (s *Store) rewrite(columns []string, rows []Row) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".index-*.csv")
	if err != nil {
		return fmt.Errorf("create temp index in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	err = writeTable(tmp, columns, rows)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpPath, 0o644)
	}
	if err == nil {
		err = os.Rename(tmpPath, s.path)
	}
	if err != nil {
		os.Remove(tmpPath)

		return fmt.Errorf("rewrite index %s: %w", s.path, err)
	}

	return nil
}

func writeTable(w io.Writer, columns []string, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.project(columns)); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}
