package index

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteSummary writes a run's single-row summary file: the fixed
// SummaryColumns header plus one row projected onto it.
//
// The summary is rewritten whole on every call, through a temp file and
// atomic rename like the index itself.
func WriteSummary(path string, row Row) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".summary-*.csv")
	if err != nil {
		return fmt.Errorf("create temp summary in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	err = writeTable(tmp, SummaryColumns, []Row{row})
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpPath, 0o644)
	}
	if err == nil {
		err = os.Rename(tmpPath, path)
	}
	if err != nil {
		os.Remove(tmpPath)

		return fmt.Errorf("write summary %s: %w", path, err)
	}

	return nil
}
