package index

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benchlab/llr/errs"
	"github.com/stretchr/testify/require"
)

func testRow(caseName string) Row {
	return Row{
		ColLab:       "lab-a",
		ColCase:      caseName,
		ColTags:      `["baseline"]`,
		ColIters:     "1000",
		ColWarmup:    "50",
		ColPinCPU:    "2",
		ColNoiseMode: "off",
		ColNoiseCPU:  "",
		ColBenchArgs: "[]",
		"unit":       "us",
		"p50":        "42",
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()

	return NewStore(filepath.Join(t.TempDir(), "index.csv"))
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	return records
}

func TestStore_Append_CreatesFileWithHeader(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Write(testRow("alpha"), ModeAppend))

	records := readCSV(t, store.Path())
	require.Len(t, records, 2)
	require.Equal(t, DefaultColumns, records[0])

	columns, rows, err := store.ReadAll()
	require.NoError(t, err)
	require.Equal(t, DefaultColumns, columns)
	require.Len(t, rows, 1)
	require.Equal(t, "alpha", rows[0][ColCase])
	require.Equal(t, "42", rows[0]["p50"])
}

func TestStore_Append_AccumulatesRows(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Write(testRow("alpha"), ModeAppend))
	require.NoError(t, store.Write(testRow("alpha"), ModeAppend))
	require.NoError(t, store.Write(testRow("beta"), ModeAppend))

	records := readCSV(t, store.Path())
	require.Len(t, records, 4, "one header plus three rows")
}

func TestStore_Skip_NeverTouchesFile(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Write(testRow("alpha"), ModeSkip))
	_, err := os.Stat(store.Path())
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, store.Write(testRow("alpha"), ModeAppend))
	before, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	require.NoError(t, store.Write(testRow("alpha"), ModeSkip))
	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestStore_Replace_DeduplicatesByIdentityKey(t *testing.T) {
	store := newTestStore(t)

	first := testRow("alpha")
	first["p50"] = "42"
	require.NoError(t, store.Write(first, ModeAppend))
	require.NoError(t, store.Write(testRow("beta"), ModeAppend))

	updated := testRow("alpha")
	updated["p50"] = "37"
	require.NoError(t, store.Write(updated, ModeReplace))

	_, rows, err := store.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byCase := map[string]Row{}
	for _, row := range rows {
		byCase[row[ColCase]] = row
	}
	require.Equal(t, "37", byCase["alpha"]["p50"])
	require.Contains(t, byCase, "beta")
}

func TestStore_Replace_DropsEveryDuplicate(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Write(testRow("alpha"), ModeAppend))
	}

	require.NoError(t, store.Write(testRow("alpha"), ModeReplace))

	_, rows, err := store.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestStore_Replace_OnMissingFile(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Write(testRow("alpha"), ModeReplace))

	columns, rows, err := store.ReadAll()
	require.NoError(t, err)
	require.Equal(t, DefaultColumns, columns)
	require.Len(t, rows, 1)
}

func TestStore_Append_MigratesOlderSchema(t *testing.T) {
	store := newTestStore(t)

	// Seed a file whose header predates most canonical columns.
	seed := "case,p50\nalpha,42\n"
	require.NoError(t, os.WriteFile(store.Path(), []byte(seed), 0o644))

	require.NoError(t, store.Write(testRow("beta"), ModeAppend))

	records := readCSV(t, store.Path())
	header := records[0]
	require.Equal(t, []string{ColCase, "p50"}, header[:2], "on-disk order is preserved")
	require.Len(t, header, len(DefaultColumns), "union adds every missing canonical column")

	// Old row keeps its values under the original columns and reads empty
	// for the new ones.
	columns, rows, err := store.ReadAll()
	require.NoError(t, err)
	require.Equal(t, header, columns)
	require.Len(t, rows, 2)
	require.Equal(t, "42", rows[0]["p50"])
	require.Equal(t, "", rows[0][ColLab])
	require.Equal(t, "beta", rows[1][ColCase])
	require.Equal(t, "lab-a", rows[1][ColLab])
}

func TestStore_Replace_MigratesOlderSchema(t *testing.T) {
	store := newTestStore(t)

	seed := "case,p50\nalpha,42\n"
	require.NoError(t, os.WriteFile(store.Path(), []byte(seed), 0o644))

	require.NoError(t, store.Write(testRow("beta"), ModeReplace))

	columns, rows, err := store.ReadAll()
	require.NoError(t, err)
	require.Len(t, columns, len(DefaultColumns))
	require.Len(t, rows, 2)
	require.Equal(t, "42", rows[0]["p50"])
}

func TestStore_Append_UnknownRowColumnsAreDropped(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Write(testRow("alpha"), ModeAppend))

	row := testRow("beta")
	row["made_up"] = "value"
	require.NoError(t, store.Write(row, ModeAppend))

	records := readCSV(t, store.Path())
	require.Equal(t, DefaultColumns, records[0])
	for _, record := range records[1:] {
		require.NotContains(t, record, "value")
	}
}

func TestStore_NewFile_AdoptsRowExtras(t *testing.T) {
	store := newTestStore(t)

	row := testRow("alpha")
	row["zeta_extra"] = "z"
	row["alpha_extra"] = "a"
	require.NoError(t, store.Write(row, ModeAppend))

	records := readCSV(t, store.Path())
	header := records[0]
	require.Equal(t, DefaultColumns, header[:len(DefaultColumns)])
	require.Equal(t, []string{"alpha_extra", "zeta_extra"}, header[len(DefaultColumns):])
}

func TestStore_ReadAll_MissingFile(t *testing.T) {
	store := newTestStore(t)

	columns, rows, err := store.ReadAll()
	require.NoError(t, err)
	require.Equal(t, DefaultColumns, columns)
	require.Empty(t, rows)
}

func TestStore_ReadAll_PadsShortRows(t *testing.T) {
	store := newTestStore(t)

	seed := strings.Join(DefaultColumns, ",") + "\nlab-a,alpha\n"
	require.NoError(t, os.WriteFile(store.Path(), []byte(seed), 0o644))

	_, rows, err := store.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "alpha", rows[0][ColCase])
	require.Equal(t, "", rows[0]["p50"])
}

func TestStore_MalformedIndex(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, os.WriteFile(store.Path(), []byte("a,\"b\nbroken"), 0o644))

	_, _, err := store.ReadAll()
	require.ErrorIs(t, err, errs.ErrMalformedIndex)
}

func TestStore_Write_InvalidMode(t *testing.T) {
	store := newTestStore(t)

	err := store.Write(testRow("alpha"), Mode(42))
	require.ErrorIs(t, err, errs.ErrInvalidMode)
}

func TestParseMode(t *testing.T) {
	for token, want := range map[string]Mode{
		"append":  ModeAppend,
		"skip":    ModeSkip,
		"replace": ModeReplace,
	} {
		mode, err := ParseMode(token)
		require.NoError(t, err)
		require.Equal(t, want, mode)
		require.Equal(t, token, mode.String())
	}

	_, err := ParseMode("upsert")
	require.ErrorIs(t, err, errs.ErrInvalidMode)
}

func TestWriteSummary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "summary.csv")

	row := testRow("alpha")
	row["run_dir"] = "should-not-appear"
	require.NoError(t, WriteSummary(path, row))

	records := readCSV(t, path)
	require.Len(t, records, 2)
	require.Equal(t, SummaryColumns, records[0])
	require.NotContains(t, records[1], "should-not-appear")

	// Rewrite replaces the previous content.
	row["p50"] = "37"
	require.NoError(t, WriteSummary(path, row))
	records = readCSV(t, path)
	require.Len(t, records, 2)
}
