package index

// Run identity columns. The ordered tuple of their string values is the
// identity key used for deduplication under replace mode.
const (
	ColLab       = "lab"
	ColCase      = "case"
	ColTags      = "tags"
	ColIters     = "iters"
	ColWarmup    = "warmup"
	ColPinCPU    = "pin_cpu"
	ColNoiseMode = "noise_mode"
	ColNoiseCPU  = "noise_cpu"
	ColBenchArgs = "bench_args"
)

// DefaultColumns is the canonical index schema, in canonical order. Schema
// union appends missing canonical columns in this order.
var DefaultColumns = []string{
	ColLab,
	ColCase,
	ColTags,
	ColIters,
	ColWarmup,
	ColPinCPU,
	ColNoiseMode,
	ColNoiseCPU,
	"unit",
	"min",
	"p50",
	"p95",
	"p99",
	"p999",
	"max",
	"mean",
	"run_dir",
	"summary_path",
	"meta_path",
	"stdout_path",
	"raw_csv_path",
	"raw_llr_path",
	"raw_unit",
	"bench_path",
	ColBenchArgs,
	"started_at",
}

// KeyColumns is the ordered identity-key tuple.
//
// Key values are compared as strings: callers must stringify numeric fields
// consistently (pin_cpu "-1" for unpinned, never ""), or logically identical
// rows will fail to match.
var KeyColumns = []string{
	ColLab,
	ColCase,
	ColTags,
	ColIters,
	ColWarmup,
	ColPinCPU,
	ColNoiseMode,
	ColNoiseCPU,
	ColBenchArgs,
}

// SummaryColumns is the fixed schema of a per-run summary file.
var SummaryColumns = []string{
	ColCase,
	ColTags,
	ColIters,
	ColWarmup,
	ColPinCPU,
	ColNoiseMode,
	ColNoiseCPU,
	"unit",
	"min",
	"p50",
	"p95",
	"p99",
	"p999",
	"max",
	"mean",
}

// mergeColumns returns the union of existing and DefaultColumns: the existing
// columns in their on-disk order, then any missing canonical column appended
// in canonical order. A nil existing yields a copy of DefaultColumns.
func mergeColumns(existing []string) []string {
	merged := make([]string, len(existing), len(existing)+len(DefaultColumns))
	copy(merged, existing)

	seen := make(map[string]struct{}, len(merged))
	for _, col := range merged {
		seen[col] = struct{}{}
	}

	for _, col := range DefaultColumns {
		if _, ok := seen[col]; !ok {
			merged = append(merged, col)
			seen[col] = struct{}{}
		}
	}

	return merged
}
