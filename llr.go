// Package llr persists and retrieves benchmark timing measurements.
//
// Two independent components compose through the filesystem:
//
//   - The sample codec (blob, encoding, section, compress packages) archives
//     a run's ordered nanosecond samples as an LLR container: a
//     self-describing header plus a delta/zigzag/varint payload, wrapped in
//     an outer lossless compressor (Zstd at maximum level by default).
//   - The result index store (index package) accumulates one summary row per
//     run into a CSV index whose column schema grows without data loss, with
//     append, skip and replace-by-identity-key update modes.
//
// # Basic Usage
//
// Archiving a run's samples:
//
//	hdr := section.RawHeader{
//	    CaseName: "fork_exec_wait",
//	    Tags:     []string{"baseline"},
//	    Iters:    1000,
//	    PinCPU:   2,
//	}
//	hdr, err := llr.EncodeFile("results/run-01/raw.llr.zst", samples, hdr)
//
// Reading them back, in microseconds:
//
//	hdr, samples, err := llr.DecodeFile(path, blob.WithDecodeUnit(format.UnitUs))
//
// Recording the run in the index:
//
//	store := index.NewStore("results/index.csv")
//	err := store.Write(row, index.ModeReplace)
//
// This package provides convenient top-level wrappers; for fine-grained
// control use the blob and index packages directly.
package llr

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/benchlab/llr/blob"
	"github.com/benchlab/llr/format"
	"github.com/benchlab/llr/section"
)

// Conventional file names inside a run directory.
const (
	// RawContainerName is the archived LLR container of a run's raw samples.
	RawContainerName = "raw.llr.zst"
	// RawCSVName is the benchmark executable's raw per-sample CSV output.
	RawCSVName = "raw.csv"
)

// Encode encodes samples into an LLR container.
//
// Returns the container bytes and the header with Unit and SampleCount
// stamped. See blob.SampleEncoder for options.
func Encode(samples []int64, hdr section.RawHeader, opts ...blob.SampleEncoderOption) ([]byte, section.RawHeader, error) {
	encoder, err := blob.NewSampleEncoder(opts...)
	if err != nil {
		return nil, hdr, err
	}

	return encoder.Encode(hdr, samples)
}

// Decode decodes an LLR container into its header and samples.
// Samples are produced in nanoseconds unless blob.WithDecodeUnit overrides.
func Decode(data []byte, opts ...blob.SampleDecoderOption) (section.RawHeader, []int64, error) {
	decoder, err := blob.NewSampleDecoder(opts...)
	if err != nil {
		return section.RawHeader{}, nil, err
	}

	return decoder.Decode(data)
}

// ChooseUnit selects the storage unit for the given minimum raw nanosecond
// sample value, using the same thresholds automatic encoding applies.
func ChooseUnit(minNs int64) format.Unit {
	return format.ChooseUnit(minNs)
}

// EncodeFile encodes samples and writes the container to path.
//
// The container is written to a temp file in the same directory and renamed
// over the target, so a crash mid-write never leaves a corrupt archive.
func EncodeFile(path string, samples []int64, hdr section.RawHeader, opts ...blob.SampleEncoderOption) (section.RawHeader, error) {
	data, hdr, err := Encode(samples, hdr, opts...)
	if err != nil {
		return hdr, err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".llr-*.tmp")
	if err != nil {
		return hdr, fmt.Errorf("create temp container in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	_, err = tmp.Write(data)
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

		return hdr, fmt.Errorf("write container %s: %w", path, err)
	}

	return hdr, nil
}

// DecodeFile reads and decodes the LLR container at path.
func DecodeFile(path string, opts ...blob.SampleDecoderOption) (section.RawHeader, []int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return section.RawHeader{}, nil, fmt.Errorf("read container %s: %w", path, err)
	}

	hdr, samples, err := Decode(data, opts...)
	if err != nil {
		return section.RawHeader{}, nil, fmt.Errorf("decode container %s: %w", path, err)
	}

	return hdr, samples, nil
}

// LoadSamples loads a run directory's sample sequence, preferring the LLR
// container and falling back to the raw CSV for runs that predate archiving.
//
// Container samples are produced in the requested unit. Raw CSV values are
// nanoseconds and are returned as-is regardless of unit, matching the
// pre-archival data exactly.
func LoadSamples(runDir string, unit format.Unit) ([]int64, error) {
	containerPath := filepath.Join(runDir, RawContainerName)
	if _, err := os.Stat(containerPath); err == nil {
		_, samples, err := DecodeFile(containerPath, blob.WithDecodeUnit(unit))

		return samples, err
	}

	csvPath := filepath.Join(runDir, RawCSVName)
	if _, err := os.Stat(csvPath); err == nil {
		return ReadRawCSV(csvPath)
	}

	return nil, fmt.Errorf("no raw data in %s", runDir)
}

// ReadRawCSV reads the benchmark executable's raw per-sample CSV: a header
// row followed by one row per sample with the nanosecond value in the second
// column.
func ReadRawCSV(path string) ([]int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read raw csv %s: %w", path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	// Skip the header row.
	if _, err := r.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, fmt.Errorf("read raw csv %s: %w", path, err)
	}

	var samples []int64
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read raw csv %s: %w", path, err)
		}
		if len(record) == 0 {
			continue
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("invalid raw csv row in %s: %v", path, record)
		}

		ns, err := strconv.ParseInt(record[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid raw csv value in %s: %w", path, err)
		}
		samples = append(samples, ns)
	}

	return samples, nil
}
