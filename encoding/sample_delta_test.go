package encoding

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/benchlab/llr/errs"
	"github.com/benchlab/llr/format"
	"github.com/stretchr/testify/require"
)

func encodeAll(t *testing.T, unit format.Unit, samples []int64) []byte {
	t.Helper()

	var buf bytes.Buffer
	enc, err := NewSampleDeltaEncoder(unit, &buf)
	require.NoError(t, err)
	defer enc.Finish()

	require.NoError(t, enc.WriteSlice(samples))
	require.NoError(t, enc.Flush())
	require.Equal(t, len(samples), enc.Len())

	return buf.Bytes()
}

func TestSampleDeltaEncoder_RoundTrip_Ns(t *testing.T) {
	samples := []int64{42, 40, 41, 1_000_000, 999_999, 0, -7, math.MaxInt64 / 2}

	payload := encodeAll(t, format.UnitNs, samples)

	decoded, err := NewSampleDeltaDecoder().Decode(payload, uint64(len(samples)), format.UnitNs, format.UnitNs)
	require.NoError(t, err)
	require.Equal(t, samples, decoded)
}

func TestSampleDeltaEncoder_RoundTrip_SingleSample(t *testing.T) {
	payload := encodeAll(t, format.UnitNs, []int64{12345})

	decoded, err := NewSampleDeltaDecoder().Decode(payload, 1, format.UnitNs, format.UnitNs)
	require.NoError(t, err)
	require.Equal(t, []int64{12345}, decoded)
}

func TestSampleDeltaEncoder_RoundTrip_LargeCount(t *testing.T) {
	// Enough samples to force several chunk flushes.
	samples := make([]int64, 200_000)
	value := int64(1_000)
	for i := range samples {
		value += int64(i%17) - 8
		samples[i] = value
	}

	payload := encodeAll(t, format.UnitNs, samples)

	decoded, err := NewSampleDeltaDecoder().Decode(payload, uint64(len(samples)), format.UnitNs, format.UnitNs)
	require.NoError(t, err)
	require.Equal(t, samples, decoded)
}

func TestSampleDeltaEncoder_ScalesWithRoundHalfUp(t *testing.T) {
	// 1500ns -> 2us (tie rounds up), 1499ns -> 1us, 2499ns -> 2us.
	payload := encodeAll(t, format.UnitUs, []int64{1_500, 1_499, 2_499})

	decoded, err := NewSampleDeltaDecoder().Decode(payload, 3, format.UnitUs, format.UnitUs)
	require.NoError(t, err)
	require.Equal(t, []int64{2, 1, 2}, decoded)
}

func TestSampleDeltaEncoder_NegativeScaling_MatchesFloorDivision(t *testing.T) {
	// Floor division: (-1501+500)/1000 rounds toward negative infinity.
	payload := encodeAll(t, format.UnitUs, []int64{-1_500, -1_501, -500})

	decoded, err := NewSampleDeltaDecoder().Decode(payload, 3, format.UnitUs, format.UnitUs)
	require.NoError(t, err)
	require.Equal(t, []int64{-1, -2, 0}, decoded)
}

func TestSampleDeltaEncoder_RejectsDeltaOverflow(t *testing.T) {
	var buf bytes.Buffer
	enc, err := NewSampleDeltaEncoder(format.UnitNs, &buf)
	require.NoError(t, err)
	defer enc.Finish()

	require.NoError(t, enc.Write(-2))

	err = enc.Write(math.MaxInt64)
	require.ErrorIs(t, err, errs.ErrDeltaOverflow)
}

func TestSampleDeltaEncoder_RejectsAutoUnit(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewSampleDeltaEncoder(format.UnitAuto, &buf)
	require.ErrorIs(t, err, errs.ErrInvalidUnit)
}

func TestSampleDeltaDecoder_CrossUnitReScales(t *testing.T) {
	// Stored in us, decoded to ns: values come back multiplied out.
	payload := encodeAll(t, format.UnitUs, []int64{100_000, 150_000, 250_000, 249_999})

	decoded, err := NewSampleDeltaDecoder().Decode(payload, 4, format.UnitUs, format.UnitNs)
	require.NoError(t, err)
	require.Equal(t, []int64{100_000, 150_000, 250_000, 250_000}, decoded)
}

func TestSampleDeltaDecoder_StopsAtCount_IgnoresTrailingBytes(t *testing.T) {
	payload := encodeAll(t, format.UnitNs, []int64{10, 20, 30})
	padded := append(append([]byte(nil), payload...), 0x00, 0x00, 0x00)

	decoded, err := NewSampleDeltaDecoder().Decode(padded, 3, format.UnitNs, format.UnitNs)
	require.NoError(t, err)
	require.Equal(t, []int64{10, 20, 30}, decoded)
}

func TestSampleDeltaDecoder_TruncatedPayload(t *testing.T) {
	payload := encodeAll(t, format.UnitNs, []int64{10, 20, 30})

	// Declared count exceeds what the payload holds.
	_, err := NewSampleDeltaDecoder().Decode(payload, 4, format.UnitNs, format.UnitNs)
	require.ErrorIs(t, err, errs.ErrTruncatedPayload)

	// Payload cut inside a varint.
	_, err = NewSampleDeltaDecoder().Decode([]byte{0x80}, 1, format.UnitNs, format.UnitNs)
	require.ErrorIs(t, err, errs.ErrTruncatedPayload)
}

func TestSampleDeltaDecoder_CountBeyondPayloadBound(t *testing.T) {
	payload := encodeAll(t, format.UnitNs, []int64{10, 20, 30})

	// A corrupted count field must fail cleanly before any allocation sized
	// from it, no matter how large the value is.
	for _, count := range []uint64{uint64(len(payload)) + 1, 1 << 28, 1 << 62} {
		_, err := NewSampleDeltaDecoder().Decode(payload, count, format.UnitNs, format.UnitNs)
		require.ErrorIs(t, err, errs.ErrTruncatedPayload, "count %d", count)
	}
}

func TestSampleDeltaEncoder_RejectsScaleOverflow(t *testing.T) {
	var buf bytes.Buffer
	enc, err := NewSampleDeltaEncoder(format.UnitUs, &buf)
	require.NoError(t, err)
	defer enc.Finish()

	// Adding the rounding bias would wrap past MaxInt64.
	err = enc.Write(math.MaxInt64 - 100)
	require.ErrorIs(t, err, errs.ErrScaleOverflow)
}

func TestSampleDeltaDecoder_CrossUnitScaleOverflow(t *testing.T) {
	// A stored seconds value whose nanosecond reconstruction overflows int64.
	value := int64(1) << 40
	payload := binary.AppendUvarint(nil, uint64(value<<1)^uint64(value>>63))

	_, err := NewSampleDeltaDecoder().Decode(payload, 1, format.UnitS, format.UnitNs)
	require.ErrorIs(t, err, errs.ErrScaleOverflow)
}

func TestSampleDeltaDecoder_VarintOverflow(t *testing.T) {
	_, err := NewSampleDeltaDecoder().Decode(bytes.Repeat([]byte{0xFF}, 11), 1, format.UnitNs, format.UnitNs)
	require.ErrorIs(t, err, errs.ErrVarintOverflow)
}

func TestSampleDeltaDecoder_InvalidUnits(t *testing.T) {
	_, err := NewSampleDeltaDecoder().Decode(nil, 0, format.UnitAuto, format.UnitNs)
	require.ErrorIs(t, err, errs.ErrInvalidUnit)

	_, err = NewSampleDeltaDecoder().Decode(nil, 0, format.UnitNs, format.UnitAuto)
	require.ErrorIs(t, err, errs.ErrInvalidUnit)
}

func TestSampleDeltaDecoder_ZeroCount(t *testing.T) {
	decoded, err := NewSampleDeltaDecoder().Decode(nil, 0, format.UnitNs, format.UnitNs)
	require.NoError(t, err)
	require.Empty(t, decoded)
}
