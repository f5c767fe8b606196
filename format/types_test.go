package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseUnit(t *testing.T) {
	tests := []struct {
		token string
		want  Unit
		ok    bool
	}{
		{"ns", UnitNs, true},
		{"us", UnitUs, true},
		{"ms", UnitMs, true},
		{"s", UnitS, true},
		{"auto", UnitAuto, true},
		{"", 0, false},
		{"sec", 0, false},
		{"NS", 0, false},
	}

	for _, tt := range tests {
		unit, ok := ParseUnit(tt.token)
		require.Equal(t, tt.ok, ok, "token %q", tt.token)
		if ok {
			require.Equal(t, tt.want, unit, "token %q", tt.token)
		}
	}
}

func TestUnit_String_RoundTrip(t *testing.T) {
	for _, unit := range []Unit{UnitNs, UnitUs, UnitMs, UnitS, UnitAuto} {
		parsed, ok := ParseUnit(unit.String())
		require.True(t, ok)
		require.Equal(t, unit, parsed)
	}
}

func TestUnit_ScaleNs(t *testing.T) {
	require.Equal(t, int64(1), UnitNs.ScaleNs())
	require.Equal(t, int64(1_000), UnitUs.ScaleNs())
	require.Equal(t, int64(1_000_000), UnitMs.ScaleNs())
	require.Equal(t, int64(1_000_000_000), UnitS.ScaleNs())
	require.Equal(t, int64(0), UnitAuto.ScaleNs())
	require.Equal(t, int64(0), Unit(7).ScaleNs())
}

func TestUnit_IsValid(t *testing.T) {
	require.True(t, UnitNs.IsValid())
	require.True(t, UnitS.IsValid())
	require.False(t, UnitAuto.IsValid())
	require.False(t, Unit(4).IsValid())
}

func TestChooseUnit_Thresholds(t *testing.T) {
	tests := []struct {
		minNs int64
		want  Unit
	}{
		{0, UnitNs},
		{99_999, UnitNs},
		{100_000, UnitUs},
		{99_999_999, UnitUs},
		{100_000_000, UnitMs},
		{99_999_999_999, UnitMs},
		{100_000_000_000, UnitS},
		{-5, UnitNs},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, ChooseUnit(tt.minNs), "minNs %d", tt.minNs)
	}
}
