package size

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestUnit(t *testing.T) {
	tests := []struct {
		input uint64
		want  string
	}{
		{0, "0 bytes"},
		{1, "1 bytes"},
		{1023, "1023 bytes"},
		{KiB, "1024 bytes"},
		{MiB - 1, "1048575 bytes"},
		{MiB, "1.00 MiB"},
		{MiB + MiB/2, "1.50 MiB"},
		{512 * MiB, "512.00 MiB"},
		{GiB - 1, "1024.00 MiB"},
		{GiB, "1.00 GiB"},
		{2 * GiB, "2.00 GiB"},
		{GiB + GiB/4, "1.25 GiB"},
		{TiB, "1024.00 GiB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, BestUnit(tt.input))
		})
	}
}

func TestBestUnitRanges(t *testing.T) {
	for _, b := range []uint64{0, 17, 4096, MiB - 1} {
		assert.True(t, strings.HasSuffix(BestUnit(b), " bytes"), "BestUnit(%d)", b)
	}
	for _, b := range []uint64{MiB, 3 * MiB, 700 * MiB, GiB - 1} {
		assert.True(t, strings.HasSuffix(BestUnit(b), " MiB"), "BestUnit(%d)", b)
	}
	for _, b := range []uint64{GiB, 64 * GiB, 3 * TiB} {
		assert.True(t, strings.HasSuffix(BestUnit(b), " GiB"), "BestUnit(%d)", b)
	}
}

func TestWithBestUnit(t *testing.T) {
	assert.Equal(t, "1073741824 (1.00 GiB)", WithBestUnit(GiB))
	assert.Equal(t, "512 (512 bytes)", WithBestUnit(512))
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name        string
		numerator   uint64
		denominator uint64
		want        string
	}{
		{"double", 2 * GiB, GiB, "200"},
		{"equal", GiB, GiB, "100"},
		{"half", 512 * MiB, GiB, "50"},
		{"rounds half up", 1, 200, "1"},
		{"rounds down", 1, 300, "0"},
		{"thousands separator", 64 * GiB, 32 * MiB, "204,800"},
		{"zero denominator", GiB, 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percent(tt.numerator, tt.denominator))
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		input   string
		want    uint64
		wantErr bool
	}{
		{"1024", 1024, false},
		{"1024B", 1024, false},
		{"1K", KiB, false},
		{"1KiB", KiB, false},
		{"1M", MiB, false},
		{"512MiB", 512 * MiB, false},
		{"1G", GiB, false},
		{"1gb", GiB, false},
		{"2GiB", 2 * GiB, false},
		{"1T", TiB, false},
		{"1.5G", uint64(1.5 * float64(GiB)), false},
		{" 10G ", 10 * GiB, false},
		{"10 G", 10 * GiB, false},

		{"", 0, true},
		{"abc", 0, true},
		{"10X", 0, true},
		{"-10G", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
