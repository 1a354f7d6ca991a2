// Package size formats and parses byte counts.
package size

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	_          = iota
	KiB uint64 = 1 << (10 * iota)
	MiB
	GiB
	TiB
)

var sizeRegex = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*([KMGT]?I?B?)?$`)

// BestUnit renders a byte count in bytes, MiB or GiB, whichever fits.
// Below 1 MiB the exact count is kept; above it two decimals are shown.
func BestUnit(bytes uint64) string {
	switch {
	case bytes < MiB:
		return fmt.Sprintf("%d bytes", bytes)
	case bytes < GiB:
		return fmt.Sprintf("%.2f MiB", float64(bytes)/float64(MiB))
	default:
		return fmt.Sprintf("%.2f GiB", float64(bytes)/float64(GiB))
	}
}

// WithBestUnit renders "<bytes> (<best unit>)".
func WithBestUnit(bytes uint64) string {
	return fmt.Sprintf("%d (%s)", bytes, BestUnit(bytes))
}

// Percent renders a ratio as a whole-number percentage with thousands
// separators, rounding half away from zero.
func Percent(numerator, denominator uint64) string {
	if denominator == 0 {
		return "0"
	}
	pct := float64(numerator) / float64(denominator) * 100
	return humanize.Comma(int64(math.Round(pct)))
}

// ParseSize parses a human-readable size string into bytes.
// Supports: B, K/KB/KiB, M/MB/MiB, G/GB/GiB, T/TB/TiB (case-insensitive, all binary).
// Examples: "10G", "512MiB", "1TB", "1024", "1.5GB"
func ParseSize(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	matches := sizeRegex.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid size format: %q", s)
	}

	numStr := matches[1]
	unit := strings.ToUpper(matches[2])

	num, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %q", numStr)
	}

	var multiplier uint64
	switch unit {
	case "", "B":
		multiplier = 1
	case "K", "KB", "KIB":
		multiplier = KiB
	case "M", "MB", "MIB":
		multiplier = MiB
	case "G", "GB", "GIB":
		multiplier = GiB
	case "T", "TB", "TIB":
		multiplier = TiB
	default:
		return 0, fmt.Errorf("unknown unit: %q", unit)
	}

	return uint64(num * float64(multiplier)), nil
}
