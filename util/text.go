package util

import (
	"strconv"
	"strings"
)

// sizeUnits is checked in order, so two-letter suffixes come before "B".
var sizeUnits = []struct {
	suffix string
	factor int64
}{
	{"GB", 1 << 30}, {"MB", 1 << 20}, {"KB", 1 << 10},
	{"G", 1 << 30}, {"M", 1 << 20}, {"K", 1 << 10},
	{"B", 1},
}

// ParseSize reads sizes such as "25MB", "512k" or "1024" as bytes, using
// binary multiples. Empty, negative or malformed input yields def.
func ParseSize(s string, def int64) int64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	factor := int64(1)
	for _, u := range sizeUnits {
		if rest, ok := strings.CutSuffix(s, u.suffix); ok {
			s, factor = strings.TrimSpace(rest), u.factor
			break
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return def
	}
	return n * factor
}

// MaskSecret keeps the first visible bytes of an API key or webhook secret
// for log correlation. Secrets no longer than visible are fully masked.
func MaskSecret(s string, visible int) string {
	if len(s) <= visible {
		return "***"
	}
	return s[:visible] + "***"
}
