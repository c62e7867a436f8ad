package config

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Size is a parsed --max-size value.
type Size struct {
	Bytes int64
	Unit  string // "B", "KB" or "MB" as written (bare numbers report "B").
}

var sizePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(B|KB|MB)?$`)

var sizeMultipliers = map[string]float64{
	"B":  1,
	"KB": 1024,
	"MB": 1024 * 1024,
}

// ParseSize converts strings like "500KB", "2MB", "1.5 mb" or "4096" into a
// byte count. Fractional results truncate toward zero.
func ParseSize(text string) (Size, error) {
	s := strings.ToUpper(strings.TrimSpace(text))
	m := sizePattern.FindStringSubmatch(s)
	if m == nil {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidSizeFormat, text)
	}

	unit := m[2]
	if unit == "" {
		if n, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			return Size{Bytes: n, Unit: "B"}, nil
		}
		unit = "B"
	}

	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidSizeFormat, text)
	}
	bytes := v * sizeMultipliers[unit]
	if bytes >= math.MaxInt64 {
		return Size{}, fmt.Errorf("%w: %q is too large", ErrInvalidSizeFormat, text)
	}
	return Size{Bytes: int64(bytes), Unit: unit}, nil
}

func (s Size) String() string {
	return fmt.Sprintf("%d bytes", s.Bytes)
}
