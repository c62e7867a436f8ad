package display

import (
	"fmt"
	"math"
)

var byteUnits = []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}

// FormatBytes renders n in binary units with one decimal ("3.2 MiB");
// values under 1 KiB are exact ("512 B").
func FormatBytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	v := float64(n) / 1024
	unit := 0
	for v >= 1024 && unit < len(byteUnits)-1 {
		v /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", v, byteUnits[unit])
}

// FormatBytesWithSign renders a size delta: "+ 1.0 MiB", "- 200 B", "0 B".
func FormatBytesWithSign(delta int64) string {
	switch {
	case delta > 0:
		return "+ " + FormatBytes(delta)
	case delta < 0:
		return "- " + FormatBytes(-delta)
	}
	return FormatBytes(0)
}

// FormatKB renders bytes as whole kilobytes (1024), rounded to nearest:
// "49KB". Target-size reports use this form.
func FormatKB(bytes int64) string {
	return fmt.Sprintf("%.0fKB", float64(bytes)/1024)
}

// PercentChange returns the change from before to after in percent. Zero
// when before is zero.
func PercentChange(before, after int64) float64 {
	if before == 0 {
		return 0
	}
	return float64(after-before) / float64(before) * 100
}

// FormatPercentChange renders PercentChange as "12.5% smaller" / "3.0% larger"
// / "same size".
func FormatPercentChange(before, after int64) string {
	pct := PercentChange(before, after)
	switch {
	case after < before:
		return fmt.Sprintf("%.1f%% smaller", math.Abs(pct))
	case after > before:
		return fmt.Sprintf("%.1f%% larger", pct)
	}
	return "same size"
}
