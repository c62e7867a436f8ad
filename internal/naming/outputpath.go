package naming

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Suffixes appended to the input stem by each command.
const (
	SuffixTargeted   = "_targeted"
	SuffixConverted  = "_converted"
	SuffixAnonymized = "_anonymized"
)

// RescaledSuffix returns the suffix for a rescale by pct percent.
func RescaledSuffix(pct int) string {
	return fmt.Sprintf("_rescaled_%dpct", pct)
}

// OutputPath returns override when set; otherwise the input's directory
// joined with <stem><suffix><ext>. ext includes the leading dot; empty keeps
// the input extension.
func OutputPath(input, override, suffix, ext string) string {
	if override != "" {
		return override
	}
	base := filepath.Base(input)
	inExt := filepath.Ext(base)
	stem := strings.TrimSuffix(base, inExt)
	if ext == "" {
		ext = inExt
	}
	return filepath.Join(filepath.Dir(input), stem+suffix+ext)
}

var derivedStem = regexp.MustCompile(`(_targeted|_converted|_anonymized|_rescaled_\d+pct)(-\d+)?$`)

// IsDerived reports whether path looks like a file pixr produced.
func IsDerived(path string) bool {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return derivedStem.MatchString(stem)
}
