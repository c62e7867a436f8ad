package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/backmassage/pixr/internal/config"
)

// targetFormatValue implements pflag.Value for --target-format so invalid
// formats are rejected while flags are parsed.
type targetFormatValue struct {
	p *config.TargetFormat
}

var _ pflag.Value = (*targetFormatValue)(nil)

func (v *targetFormatValue) String() string {
	if v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (v *targetFormatValue) Set(s string) error {
	t, err := config.ParseTargetFormat(s)
	if err != nil {
		return err
	}
	*v.p = t
	return nil
}

func (v *targetFormatValue) Type() string { return "format" }

func targetFormatList() string {
	names := make([]string, len(config.TargetFormats))
	for i, f := range config.TargetFormats {
		names[i] = string(f)
	}
	return strings.Join(names, " | ")
}
