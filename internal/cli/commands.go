package cli

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/pixr/internal/check"
	"github.com/backmassage/pixr/internal/config"
	"github.com/backmassage/pixr/internal/display"
	"github.com/backmassage/pixr/internal/probe"
	"github.com/backmassage/pixr/internal/watch"
)

func (a *app) targetSizeCommand() *cobra.Command {
	var (
		maxSize string
		wild    bool
		output  string
	)
	cmd := &cobra.Command{
		Use:   "target-size <input>",
		Short: "Re-encode an image to fit within a maximum file size",
		Long: `Searches for the highest quality whose output fits within --max-size.
JPEG quality never drops below the configured floor (50) unless --wild is
given. If the target cannot be met the closest result is still written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.NewTargetSize(args[0], maxSize, wild, output)
			if err != nil {
				return err
			}
			return a.execute(c)
		},
	}
	cmd.Flags().StringVar(&maxSize, "max-size", "", "Maximum output size, e.g. 500KB, 2MB or a byte count")
	cmd.Flags().BoolVar(&wild, "wild", false, "Allow quality down to 1 to reach the target")
	cmd.Flags().StringVarP(&output, "output-path", "o", "", "Output `PATH` (default <stem>_targeted.<ext>)")
	_ = cmd.MarkFlagRequired("max-size")
	return cmd
}

func (a *app) rescaleCommand() *cobra.Command {
	var (
		percentage int
		output     string
	)
	cmd := &cobra.Command{
		Use:   "rescale <input>",
		Short: "Resize an image by a percentage of its dimensions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.NewRescale(args[0], percentage, output)
			if err != nil {
				return err
			}
			return a.execute(c)
		},
	}
	cmd.Flags().IntVarP(&percentage, "percentage", "p", 0, "Scale factor in percent (1-100)")
	cmd.Flags().StringVarP(&output, "output-path", "o", "", "Output `PATH` (default <stem>_rescaled_<p>pct.<ext>)")
	_ = cmd.MarkFlagRequired("percentage")
	return cmd
}

func (a *app) convertCommand() *cobra.Command {
	var (
		target  config.TargetFormat
		quality int
		output  string
	)
	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert an image to another format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("quality") {
				quality = a.cfg.DefaultQuality
			}
			c, err := config.NewConvert(args[0], string(target), quality, output)
			if err != nil {
				return err
			}
			if c.Target == config.TargetWebP {
				if err := check.CheckDeps(probe.FormatWebP); err != nil {
					return err
				}
			}
			return a.execute(c)
		},
	}
	cmd.Flags().VarP(&targetFormatValue{&target}, "target-format", "t", "Output format: "+targetFormatList())
	cmd.Flags().IntVarP(&quality, "quality", "q", config.DefaultQuality, "Quality for lossy formats (1-100)")
	cmd.Flags().StringVarP(&output, "output-path", "o", "", "Output `PATH` (default <stem>_converted.<format>)")
	_ = cmd.MarkFlagRequired("target-format")
	return cmd
}

func (a *app) anonymizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "anonymize <input> [<output>]",
		Short: "Strip all metadata by re-encoding the pixel data",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var output string
			if len(args) == 2 {
				output = args[1]
			}
			c, err := config.NewAnonymize(args[0], output)
			if err != nil {
				return err
			}
			return a.execute(c)
		},
	}
}

func (a *app) watchCommand() *cobra.Command {
	var (
		maxSize string
		wild    bool
	)
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Run target-size on every image added to a directory",
		Long: `Processes the images already in <dir>, then watches it and runs
target-size on each new or rewritten image until interrupted. Files written
by pixr itself (_targeted, _converted, ...) are ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := config.ParseSize(maxSize)
			if err != nil {
				return err
			}
			display.PrintBanner(a.stdout, a.build.Version)

			w, err := watch.New(&a.cfg, a.log, args[0], size, wild)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := w.Run(ctx); err != nil {
				return err
			}
			if ctx.Err() != nil {
				a.log.Warn("Received interrupt, stopped watching %s", args[0])
			}
			if w.Stats().Failed > 0 {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&maxSize, "max-size", "", "Maximum output size, e.g. 500KB, 2MB or a byte count")
	cmd.Flags().BoolVar(&wild, "wild", false, "Allow quality down to 1 to reach the target")
	_ = cmd.MarkFlagRequired("max-size")
	return cmd
}

func (a *app) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Test-encode through every encoder and report which work",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			display.PrintBanner(a.stdout, a.build.Version)
			return check.RunCheck(&a.cfg, a.log)
		},
	}
}
