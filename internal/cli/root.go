// Package cli wires the cobra command tree to the pipeline runners. It owns
// config precedence (defaults, then YAML file, then flags), logger setup
// and the process exit code.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/backmassage/pixr/internal/config"
	"github.com/backmassage/pixr/internal/logging"
	"github.com/backmassage/pixr/internal/pipeline"
)

// BuildInfo carries the values injected into main at build time.
type BuildInfo struct {
	Version string
	Commit  string
}

// errReported marks failures that were already logged; Run exits 1
// without printing them again.
var errReported = errors.New("reported")

// errColorConflict is returned when both --color and --no-color are set.
var errColorConflict = errors.New("--color and --no-color are mutually exclusive")

// globalFlags holds the persistent flag values before they are applied
// over the config file.
type globalFlags struct {
	verbose    bool
	forceColor bool
	noColor    bool
	logFile    string
	configFile string
	version    bool
}

type app struct {
	build  BuildInfo
	cfg    config.Config
	flags  globalFlags
	log    *logging.Logger
	stdout io.Writer
	stderr io.Writer
}

// Run executes pixr with args (without the program name) and returns the
// process exit code: 0 on success, including best-effort target-size
// results, and 1 on any error or failed run.
func Run(ctx context.Context, build BuildInfo, args []string, stdout, stderr io.Writer) int {
	a := &app{build: build, cfg: config.DefaultConfig(), stdout: stdout, stderr: stderr}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if a.log != nil {
		a.log.Close()
	}
	if err == nil {
		return 0
	}
	if !errors.Is(err, errReported) {
		printError(stderr, err, a.flags.verbose || a.cfg.Verbose)
	}
	return 1
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "pixr",
		Short: "Shrink, rescale, convert and anonymize images",
		Long: `pixr re-encodes images to fit a byte budget, rescales them, converts
between formats and strips metadata.

Configuration is read from --config, $PIXR_CONFIG or
<user config dir>/pixr/config.yaml; flags override the file.`,
		Version:           fmt.Sprintf("%s (%s)", a.build.Version, a.build.Commit),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetVersionTemplate("pixr {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "Show probe traces and detailed reports")
	pf.BoolVar(&a.flags.forceColor, "color", false, "Force colored output")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "Disable colored output")
	pf.StringVarP(&a.flags.logFile, "log", "l", "", "Append log output to `FILE`")
	pf.StringVar(&a.flags.configFile, "config", "", "YAML config `FILE` (default $"+config.EnvConfigPath+")")
	root.Flags().BoolVarP(&a.flags.version, "version", "V", false, "Print version and exit")

	root.AddCommand(
		a.targetSizeCommand(),
		a.rescaleCommand(),
		a.convertCommand(),
		a.anonymizeCommand(),
		a.watchCommand(),
		a.checkCommand(),
	)
	return root
}

// setup resolves the effective config and opens the logger. It runs before
// every subcommand.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if path := config.ResolveFile(a.flags.configFile); path != "" {
		if err := config.LoadFile(path, &a.cfg); err != nil {
			return err
		}
	}
	if err := a.applyFlags(cmd); err != nil {
		return err
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.NewLogger(&a.cfg)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(a.stdout, a.stderr)
	a.log = log
	if a.cfg.ConfigFile != "" {
		log.Debug(a.cfg.Verbose, "Loaded config from %s", a.cfg.ConfigFile)
	}
	return nil
}

// applyFlags overlays explicitly set global flags onto the file config.
func (a *app) applyFlags(cmd *cobra.Command) error {
	fs := cmd.Flags()
	if fs.Changed("verbose") {
		a.cfg.Verbose = a.flags.verbose
	}
	if fs.Changed("log") {
		a.cfg.LogFile = a.flags.logFile
	}
	switch {
	case a.flags.forceColor && a.flags.noColor:
		return errColorConflict
	case a.flags.forceColor:
		a.cfg.ColorMode = config.ColorAlways
	case a.flags.noColor:
		a.cfg.ColorMode = config.ColorNever
	}
	return nil
}

// execute runs one single-file command and logs its report.
func (a *app) execute(c config.Command) error {
	r, err := pipeline.Execute(&a.cfg, c, a.log)
	if err != nil {
		return err
	}
	pipeline.LogReport(a.log, r, a.cfg.Verbose)
	if r.Outcome == pipeline.Failed {
		return errReported
	}
	return nil
}

// printError prints err as "pixr: <message>". Verbose mode adds one line
// per wrapped cause.
func printError(w io.Writer, err error, verbose bool) {
	fmt.Fprintf(w, "pixr: %v\n", err)
	if !verbose {
		return
	}
	for e := errors.Unwrap(err); e != nil; e = errors.Unwrap(e) {
		fmt.Fprintf(w, "  caused by: %v\n", e)
	}
}
