package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/funvibe/cadenza/internal/config"
	"github.com/funvibe/cadenza/internal/logger"
)

// errAnalysisFailed is returned after a failing report has been printed.
var errAnalysisFailed = errors.New("analysis failed")

// app holds the state shared by all subcommands once flags and settings
// are merged.
type app struct {
	settings *config.Settings
	log      *zap.Logger

	configPath string
	logLevel   string
	color      string
	indexPath  string
	accumulate bool
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "cadenza",
		Short: "Semantic checker for musical score programs",
		Long: `cadenza resolves names and type checks musical score programs described as
YAML fixtures, reporting a verdict for every top-level statement.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "settings file (default: nearest cadenza.yaml)")
	flags.StringVar(&a.logLevel, "log-level", "", "supported log levels are debug, info, warn and error")
	flags.StringVar(&a.color, "color", "", "colorize output: auto, always or never")
	flags.StringVar(&a.indexPath, "index", "", "SQLite symbol index to record bindings in")
	flags.BoolVar(&a.accumulate, "accumulate", false, "report every failing statement instead of stopping at the first")

	cmd.AddCommand(
		newCheckCommand(a),
		newDumpCommand(a),
		newDemoCommand(a),
		newRunsCommand(a),
	)
	return cmd
}

// setup loads settings and applies flag overrides on top of them.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path := a.configPath
	if path == "" {
		found, err := config.FindSettings(".")
		if err != nil {
			return err
		}
		path = found
	}

	a.settings = config.DefaultSettings()
	if path != "" {
		s, err := config.LoadSettings(path)
		if err != nil {
			return err
		}
		a.settings = s
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		a.settings.LogLevel = a.logLevel
	}
	if flags.Changed("color") {
		a.settings.Color = a.color
	}
	if flags.Changed("index") {
		a.settings.IndexPath = a.indexPath
	}
	if flags.Changed("accumulate") {
		a.settings.AccumulateErrors = a.accumulate
	}

	if _, err := a.useColor(cmd.OutOrStdout()); err != nil {
		return err
	}

	lc, err := logger.ParseConfig(a.settings.LogLevel, a.settings.LogFormat)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	a.log, err = logger.New(cmd.ErrOrStderr(), lc)
	if err != nil {
		return err
	}
	if path != "" {
		a.log.Debug("Loaded settings", zap.String("path", path))
	}
	cmd.SetContext(logger.NewContextWithLogger(cmd.Context(), a.log))
	return nil
}

// useColor decides whether output to w gets ANSI colours.
func (a *app) useColor(w io.Writer) (bool, error) {
	switch a.settings.Color {
	case config.ColorAlways:
		return true, nil
	case config.ColorNever:
		return false, nil
	case config.ColorAuto, "":
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	}
	return false, fmt.Errorf("color %q must be one of auto, always, never", a.settings.Color)
}
