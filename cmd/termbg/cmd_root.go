package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/phyten/termbg"
	"github.com/phyten/termbg/internal/report"
	"github.com/phyten/termbg/internal/termcolor"
)

const (
	exitDetect = 1
	exitConfig = 2
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

var opts cliOptions

var rootCmd = &cobra.Command{
	Use:   "termbg",
	Short: "Detect the terminal background color",
	Long: `termbg asks the terminal for its background color and reports it
together with the terminal type and a light/dark classification.

Settings come from .termbg.{yaml,yml,toml,json} (searched upward from the
working directory, then $XDG_CONFIG_HOME/termbg, then $HOME), TERMBG_*
environment variables and flags, later sources winning.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd)
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&opts.timeout, "timeout", "", "wait at most this long for the color reply (e.g. 100ms; bare numbers are ms)")
	flags.StringVar(&opts.latencyTimeout, "latency-timeout", "", "wait at most this long for the latency probe")
	flags.BoolVar(&opts.latency, "latency", false, "measure the terminal round trip first")
	flags.StringVar(&opts.color, "color", "", "auto|always|never")
	flags.StringVar(&opts.format, "format", "", "text|json|markdown")
	flags.StringVar(&opts.configPath, "config", "", "config file (overrides TERMBG_CONFIG and the search)")
	flags.BoolVar(&opts.debug, "debug", false, "log detection steps to stderr")

	rootCmd.Version = version
}

func run(cmd *cobra.Command) error {
	env := termcolor.EnvMap(os.Environ())
	cwd, err := os.Getwd()
	if err != nil {
		return &exitError{code: exitConfig, err: err}
	}
	settings, source, err := loadSettings(opts, cmd.Flags().Changed, os.Getenv, cwd)
	if err != nil {
		return &exitError{code: exitConfig, err: err}
	}

	d := termbg.New()
	if opts.debug {
		d.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		d.Logger.Debug("settings loaded", "source", source, "timeout", settings.Timeout,
			"latency_timeout", settings.LatencyTimeout, "format", settings.Format, "color", settings.Color)
	}

	res := detect(d, settings.Latency, settings.Timeout, settings.LatencyTimeout)

	mode, err := termcolor.ParseMode(settings.Color)
	if err != nil {
		return &exitError{code: exitConfig, err: err}
	}
	dark := res.Failed() || res.Theme() == termbg.Dark
	renderer := report.NewRenderer(os.Stdout, termcolor.Profile(mode, os.Stdout, env), dark)
	if err := report.Write(cmd.OutOrStdout(), res, settings.Format, renderer); err != nil {
		return &exitError{code: exitDetect, err: err}
	}
	if res.Failed() {
		return &exitError{code: exitDetect}
	}
	return nil
}
