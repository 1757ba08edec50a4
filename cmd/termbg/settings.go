package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/phyten/termbg"
	"github.com/phyten/termbg/internal/config"
	"github.com/phyten/termbg/internal/report"
)

type cliOptions struct {
	timeout        string
	latencyTimeout string
	latency        bool
	color          string
	format         string
	configPath     string
	debug          bool
}

// layer turns the flags that were set on the command line into a config
// layer; untouched flags stay nil so lower layers show through.
func (o cliOptions) layer(changed func(string) bool) (config.Config, error) {
	var cfg config.Config
	if changed("timeout") {
		d, err := config.ParseDuration(o.timeout, "--timeout")
		if err != nil {
			return cfg, err
		}
		cfg.Detect.Timeout = &d
	}
	if changed("latency-timeout") {
		d, err := config.ParseDuration(o.latencyTimeout, "--latency-timeout")
		if err != nil {
			return cfg, err
		}
		cfg.Detect.LatencyTimeout = &d
	}
	if changed("latency") {
		v := o.latency
		cfg.Detect.Latency = &v
	}
	if changed("color") {
		v := o.color
		cfg.Report.Color = &v
	}
	if changed("format") {
		v := o.format
		cfg.Report.Format = &v
	}
	return cfg, nil
}

// loadSettings resolves defaults < config file < TERMBG_* env < flags and
// reports where the file came from ("" when none was found).
func loadSettings(o cliOptions, changed func(string) bool, getenv func(string) string, cwd string) (config.Settings, string, error) {
	explicit := strings.TrimSpace(o.configPath)
	if explicit == "" {
		explicit = getenv("TERMBG_CONFIG")
	}
	path, where, err := config.Find(cwd, explicit, getenv("XDG_CONFIG_HOME"), getenv("HOME"))
	if err != nil {
		return config.Settings{}, "", fmt.Errorf("config: %w", err)
	}
	fileCfg, err := config.Load(path)
	if err != nil {
		return config.Settings{}, where, fmt.Errorf("config: %w", err)
	}
	envCfg, err := config.FromEnv(getenv)
	if err != nil {
		return config.Settings{}, where, fmt.Errorf("environment: %w", err)
	}
	flagCfg, err := o.layer(changed)
	if err != nil {
		return config.Settings{}, where, err
	}
	settings, err := config.NormalizeSettings(config.MergeSettings(config.DefaultSettings(), fileCfg, envCfg, flagCfg))
	if err != nil {
		return config.Settings{}, where, err
	}
	return settings, where, nil
}

type detector interface {
	Terminal() termbg.Term
	Latency(timeout time.Duration) (time.Duration, error)
	RGB(timeout time.Duration) (termbg.RGB, error)
}

// detect runs each probe once. Latency goes first so a slow terminal's
// late status reply is drained before the color query starts.
func detect(d detector, latency bool, timeout, latencyTimeout time.Duration) report.Result {
	res := report.Result{Term: d.Terminal(), MeasureLatency: latency}
	if latency {
		res.Latency, res.LatencyErr = d.Latency(latencyTimeout)
	}
	res.Color, res.ColorErr = d.RGB(timeout)
	return res
}
