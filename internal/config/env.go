package config

import (
	"errors"
	"strings"
	"time"
)

func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	var errs []error

	setString := func(target **string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		value := raw
		*target = &value
	}
	setBool := func(target **bool, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := ParseBool(raw, key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}
	setDuration := func(target **time.Duration, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := ParseDuration(raw, key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}

	setDuration(&cfg.Detect.Timeout, "TERMBG_TIMEOUT")
	setDuration(&cfg.Detect.LatencyTimeout, "TERMBG_LATENCY_TIMEOUT")
	setBool(&cfg.Detect.Latency, "TERMBG_LATENCY")
	setString(&cfg.Report.Color, "TERMBG_COLOR")
	setString(&cfg.Report.Format, "TERMBG_FORMAT")

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}
