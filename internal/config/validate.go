package config

import (
	"fmt"
	"strings"
	"time"
)

func CanonicalizeColor(raw string) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	switch mode {
	case "", "auto":
		return "auto", nil
	case "always", "never":
		return mode, nil
	default:
		return "", fmt.Errorf("invalid color: %s", raw)
	}
}

func CanonicalizeFormat(raw string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(raw))
	switch format {
	case "", "text", "table":
		return "text", nil
	case "json", "markdown":
		return format, nil
	case "md":
		return "markdown", nil
	default:
		return "", fmt.Errorf("invalid format: %s", raw)
	}
}

func ValidateTimeout(field string, d time.Duration) error {
	if d <= 0 || d > MaxTimeout {
		return fmt.Errorf("%s must be greater than 0 and at most %v", field, MaxTimeout)
	}
	return nil
}

func NormalizeSettings(values Settings) (Settings, error) {
	var err error
	values.Color, err = CanonicalizeColor(values.Color)
	if err != nil {
		return values, err
	}
	values.Format, err = CanonicalizeFormat(values.Format)
	if err != nil {
		return values, err
	}
	if err := ValidateTimeout("timeout", values.Timeout); err != nil {
		return values, err
	}
	if err := ValidateTimeout("latency_timeout", values.LatencyTimeout); err != nil {
		return values, err
	}
	return values, nil
}
