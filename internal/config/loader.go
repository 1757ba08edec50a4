package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var detectKeyMap = map[string]string{
	"timeout":         "timeout",
	"query_timeout":   "timeout",
	"latency_timeout": "latency_timeout",
	"latency":         "latency",
	"measure_latency": "latency",
}

var reportKeyMap = map[string]string{
	"color":  "color",
	"format": "format",
	"output": "format",
}

var (
	trueLiterals  = map[string]struct{}{"1": {}, "true": {}, "yes": {}, "on": {}}
	falseLiterals = map[string]struct{}{"0": {}, "false": {}, "no": {}, "off": {}}
)

func Load(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var raw map[string]any
	switch ext {
	case ".yaml", ".yml":
		if decodeErr := yaml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".toml":
		if decodeErr := toml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".json":
		dec := json.NewDecoder(strings.NewReader(string(data)))
		dec.UseNumber()
		if decodeErr := dec.Decode(&raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if raw == nil {
		return cfg, nil
	}
	decoded, err := decodeConfigMap(raw)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return decoded, nil
}

func decodeConfigMap(raw map[string]any) (Config, error) {
	var cfg Config
	detectSection := make(map[string]any)
	reportSection := make(map[string]any)

	if block, ok := raw["detect"]; ok {
		sub, err := toStringKeyMap(block)
		if err != nil {
			return cfg, fmt.Errorf("detect: %w", err)
		}
		if err := fillSection(detectSection, sub, detectKeyMap, "detect"); err != nil {
			return cfg, err
		}
	}
	if block, ok := raw["report"]; ok {
		sub, err := toStringKeyMap(block)
		if err != nil {
			return cfg, fmt.Errorf("report: %w", err)
		}
		if err := fillSection(reportSection, sub, reportKeyMap, "report"); err != nil {
			return cfg, err
		}
	}

	for key, value := range raw {
		norm := normalizeKey(key)
		switch norm {
		case "detect", "report":
			continue
		default:
			if canonical, ok := detectKeyMap[norm]; ok {
				detectSection[canonical] = value
				continue
			}
			if canonical, ok := reportKeyMap[norm]; ok {
				reportSection[canonical] = value
				continue
			}
			return cfg, fmt.Errorf("unknown config key: %s", key)
		}
	}

	if err := assignDetect(detectSection, &cfg.Detect); err != nil {
		return cfg, fmt.Errorf("detect: %w", err)
	}
	if err := assignReport(reportSection, &cfg.Report); err != nil {
		return cfg, fmt.Errorf("report: %w", err)
	}
	return cfg, nil
}

func fillSection(dst, src map[string]any, allowed map[string]string, section string) error {
	for key, value := range src {
		canonical, ok := allowed[normalizeKey(key)]
		if !ok {
			return fmt.Errorf("unknown %s key: %s", section, key)
		}
		dst[canonical] = value
	}
	return nil
}

func assignDetect(section map[string]any, dst *DetectConfig) error {
	for key, value := range section {
		switch key {
		case "timeout":
			d, err := expectDuration(value, key)
			if err != nil {
				return err
			}
			dst.Timeout = &d
		case "latency_timeout":
			d, err := expectDuration(value, key)
			if err != nil {
				return err
			}
			dst.LatencyTimeout = &d
		case "latency":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.Latency = &b
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

func assignReport(section map[string]any, dst *ReportConfig) error {
	for key, value := range section {
		switch key {
		case "color":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(str)
			dst.Color = &trimmed
		case "format":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(str)
			dst.Format = &trimmed
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

func expectString(value any, field string) (string, error) {
	if value == nil {
		return "", fmt.Errorf("%s cannot be null", field)
	}
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("expected string for %s, got %T", field, value)
}

func expectBool(value any, field string) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return ParseBool(v, field)
	default:
		return false, fmt.Errorf("expected bool for %s, got %T", field, value)
	}
}

// expectDuration accepts a Go duration string or a bare number of
// milliseconds.
func expectDuration(value any, field string) (time.Duration, error) {
	switch v := value.(type) {
	case string:
		return ParseDuration(v, field)
	case int:
		return time.Duration(v) * time.Millisecond, nil
	case int64:
		return time.Duration(v) * time.Millisecond, nil
	case uint64:
		return time.Duration(v) * time.Millisecond, nil
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("expected whole milliseconds for %s, got %v", field, value)
		}
		return time.Duration(v) * time.Millisecond, nil
	case json.Number:
		n, err := strconv.ParseInt(v.String(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration value for %s: %v", field, value)
		}
		return time.Duration(n) * time.Millisecond, nil
	default:
		return 0, fmt.Errorf("expected duration for %s, got %T", field, value)
	}
}

// ParseBool accepts 1/0, true/false, yes/no and on/off.
func ParseBool(raw, key string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := trueLiterals[v]; ok {
		return true, nil
	}
	if _, ok := falseLiterals[v]; ok {
		return false, nil
	}
	return false, fmt.Errorf("invalid value for %s: %q", key, raw)
}

// ParseDuration parses "250ms", "1.5s" and friends; a bare integer is
// taken as milliseconds.
func ParseDuration(raw, key string) (time.Duration, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fmt.Errorf("invalid duration for %s: %q", key, raw)
	}
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return time.Duration(n) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q", key, raw)
	}
	return d, nil
}

func toStringKeyMap(v any) (map[string]any, error) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, value := range typed {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key: %v", k)
			}
			out[key] = value
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected map, got %T", v)
	}
}

func normalizeKey(key string) string {
	norm := strings.ToLower(strings.TrimSpace(key))
	norm = strings.ReplaceAll(norm, "-", "_")
	return norm
}
