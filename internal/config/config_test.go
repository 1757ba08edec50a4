package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func boolPtr(v bool) *bool { return &v }

func durPtr(d time.Duration) *time.Duration { return &d }

func TestMergeSettingsPrecedence(t *testing.T) {
	base := DefaultSettings()

	fileCfg := Config{
		Detect: DetectConfig{Timeout: durPtr(300 * time.Millisecond), Latency: boolPtr(true)},
		Report: ReportConfig{Color: strPtr("never"), Format: strPtr("json")},
	}
	envCfg := Config{
		Detect: DetectConfig{Timeout: durPtr(500 * time.Millisecond)},
		Report: ReportConfig{Format: strPtr("markdown")},
	}
	flagCfg := Config{
		Detect: DetectConfig{LatencyTimeout: durPtr(2 * time.Second)},
		Report: ReportConfig{Color: strPtr(" always ")},
	}

	merged := MergeSettings(base, fileCfg, envCfg, flagCfg)

	if merged.Timeout != 500*time.Millisecond {
		t.Fatalf("expected timeout from env layer, got %v", merged.Timeout)
	}
	if merged.LatencyTimeout != 2*time.Second {
		t.Fatalf("expected latency timeout from flags, got %v", merged.LatencyTimeout)
	}
	if !merged.Latency {
		t.Fatal("expected Latency true from file layer")
	}
	if merged.Color != "always" {
		t.Fatalf("expected color always, got %q", merged.Color)
	}
	if merged.Format != "markdown" {
		t.Fatalf("expected format markdown, got %q", merged.Format)
	}
}

func TestMergeSettingsEmptyStringsFallBack(t *testing.T) {
	merged := MergeSettings(DefaultSettings(), Config{Report: ReportConfig{Color: strPtr(""), Format: strPtr("  ")}})
	if merged.Color != "auto" || merged.Format != "text" {
		t.Fatalf("expected defaults, got color=%q format=%q", merged.Color, merged.Format)
	}
}

func TestFromEnv(t *testing.T) {
	env := map[string]string{
		"TERMBG_TIMEOUT":         "250ms",
		"TERMBG_LATENCY_TIMEOUT": "1500",
		"TERMBG_LATENCY":         "yes",
		"TERMBG_COLOR":           "never",
		"TERMBG_FORMAT":          "json",
	}
	cfg, err := FromEnv(func(key string) string { return env[key] })
	if err != nil {
		t.Fatalf("FromEnv returned error: %v", err)
	}
	if cfg.Detect.Timeout == nil || *cfg.Detect.Timeout != 250*time.Millisecond {
		t.Fatalf("unexpected timeout: %v", cfg.Detect.Timeout)
	}
	if cfg.Detect.LatencyTimeout == nil || *cfg.Detect.LatencyTimeout != 1500*time.Millisecond {
		t.Fatalf("unexpected latency timeout: %v", cfg.Detect.LatencyTimeout)
	}
	if cfg.Detect.Latency == nil || !*cfg.Detect.Latency {
		t.Fatal("expected Latency true")
	}
	if cfg.Report.Color == nil || *cfg.Report.Color != "never" {
		t.Fatalf("unexpected color: %v", cfg.Report.Color)
	}
	if cfg.Report.Format == nil || *cfg.Report.Format != "json" {
		t.Fatalf("unexpected format: %v", cfg.Report.Format)
	}
}

func TestFromEnvErrors(t *testing.T) {
	env := map[string]string{
		"TERMBG_TIMEOUT": "soon",
		"TERMBG_LATENCY": "maybe",
	}
	cfg, err := FromEnv(func(key string) string { return env[key] })
	if err == nil {
		t.Fatal("expected error for invalid values")
	}
	if cfg.Detect.Timeout != nil || cfg.Detect.Latency != nil {
		t.Fatalf("invalid values must not be set: %+v", cfg.Detect)
	}

	cfg, err = FromEnv(nil)
	if err != nil {
		t.Fatalf("FromEnv(nil) returned error: %v", err)
	}
	if cfg.Detect.Timeout != nil || cfg.Report.Color != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigFormats(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		".yaml": "timeout: 200ms\nlatency: true\nreport:\n  color: never\n  format: json\n",
		".toml": "timeout = 300\n[detect]\nlatency_timeout = \"2s\"\n[report]\nformat = \"markdown\"\n",
		".json": "{\n  \"detect\": {\"timeout\": 400, \"measure-latency\": \"on\"},\n  \"color\": \"always\"\n}\n",
	}

	for ext, content := range cases {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "config"+ext)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if cfg.Detect.Timeout == nil {
				t.Fatal("expected timeout to be set")
			}
			switch ext {
			case ".yaml":
				if *cfg.Detect.Timeout != 200*time.Millisecond {
					t.Fatalf("yaml timeout mismatch: %v", *cfg.Detect.Timeout)
				}
				if cfg.Detect.Latency == nil || !*cfg.Detect.Latency {
					t.Fatal("yaml latency should be true")
				}
				if cfg.Report.Color == nil || *cfg.Report.Color != "never" {
					t.Fatalf("yaml color mismatch: %q", ptrString(cfg.Report.Color))
				}
				if cfg.Report.Format == nil || *cfg.Report.Format != "json" {
					t.Fatalf("yaml format mismatch: %q", ptrString(cfg.Report.Format))
				}
			case ".toml":
				if *cfg.Detect.Timeout != 300*time.Millisecond {
					t.Fatalf("toml timeout mismatch: %v", *cfg.Detect.Timeout)
				}
				if cfg.Detect.LatencyTimeout == nil || *cfg.Detect.LatencyTimeout != 2*time.Second {
					t.Fatalf("toml latency_timeout mismatch: %v", cfg.Detect.LatencyTimeout)
				}
				if cfg.Report.Format == nil || *cfg.Report.Format != "markdown" {
					t.Fatalf("toml format mismatch: %q", ptrString(cfg.Report.Format))
				}
			case ".json":
				if *cfg.Detect.Timeout != 400*time.Millisecond {
					t.Fatalf("json timeout mismatch: %v", *cfg.Detect.Timeout)
				}
				if cfg.Detect.Latency == nil || !*cfg.Detect.Latency {
					t.Fatal("json measure-latency should be true")
				}
				if cfg.Report.Color == nil || *cfg.Report.Color != "always" {
					t.Fatalf("json color mismatch: %q", ptrString(cfg.Report.Color))
				}
			}
		})
	}
}

func TestLoadUnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("unknown: value\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown key")
	}

	nested := filepath.Join(dir, "nested.yaml")
	if err := os.WriteFile(nested, []byte("report:\n  timeout: 1s\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(nested); err == nil {
		t.Fatal("expected error for key in the wrong section")
	}
}

func TestLoadRejectsFractionalMilliseconds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("timeout: 1.5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for fractional milliseconds")
	}
}

func TestFindOrder(t *testing.T) {
	projectRoot := filepath.Join(t.TempDir(), "project")
	if mkErr := os.MkdirAll(filepath.Join(projectRoot, "sub", "dir"), 0o755); mkErr != nil {
		t.Fatalf("mkdir: %v", mkErr)
	}
	projectConfig := filepath.Join(projectRoot, ".termbg.yaml")
	if writeErr := os.WriteFile(projectConfig, []byte("timeout: 1s\n"), 0o644); writeErr != nil {
		t.Fatalf("write project config: %v", writeErr)
	}
	path, where, err := Find(filepath.Join(projectRoot, "sub", "dir"), "", "", "")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if path != projectConfig || where != "cwd-up" {
		t.Fatalf("unexpected result: path=%s where=%s", path, where)
	}

	explicitDir := t.TempDir()
	explicit := filepath.Join(explicitDir, "custom.toml")
	if writeErr := os.WriteFile(explicit, []byte("timeout='1s'\n"), 0o644); writeErr != nil {
		t.Fatalf("write explicit: %v", writeErr)
	}
	path, where, err = Find(projectRoot, explicit, "", "")
	if err != nil {
		t.Fatalf("Find explicit failed: %v", err)
	}
	if path != explicit || where != "explicit" {
		t.Fatalf("expected explicit config, got path=%s where=%s", path, where)
	}
	if _, _, err := Find(projectRoot, explicitDir, "", ""); err == nil {
		t.Fatal("expected error for explicit directory")
	}

	xdgHome := t.TempDir()
	if mkErr := os.MkdirAll(filepath.Join(xdgHome, "termbg"), 0o755); mkErr != nil {
		t.Fatalf("mkdir xdg: %v", mkErr)
	}
	xdgPath := filepath.Join(xdgHome, "termbg", "config.json")
	if writeErr := os.WriteFile(xdgPath, []byte("{}"), 0o644); writeErr != nil {
		t.Fatalf("write xdg: %v", writeErr)
	}
	path, where, err = Find(t.TempDir(), "", xdgHome, "")
	if err != nil {
		t.Fatalf("Find xdg failed: %v", err)
	}
	if path != xdgPath || where != "xdg" {
		t.Fatalf("expected xdg config, got path=%s where=%s", path, where)
	}

	homeDir := t.TempDir()
	homePath := filepath.Join(homeDir, ".termbg.toml")
	if writeErr := os.WriteFile(homePath, []byte("color='never'\n"), 0o644); writeErr != nil {
		t.Fatalf("write home: %v", writeErr)
	}
	path, where, err = Find(t.TempDir(), "", "", homeDir)
	if err != nil {
		t.Fatalf("Find home failed: %v", err)
	}
	if path != homePath || where != "home" {
		t.Fatalf("expected home config, got path=%s where=%s", path, where)
	}
}

func TestNormalizeSettings(t *testing.T) {
	values := Settings{Timeout: time.Second, LatencyTimeout: time.Second, Color: " NEVER ", Format: "md"}
	normalized, err := NormalizeSettings(values)
	if err != nil {
		t.Fatalf("NormalizeSettings error: %v", err)
	}
	if normalized.Color != "never" {
		t.Fatalf("expected color never, got %q", normalized.Color)
	}
	if normalized.Format != "markdown" {
		t.Fatalf("expected format markdown, got %q", normalized.Format)
	}

	bad := []Settings{
		{Timeout: 0, LatencyTimeout: time.Second},
		{Timeout: 11 * time.Second, LatencyTimeout: time.Second},
		{Timeout: time.Second, LatencyTimeout: -time.Second},
		{Timeout: time.Second, LatencyTimeout: time.Second, Color: "sometimes"},
		{Timeout: time.Second, LatencyTimeout: time.Second, Format: "xml"},
	}
	for _, s := range bad {
		if _, err := NormalizeSettings(s); err == nil {
			t.Fatalf("expected error for %+v", s)
		}
	}

	if _, err := NormalizeSettings(DefaultSettings()); err != nil {
		t.Fatalf("defaults must be valid: %v", err)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"100", 100 * time.Millisecond},
		{" 2s ", 2 * time.Second},
		{"1.5s", 1500 * time.Millisecond},
		{"750ms", 750 * time.Millisecond},
	}
	for _, tt := range tests {
		got, err := ParseDuration(tt.in, "timeout")
		if err != nil {
			t.Fatalf("ParseDuration(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, in := range []string{"", "fast", "1x"} {
		if _, err := ParseDuration(in, "timeout"); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func ptrString(v *string) string {
	if v == nil {
		return "<nil>"
	}
	return *v
}

func TestSearchPathOrder(t *testing.T) {
	root := t.TempDir()
	start := filepath.Join(root, "a", "b")
	locs, err := searchPath(start, filepath.Join(root, "xdg"), filepath.Join(root, "home"))
	if err != nil {
		t.Fatalf("searchPath failed: %v", err)
	}
	if len(locs) < 4 {
		t.Fatalf("expected at least 4 locations, got %d", len(locs))
	}
	if locs[0].dir != start || locs[0].where != "cwd-up" {
		t.Fatalf("first location should be the start dir, got %+v", locs[0])
	}
	if locs[1].dir != filepath.Join(root, "a") {
		t.Fatalf("second location should be the parent, got %+v", locs[1])
	}
	xdg := locs[len(locs)-2]
	if xdg.where != "xdg" || xdg.dir != filepath.Join(root, "xdg", "termbg") || xdg.base != "config" {
		t.Fatalf("unexpected xdg location: %+v", xdg)
	}
	home := locs[len(locs)-1]
	if home.where != "home" || home.dir != filepath.Join(root, "home") || home.base != ".termbg" {
		t.Fatalf("unexpected home location: %+v", home)
	}
}

func TestFindPrefersYAMLWithinADirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{".termbg.json", ".termbg.yaml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	path, _, err := Find(dir, "", "", dir)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if filepath.Base(path) != ".termbg.yaml" {
		t.Fatalf("expected .termbg.yaml, got %s", path)
	}
}
