package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var exts = []string{".yaml", ".yml", ".toml", ".json"}

// location is one place a config file may live, tried in order.
type location struct {
	where string
	dir   string
	base  string
}

func (l location) lookup() (string, bool) {
	for _, ext := range exts {
		candidate := filepath.Join(l.dir, l.base+ext)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, true
		}
	}
	return "", false
}

// Find locates the configuration file and reports where it came from:
// "explicit", "cwd-up", "xdg" or "home". No file is not an error.
func Find(startDir, explicitPath, xdgHome, home string) (string, string, error) {
	if explicit := strings.TrimSpace(explicitPath); explicit != "" {
		path, err := explicitFile(explicit)
		if err != nil {
			return "", "", err
		}
		return path, "explicit", nil
	}

	locs, err := searchPath(startDir, xdgHome, home)
	if err != nil {
		return "", "", err
	}
	for _, loc := range locs {
		if path, ok := loc.lookup(); ok {
			return path, loc.where, nil
		}
	}
	return "", "", nil
}

func explicitFile(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("TERMBG_CONFIG %q points to a directory", abs)
	}
	return abs, nil
}

// searchPath lists startDir and its ancestors, then the XDG config
// directory, then home.
func searchPath(startDir, xdgHome, home string) ([]location, error) {
	start := strings.TrimSpace(startDir)
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return nil, err
	}
	var locs []location
	for {
		locs = append(locs, location{where: "cwd-up", dir: dir, base: ".termbg"})
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	home = strings.TrimSpace(home)
	if home == "" {
		if h, err := os.UserHomeDir(); err == nil {
			home = h
		}
	}
	xdg := strings.TrimSpace(xdgHome)
	if xdg == "" && home != "" {
		xdg = filepath.Join(home, ".config")
	}
	if xdg != "" {
		locs = append(locs, location{where: "xdg", dir: filepath.Join(xdg, "termbg"), base: "config"})
	}
	if home != "" {
		locs = append(locs, location{where: "home", dir: home, base: ".termbg"})
	}
	return locs, nil
}
