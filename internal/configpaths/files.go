// Package configpaths resolves where joymap looks for its configuration and
// mapping database files.
package configpaths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const (
	appName = "joymap"
	// MappingDBName is the file name of an SDL style mapping database.
	MappingDBName = "gamecontrollerdb.txt"
)

// DefaultConfigDir returns the per-user configuration directory.
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("AppData"); appdata != "" {
			return filepath.Join(appdata, appName), nil
		}
		return "", errors.New("AppData not set")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", appName), nil
		}
		return "", errors.New("HOME not set")
	}
}

// DefaultConfigPath returns the user config file for format (json, yaml, toml).
func DefaultConfigPath(format string) (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config."+Ext(format)), nil
}

// Ext returns the file extension used for a config format.
func Ext(format string) string {
	switch format {
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return "json"
	}
}

// EnsureDir creates the parent directory of filePath.
func EnsureDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0o755)
}

// ConfigCandidatePaths lists config files per loader in priority order. An
// explicit userPath comes first and is routed by its extension.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	addAll := func(dir string, bases ...string) {
		for _, base := range bases {
			p := filepath.Join(dir, base)
			jsonPaths = append(jsonPaths, p+".json")
			yamlPaths = append(yamlPaths, p+".yaml", p+".yml")
			tomlPaths = append(tomlPaths, p+".toml")
		}
	}

	if userPath != "" {
		switch filepath.Ext(userPath) {
		case ".yaml", ".yml":
			yamlPaths = append(yamlPaths, userPath)
		case ".toml":
			tomlPaths = append(tomlPaths, userPath)
		default:
			jsonPaths = append(jsonPaths, userPath)
		}
	}

	if wd, err := os.Getwd(); err == nil {
		addAll(wd, appName)
	}
	if dir, err := DefaultConfigDir(); err == nil {
		addAll(dir, "config")
	}
	if runtime.GOOS != "windows" {
		addAll(filepath.Join("/etc", appName), "config")
	}
	return
}

// DefaultMappingDBPaths lists the mapping databases loaded when none are
// configured: the working directory first, then the user config directory.
func DefaultMappingDBPaths() []string {
	var paths []string
	if wd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(wd, MappingDBName))
	}
	if dir, err := DefaultConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, MappingDBName))
	}
	return paths
}
