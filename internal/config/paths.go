// Package config provides configuration management for trove.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths holds the directories trove reads and writes.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/trove)
	ConfigDir string

	// DataDir is the directory for data files (~/.local/share/trove)
	DataDir string
}

// DefaultPaths returns the default paths based on XDG Base Directory spec.
// On Windows, it uses %APPDATA% instead.
func DefaultPaths() *Paths {
	home := homeDir()

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}
		return &Paths{
			ConfigDir: filepath.Join(appData, "trove"),
			DataDir:   filepath.Join(localAppData, "trove"),
		}
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	return &Paths{
		ConfigDir: filepath.Join(configHome, "trove"),
		DataDir:   filepath.Join(dataHome, "trove"),
	}
}

// ConfigFile returns the path to the main configuration file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// DBFile returns the path to the state database.
func (p *Paths) DBFile() string {
	return filepath.Join(p.DataDir, "state.db")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Last-resort fallback; paths will be relative.
		return "."
	}
	return home
}
