// mplus - MedicallyPlus Terminal Landing Experience
// Copyright (C) 2026 MedicallyPlus
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// XDG-compliant paths for mplus configuration, cache, and data.
var (
	// Home is the configuration directory (~/.config/mplus).
	Home string
	// Cache is the cache directory (~/.cache/mplus).
	Cache string
	// Data is the data directory (~/.local/share/mplus).
	Data string
)

func init() {
	ResolvePaths()
}

// ResolvePaths recomputes Home, Cache and Data from the environment.
// Tests call it after changing XDG_* variables.
func ResolvePaths() {
	Home = filepath.Join(xdgConfig(), "mplus")
	Cache = filepath.Join(xdgCache(), "mplus")
	Data = filepath.Join(xdgData(), "mplus")
}

func xdgConfig() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	if runtime.GOOS == "windows" {
		if v := os.Getenv("APPDATA"); v != "" {
			return v
		}
	}
	return filepath.Join(homeDir(), ".config")
}

func xdgCache() string {
	if v := os.Getenv("XDG_CACHE_HOME"); v != "" {
		return v
	}
	if runtime.GOOS == "windows" {
		if v := os.Getenv("LOCALAPPDATA"); v != "" {
			return filepath.Join(v, "cache")
		}
	}
	return filepath.Join(homeDir(), ".cache")
}

func xdgData() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	if runtime.GOOS == "windows" {
		if v := os.Getenv("LOCALAPPDATA"); v != "" {
			return v
		}
	}
	return filepath.Join(homeDir(), ".local", "share")
}

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	h, _ := os.UserHomeDir()
	return h
}

// ConfigFile returns the path to config.yaml.
func ConfigFile() string {
	return filepath.Join(Home, "config.yaml")
}

// OutboxDir returns the directory of the local registration outbox.
func OutboxDir() string {
	return filepath.Join(Data, "outbox")
}

// LogFile returns the log path from cfg, falling back to the cache directory.
func LogFile(cfg LogConfig) string {
	if cfg.File != "" {
		return cfg.File
	}
	return filepath.Join(Cache, "mplus.log")
}
