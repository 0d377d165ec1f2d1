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

import "os"

// EnsureDirs creates the mplus directory structure if it doesn't exist.
func EnsureDirs() {
	dirs := []string{
		Home,
		Cache,
		Data,
		OutboxDir(),
	}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}
}

// ConfigExists returns true if config.yaml exists.
func ConfigExists() bool {
	_, err := os.Stat(ConfigFile())
	return err == nil
}

// WriteDefaults writes the default config if none exists.
func WriteDefaults() error {
	if ConfigExists() {
		return nil
	}
	if err := os.MkdirAll(Home, 0755); err != nil {
		return err
	}
	return SaveConfig(DefaultConfig())
}
