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

// Package state remembers per-user facts between runs.
package state

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/medicallyplus/mplus/internal/config"
)

func seenFile() string {
	return filepath.Join(config.Data, ".seen-version")
}

// FirstRun reports whether mplus has never completed a run for this user.
func FirstRun() bool {
	_, err := os.Stat(seenFile())
	return os.IsNotExist(err)
}

// LastVersion returns the version recorded by the previous run, or "".
func LastVersion() string {
	data, err := os.ReadFile(seenFile())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// MarkSeen records that version has run.
func MarkSeen(version string) error {
	if err := os.MkdirAll(config.Data, 0o755); err != nil {
		return err
	}
	return os.WriteFile(seenFile(), []byte(version+"\n"), 0o644)
}
