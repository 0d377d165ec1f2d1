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

// Package redactor masks personal data before it reaches log files.
package redactor

import (
	"bytes"
	"io"
	"regexp"
	"sync"
)

const mask = "<redacted>"

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	// Seven or more digits, optionally grouped by spaces, tabs, dots, dashes
	// or parentheses and led by a plus sign. The number itself is group 1;
	// it must stand alone, so digit runs inside ids and words are left alone.
	phonePattern = regexp.MustCompile(`(?:^|[^\w-])(\+?\(?\d[\d \t().\-]{5,}\d)(?:$|[^\w-])`)
	uuidPattern  = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

// Redactor replaces registered values and anything shaped like an email
// address or phone number with <redacted>. It is safe for concurrent use.
type Redactor struct {
	mu     sync.RWMutex
	values map[string]string // value -> field name
}

// New creates a Redactor with no registered values.
func New() *Redactor {
	return &Redactor{values: make(map[string]string)}
}

// Add registers a literal value to mask, such as a person's name. The
// field name is kept for Count and debugging only. Values shorter than
// three bytes are ignored to avoid masking common words.
func (r *Redactor) Add(value, field string) {
	if len(value) < 3 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[value] = field
}

// Filter returns input with every known value and pattern masked.
func (r *Redactor) Filter(input []byte) []byte {
	r.mu.RLock()
	out := input
	for v := range r.values {
		out = bytes.ReplaceAll(out, []byte(v), []byte(mask))
	}
	r.mu.RUnlock()

	out = emailPattern.ReplaceAll(out, []byte(mask))
	return maskPhones(out)
}

// maskPhones replaces the number of every phone match. The search resumes
// at the end of the number so a boundary byte can close one match and open
// the next.
func maskPhones(in []byte) []byte {
	var out []byte
	last, pos := 0, 0
	for pos < len(in) {
		loc := phonePattern.FindSubmatchIndex(in[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[2], pos+loc[3]
		pos = end
		if uuidPattern.Match(in[start:end]) {
			continue
		}
		out = append(out, in[last:start]...)
		out = append(out, mask...)
		last = end
	}
	if last == 0 {
		return in
	}
	return append(out, in[last:]...)
}

// Clear forgets every registered value.
func (r *Redactor) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = make(map[string]string)
}

// Count returns the number of registered values.
func (r *Redactor) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values)
}

// Writer wraps w so that every write is filtered first.
func (r *Redactor) Writer(w io.Writer) io.Writer {
	return &writer{r: r, w: w}
}

type writer struct {
	r *Redactor
	w io.Writer
}

// Write reports len(p) on success even though fewer or more bytes may
// reach the underlying writer.
func (w *writer) Write(p []byte) (int, error) {
	if _, err := w.w.Write(w.r.Filter(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}
