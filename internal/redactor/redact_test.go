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

package redactor

import (
	"bytes"
	"testing"
)

func TestRedactor_Add(t *testing.T) {
	r := New()
	r.Add("Ada Lovelace", "fullName")
	r.Add("", "phone")
	r.Add("ab", "fullName")

	if r.Count() != 1 {
		t.Errorf("expected 1 value, got %d", r.Count())
	}
}

func TestRedactor_Filter(t *testing.T) {
	r := New()
	r.Add("Ada Lovelace", "fullName")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"registered name", "accepted lead from Ada Lovelace\n", "accepted lead from <redacted>\n"},
		{"email", "email=ada@example.com ok", "email=<redacted> ok"},
		{"phone", "phone=+1 (555) 123-4567 end", "phone=<redacted> end"},
		{"short numbers kept", "step 3 of 5, 12 items", "step 3 of 5, 12 items"},
		{"uuid kept", "id=7f1c2a9e-4b7d-4c1e-9a57-0d3c0b1e2f44", "id=7f1c2a9e-4b7d-4c1e-9a57-0d3c0b1e2f44"},
		{"uuid with digit runs kept", "id=6df962a7-d123-4567-b7fa-153b37f56aed ok", "id=6df962a7-d123-4567-b7fa-153b37f56aed ok"},
		{"numeric uuid kept", "id=12345678-1234-4123-8123-123456789012", "id=12345678-1234-4123-8123-123456789012"},
		{"digits inside a word kept", "build abc1234567", "build abc1234567"},
		{"numbers across lines kept", "room 12\n34567 floor", "room 12\n34567 floor"},
		{"two phones", "a 5551234567, b 555.765.4321", "a <redacted>, b <redacted>"},
		{"phone at line start", "555-123-4567\n", "<redacted>\n"},
		{"plain", "normal output", "normal output"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := string(r.Filter([]byte(tc.input))); got != tc.want {
				t.Errorf("Filter(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestRedactor_Clear(t *testing.T) {
	r := New()
	r.Add("secret name", "fullName")
	r.Clear()

	if r.Count() != 0 {
		t.Errorf("expected 0 values after clear, got %d", r.Count())
	}
	if got := string(r.Filter([]byte("secret name"))); got != "secret name" {
		t.Errorf("cleared value still masked: %q", got)
	}
}

func TestRedactor_Writer(t *testing.T) {
	r := New()
	var buf bytes.Buffer
	w := r.Writer(&buf)

	in := []byte("contact maria@example.org\n")
	n, err := w.Write(in)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(in) {
		t.Errorf("Write returned %d, want %d", n, len(in))
	}
	if got := buf.String(); got != "contact <redacted>\n" {
		t.Errorf("written %q", got)
	}
}
