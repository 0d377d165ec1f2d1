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

package landing

// Span is the half-open line range [Start, End) a section occupies in the
// rendered page.
type Span struct {
	ID    string
	Start int
	End   int
}

// Len returns the number of lines in the span.
func (s Span) Len() int { return s.End - s.Start }

// Fraction returns how much of s lies inside the viewport starting at top
// with the given height. A section taller than the viewport counts as
// fully visible once it fills the screen.
func Fraction(s Span, top, height int) float64 {
	if height <= 0 || s.Len() <= 0 {
		return 0
	}
	lo := max(s.Start, top)
	hi := min(s.End, top+height)
	if hi <= lo {
		return 0
	}
	return float64(hi-lo) / float64(min(s.Len(), height))
}

// Tracker reports the first time each section becomes visible.
type Tracker struct {
	threshold float64
	seen      map[string]bool
}

// NewTracker returns a Tracker that treats a section as visible once
// Fraction reaches threshold.
func NewTracker(threshold float64) *Tracker {
	return &Tracker{threshold: threshold, seen: make(map[string]bool)}
}

// Observe returns, in page order, the sections that are visible now and
// have never been visible before.
func (t *Tracker) Observe(spans []Span, top, height int) []string {
	var edges []string
	for _, s := range spans {
		if t.seen[s.ID] {
			continue
		}
		if Fraction(s, top, height) >= t.threshold {
			t.seen[s.ID] = true
			edges = append(edges, s.ID)
		}
	}
	return edges
}

// Seen reports whether id has ever been visible.
func (t *Tracker) Seen(id string) bool { return t.seen[id] }
