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

package submit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/medicallyplus/mplus/internal/wizard"
)

// ErrRejected is returned by a Stub told to fail.
var ErrRejected = errors.New("registration rejected by stub target")

// Stub simulates a remote intake service. It waits Delay and then
// accepts, except for the first FailFirst attempts which it rejects.
type Stub struct {
	Delay     time.Duration
	FailFirst int
	Clock     clock.Clock

	mu       sync.Mutex
	attempts int
}

// Submit implements wizard.Submitter.
func (s *Stub) Submit(ctx context.Context, _ wizard.Registration) error {
	s.mu.Lock()
	clk := s.Clock
	if clk == nil {
		clk = clock.New()
	}
	var t *clock.Timer
	if s.Delay > 0 {
		t = clk.Timer(s.Delay)
	}
	s.attempts++
	n := s.attempts
	s.mu.Unlock()

	if t != nil {
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		}
	}
	if n <= s.FailFirst {
		return ErrRejected
	}
	return nil
}

// Attempts returns how many submissions the stub has seen. An attempt is
// counted once its delay timer is running.
func (s *Stub) Attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}
