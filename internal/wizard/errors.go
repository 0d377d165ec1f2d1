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

package wizard

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField is returned for a field outside the form's field set.
	ErrUnknownField = errors.New("unknown form field")
	// ErrFieldType is returned when a value does not match the field's kind.
	ErrFieldType = errors.New("value does not match field type")
	// ErrLocked is returned for mutations while a submission is in flight
	// or after it has been accepted.
	ErrLocked = errors.New("form is locked")
	// ErrSubmissionFailed marks a rejected submission. The form returns to
	// editing and the user may retry.
	ErrSubmissionFailed = errors.New("submission failed")
)

// SubmissionError reports why a registration was rejected.
type SubmissionError struct {
	ID  string
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("registration %s: %v: %v", e.ID, ErrSubmissionFailed, e.Err)
}

// Unwrap exposes both ErrSubmissionFailed and the underlying cause.
func (e *SubmissionError) Unwrap() []error {
	return []error{ErrSubmissionFailed, e.Err}
}
