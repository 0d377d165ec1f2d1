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
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the submission sub-state of a Wizard.
type Status int

const (
	StatusEditing Status = iota
	StatusSubmitting
	StatusSubmitted
)

func (s Status) String() string {
	switch s {
	case StatusEditing:
		return "editing"
	case StatusSubmitting:
		return "submitting"
	case StatusSubmitted:
		return "submitted"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Registration is the immutable snapshot handed to a Submitter.
type Registration struct {
	ID          string    `yaml:"id" json:"id"`
	SubmittedAt time.Time `yaml:"submitted_at" json:"submittedAt"`
	Answers     Answers   `yaml:"answers" json:"answers"`
}

// Submitter delivers a registration to wherever leads are collected.
type Submitter interface {
	Submit(ctx context.Context, reg Registration) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, reg Registration) error

func (f SubmitterFunc) Submit(ctx context.Context, reg Registration) error {
	return f(ctx, reg)
}

// Wizard sequences the form steps, gates forward navigation on step
// validity and tracks the submission state. It is not safe for concurrent
// use; callers drive it from a single event loop.
type Wizard struct {
	steps   []Step
	current int
	answers Answers
	status  Status
	pending string // id of the in-flight registration
	closed  bool
	now     func() time.Time
	newID   func() string
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithNewsletterDefault seeds the newsletter opt-in.
func WithNewsletterDefault(on bool) Option {
	return func(w *Wizard) {
		w.answers.Newsletter = on
	}
}

// WithAnswers seeds the wizard with previously collected answers.
func WithAnswers(a Answers) Option {
	return func(w *Wizard) {
		w.answers = a.Clone()
	}
}

// WithClock overrides the time source used to stamp registrations.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) {
		w.now = now
	}
}

// WithIDs overrides registration id generation.
func WithIDs(newID func() string) Option {
	return func(w *Wizard) {
		w.newID = newID
	}
}

// New creates a wizard at the first step with the initial answers.
func New(opts ...Option) *Wizard {
	w := &Wizard{
		steps:   Steps,
		answers: InitialAnswers(true),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Steps returns the step definitions.
func (w *Wizard) Steps() []Step { return w.steps }

// StepCount returns the number of steps.
func (w *Wizard) StepCount() int { return len(w.steps) }

// Current returns the current step index.
func (w *Wizard) Current() int { return w.current }

// CurrentStep returns the current step definition.
func (w *Wizard) CurrentStep() Step { return w.steps[w.current] }

// LastIndex returns the index of the final step.
func (w *Wizard) LastIndex() int { return len(w.steps) - 1 }

// Status returns the submission state.
func (w *Wizard) Status() Status { return w.status }

// Answers returns a copy of the current answers.
func (w *Wizard) Answers() Answers { return w.answers.Clone() }

// Progress returns (current+1)/stepCount.
func (w *Wizard) Progress() float64 {
	return float64(w.current+1) / float64(len(w.steps))
}

// StepValid evaluates the validity rule of step i against the current
// answers. Indices outside the step range are never valid.
func (w *Wizard) StepValid(i int) bool {
	if i < 0 || i >= len(w.steps) {
		return false
	}
	return w.steps[i].Valid(&w.answers)
}

// CurrentValid reports whether the current step may be left forwards.
func (w *Wizard) CurrentValid() bool {
	return w.StepValid(w.current)
}

// SetField stores a single answer. value must be a string for text fields
// and a bool for flag fields; goals are changed with ToggleMulti.
func (w *Wizard) SetField(f Field, value any) error {
	if err := w.editable(); err != nil {
		return err
	}
	kind, ok := KindOf(f)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	switch kind {
	case KindText:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s wants a string, got %T", ErrFieldType, f, value)
		}
		*w.answers.textField(f) = s
	case KindFlag:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s wants a bool, got %T", ErrFieldType, f, value)
		}
		*w.answers.flagField(f) = b
	case KindSet:
		goals, ok := value.([]string)
		if !ok {
			return fmt.Errorf("%w: %s wants []string, got %T", ErrFieldType, f, value)
		}
		w.answers.Goals = nil
		for _, g := range goals {
			if !w.answers.HasGoal(g) {
				w.answers.Goals = append(w.answers.Goals, g)
			}
		}
	}
	return nil
}

// ToggleMulti flips membership of value in the set stored at f.
func (w *Wizard) ToggleMulti(f Field, value string) error {
	if err := w.editable(); err != nil {
		return err
	}
	kind, ok := KindOf(f)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	if kind != KindSet {
		return fmt.Errorf("%w: %s is not multi-valued", ErrFieldType, f)
	}
	w.answers.toggleGoal(value)
	return nil
}

// Advance moves to the next step when the current step is valid and is
// not the last one. It reports whether the index changed.
func (w *Wizard) Advance() bool {
	if w.editable() != nil || w.current >= w.LastIndex() || !w.CurrentValid() {
		return false
	}
	w.current++
	return true
}

// Retreat moves to the previous step. It reports whether the index changed.
func (w *Wizard) Retreat() bool {
	if w.editable() != nil || w.current == 0 {
		return false
	}
	w.current--
	return true
}

// CanSubmit reports whether BeginSubmit would start a submission.
func (w *Wizard) CanSubmit() bool {
	return !w.closed && w.status == StatusEditing && w.StepValid(w.LastIndex())
}

// BeginSubmit moves the wizard to Submitting and returns the registration
// to deliver. It returns false while a submission is already in flight,
// after success, or while the final step is invalid.
func (w *Wizard) BeginSubmit() (Registration, bool) {
	if !w.CanSubmit() {
		return Registration{}, false
	}
	reg := Registration{
		ID:          w.newID(),
		SubmittedAt: w.now().UTC(),
		Answers:     w.answers.Clone(),
	}
	w.status = StatusSubmitting
	w.pending = reg.ID
	return reg, true
}

// CompleteSubmit records the outcome of the registration with the given id.
// A nil cause moves the wizard to Submitted. Any other cause returns it to
// Editing and is reported as a *SubmissionError. Outcomes for a
// registration that is not in flight, or that arrive after Close, are
// ignored.
func (w *Wizard) CompleteSubmit(id string, cause error) error {
	if w.closed || w.status != StatusSubmitting || id != w.pending {
		return nil
	}
	w.pending = ""
	if cause != nil {
		w.status = StatusEditing
		return &SubmissionError{ID: id, Err: cause}
	}
	w.status = StatusSubmitted
	return nil
}

// Submit runs a whole submission synchronously. It returns false with a
// nil error when the wizard cannot submit.
func (w *Wizard) Submit(ctx context.Context, s Submitter) (Registration, bool, error) {
	reg, ok := w.BeginSubmit()
	if !ok {
		return Registration{}, false, nil
	}
	return reg, true, w.CompleteSubmit(reg.ID, s.Submit(ctx, reg))
}

// Close tears the wizard down. Outstanding completions are dropped and
// every later mutation fails with ErrLocked.
func (w *Wizard) Close() {
	w.closed = true
	w.pending = ""
}

// Closed reports whether Close was called.
func (w *Wizard) Closed() bool { return w.closed }

func (w *Wizard) editable() error {
	if w.closed {
		return fmt.Errorf("%w: closed", ErrLocked)
	}
	if w.status != StatusEditing {
		return fmt.Errorf("%w: %s", ErrLocked, w.status)
	}
	return nil
}
