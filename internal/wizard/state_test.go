package wizard

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func newTestWizard(opts ...Option) *Wizard {
	n := 0
	base := []Option{
		WithClock(func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }),
		WithIDs(func() string { n++; return fmt.Sprintf("reg-%d", n) }),
	}
	return New(append(base, opts...)...)
}

func mustSet(t *testing.T, w *Wizard, f Field, v any) {
	t.Helper()
	if err := w.SetField(f, v); err != nil {
		t.Fatalf("SetField(%s, %v): %v", f, v, err)
	}
}

// fillThrough answers every step up to and including last.
func fillThrough(t *testing.T, w *Wizard, userType string, last int) {
	t.Helper()
	mustSet(t, w, FieldUserType, userType)
	if last >= 1 {
		mustSet(t, w, FieldFullName, "Ada Lovelace")
		mustSet(t, w, FieldEmail, "ada@example.com")
		mustSet(t, w, FieldCountry, "United Kingdom")
	}
	if last >= 2 {
		if userType == UserTypeProvider {
			mustSet(t, w, FieldOrganization, "Acme")
			mustSet(t, w, FieldSpecialty, "Cardiology")
			mustSet(t, w, FieldExperience, "5-10 years")
		} else {
			mustSet(t, w, FieldCondition, "Arrhythmia")
			mustSet(t, w, FieldUrgency, "routine")
		}
	}
	if last >= 3 {
		if err := w.ToggleMulti(FieldGoals, "second-opinion"); err != nil {
			t.Fatal(err)
		}
	}
	if last >= 4 {
		mustSet(t, w, FieldConsent, true)
	}
}

func TestNew_InitialState(t *testing.T) {
	w := New()
	if w.Current() != 0 {
		t.Errorf("Current() = %d, want 0", w.Current())
	}
	if w.Status() != StatusEditing {
		t.Errorf("Status() = %v, want editing", w.Status())
	}
	want := Answers{Newsletter: true}
	if diff := cmp.Diff(want, w.Answers()); diff != "" {
		t.Errorf("initial answers mismatch (-want +got):\n%s", diff)
	}
	if got := New(WithNewsletterDefault(false)).Answers().Newsletter; got {
		t.Error("WithNewsletterDefault(false) should clear the opt-in")
	}
}

func TestStepValid_Table(t *testing.T) {
	tests := []struct {
		name    string
		step    int
		answers Answers
		want    bool
	}{
		{"user type empty", 0, Answers{}, false},
		{"user type provider", 0, Answers{UserType: "provider"}, true},
		{"user type patient", 0, Answers{UserType: "patient"}, true},
		{"user type outside enum", 0, Answers{UserType: "admin"}, false},
		{"basic info complete", 1, Answers{FullName: "A", Email: "a@b.c", Country: "Japan"}, true},
		{"basic info missing country", 1, Answers{FullName: "A", Email: "a@b.c"}, false},
		{"basic info whitespace name", 1, Answers{FullName: "  ", Email: "a@b.c", Country: "Japan"}, false},
		{"basic info phone optional", 1, Answers{FullName: "A", Email: "a@b.c", Country: "Japan", Phone: ""}, true},
		{"provider complete", 2, Answers{UserType: "provider", Organization: "Acme", Specialty: "Cardiology", Experience: "5-10 years"}, true},
		{"provider missing experience", 2, Answers{UserType: "provider", Organization: "Acme", Specialty: "Cardiology"}, false},
		{"provider ignores patient fields", 2, Answers{UserType: "provider", Condition: "x", Urgency: "urgent"}, false},
		{"patient empty condition", 2, Answers{UserType: "patient", Condition: "", Urgency: "immediate"}, false},
		{"patient complete", 2, Answers{UserType: "patient", Condition: "Migraine", Urgency: "immediate"}, true},
		{"no user type uses patient branch", 2, Answers{Condition: "Migraine", Urgency: "urgent"}, true},
		{"no goals", 3, Answers{}, false},
		{"one goal", 3, Answers{Goals: []string{"research"}}, true},
		{"no consent", 4, Answers{Newsletter: true}, false},
		{"consent", 4, Answers{Consent: true}, true},
		{"negative index", -1, Answers{Consent: true}, false},
		{"past last index", 5, Answers{Consent: true}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := New(WithAnswers(tc.answers))
			if got := w.StepValid(tc.step); got != tc.want {
				t.Errorf("StepValid(%d) = %v, want %v", tc.step, got, tc.want)
			}
		})
	}
}

func TestStepValid_ReadsCurrentAnswers(t *testing.T) {
	w := New()
	if w.StepValid(0) {
		t.Fatal("step 0 valid before any answer")
	}
	mustSet(t, w, FieldUserType, UserTypePatient)
	if !w.StepValid(0) {
		t.Fatal("step 0 should be valid after choosing a user type")
	}
	mustSet(t, w, FieldUserType, "")
	if w.StepValid(0) {
		t.Fatal("step 0 should be invalid again after clearing the user type")
	}
}

func TestAdvance_GatedByValidity(t *testing.T) {
	for i := 0; i < len(Steps)-1; i++ {
		t.Run(string(Steps[i].ID), func(t *testing.T) {
			w := newTestWizard()
			if i > 0 {
				fillThrough(t, w, UserTypeProvider, i-1)
				for w.Current() < i {
					if !w.Advance() {
						t.Fatalf("setup: Advance from %d failed", w.Current())
					}
				}
			}
			if w.Advance() {
				t.Fatalf("Advance from invalid step %d succeeded", i)
			}
			if w.Current() != i {
				t.Fatalf("Current() = %d after blocked Advance, want %d", w.Current(), i)
			}

			fillThrough(t, w, UserTypeProvider, i)
			if !w.Advance() {
				t.Fatalf("Advance from valid step %d failed", i)
			}
			if w.Current() != i+1 {
				t.Errorf("Current() = %d, want %d", w.Current(), i+1)
			}
		})
	}
}

func TestAdvance_LastStepIsNoop(t *testing.T) {
	w := newTestWizard()
	fillThrough(t, w, UserTypePatient, 4)
	for w.Advance() {
	}
	if w.Current() != w.LastIndex() {
		t.Fatalf("Current() = %d, want last index %d", w.Current(), w.LastIndex())
	}
	if w.Advance() {
		t.Error("Advance at the last step should be a no-op")
	}
	if w.Current() != w.LastIndex() {
		t.Errorf("Current() = %d after Advance at last step", w.Current())
	}
}

func TestRetreat(t *testing.T) {
	w := newTestWizard()
	if w.Retreat() {
		t.Error("Retreat at step 0 should be a no-op")
	}
	if w.Current() != 0 {
		t.Errorf("Current() = %d, want 0", w.Current())
	}

	fillThrough(t, w, UserTypeProvider, 1)
	w.Advance()
	w.Advance()
	mustSet(t, w, FieldFullName, "")
	if !w.Retreat() {
		t.Fatal("Retreat from step 2 failed")
	}
	if w.Current() != 1 {
		t.Errorf("Current() = %d, want 1", w.Current())
	}
}

func TestScenario_PatientMissingCondition(t *testing.T) {
	w := newTestWizard()
	fillThrough(t, w, UserTypePatient, 1)
	w.Advance()
	w.Advance()
	mustSet(t, w, FieldCondition, "")
	mustSet(t, w, FieldUrgency, "immediate")

	if w.StepValid(2) {
		t.Fatal("StepValid(2) = true, want false")
	}
	if w.Advance() {
		t.Fatal("Advance from step 2 should be a no-op")
	}
	if w.Current() != 2 {
		t.Errorf("Current() = %d, want 2", w.Current())
	}
}

func TestScenario_ProviderComplete(t *testing.T) {
	w := newTestWizard()
	fillThrough(t, w, UserTypeProvider, 1)
	w.Advance()
	w.Advance()
	mustSet(t, w, FieldOrganization, "Acme")
	mustSet(t, w, FieldSpecialty, "Cardiology")
	mustSet(t, w, FieldExperience, "5-10 years")

	if !w.StepValid(2) {
		t.Fatal("StepValid(2) = false, want true")
	}
	if !w.Advance() || w.Current() != 3 {
		t.Fatalf("Advance from step 2 landed on %d, want 3", w.Current())
	}
}

func TestToggleMulti_RoundTrip(t *testing.T) {
	w := New()
	if err := w.ToggleMulti(FieldGoals, "research"); err != nil {
		t.Fatal(err)
	}
	before := w.Answers().Goals

	for i := 0; i < 2; i++ {
		if err := w.ToggleMulti(FieldGoals, "collaborate"); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff(before, w.Answers().Goals); diff != "" {
		t.Errorf("double toggle changed goals (-before +after):\n%s", diff)
	}

	w.ToggleMulti(FieldGoals, "research")
	if len(w.Answers().Goals) != 0 {
		t.Errorf("goals = %v, want empty", w.Answers().Goals)
	}
}

func TestToggleMulti_PreservesSelectionOrder(t *testing.T) {
	w := New()
	for _, g := range []string{"b", "a", "c"} {
		w.ToggleMulti(FieldGoals, g)
	}
	w.ToggleMulti(FieldGoals, "a")
	if diff := cmp.Diff([]string{"b", "c"}, w.Answers().Goals); diff != "" {
		t.Errorf("goals mismatch (-want +got):\n%s", diff)
	}
}

func TestSetField_ContractViolations(t *testing.T) {
	w := New()
	tests := []struct {
		name  string
		field Field
		value any
		want  error
	}{
		{"unknown field", Field("shoeSize"), "42", ErrUnknownField},
		{"bool into text", FieldEmail, true, ErrFieldType},
		{"text into flag", FieldConsent, "yes", ErrFieldType},
		{"int into set", FieldGoals, 3, ErrFieldType},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := w.SetField(tc.field, tc.value); !errors.Is(err, tc.want) {
				t.Errorf("SetField error = %v, want %v", err, tc.want)
			}
		})
	}
	if err := w.ToggleMulti(FieldEmail, "x"); !errors.Is(err, ErrFieldType) {
		t.Errorf("ToggleMulti on text field error = %v, want ErrFieldType", err)
	}
}

func TestSetField_GoalsDeduplicated(t *testing.T) {
	w := New()
	mustSet(t, w, FieldGoals, []string{"research", "research", "collaborate"})
	if diff := cmp.Diff([]string{"research", "collaborate"}, w.Answers().Goals); diff != "" {
		t.Errorf("goals mismatch (-want +got):\n%s", diff)
	}
}

func TestProgress(t *testing.T) {
	w := newTestWizard()
	fillThrough(t, w, UserTypePatient, 4)
	want := []float64{0.2, 0.4, 0.6, 0.8, 1.0}
	for i, p := range want {
		if got := w.Progress(); got != p {
			t.Errorf("Progress() at step %d = %v, want %v", i, got, p)
		}
		w.Advance()
	}
}

func TestSubmit_Success(t *testing.T) {
	w := newTestWizard()
	fillThrough(t, w, UserTypeProvider, 4)

	var got Registration
	reg, ok, err := w.Submit(context.Background(), SubmitterFunc(func(_ context.Context, r Registration) error {
		got = r
		return nil
	}))
	if err != nil || !ok {
		t.Fatalf("Submit = (%v, %v), want (true, nil)", ok, err)
	}
	if w.Status() != StatusSubmitted {
		t.Errorf("Status() = %v, want submitted", w.Status())
	}
	if got.ID != "reg-1" || reg.ID != "reg-1" {
		t.Errorf("registration id = %q/%q, want reg-1", got.ID, reg.ID)
	}
	if !got.SubmittedAt.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Errorf("SubmittedAt = %v", got.SubmittedAt)
	}
	if diff := cmp.Diff(w.Answers(), got.Answers); diff != "" {
		t.Errorf("submitted answers mismatch (-wizard +submitted):\n%s", diff)
	}

	if err := w.SetField(FieldFullName, "Other"); !errors.Is(err, ErrLocked) {
		t.Errorf("SetField after submit error = %v, want ErrLocked", err)
	}
	if w.Retreat() {
		t.Error("Retreat after submit should be a no-op")
	}
}

func TestSubmit_RequiresValidLastStep(t *testing.T) {
	w := newTestWizard()
	fillThrough(t, w, UserTypeProvider, 3)
	called := false
	_, ok, err := w.Submit(context.Background(), SubmitterFunc(func(context.Context, Registration) error {
		called = true
		return nil
	}))
	if ok || err != nil || called {
		t.Fatalf("Submit without consent = (%v, %v), called=%v; want no-op", ok, err, called)
	}
	if w.Status() != StatusEditing {
		t.Errorf("Status() = %v, want editing", w.Status())
	}
}

func TestSubmit_FailureReturnsToEditing(t *testing.T) {
	w := newTestWizard()
	fillThrough(t, w, UserTypePatient, 4)
	cause := errors.New("503 from intake")

	_, ok, err := w.Submit(context.Background(), SubmitterFunc(func(context.Context, Registration) error {
		return cause
	}))
	if !ok {
		t.Fatal("Submit did not start")
	}
	if !errors.Is(err, ErrSubmissionFailed) {
		t.Errorf("error = %v, want ErrSubmissionFailed", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("error = %v, want cause preserved", err)
	}
	var subErr *SubmissionError
	if !errors.As(err, &subErr) || subErr.ID != "reg-1" {
		t.Errorf("errors.As SubmissionError = %+v", subErr)
	}
	if w.Status() != StatusEditing {
		t.Fatalf("Status() = %v, want editing", w.Status())
	}

	// Retry gets a fresh registration id.
	reg, ok, err := w.Submit(context.Background(), SubmitterFunc(func(context.Context, Registration) error { return nil }))
	if !ok || err != nil {
		t.Fatalf("retry = (%v, %v)", ok, err)
	}
	if reg.ID != "reg-2" {
		t.Errorf("retry id = %q, want reg-2", reg.ID)
	}
}

func TestBeginSubmit_AtMostOneInFlight(t *testing.T) {
	w := newTestWizard()
	fillThrough(t, w, UserTypeProvider, 4)

	calls := 0
	first, ok := w.BeginSubmit()
	if ok {
		calls++
	}
	if _, again := w.BeginSubmit(); again {
		calls++
	}
	if calls != 1 {
		t.Fatalf("external submissions = %d, want 1", calls)
	}
	if w.Status() != StatusSubmitting {
		t.Fatalf("Status() = %v, want submitting", w.Status())
	}
	if err := w.SetField(FieldEmail, "x@y.z"); !errors.Is(err, ErrLocked) {
		t.Errorf("SetField while submitting = %v, want ErrLocked", err)
	}
	if err := w.CompleteSubmit(first.ID, nil); err != nil {
		t.Fatal(err)
	}
	if w.Status() != StatusSubmitted {
		t.Errorf("Status() = %v, want submitted", w.Status())
	}
}

func TestCompleteSubmit_IgnoresStaleOutcomes(t *testing.T) {
	w := newTestWizard()
	fillThrough(t, w, UserTypeProvider, 4)
	reg, _ := w.BeginSubmit()

	if err := w.CompleteSubmit("someone-else", errors.New("boom")); err != nil {
		t.Errorf("unrelated completion returned %v", err)
	}
	if w.Status() != StatusSubmitting {
		t.Fatalf("Status() = %v, want still submitting", w.Status())
	}

	w.Close()
	if err := w.CompleteSubmit(reg.ID, nil); err != nil {
		t.Errorf("completion after Close returned %v", err)
	}
	if w.Status() == StatusSubmitted {
		t.Error("completion after Close must not reach submitted")
	}
	if err := w.SetField(FieldEmail, "x"); !errors.Is(err, ErrLocked) {
		t.Errorf("SetField after Close = %v, want ErrLocked", err)
	}
}

func TestStatusString(t *testing.T) {
	for s, want := range map[Status]string{
		StatusEditing:    "editing",
		StatusSubmitting: "submitting",
		StatusSubmitted:  "submitted",
		Status(9):        "Status(9)",
	} {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(s), got, want)
		}
	}
}
