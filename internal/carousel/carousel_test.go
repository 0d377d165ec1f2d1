package carousel

import (
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newMock(t *testing.T, items int, period, cooldown time.Duration) (*Carousel, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock()
	c, err := New(Options{Items: items, Period: period, Cooldown: cooldown, Clock: mock})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, mock
}

// fire runs a timer command whose deadline has already passed on the mock
// clock and feeds the message back into the carousel.
func fire(t *testing.T, c *Carousel, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a timer command")
	}
	msg := cmd()
	if msg == nil {
		t.Fatal("timer command was cancelled")
	}
	return c.Update(msg)
}

func at(d time.Duration) time.Time {
	return time.Unix(0, 0).Add(d)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"no items", Options{Items: 0, Period: time.Second}},
		{"zero period", Options{Items: 3, Period: 0}},
		{"negative cooldown", Options{Items: 3, Period: time.Second, Cooldown: -time.Second}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.opts); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestNew_Initial(t *testing.T) {
	c, _ := newMock(t, 3, 4*time.Second, 10*time.Second)
	if c.Index() != 0 || c.State() != Inactive || !c.AutoAdvance() {
		t.Errorf("initial = index %d state %v auto %v", c.Index(), c.State(), c.AutoAdvance())
	}
	if !c.Deadline().IsZero() {
		t.Errorf("inactive carousel has a timer due at %v", c.Deadline())
	}
	other, _ := newMock(t, 3, time.Second, 0)
	if c.ID() == other.ID() {
		t.Error("carousel ids must be unique")
	}
}

// Five items, period 5, activated at t=0. The tick at t=5 advances, a
// manual next at t=6 advances again and nothing ticks until the cooldown
// ends at t=16.
func TestScenario_ManualNextSuspendsUntilCooldownEnds(t *testing.T) {
	c, mock := newMock(t, 5, 5*time.Second, 10*time.Second)

	tick := c.Activate()
	if c.State() != Active {
		t.Fatal("Activate did not activate")
	}

	mock.Add(5 * time.Second)
	pending := fire(t, c, tick)
	if c.Index() != 1 {
		t.Fatalf("t=5: index %d, want 1", c.Index())
	}

	mock.Add(time.Second)
	resume := c.Next()
	if c.Index() != 2 {
		t.Fatalf("t=6: index %d, want 2", c.Index())
	}
	if c.AutoAdvance() {
		t.Error("auto-advance should be suspended during cooldown")
	}
	if msg := pending(); msg != nil {
		t.Errorf("superseded tick delivered %#v", msg)
	}
	if want := at(16*time.Second); !c.Deadline().Equal(want) {
		t.Errorf("deadline %v, want %v", c.Deadline(), want)
	}

	mock.Add(4 * time.Second) // t=10, a period boundary inside the cooldown
	if c.Index() != 2 {
		t.Fatalf("t=10: index %d, want 2", c.Index())
	}

	mock.Add(6 * time.Second) // t=16
	next := fire(t, c, resume)
	if !c.AutoAdvance() {
		t.Error("auto-advance should resume after cooldown")
	}
	if c.Index() != 2 {
		t.Fatalf("t=16: index %d, want 2", c.Index())
	}
	if want := at(21*time.Second); !c.Deadline().Equal(want) {
		t.Errorf("next tick due %v, want %v", c.Deadline(), want)
	}

	mock.Add(5 * time.Second) // t=21
	fire(t, c, next)
	if c.Index() != 3 {
		t.Errorf("t=21: index %d, want 3", c.Index())
	}
	c.Close()
}

func TestTicksWrap(t *testing.T) {
	c, mock := newMock(t, 3, time.Second, 10*time.Second)
	cmd := c.Activate()
	want := []int{1, 2, 0, 1}
	for i, w := range want {
		mock.Add(time.Second)
		cmd = fire(t, c, cmd)
		if c.Index() != w {
			t.Fatalf("tick %d: index %d, want %d", i+1, c.Index(), w)
		}
	}
	c.Close()
}

func TestGoTo_SuspendsAcrossPeriod(t *testing.T) {
	c, mock := newMock(t, 5, 2*time.Second, 10*time.Second)
	c.Activate()
	mock.Add(time.Second)

	resume, err := c.GoTo(4)
	if err != nil {
		t.Fatal(err)
	}
	if c.Index() != 4 {
		t.Fatalf("index %d, want 4", c.Index())
	}
	// Several periods elapse within the cooldown.
	mock.Add(9 * time.Second)
	if c.Index() != 4 {
		t.Errorf("index moved to %d during cooldown", c.Index())
	}
	mock.Add(time.Second)
	fire(t, c, resume)
	if !c.AutoAdvance() || c.Index() != 4 {
		t.Errorf("after cooldown: index %d auto %v", c.Index(), c.AutoAdvance())
	}
	c.Close()
}

func TestGoTo_OutOfRange(t *testing.T) {
	c, _ := newMock(t, 4, time.Second, time.Second)
	for _, i := range []int{-1, 4, 100} {
		cmd, err := c.GoTo(i)
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("GoTo(%d) error = %v, want ErrIndexOutOfRange", i, err)
		}
		if cmd != nil {
			t.Errorf("GoTo(%d) returned a command", i)
		}
	}
	if c.Index() != 0 || !c.AutoAdvance() {
		t.Errorf("failed GoTo changed state: index %d auto %v", c.Index(), c.AutoAdvance())
	}
}

func TestPrevious_Wraps(t *testing.T) {
	c, _ := newMock(t, 4, time.Second, time.Second)
	c.Previous()
	if c.Index() != 3 {
		t.Errorf("index %d, want 3", c.Index())
	}
	c.Next()
	c.Next()
	if c.Index() != 1 {
		t.Errorf("index %d, want 1", c.Index())
	}
	c.Close()
}

func TestOnlyLatestCooldownCounts(t *testing.T) {
	c, mock := newMock(t, 5, 5*time.Second, 10*time.Second)
	c.Activate()

	mock.Add(time.Second)
	first := c.Next()
	mock.Add(7 * time.Second) // t=8
	second := c.Next()

	if msg := first(); msg != nil {
		t.Errorf("first cooldown delivered %#v after being restarted", msg)
	}
	mock.Add(3 * time.Second) // t=11, the first window would have ended here
	if c.AutoAdvance() {
		t.Error("auto-advance resumed on the superseded cooldown")
	}
	mock.Add(7 * time.Second) // t=18
	fire(t, c, second)
	if !c.AutoAdvance() {
		t.Error("auto-advance should resume after the latest cooldown")
	}
	c.Close()
}

func TestActivate_Idempotent(t *testing.T) {
	c, mock := newMock(t, 3, 5*time.Second, 10*time.Second)
	first := c.Activate()
	deadline := c.Deadline()

	mock.Add(2 * time.Second)
	if cmd := c.Activate(); cmd != nil {
		t.Error("second Activate armed another timer")
	}
	if !c.Deadline().Equal(deadline) {
		t.Errorf("second Activate moved the deadline to %v", c.Deadline())
	}
	mock.Add(3 * time.Second)
	fire(t, c, first)
	if c.Index() != 1 {
		t.Errorf("index %d, want 1", c.Index())
	}
	c.Close()
}

func TestInactive_NeverTicks(t *testing.T) {
	c, mock := newMock(t, 3, time.Second, 2*time.Second)

	resume := c.Next()
	mock.Add(2 * time.Second)
	if cmd := fire(t, c, resume); cmd != nil {
		t.Error("inactive carousel armed a tick after cooldown")
	}
	if !c.Deadline().IsZero() {
		t.Errorf("inactive carousel has a timer due at %v", c.Deadline())
	}

	if cmd := c.Update(TickMsg{ID: c.ID(), Tag: c.tag}); cmd != nil || c.Index() != 1 {
		t.Errorf("inactive carousel consumed a tick: index %d", c.Index())
	}
}

func TestActivate_DuringCooldownWaitsForResume(t *testing.T) {
	c, mock := newMock(t, 3, 5*time.Second, 10*time.Second)
	resume := c.Next()

	mock.Add(time.Second)
	if cmd := c.Activate(); cmd != nil {
		t.Error("Activate during cooldown should not arm a tick")
	}
	if c.State() != Active {
		t.Fatal("Activate did not activate")
	}

	mock.Add(9 * time.Second)
	tick := fire(t, c, resume)
	if tick == nil {
		t.Fatal("resume of an active carousel should arm a tick")
	}
	mock.Add(5 * time.Second)
	fire(t, c, tick)
	if c.Index() != 2 {
		t.Errorf("index %d, want 2", c.Index())
	}
	c.Close()
}

func TestUpdate_DropsForeignAndStaleMessages(t *testing.T) {
	c, _ := newMock(t, 5, time.Second, time.Second)
	c.Activate()
	live := c.tag

	msgs := []tea.Msg{
		TickMsg{ID: c.ID() + 1000, Tag: live},
		TickMsg{ID: c.ID(), Tag: live - 1},
		ResumeMsg{ID: c.ID(), Tag: live + 1},
		"unrelated",
	}
	for _, msg := range msgs {
		if cmd := c.Update(msg); cmd != nil {
			t.Errorf("Update(%#v) armed a timer", msg)
		}
	}
	if c.Index() != 0 {
		t.Errorf("index %d, want 0", c.Index())
	}
	c.Close()
}

func TestClose_StopsEverything(t *testing.T) {
	c, _ := newMock(t, 5, time.Second, time.Second)
	tick := c.Activate()
	live := c.tag
	c.Close()

	if msg := tick(); msg != nil {
		t.Errorf("tick after Close delivered %#v", msg)
	}
	if cmd := c.Update(TickMsg{ID: c.ID(), Tag: live}); cmd != nil || c.Index() != 0 {
		t.Error("closed carousel consumed a tick")
	}
	if cmd := c.Next(); cmd != nil || c.Index() != 0 {
		t.Error("closed carousel accepted navigation")
	}
	if cmd := c.Activate(); cmd != nil {
		t.Error("closed carousel armed a timer")
	}
	if !c.Deadline().IsZero() {
		t.Error("closed carousel still has a deadline")
	}
	c.Close()
}

// A command blocked on the wall clock must return once the carousel is
// closed so no goroutine outlives it.
func TestClose_ReleasesWaitingCommand(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, err := New(Options{Items: 2, Period: time.Hour, Cooldown: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	cmds := []tea.Cmd{c.Activate()}
	cmds = append(cmds, c.Next())

	done := make(chan tea.Msg, len(cmds))
	for _, cmd := range cmds {
		go func(cmd tea.Cmd) { done <- cmd() }(cmd)
	}
	c.Close()

	for range cmds {
		select {
		case msg := <-done:
			if msg != nil {
				t.Errorf("cancelled command delivered %#v", msg)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("command still blocked after Close")
		}
	}
}
