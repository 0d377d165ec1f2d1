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

// Package carousel implements an auto-rotating selector: an index over a
// fixed number of items that advances on a timer once activated and can
// be moved by hand, which pauses the timer for a cooldown window.
//
// A Carousel is driven from a bubbletea event loop. Operations that start
// a timer return a tea.Cmd; the resulting TickMsg or ResumeMsg must be fed
// back through Update. Messages from superseded timers are dropped, so at
// most one timer per carousel can ever change its state.
package carousel

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrIndexOutOfRange is returned by GoTo for an index outside the items.
var ErrIndexOutOfRange = errors.New("carousel index out of range")

// State is the activation state of a carousel.
type State int

const (
	Inactive State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// TickMsg advances the carousel it was armed by.
type TickMsg struct {
	ID   int
	Tag  int
	Time time.Time
}

// ResumeMsg ends a cooldown window.
type ResumeMsg struct {
	ID  int
	Tag int
}

// Options configures a Carousel.
type Options struct {
	Items    int
	Period   time.Duration
	Cooldown time.Duration
	// Clock defaults to the wall clock.
	Clock clock.Clock
}

// Carousel is an auto-rotating selector. It is not safe for concurrent
// use; all methods must be called from the event loop.
type Carousel struct {
	id       int
	items    int
	period   time.Duration
	cooldown time.Duration
	clock    clock.Clock

	index     int
	state     State
	suspended bool
	closed    bool

	// tag identifies the single live timer. Messages carrying any other
	// tag are stale.
	tag      int
	timer    *clock.Timer
	cancel   chan struct{}
	deadline time.Time
}

// New creates an inactive carousel positioned at the first item.
func New(opts Options) (*Carousel, error) {
	if opts.Items <= 0 {
		return nil, fmt.Errorf("carousel needs at least one item, got %d", opts.Items)
	}
	if opts.Period <= 0 {
		return nil, fmt.Errorf("carousel period must be positive, got %s", opts.Period)
	}
	if opts.Cooldown < 0 {
		return nil, fmt.Errorf("carousel cooldown must not be negative, got %s", opts.Cooldown)
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}
	return &Carousel{
		id:       nextID(),
		items:    opts.Items,
		period:   opts.Period,
		cooldown: opts.Cooldown,
		clock:    clk,
	}, nil
}

// ID returns the identifier carried by this carousel's messages.
func (c *Carousel) ID() int { return c.id }

// Index returns the current item index.
func (c *Carousel) Index() int { return c.index }

// Len returns the number of items.
func (c *Carousel) Len() int { return c.items }

// State returns the activation state.
func (c *Carousel) State() State { return c.state }

// AutoAdvance reports whether timed advancing is currently allowed, that
// is the carousel is not inside a cooldown window.
func (c *Carousel) AutoAdvance() bool { return !c.suspended }

// Period returns the auto-advance interval.
func (c *Carousel) Period() time.Duration { return c.period }

// Deadline returns when the live timer fires, or the zero time when no
// timer is armed.
func (c *Carousel) Deadline() time.Time { return c.deadline }

// Closed reports whether Close was called.
func (c *Carousel) Closed() bool { return c.closed }

// Activate marks the carousel visible. The first call starts auto-advance;
// later calls do nothing. When a cooldown is running the timer starts once
// it ends.
func (c *Carousel) Activate() tea.Cmd {
	if c.closed || c.state == Active {
		return nil
	}
	c.state = Active
	if c.suspended {
		return nil
	}
	return c.arm(c.period, false)
}

// Next moves to the following item, wrapping at the end.
func (c *Carousel) Next() tea.Cmd {
	return c.jump((c.index + 1) % c.items)
}

// Previous moves to the preceding item, wrapping at the start.
func (c *Carousel) Previous() tea.Cmd {
	return c.jump((c.index - 1 + c.items) % c.items)
}

// GoTo moves to item i.
func (c *Carousel) GoTo(i int) (tea.Cmd, error) {
	if i < 0 || i >= c.items {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, c.items)
	}
	return c.jump(i), nil
}

// jump applies a manual navigation and (re)starts the cooldown window.
func (c *Carousel) jump(i int) tea.Cmd {
	if c.closed {
		return nil
	}
	c.index = i
	c.suspended = true
	return c.arm(c.cooldown, true)
}

// Update consumes the carousel's own timer messages and returns the
// command that arms the next timer, if any.
func (c *Carousel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case TickMsg:
		if !c.live(msg.ID, msg.Tag) || c.suspended || c.state != Active {
			return nil
		}
		c.index = (c.index + 1) % c.items
		return c.arm(c.period, false)
	case ResumeMsg:
		if !c.live(msg.ID, msg.Tag) {
			return nil
		}
		c.suspended = false
		c.disarm()
		if c.state != Active {
			return nil
		}
		return c.arm(c.period, false)
	}
	return nil
}

func (c *Carousel) live(id, tag int) bool {
	return !c.closed && id == c.id && tag == c.tag
}

// Close stops the live timer. Any pending message is dropped and the
// carousel ignores every later operation.
func (c *Carousel) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.disarm()
}

// arm replaces the live timer with one firing after d.
func (c *Carousel) arm(d time.Duration, resume bool) tea.Cmd {
	c.disarm()
	c.tag++
	id, tag := c.id, c.tag
	t := c.clock.Timer(d)
	cancel := make(chan struct{})
	c.timer, c.cancel = t, cancel
	c.deadline = c.clock.Now().Add(d)

	return func() tea.Msg {
		select {
		case now := <-t.C:
			if resume {
				return ResumeMsg{ID: id, Tag: tag}
			}
			return TickMsg{ID: id, Tag: tag, Time: now}
		case <-cancel:
			return nil
		}
	}
}

func (c *Carousel) disarm() {
	if c.timer != nil {
		c.timer.Stop()
		close(c.cancel)
		c.timer, c.cancel = nil, nil
	}
	c.deadline = time.Time{}
}
