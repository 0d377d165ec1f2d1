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

// Package landing renders the MedicallyPlus landing page as a scrollable
// terminal page. Carousels start rotating the first time their section
// scrolls into view and the lead-capture form is embedded near the end.
package landing

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/medicallyplus/mplus/internal/carousel"
	"github.com/medicallyplus/mplus/internal/config"
	"github.com/medicallyplus/mplus/internal/content"
	"github.com/medicallyplus/mplus/internal/wizard"
)

// Section ids, in page order.
const (
	SectionHome         = "home"
	SectionProblem      = "problem-framing"
	SectionPromise      = "our-promise"
	SectionFeatures     = "features"
	SectionPreview      = "saas-preview"
	SectionTestimonials = "testimonials"
	SectionForm         = "interactive-form"
	SectionFooter       = "footer"
)

// Order lists the sections top to bottom.
var Order = []string{
	SectionHome,
	SectionProblem,
	SectionPromise,
	SectionFeatures,
	SectionPreview,
	SectionTestimonials,
	SectionForm,
	SectionFooter,
}

const (
	frameInterval     = 50 * time.Millisecond
	subscribedFor     = 3 * time.Second
	chromeLines       = 2 // sticky nav bar and help line
	minContentWidth   = 40
	defaultPageWidth  = 80
	defaultPageHeight = 24
)

type frameMsg struct{ tag int }

type unsubscribeMsg struct{ tag int }

// Options configures a Model.
type Options struct {
	Catalog   *content.Catalog
	Config    *config.Config
	Submitter wizard.Submitter
	Logger    *log.Logger
	// Clock drives carousels and counters. Defaults to the wall clock.
	Clock clock.Clock
}

// Model is the landing page.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	cat    *content.Catalog
	log    *log.Logger
	clock  clock.Clock

	carousels map[string]*carousel.Carousel
	tracker   *Tracker
	demo      int
	language  int

	counters      []Counter
	countersStart time.Time
	counting      bool
	frameTag      int

	form wizard.FormModel

	newsletter     textinput.Model
	newsletterOpen bool
	subscribed     bool
	subscribeTag   int

	vp       viewport.Model
	lines    []string
	spans    []Span
	width    int
	height   int
	pendingG bool
	static   bool
	quitting bool
}

// New builds the page. ctx bounds in-flight submissions; it is cancelled
// when the page quits.
func New(ctx context.Context, opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}
	if opts.Catalog == nil {
		return Model{}, fmt.Errorf("landing page needs a content catalog")
	}
	cat := opts.Catalog

	ctx, cancel := context.WithCancel(ctx)
	m := Model{
		ctx:       ctx,
		cancel:    cancel,
		cat:       cat,
		log:       logger,
		clock:     clk,
		carousels: make(map[string]*carousel.Carousel),
		tracker:   NewTracker(cfg.Page.VisibilityThreshold),
		width:     defaultPageWidth,
		height:    defaultPageHeight,
	}

	rotating := []struct {
		section string
		items   int
		cc      config.CarouselConfig
	}{
		{SectionPromise, len(cat.Promise.Items), cfg.Carousels.Promises},
		{SectionFeatures, len(cat.Features.Items), cfg.Carousels.Features},
		{SectionPreview, len(cat.Preview.Platforms), cfg.Carousels.Platforms},
		{SectionTestimonials, len(cat.Testimonials.Items), cfg.Carousels.Testimonials},
	}
	for _, r := range rotating {
		c, err := carousel.New(carousel.Options{
			Items:    r.items,
			Period:   r.cc.Period,
			Cooldown: r.cc.Cooldown,
			Clock:    clk,
		})
		if err != nil {
			cancel()
			return Model{}, fmt.Errorf("%s carousel: %w", r.section, err)
		}
		m.carousels[r.section] = c
	}

	for _, s := range cat.Problem.Stats {
		m.counters = append(m.counters, Counter{Stat: s})
	}

	m.form = wizard.NewFormModel(ctx, wizard.FormOptions{
		Catalog:   cat.Form,
		Submitter: opts.Submitter,
		Logger:    logger,
		Wizard:    []wizard.Option{wizard.WithNewsletterDefault(cfg.Form.NewsletterDefault)},
	})

	m.newsletter = textinput.New()
	m.newsletter.Placeholder = "you@example.com"
	m.newsletter.Prompt = "✉ "
	m.newsletter.CharLimit = 120
	m.newsletter.Width = 32

	m.vp = viewport.New(m.width, m.height-chromeLines)
	m.layout()
	return m, nil
}

// Carousel returns the carousel driving section id, or nil.
func (m Model) Carousel(id string) *carousel.Carousel { return m.carousels[id] }

// Form returns the embedded form.
func (m Model) Form() wizard.FormModel { return m.form }

// Offset returns the first visible line of the page.
func (m Model) Offset() int { return m.vp.YOffset }

// Span returns the line range of section id.
func (m Model) Span(id string) (Span, bool) {
	for _, s := range m.spans {
		if s.ID == id {
			return s, true
		}
	}
	return Span{}, false
}

// Current returns the section at the top of the viewport.
func (m Model) Current() string {
	top := m.vp.YOffset
	current := Order[0]
	for _, s := range m.spans {
		if s.Start <= top {
			current = s.ID
		}
	}
	return current
}

// Init starts the cursor blink. Sections on the first screen activate
// with the initial WindowSizeMsg.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = max(1, msg.Height-chromeLines)
		m.form.SetWidth(m.contentWidth())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		cmd, quit := m.handleKey(msg)
		if quit {
			return m, cmd
		}
		cmds = append(cmds, cmd)

	case carousel.TickMsg, carousel.ResumeMsg:
		for _, c := range m.carousels {
			cmds = append(cmds, c.Update(msg))
		}

	case frameMsg:
		cmds = append(cmds, m.frame(msg))

	case unsubscribeMsg:
		if msg.tag == m.subscribeTag {
			m.subscribed = false
		}

	case wizard.NavigateMsg:
		m.form.Blur()
		m.ScrollTo(msg.Target)

	case wizard.ReleaseMsg:
		m.form.Blur()

	case wizard.SubmittedMsg, spinner.TickMsg:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		cmds = append(cmds, cmd)

	default:
		if m.newsletterOpen {
			var cmd tea.Cmd
			m.newsletter, cmd = m.newsletter.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.layout()
	cmds = append(cmds, m.observe())
	return m, tea.Batch(cmds...)
}

// handleKey routes a key press. It reports true when the page is quitting.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if m.form.Focused() {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return cmd, false
	}
	if m.newsletterOpen {
		return m.updateNewsletter(msg), false
	}

	key := msg.String()
	if m.pendingG {
		m.pendingG = false
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			return m.goTo(int(key[0] - '1')), false
		}
	}

	switch key {
	case "q":
		return m.quit(), true
	case "up", "k":
		m.scrollBy(-1)
	case "down", "j":
		m.scrollBy(1)
	case "pgup", "b":
		m.scrollBy(-m.vp.Height)
	case "pgdown", " ":
		m.scrollBy(m.vp.Height)
	case "home":
		m.setOffset(0)
	case "end", "G":
		m.setOffset(len(m.lines))
	case "tab":
		m.stepSection(1)
	case "shift+tab":
		m.stepSection(-1)
	case "1", "2", "3", "4", "5", "6", "7", "8":
		m.ScrollTo(Order[int(key[0]-'1')])
	case "g":
		m.pendingG = true
	case "left", "h":
		if c := m.carousels[m.Current()]; c != nil {
			return c.Previous(), false
		}
	case "right", "l":
		if c := m.carousels[m.Current()]; c != nil {
			return c.Next(), false
		}
	case "w":
		if n := len(m.cat.Preview.Demos); n > 0 {
			m.demo = (m.demo + 1) % n
		}
	case "L":
		if n := len(m.cat.Footer.Languages); n > 0 {
			m.language = (m.language + 1) % n
			m.log.Debug("language selected", "language", m.cat.Footer.Languages[m.language])
		}
	case "r":
		m.ScrollTo(SectionForm)
		return m.form.Focus(), false
	case "n":
		m.ScrollTo(SectionFooter)
		m.newsletterOpen = true
		return m.newsletter.Focus(), false
	case "enter":
		switch m.Current() {
		case SectionForm:
			return m.form.Focus(), false
		case SectionFooter:
			m.newsletterOpen = true
			return m.newsletter.Focus(), false
		}
	}
	return nil, false
}

func (m *Model) goTo(i int) tea.Cmd {
	id := m.Current()
	c := m.carousels[id]
	if c == nil {
		return nil
	}
	cmd, err := c.GoTo(i)
	if err != nil {
		m.log.Warn("carousel selection ignored", "section", id, "err", err)
		return nil
	}
	return cmd
}

func (m *Model) updateNewsletter(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.newsletterOpen = false
		m.newsletter.Blur()
		return nil
	case "enter":
		email := strings.TrimSpace(m.newsletter.Value())
		if email == "" {
			return nil
		}
		m.log.Info("newsletter signup", "email", email)
		m.newsletter.SetValue("")
		m.newsletter.Blur()
		m.newsletterOpen = false
		m.subscribed = true
		m.subscribeTag++
		tag := m.subscribeTag
		return tea.Tick(subscribedFor, func(time.Time) tea.Msg {
			return unsubscribeMsg{tag: tag}
		})
	}
	var cmd tea.Cmd
	m.newsletter, cmd = m.newsletter.Update(msg)
	return cmd
}

// ScrollTo moves the viewport to the top of section id. An unknown id is
// logged and scrolls to the top of the page.
func (m *Model) ScrollTo(id string) {
	s, ok := m.Span(id)
	if !ok {
		m.log.Warn("section not found", "id", id)
		m.setOffset(0)
		return
	}
	m.setOffset(s.Start)
}

func (m *Model) stepSection(delta int) {
	cur := m.Current()
	for i, id := range Order {
		if id == cur {
			next := min(max(i+delta, 0), len(Order)-1)
			m.ScrollTo(Order[next])
			return
		}
	}
}

func (m *Model) scrollBy(n int) {
	m.setOffset(m.vp.YOffset + n)
}

func (m *Model) setOffset(y int) {
	maxOff := max(0, len(m.lines)-m.vp.Height)
	m.vp.SetYOffset(min(max(y, 0), maxOff))
}

// observe activates whatever just became visible.
func (m *Model) observe() tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range m.tracker.Observe(m.spans, m.vp.YOffset, m.vp.Height) {
		m.log.Debug("section visible", "id", id)
		if c := m.carousels[id]; c != nil {
			cmds = append(cmds, c.Activate())
		}
		if id == SectionProblem && !m.counting && len(m.counters) > 0 {
			m.counting = true
			m.countersStart = m.clock.Now()
			m.frameTag++
			cmds = append(cmds, m.nextFrame())
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) nextFrame() tea.Cmd {
	tag := m.frameTag
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{tag: tag}
	})
}

func (m *Model) frame(msg frameMsg) tea.Cmd {
	if m.quitting || msg.tag != m.frameTag || !m.counting {
		return nil
	}
	elapsed := m.clock.Since(m.countersStart)
	for _, c := range m.counters {
		if !c.Done(elapsed) {
			return m.nextFrame()
		}
	}
	return nil
}

func (m *Model) counterElapsed() time.Duration {
	if m.static {
		return 24 * time.Hour
	}
	if !m.counting {
		return 0
	}
	return m.clock.Since(m.countersStart)
}

// quit tears the page down: timers stop, the form is closed and any
// submission in flight is cancelled.
func (m *Model) quit() tea.Cmd {
	if !m.quitting {
		m.quitting = true
		for _, c := range m.carousels {
			c.Close()
		}
		m.form.Close()
		m.cancel()
		m.frameTag++
		m.subscribeTag++
	}
	return tea.Quit
}

func (m Model) contentWidth() int {
	return max(minContentWidth, m.width)
}

// layout renders every section and records where each one starts.
func (m *Model) layout() {
	var lines []string
	spans := make([]Span, 0, len(Order))
	for _, id := range Order {
		block := strings.Split(m.renderSection(id), "\n")
		spans = append(spans, Span{ID: id, Start: len(lines), End: len(lines) + len(block)})
		lines = append(lines, block...)
		lines = append(lines, "")
	}
	// Pad below the footer so the last section can reach the top.
	if last := spans[len(spans)-1]; len(lines) < last.Start+m.vp.Height {
		lines = append(lines, make([]string, last.Start+m.vp.Height-len(lines))...)
	}
	m.lines, m.spans = lines, spans

	off := m.vp.YOffset
	m.vp.SetContent(strings.Join(lines, "\n"))
	m.setOffset(off)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.navBar() + "\n" + m.vp.View() + "\n" + helpStyle.Render(m.help())
}

func (m Model) navBar() string {
	cur := m.Current()
	parts := []string{brandStyle.Render(m.cat.Brand.Name)}
	for i, id := range Order {
		label := fmt.Sprintf("%d %s", i+1, m.sectionLabel(id))
		if id == cur {
			parts = append(parts, navActiveStyle.Render(label))
		} else {
			parts = append(parts, navStyle.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) sectionLabel(id string) string {
	for _, l := range m.cat.Header.Nav {
		if l.Target == id {
			return l.Label
		}
	}
	switch id {
	case SectionProblem:
		return "Why"
	case SectionFooter:
		return "Contact"
	}
	return id
}

func (m Model) help() string {
	switch {
	case m.form.Focused():
		return "form: enter continue • esc back • ctrl+c quit"
	case m.newsletterOpen:
		return "newsletter: enter subscribe • esc cancel"
	}
	h := "↑/↓ scroll • tab next section • 1-8 jump • r register • n newsletter • q quit"
	switch {
	case m.carousels[m.Current()] != nil:
		h = "←/→ browse • g+digit select • " + h
	case m.Current() == SectionFooter && len(m.cat.Footer.Languages) > 0:
		h = "L language • " + h
	}
	return h
}
