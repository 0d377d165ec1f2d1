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
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/medicallyplus/mplus/internal/content"
)

// SubmittedMsg carries the outcome of an asynchronous submission.
type SubmittedMsg struct {
	ID  string
	Err error
}

// NavigateMsg asks the host page to scroll to a section.
type NavigateMsg struct {
	Target string
}

// ReleaseMsg tells the host page the form gave up keyboard focus.
type ReleaseMsg struct{}

type rowKind int

const (
	rowText rowKind = iota
	rowChoice
	rowToggle
)

// row is one editable line on a field step.
type row struct {
	field    Field
	label    string
	kind     rowKind
	required bool
	options  []content.Option
}

// FormOptions configures a FormModel.
type FormOptions struct {
	Catalog   content.Form
	Submitter Submitter
	Logger    *log.Logger
	Wizard    []Option
}

// FormModel is the bubbletea component rendering a Wizard. It can be
// embedded in a page or run on its own through Run.
type FormModel struct {
	ctx       context.Context
	wiz       *Wizard
	catalog   content.Form
	submitter Submitter
	log       *log.Logger

	cursor  int
	inputs  map[Field]textinput.Model
	spinner spinner.Model
	bar     progress.Model
	width   int

	focused    bool
	standalone bool
	cancelled  bool
	hint       string
	err        error
	last       Registration
}

// NewFormModel creates a form at the first step.
func NewFormModel(ctx context.Context, opts FormOptions) FormModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := FormModel{
		ctx:       ctx,
		wiz:       New(opts.Wizard...),
		catalog:   opts.Catalog,
		submitter: opts.Submitter,
		log:       logger,
		inputs:    make(map[Field]textinput.Model),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(cursorStyle)),
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(40), progress.WithoutPercentage()),
	}
	answers := m.wiz.Answers()
	for f, kind := range fieldKinds {
		if kind != KindText || isChoiceField(f) {
			continue
		}
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 200
		in.Width = 40
		in.Placeholder = placeholders[f]
		in.SetValue(answers.Text(f))
		m.inputs[f] = in
	}
	return m
}

var placeholders = map[Field]string{
	FieldFullName:          "Dr. John Smith",
	FieldEmail:             "john@hospital.com",
	FieldPhone:             "+1 (555) 123-4567",
	FieldOrganization:      "Your workplace",
	FieldPatientType:       "Adult, pediatric, caregiver...",
	FieldCondition:         "Describe your condition or concern",
	FieldPreviousTreatment: "Optional",
}

func isChoiceField(f Field) bool {
	switch f {
	case FieldUserType, FieldCountry, FieldSpecialty, FieldExperience, FieldUrgency:
		return true
	}
	return false
}

// Wizard exposes the underlying state machine.
func (m FormModel) Wizard() *Wizard { return m.wiz }

// Focused reports whether the form receives key presses.
func (m FormModel) Focused() bool { return m.focused }

// Cancelled reports whether the user aborted a standalone form.
func (m FormModel) Cancelled() bool { return m.cancelled }

// Registration returns the last registration handed to the submitter.
func (m FormModel) Registration() Registration { return m.last }

// Focus gives the form keyboard focus.
func (m *FormModel) Focus() tea.Cmd {
	m.focused = true
	return m.syncInputs()
}

// Blur releases keyboard focus.
func (m *FormModel) Blur() {
	m.focused = false
	m.syncInputs()
}

// Close tears the underlying wizard down.
func (m *FormModel) Close() {
	m.wiz.Close()
}

// SetWidth adapts the progress bar to the available width.
func (m *FormModel) SetWidth(w int) {
	m.width = w
	bw := w - 10
	if bw > 60 {
		bw = 60
	}
	if bw < 10 {
		bw = 10
	}
	m.bar.Width = bw
}

// Update handles key presses while focused and submission outcomes at any
// time.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case SubmittedMsg:
		return m.handleSubmitted(msg)
	case spinner.TickMsg:
		if m.wiz.Status() != StatusSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.SetWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && m.standalone {
			m.cancelled = true
			return m, tea.Quit
		}
		if !m.focused {
			return m, nil
		}
		switch m.wiz.Status() {
		case StatusSubmitting:
			return m, nil
		case StatusSubmitted:
			return m.updateDone(msg)
		}
		m.hint = ""
		switch m.wiz.CurrentStep().ID {
		case StepUserType:
			return m.updateUserType(msg)
		case StepGoals:
			return m.updateGoals(msg)
		default:
			return m.updateRows(msg)
		}
	}
	return m, nil
}

func (m FormModel) handleSubmitted(msg SubmittedMsg) (FormModel, tea.Cmd) {
	if err := m.wiz.CompleteSubmit(msg.ID, msg.Err); err != nil {
		m.err = err
		m.log.Warn("registration rejected", "id", msg.ID, "err", msg.Err)
		return m, nil
	}
	if m.wiz.Status() == StatusSubmitted {
		m.err = nil
		m.log.Info("registration accepted", "id", msg.ID, "userType", m.last.Answers.UserType)
	}
	return m, nil
}

func (m FormModel) updateUserType(msg tea.KeyMsg) (FormModel, tea.Cmd) {
	options := m.catalog.UserTypes
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(options)-1 {
			m.cursor++
		}
	case " ", "x":
		if m.cursor < len(options) {
			_ = m.wiz.SetField(FieldUserType, options[m.cursor].Value)
		}
	case "enter":
		if m.cursor < len(options) && m.wiz.Answers().UserType == "" {
			_ = m.wiz.SetField(FieldUserType, options[m.cursor].Value)
		}
		return m.advance()
	case "esc":
		m.focused = false
		m.syncInputs()
		return m, func() tea.Msg { return ReleaseMsg{} }
	}
	return m, nil
}

func (m FormModel) updateGoals(msg tea.KeyMsg) (FormModel, tea.Cmd) {
	goals := m.catalog.Goals
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(goals)-1 {
			m.cursor++
		}
	case " ", "x":
		if m.cursor < len(goals) {
			_ = m.wiz.ToggleMulti(FieldGoals, goals[m.cursor].Value)
		}
	case "enter":
		return m.advance()
	case "esc":
		return m.retreat()
	}
	return m, nil
}

func (m FormModel) updateRows(msg tea.KeyMsg) (FormModel, tea.Cmd) {
	rows := m.rows()
	var cur row
	if m.cursor < len(rows) {
		cur = rows[m.cursor]
	}

	switch msg.String() {
	case "up", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, m.syncInputs()
	case "down", "tab":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
		return m, m.syncInputs()
	case "enter":
		if m.wiz.Current() == m.wiz.LastIndex() {
			return m.submit()
		}
		return m.advance()
	case "esc":
		return m.retreat()
	}

	switch cur.kind {
	case rowChoice:
		switch msg.String() {
		case "right", "l", " ":
			m.cycle(cur, 1)
		case "left", "h":
			m.cycle(cur, -1)
		}
		return m, nil
	case rowToggle:
		switch msg.String() {
		case " ", "x", "left", "right":
			a := m.wiz.Answers()
			_ = m.wiz.SetField(cur.field, !a.Flag(cur.field))
		}
		return m, nil
	}

	in, ok := m.inputs[cur.field]
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	in, cmd = in.Update(msg)
	m.inputs[cur.field] = in
	_ = m.wiz.SetField(cur.field, in.Value())
	return m, cmd
}

// cycle moves a choice row to the neighbouring option. An unset row
// starts at the first option going forward and the last going back.
func (m *FormModel) cycle(r row, delta int) {
	if len(r.options) == 0 {
		return
	}
	a := m.wiz.Answers()
	idx := -1
	for i, o := range r.options {
		if o.Value == a.Text(r.field) {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = len(r.options) - 1
	default:
		idx = (idx + delta + len(r.options)) % len(r.options)
	}
	_ = m.wiz.SetField(r.field, r.options[idx].Value)
}

func (m FormModel) advance() (FormModel, tea.Cmd) {
	if !m.wiz.Advance() {
		if m.wiz.Current() < m.wiz.LastIndex() {
			m.hint = "Complete the required fields to continue"
		}
		return m, nil
	}
	m.cursor = 0
	return m, m.syncInputs()
}

func (m FormModel) retreat() (FormModel, tea.Cmd) {
	if m.wiz.Retreat() {
		m.cursor = 0
		return m, m.syncInputs()
	}
	return m, nil
}

func (m FormModel) submit() (FormModel, tea.Cmd) {
	reg, ok := m.wiz.BeginSubmit()
	if !ok {
		if m.wiz.Status() == StatusEditing {
			m.hint = "Please accept the terms to continue"
		}
		return m, nil
	}
	m.last = reg
	m.err = nil
	m.syncInputs()
	m.log.Debug("submitting registration", "id", reg.ID)

	ctx, s := m.ctx, m.submitter
	send := func() tea.Msg {
		if s == nil {
			return SubmittedMsg{ID: reg.ID, Err: fmt.Errorf("no submission target configured")}
		}
		return SubmittedMsg{ID: reg.ID, Err: s.Submit(ctx, reg)}
	}
	return m, tea.Batch(send, m.spinner.Tick)
}

func (m FormModel) updateDone(msg tea.KeyMsg) (FormModel, tea.Cmd) {
	switch msg.String() {
	case "h":
		return m, navigate("home")
	case "f":
		return m, navigate("features")
	case "enter", "q", "esc":
		if m.standalone {
			return m, tea.Quit
		}
		if msg.String() == "esc" {
			m.focused = false
			return m, func() tea.Msg { return ReleaseMsg{} }
		}
	}
	return m, nil
}

func navigate(target string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Target: target} }
}

// syncInputs focuses the text input under the cursor and blurs the rest.
func (m *FormModel) syncInputs() tea.Cmd {
	var focus Field
	if m.focused && m.wiz.Status() == StatusEditing {
		if rows := m.rows(); m.cursor < len(rows) && rows[m.cursor].kind == rowText {
			focus = rows[m.cursor].field
		}
	}
	var cmd tea.Cmd
	for f, in := range m.inputs {
		if f == focus {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
		m.inputs[f] = in
	}
	return cmd
}

// rows lists the editable lines of the current step. List steps have none.
func (m FormModel) rows() []row {
	a := m.wiz.Answers()
	switch m.wiz.CurrentStep().ID {
	case StepBasicInfo:
		return []row{
			{field: FieldFullName, label: "Full Name", kind: rowText, required: true},
			{field: FieldEmail, label: "Email Address", kind: rowText, required: true},
			{field: FieldPhone, label: "Phone Number", kind: rowText},
			{field: FieldCountry, label: "Country", kind: rowChoice, required: true, options: plain(m.catalog.Countries)},
		}
	case StepProfessionalInfo:
		if a.IsProvider() {
			return []row{
				{field: FieldOrganization, label: "Organization/Hospital", kind: rowText, required: true},
				{field: FieldSpecialty, label: "Medical Specialty", kind: rowChoice, required: true, options: plain(m.catalog.Specialties)},
				{field: FieldExperience, label: "Years of Experience", kind: rowChoice, required: true, options: plain(m.catalog.Experience)},
			}
		}
		return []row{
			{field: FieldCondition, label: "Medical Condition or Concern", kind: rowText, required: true},
			{field: FieldUrgency, label: "How urgent is your need?", kind: rowChoice, required: true, options: m.catalog.Urgency},
			{field: FieldPatientType, label: "Who is the care for?", kind: rowText},
			{field: FieldPreviousTreatment, label: "Previous Treatment", kind: rowText},
		}
	case StepConfirmation:
		return []row{
			{field: FieldConsent, label: "I agree to the MedicallyPlus Terms of Service and Privacy Policy", kind: rowToggle, required: true},
			{field: FieldNewsletter, label: "Send me product updates and healthcare insights", kind: rowToggle},
		}
	}
	return nil
}

func plain(values []string) []content.Option {
	out := make([]content.Option, len(values))
	for i, v := range values {
		out[i] = content.Option{Value: v, Label: v}
	}
	return out
}

// View renders the form.
func (m FormModel) View() string {
	var b strings.Builder
	title := m.catalog.Title
	if title == "" {
		title = "Join MedicallyPlus"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if m.wiz.Status() == StatusSubmitted {
		b.WriteString(m.viewDone())
		return b.String()
	}

	step := m.wiz.CurrentStep()
	fmt.Fprintf(&b, "%s  %s\n\n", m.bar.ViewAs(m.wiz.Progress()),
		dimStyle.Render(fmt.Sprintf("Step %d of %d", m.wiz.Current()+1, m.wiz.StepCount())))
	b.WriteString(labelStyle.Render(step.Title))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(step.Subtitle))
	b.WriteString("\n\n")

	switch step.ID {
	case StepUserType:
		b.WriteString(m.viewUserType())
	case StepGoals:
		b.WriteString(m.viewGoals())
	case StepConfirmation:
		b.WriteString(m.viewSummary())
		b.WriteString("\n")
		b.WriteString(m.viewRows())
	default:
		b.WriteString(m.viewRows())
	}

	if m.wiz.Status() == StatusSubmitting {
		fmt.Fprintf(&b, "\n%s Submitting your registration...\n", m.spinner.View())
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(bannerStyle.Render("We couldn't submit your registration. Press enter to try again."))
		b.WriteString("\n")
	}
	if m.hint != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(m.hint))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m FormModel) viewUserType() string {
	var b strings.Builder
	chosen := m.wiz.Answers().UserType
	for i, opt := range m.catalog.UserTypes {
		cursor := "  "
		if m.focused && i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		mark := "( )"
		label := opt.Label
		if opt.Value == chosen {
			mark = selectedStyle.Render("(•)")
			label = selectedStyle.Render(label)
		}
		fmt.Fprintf(&b, "%s%s %s  %s\n", cursor, mark, label, dimStyle.Render(opt.Desc))
	}
	return b.String()
}

func (m FormModel) viewGoals() string {
	var b strings.Builder
	a := m.wiz.Answers()
	for i, g := range m.catalog.Goals {
		cursor := "  "
		if m.focused && i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		check := "[ ]"
		label := g.Label
		if a.HasGoal(g.Value) {
			check = selectedStyle.Render("[x]")
			label = selectedStyle.Render(label)
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, check, label)
	}
	fmt.Fprintf(&b, "\n%s\n", dimStyle.Render(fmt.Sprintf("%d selected", len(a.Goals))))
	return b.String()
}

func (m FormModel) viewRows() string {
	var b strings.Builder
	a := m.wiz.Answers()
	for i, r := range m.rows() {
		cursor := "  "
		if m.focused && i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		label := r.label
		if r.required {
			label += " *"
		}
		switch r.kind {
		case rowText:
			fmt.Fprintf(&b, "%s%s\n    %s\n", cursor, labelStyle.Render(label), m.inputs[r.field].View())
		case rowChoice:
			value := dimStyle.Render("‹ select ›")
			for _, o := range r.options {
				if o.Value == a.Text(r.field) {
					value = "‹ " + selectedStyle.Render(o.Label) + " ›"
					if o.Desc != "" {
						value += " " + dimStyle.Render(o.Desc)
					}
				}
			}
			fmt.Fprintf(&b, "%s%s\n    %s\n", cursor, labelStyle.Render(label), value)
		case rowToggle:
			check := "[ ]"
			if a.Flag(r.field) {
				check = selectedStyle.Render("[x]")
			}
			fmt.Fprintf(&b, "%s%s %s\n", cursor, check, label)
		}
	}
	return b.String()
}

func (m FormModel) viewSummary() string {
	a := m.wiz.Answers()
	lines := [][2]string{
		{"User Type", a.UserType},
		{"Name", a.FullName},
		{"Email", a.Email},
		{"Country", a.Country},
	}
	if a.Specialty != "" {
		lines = append(lines, [2]string{"Specialty", a.Specialty})
	}
	lines = append(lines, [2]string{"Goals", fmt.Sprintf("%d selected", len(a.Goals))})

	var b strings.Builder
	b.WriteString(labelStyle.Render("Review Your Information"))
	b.WriteString("\n")
	for _, l := range lines {
		fmt.Fprintf(&b, "  %-10s %s\n", dimStyle.Render(l[0]+":"), l[1])
	}
	return lipgloss.NewStyle().PaddingLeft(1).Render(b.String())
}

func (m FormModel) viewDone() string {
	var b strings.Builder
	b.WriteString(successStyle.Render("Welcome to MedicallyPlus!"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Your registration was received. Here's what happens next:"))
	b.WriteString("\n\n")
	for i, s := range m.catalog.NextSteps {
		fmt.Fprintf(&b, "  %d. %s  %s\n", i+1, labelStyle.Render(s.Value), dimStyle.Render(s.Label))
	}
	if m.standalone {
		b.WriteString(helpStyle.Render("enter to exit"))
	} else {
		b.WriteString(helpStyle.Render("h back to home • f explore features"))
	}
	return b.String()
}

func (m FormModel) help() string {
	if !m.focused {
		return "enter to start"
	}
	switch m.wiz.CurrentStep().ID {
	case StepUserType:
		return "↑/↓ navigate • space select • enter continue • esc leave form"
	case StepGoals:
		return "↑/↓ navigate • space toggle • enter continue • esc back"
	case StepConfirmation:
		return "↑/↓ navigate • space toggle • enter submit • esc back"
	}
	return "↑/↓ field • ←/→ choose • enter continue • esc back"
}
