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

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/medicallyplus/mplus/internal/carousel"
	"github.com/medicallyplus/mplus/internal/content"
)

func (m Model) renderSection(id string) string {
	switch id {
	case SectionHome:
		return m.renderHome()
	case SectionProblem:
		return m.renderProblem()
	case SectionPromise:
		return m.renderPromise()
	case SectionFeatures:
		return m.renderFeatures()
	case SectionPreview:
		return m.renderPreview()
	case SectionTestimonials:
		return m.renderTestimonials()
	case SectionForm:
		return m.renderForm()
	case SectionFooter:
		return m.renderFooter()
	}
	return ""
}

func (m Model) wrap(s string) string {
	return textStyle.Width(m.contentWidth() - 4).Render(s)
}

// jumpKey returns the digit that scrolls to section id.
func jumpKey(id string) string {
	for i, s := range Order {
		if s == id {
			return fmt.Sprintf("%d", i+1)
		}
	}
	return "?"
}

func (m Model) renderHome() string {
	h := m.cat.Hero
	var b strings.Builder
	b.WriteString(dimStyle.Render(h.Eyebrow) + "\n")
	b.WriteString(headlineStyle.Render(h.Headline) + "\n\n")
	b.WriteString(m.wrap(h.Body) + "\n\n")

	var badges []string
	for _, s := range h.Badges {
		badges = append(badges, badgeStyle.Render(s))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, badges...) + "\n\n")

	b.WriteString(fmt.Sprintf("%s %s   %s %s\n\n",
		figureStyle.Render("[r]"), h.PrimaryAction.Label,
		figureStyle.Render("["+jumpKey(h.SecondaryAction.Target)+"]"), h.SecondaryAction.Label))
	b.WriteString(metricsRow(h.Metrics))
	return b.String()
}

func (m Model) renderProblem() string {
	p := m.cat.Problem
	var b strings.Builder
	b.WriteString(sectionTitleStyle.Render(p.Title) + "\n")

	elapsed := m.counterElapsed()
	for _, c := range m.counters {
		b.WriteString(figureStyle.Render(c.Text(elapsed)) + " " + c.Stat.Label + "\n")
		b.WriteString("  " + dimStyle.Render(c.Stat.Description) + "\n")
	}

	for _, g := range p.PainPoints {
		b.WriteString("\n" + headlineStyle.Render(g.Category) + "\n")
		for _, pt := range g.Points {
			b.WriteString("  • " + pt + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderPromise() string {
	p := m.cat.Promise
	c := m.carousels[SectionPromise]
	item := p.Items[c.Index()]

	var b strings.Builder
	b.WriteString(sectionTitleStyle.Render(p.Title) + "\n")
	card := headlineStyle.Render(item.Title) + "\n" + m.wrapCard(item.Description)
	b.WriteString(m.card(SectionPromise, card) + "\n")
	b.WriteString(dots(c) + "\n\n")
	b.WriteString(metricsRow(p.Outcomes))
	return b.String()
}

func (m Model) renderFeatures() string {
	f := m.cat.Features
	c := m.carousels[SectionFeatures]
	item := f.Items[c.Index()]

	var b strings.Builder
	b.WriteString(sectionTitleStyle.Render(f.Title) + "\n")
	var card strings.Builder
	card.WriteString(headlineStyle.Render(item.Title) + "\n")
	card.WriteString(m.wrapCard(item.Description) + "\n")
	for _, d := range item.Details {
		card.WriteString("\n" + successStyle.Render("✓") + " " + d)
	}
	b.WriteString(m.card(SectionFeatures, card.String()) + "\n")
	b.WriteString(dots(c) + "\n\n")
	b.WriteString(metricsRow(f.Stats))
	return b.String()
}

func (m Model) renderPreview() string {
	p := m.cat.Preview
	c := m.carousels[SectionPreview]

	var b strings.Builder
	b.WriteString(sectionTitleStyle.Render(p.Title) + "\n")
	var tabs []string
	for i, pl := range p.Platforms {
		if i == c.Index() {
			tabs = append(tabs, navActiveStyle.Render(pl.Name))
		} else {
			tabs = append(tabs, navStyle.Render(pl.Name))
		}
	}
	b.WriteString(strings.Join(tabs, "  │  ") + "\n")
	b.WriteString(dimStyle.Render(p.Platforms[c.Index()].Description) + "\n\n")

	if len(p.Demos) > 0 {
		d := p.Demos[m.demo%len(p.Demos)]
		var screen strings.Builder
		screen.WriteString(headlineStyle.Render(d.Title) + "\n")
		screen.WriteString(dimStyle.Render(d.Description) + "\n")
		for _, f := range d.Features {
			screen.WriteString("\n▸ " + f)
		}
		b.WriteString(cardStyle.Render(screen.String()) + "\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("screen %d/%d • w next screen", m.demo%len(p.Demos)+1, len(p.Demos))))
	}
	return b.String()
}

func (m Model) renderTestimonials() string {
	t := m.cat.Testimonials
	c := m.carousels[SectionTestimonials]
	item := t.Items[c.Index()]

	var b strings.Builder
	b.WriteString(sectionTitleStyle.Render(t.Title) + "\n")
	var card strings.Builder
	card.WriteString(starStyle.Render(strings.Repeat("★", item.Rating)) + "\n")
	card.WriteString(m.wrapCard("“"+item.Quote+"”") + "\n\n")
	card.WriteString(headlineStyle.Render(item.Name) + "\n")
	card.WriteString(fmt.Sprintf("%s, %s\n", item.Role, item.Organization))
	card.WriteString(dimStyle.Render(item.Location) + "\n\n")
	card.WriteString(successStyle.Render(item.Impact) + "\n")
	card.WriteString(dimStyle.Render(strings.Join([]string{item.Specialty, item.Experience, item.Cases}, " · ")))
	b.WriteString(m.card(SectionTestimonials, card.String()) + "\n")
	b.WriteString(dots(c) + "\n\n")
	b.WriteString(metricsRow(t.Stats))
	return b.String()
}

func (m Model) renderForm() string {
	if m.form.Focused() {
		return focusedCardStyle.Render(m.form.View())
	}
	return cardStyle.Render(m.form.View()) + "\n" + dimStyle.Render("press r to fill in the form")
}

func (m Model) renderFooter() string {
	f := m.cat.Footer
	var b strings.Builder
	b.WriteString(brandStyle.Render(m.cat.Brand.Name) + "  " + dimStyle.Render(m.cat.Brand.Tagline) + "\n")
	b.WriteString(f.Tagline + "\n\n")

	var cols []string
	for _, g := range f.Links {
		var col strings.Builder
		col.WriteString(headlineStyle.Render(g.Title) + "\n")
		for _, l := range g.Links {
			col.WriteString(fmt.Sprintf("%s %s\n", dimStyle.Render("["+jumpKey(l.Target)+"]"), l.Label))
		}
		cols = append(cols, lipgloss.NewStyle().MarginRight(4).Render(strings.TrimRight(col.String(), "\n")))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...) + "\n\n")

	b.WriteString(fmt.Sprintf("%s  %s\n\n", f.Contact.Email, f.Contact.Phone))
	if len(f.Languages) > 0 {
		b.WriteString(fmt.Sprintf("Language: %s %s\n\n", headlineStyle.Render(f.Languages[m.language]), dimStyle.Render("[L]")))
	}
	b.WriteString(f.NewsletterPrompt + "\n")
	switch {
	case m.subscribed:
		b.WriteString(successStyle.Render("✓ subscribed"))
	case m.newsletterOpen:
		b.WriteString(m.newsletter.View())
	default:
		b.WriteString(dimStyle.Render("press n to subscribe"))
	}
	return b.String()
}

func (m Model) wrapCard(s string) string {
	return textStyle.Width(max(20, m.contentWidth()-10)).Render(s)
}

// card frames a carousel item. The one the arrow keys control is
// highlighted.
func (m Model) card(id, body string) string {
	if m.Current() == id {
		return focusedCardStyle.Render(body)
	}
	return cardStyle.Render(body)
}

func dots(c *carousel.Carousel) string {
	var b strings.Builder
	for i := 0; i < c.Len(); i++ {
		if i == c.Index() {
			b.WriteString(dotActiveStyle.Render("●"))
		} else {
			b.WriteString(dotStyle.Render("○"))
		}
		b.WriteString(" ")
	}
	return strings.TrimSpace(b.String())
}

func metricsRow(ms []content.Metric) string {
	var cells []string
	for _, mt := range ms {
		cell := figureStyle.Render(mt.Value) + "\n" + dimStyle.Render(mt.Label)
		cells = append(cells, lipgloss.NewStyle().MarginRight(4).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
