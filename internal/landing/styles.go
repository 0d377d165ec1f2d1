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

import "github.com/charmbracelet/lipgloss"

var (
	brandColor  = lipgloss.Color("6")
	accentColor = lipgloss.Color("4")

	brandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(brandColor)

	navStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	navActiveStyle = lipgloss.NewStyle().
			Foreground(brandColor).
			Bold(true).
			Underline(true)

	sectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accentColor).
				MarginBottom(1)

	headlineStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	textStyle = lipgloss.NewStyle()

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	figureStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(brandColor)

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("2")).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 2)

	focusedCardStyle = cardStyle.
				BorderForeground(brandColor)

	dotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	dotActiveStyle = lipgloss.NewStyle().
			Foreground(brandColor)

	starStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)
