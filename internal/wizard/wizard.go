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
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned by Run when the user leaves before submitting.
var ErrCancelled = errors.New("registration cancelled")

// program adapts FormModel to tea.Model for standalone use.
type program struct {
	form FormModel
}

func (p program) Init() tea.Cmd {
	return textinput.Blink
}

func (p program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	p.form, cmd = p.form.Update(msg)
	return p, cmd
}

func (p program) View() string {
	return p.form.View() + "\n"
}

// Run shows the form full screen until the registration is accepted or
// the user cancels, and returns the accepted registration.
func Run(ctx context.Context, opts FormOptions, altScreen bool) (*Registration, error) {
	form := NewFormModel(ctx, opts)
	form.standalone = true
	form.Focus()

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if altScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	finalModel, err := tea.NewProgram(program{form: form}, progOpts...).Run()
	if err != nil {
		return nil, fmt.Errorf("form error: %w", err)
	}

	fm := finalModel.(program).form
	fm.Close()
	if fm.Cancelled() || fm.wiz.Status() != StatusSubmitted {
		return nil, ErrCancelled
	}
	reg := fm.Registration()
	return &reg, nil
}
