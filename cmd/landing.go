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

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/medicallyplus/mplus/internal/content"
	"github.com/medicallyplus/mplus/internal/landing"
	"github.com/medicallyplus/mplus/internal/logging"
	"github.com/medicallyplus/mplus/internal/submit"
	"github.com/medicallyplus/mplus/internal/ui"
	"github.com/spf13/cobra"
)

type landingFlags struct {
	static      bool
	noAltScreen bool
	width       int
}

func newTourCmd() *cobra.Command {
	var f landingFlags
	cmd := &cobra.Command{
		Use:     "tour",
		Short:   "Browse the landing page (default command)",
		Aliases: []string{"open"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLanding(cmd, f)
		},
	}
	cmd.Flags().BoolVar(&f.static, "static", false, "Print the page once instead of opening the interactive view")
	cmd.Flags().BoolVar(&f.noAltScreen, "no-alt-screen", false, "Render inline instead of in the alternate screen")
	cmd.Flags().IntVar(&f.width, "width", 0, "Page width for --static (default: terminal width)")
	return cmd
}

func init() {
	rootCmd.AddCommand(newTourCmd())
}

// session bundles what every interactive command opens and must close.
type session struct {
	logger    *logging.Logger
	submitter io.Closer
}

func (s *session) Close() {
	if s.submitter != nil {
		if err := s.submitter.Close(); err != nil {
			ui.Warnf("Failed to close submission target: %v", err)
		}
	}
	if err := s.logger.Close(); err != nil {
		ui.Warnf("Failed to close log file: %v", err)
	}
}

func openLogger() *logging.Logger {
	lg, err := logging.New(cfg.Log, ui.Verbose)
	if err != nil {
		ui.Warnf("Logging disabled: %v", err)
		return logging.Discard()
	}
	return lg
}

func runLanding(cmd *cobra.Command, f landingFlags) error {
	cat, err := content.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f.static || !ui.IsTerminal(os.Stdout) {
		width := f.width
		if width <= 0 {
			width = ui.TerminalWidth(os.Stdout, 80)
		}
		return landing.RenderStatic(out, width, landing.Options{Catalog: cat, Config: cfg})
	}

	lg := openLogger()
	sub, closer, err := submit.Open(cfg.Submission, lg.Logger)
	if err != nil {
		lg.Close()
		return err
	}
	sess := &session{logger: lg, submitter: closer}
	defer sess.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	lg.Info("landing page opened", "version", Version, "target", cfg.Submission.Target)
	m, err := landing.New(ctx, landing.Options{
		Catalog:   cat,
		Config:    cfg,
		Submitter: sub,
		Logger:    lg.Logger,
	})
	if err != nil {
		return err
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.Page.AltScreen && !f.noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("landing page: %w", err)
	}
	lg.Info("landing page closed")
	return nil
}
