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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/medicallyplus/mplus/internal/content"
	"github.com/medicallyplus/mplus/internal/logging"
	"github.com/medicallyplus/mplus/internal/submit"
	"github.com/medicallyplus/mplus/internal/ui"
	"github.com/medicallyplus/mplus/internal/wizard"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newRegisterCmd() *cobra.Command {
	var (
		from    string
		retries int
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register for early access",
		Long: `Fill in the registration form.

With --from the answers are read from a YAML file and submitted without
opening the form. Keys match the form fields (userType, fullName, email,
phone, country, organization, specialty, experience, patientType,
condition, urgency, previousTreatment, goals, consent, newsletter).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := content.Load()
			if err != nil {
				return err
			}
			lg := openLogger()
			sub, closer, err := submit.Open(cfg.Submission, lg.Logger)
			if err != nil {
				lg.Close()
				return err
			}
			sess := &session{logger: lg, submitter: closer}
			defer sess.Close()

			if from != "" {
				return registerFromFile(cmd.Context(), cmd.OutOrStdout(), cat, from, retries, sub, lg)
			}
			return registerInteractive(cmd.Context(), cmd.OutOrStdout(), cat, sub, lg)
		},
	}
	cmd.Flags().StringVarP(&from, "from", "f", "", "Submit answers from a YAML file instead of opening the form")
	cmd.Flags().IntVar(&retries, "retries", 0, "With --from, retry a rejected submission this many times")
	return cmd
}

func init() {
	rootCmd.AddCommand(newRegisterCmd())
}

func registerInteractive(ctx context.Context, out io.Writer, cat *content.Catalog, sub wizard.Submitter, lg *logging.Logger) error {
	reg, err := wizard.Run(ctx, wizard.FormOptions{
		Catalog:   cat.Form,
		Submitter: sub,
		Logger:    lg.Logger,
		Wizard:    []wizard.Option{wizard.WithNewsletterDefault(cfg.Form.NewsletterDefault)},
	}, cfg.Page.AltScreen)
	if errors.Is(err, wizard.ErrCancelled) {
		ui.Info("Registration cancelled")
		return nil
	}
	if err != nil {
		return err
	}
	printWelcome(out, cat, *reg)
	return nil
}

func registerFromFile(ctx context.Context, out io.Writer, cat *content.Catalog, path string, retries int, sub wizard.Submitter, lg *logging.Logger) error {
	answers, err := readAnswers(path)
	if err != nil {
		return err
	}
	lg.Redactor.Add(answers.FullName, "name")
	lg.Redactor.Add(answers.Email, "email")
	lg.Redactor.Add(answers.Phone, "phone")

	var reg wizard.Registration
	err = ui.Run("Submitting your registration...", func() error {
		var err error
		reg, err = submitAnswers(ctx, answers, sub, retries, lg)
		return err
	})
	if err != nil {
		return err
	}
	printWelcome(out, cat, reg)
	return nil
}

func readAnswers(path string) (wizard.Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return wizard.Answers{}, fmt.Errorf("reading answers: %w", err)
	}
	answers := wizard.InitialAnswers(cfg.Form.NewsletterDefault)
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return wizard.Answers{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return answers, nil
}

// submitAnswers walks the form with pre-filled answers and submits them.
// Each retry sends a registration with a fresh id.
func submitAnswers(ctx context.Context, a wizard.Answers, sub wizard.Submitter, retries int, lg *logging.Logger) (wizard.Registration, error) {
	w := wizard.New(wizard.WithAnswers(a))
	defer w.Close()

	for w.Advance() {
	}
	if w.Current() != w.LastIndex() || !w.CurrentValid() {
		return wizard.Registration{}, fmt.Errorf("answers are incomplete at step %d (%s)", w.Current()+1, w.CurrentStep().Title)
	}

	for attempt := 0; ; attempt++ {
		reg, ok, err := w.Submit(ctx, sub)
		if !ok {
			return wizard.Registration{}, fmt.Errorf("registration cannot be submitted (%s)", w.Status())
		}
		if err == nil {
			lg.Info("registration accepted", "id", reg.ID, "userType", reg.Answers.UserType)
			return reg, nil
		}
		lg.Warn("registration rejected", "id", reg.ID, "attempt", attempt+1, "err", err)
		if attempt >= retries || ctx.Err() != nil {
			return wizard.Registration{}, err
		}
	}
}

func printWelcome(out io.Writer, cat *content.Catalog, reg wizard.Registration) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%sWelcome to %s, %s!%s\n", ui.Green+ui.Bold, cat.Brand.Name, reg.Answers.FullName, ui.NC)
	fmt.Fprintf(out, "%sRegistration %s%s\n\n", ui.Dim, reg.ID, ui.NC)
	fmt.Fprintln(out, "Next steps:")
	for i, s := range cat.Form.NextSteps {
		fmt.Fprintf(out, "  %d. %s%s%s - %s\n", i+1, ui.Bold, s.Value, ui.NC, s.Label)
	}
}
