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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/medicallyplus/mplus/internal/config"
	"github.com/medicallyplus/mplus/internal/submit"
	"github.com/medicallyplus/mplus/internal/ui"
	"github.com/medicallyplus/mplus/internal/wizard"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newLeadsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "Inspect registrations kept by the outbox target",
		Long: `Registrations submitted while submission.target is "outbox" are kept
in a local store. These commands list, export and prune them.`,
	}

	cmd.AddCommand(newLeadsListCmd())
	cmd.AddCommand(newLeadsShowCmd())
	cmd.AddCommand(newLeadsExportCmd())
	cmd.AddCommand(newLeadsDeleteCmd())
	return cmd
}

func init() {
	rootCmd.AddCommand(newLeadsCmd())
}

// openOutbox opens the lead store for writing, falling back to read-only
// when a running landing page holds the lock.
func openOutbox(write bool) (*submit.Outbox, error) {
	ob, err := submit.OpenOutbox(config.OutboxDir(), false)
	if err == nil {
		return ob, nil
	}
	if write || !strings.Contains(err.Error(), "Cannot acquire directory lock") {
		return nil, err
	}
	ui.Debug("Outbox is locked by another process, opening read-only")
	return submit.OpenOutbox(config.OutboxDir(), true)
}

func closeOutbox(ob *submit.Outbox) {
	if err := ob.Close(); err != nil {
		ui.Warnf("Failed to close outbox: %v", err)
	}
}

func newLeadsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List stored registrations",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ob, err := openOutbox(false)
			if err != nil {
				return err
			}
			defer closeOutbox(ob)

			regs, err := ob.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(regs) == 0 {
				fmt.Fprintln(out, "No registrations stored.")
				return nil
			}
			fmt.Fprintf(out, "%-36s  %-9s  %-24s  %s\n", "ID", "TYPE", "NAME", "SUBMITTED")
			for _, r := range regs {
				fmt.Fprintf(out, "%-36s  %-9s  %-24s  %s\n",
					r.ID, r.Answers.UserType, truncate(r.Answers.FullName, 24), humanize.Time(r.SubmittedAt))
			}
			fmt.Fprintf(out, "\n%s registration(s)\n", humanize.Comma(int64(len(regs))))
			return nil
		},
	}
}

func newLeadsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one registration as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ob, err := openOutbox(false)
			if err != nil {
				return err
			}
			defer closeOutbox(ob)

			reg, err := ob.Get(args[0])
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), reg)
		},
	}
}

func newLeadsExportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every registration to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ob, err := openOutbox(false)
			if err != nil {
				return err
			}
			defer closeOutbox(ob)

			regs, err := ob.List()
			if err != nil {
				return err
			}
			return exportLeads(cmd.OutOrStdout(), format, regs)
		},
	}
	cmd.Flags().StringVar(&format, "format", "jsonl", "Output format: jsonl or yaml")
	return cmd
}

func newLeadsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>...",
		Short:   "Remove registrations from the outbox",
		Aliases: []string{"rm"},
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ob, err := openOutbox(true)
			if err != nil {
				return err
			}
			defer closeOutbox(ob)

			for _, id := range args {
				if err := ob.Delete(id); err != nil {
					return err
				}
				ui.Successf("Deleted %s", id)
			}
			return nil
		},
	}
}

func exportLeads(w io.Writer, format string, regs []wizard.Registration) error {
	switch format {
	case "jsonl", "json":
		enc := json.NewEncoder(w)
		for _, r := range regs {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	case "yaml":
		if regs == nil {
			regs = []wizard.Registration{}
		}
		return writeYAML(w, regs)
	}
	return fmt.Errorf("unknown export format %q (supported: jsonl, yaml)", format)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
