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
	"fmt"

	"github.com/medicallyplus/mplus/internal/config"
	"github.com/medicallyplus/mplus/internal/ui"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())
	return cmd
}

func init() {
	rootCmd.AddCommand(newConfigCmd())
}

func newConfigInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			write := config.WriteDefaults
			if config.ConfigExists() {
				if !force {
					ui.Infof("Config already exists at %s (use --force to overwrite)", config.ConfigFile())
					return nil
				}
				write = func() error { return config.SaveConfig(config.DefaultConfig()) }
			}
			if err := write(); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			ui.Successf("Wrote %s", config.ConfigFile())
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeYAML(cmd.OutOrStdout(), cfg)
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where mplus keeps its files",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config  %s\n", config.ConfigFile())
			fmt.Fprintf(out, "outbox  %s\n", config.OutboxDir())
			fmt.Fprintf(out, "log     %s\n", config.LogFile(cfg.Log))
		},
	}
}
