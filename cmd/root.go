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
	"os"

	"github.com/medicallyplus/mplus/internal/config"
	"github.com/medicallyplus/mplus/internal/content"
	"github.com/medicallyplus/mplus/internal/state"
	"github.com/medicallyplus/mplus/internal/ui"
	"github.com/spf13/cobra"
)

// Version is set by ldflags at build time.
var Version = "0.4.0"

// cfg is the configuration loaded before any subcommand runs.
var cfg *config.Config

// quietCommands skip the first-run welcome. Their output is read by pipes
// and other programs.
var quietCommands = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
	"export":     true,
	"show":       true,
	"path":       true,
	"__complete": true,
}

var rootCmd = &cobra.Command{
	Use:   "mplus",
	Short: "MedicallyPlus in your terminal",
	Long:  "mplus – Tour the MedicallyPlus landing page and register for early access from the terminal",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v, _ := cmd.Flags().GetBool("verbose")
		ui.Verbose = v

		path, _ := cmd.Flags().GetString("config")
		loaded, err := loadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
		ui.Debugf("Config: %s (submission target %s)", describeConfig(path), cfg.Submission.Target)

		if quietCommands[cmd.Name()] {
			return nil
		}
		if state.FirstRun() {
			welcome()
		}
		if state.LastVersion() != Version {
			if err := state.MarkSeen(Version); err != nil {
				ui.Debugf("Could not record version: %v", err)
			}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLanding(cmd, landingFlags{})
	},
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mplus version %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output and debug logging")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default "+config.ConfigFile()+")")

	rootCmd.AddCommand(versionCmd)

	rootCmd.SetVersionTemplate("mplus version {{.Version}}\n")
	rootCmd.Version = Version
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		c, err := config.LoadConfigFrom(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		return c, nil
	}
	c, err := config.LoadOrDefault()
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", config.ConfigFile(), err)
	}
	return c, nil
}

func welcome() {
	tagline := ""
	if cat, err := content.Load(); err == nil {
		tagline = cat.Brand.Tagline
	}
	ui.Logo(tagline)
	fmt.Fprintln(ui.Stdout)
	ui.Info("Welcome! Scroll with the arrow keys, press r to register or q to quit.")
	ui.Info("Run 'mplus config init' to customise carousel timing and where registrations go.")
	fmt.Fprintln(ui.Stdout)
}

func describeConfig(path string) string {
	switch {
	case path != "":
		return path
	case config.ConfigExists():
		return config.ConfigFile()
	}
	return "built-in defaults"
}

// Execute runs the root command.
func Execute() {
	config.EnsureDirs()

	if err := rootCmd.Execute(); err != nil {
		ui.Error(err.Error())
		os.Exit(1)
	}
}
