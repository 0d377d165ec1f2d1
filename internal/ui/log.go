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

package ui

import "fmt"

// Verbose enables Debug output.
var Verbose bool

// Info prints an informational line to stdout.
func Info(msg string) {
	fmt.Fprintf(Stdout, "%s[INFO]%s %s\n", Cyan, NC, msg)
}

// Infof is Info with formatting.
func Infof(format string, a ...any) {
	Info(fmt.Sprintf(format, a...))
}

// Success prints a confirmation line to stdout.
func Success(msg string) {
	fmt.Fprintf(Stdout, "%s[OK]%s %s\n", Green, NC, msg)
}

// Successf is Success with formatting.
func Successf(format string, a ...any) {
	Success(fmt.Sprintf(format, a...))
}

// Warn prints a warning to stderr.
func Warn(msg string) {
	fmt.Fprintf(Stderr, "%s[WARN]%s %s\n", Yellow, NC, msg)
}

// Warnf is Warn with formatting.
func Warnf(format string, a ...any) {
	Warn(fmt.Sprintf(format, a...))
}

// Error prints an error to stderr. The caller decides the exit code.
func Error(msg string) {
	fmt.Fprintf(Stderr, "%s[ERROR]%s %s\n", Red, NC, msg)
}

// Debug prints to stderr when Verbose is set.
func Debug(msg string) {
	if Verbose {
		fmt.Fprintf(Stderr, "%s[DEBUG]%s %s\n", Dim, NC, msg)
	}
}

// Debugf is Debug with formatting.
func Debugf(format string, a ...any) {
	Debug(fmt.Sprintf(format, a...))
}
