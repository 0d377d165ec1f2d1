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

// LogoSmall prints the MedicallyPlus wordmark.
func LogoSmall() {
	fmt.Fprint(Stdout, Cyan)
	fmt.Fprintln(Stdout, `  __  __          _ _           _ _       _`)
	fmt.Fprintln(Stdout, ` |  \/  | ___  __| (_) ___ __ _| | |_   _| |_`)
	fmt.Fprintln(Stdout, ` | |\/| |/ _ \/ _`+"`"+` | |/ __/ _`+"`"+` | | | | | |_   _|`)
	fmt.Fprintln(Stdout, ` | |  | |  __/ (_| | | (_| (_| | | | |_| | |_|`)
	fmt.Fprintln(Stdout, ` |_|  |_|\___|\__,_|_|\___\__,_|_|_|\__, |`)
	fmt.Fprintln(Stdout, `                                    |___/`)
	fmt.Fprint(Stdout, NC)
}

// Logo prints the wordmark with the tagline underneath.
func Logo(tagline string) {
	LogoSmall()
	fmt.Fprintf(Stdout, "\n%s%s%s\n", Dim, tagline, NC)
}
