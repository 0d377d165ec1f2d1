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

// mplus is the MedicallyPlus terminal landing page.
//
// Usage:
//
//	mplus                         # browse the landing page
//	mplus register                # fill in the registration form
//	mplus register --from a.yaml  # submit answers without the form
//	mplus leads list              # registrations kept by the outbox target
package main

import "github.com/medicallyplus/mplus/cmd"

func main() {
	cmd.Execute()
}
