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

import "slices"

// StepID identifies a form step.
type StepID string

const (
	StepUserType         StepID = "user-type"
	StepBasicInfo        StepID = "basic-info"
	StepProfessionalInfo StepID = "professional-info"
	StepGoals            StepID = "goals"
	StepConfirmation     StepID = "confirmation"
)

// Step is one screen of the form with its validity rule.
type Step struct {
	ID       StepID
	Title    string
	Subtitle string
	Valid    func(a *Answers) bool
}

// Steps is the fixed step sequence of the lead-capture form.
var Steps = []Step{
	{
		ID:       StepUserType,
		Title:    "Tell Us About You",
		Subtitle: "Are you a healthcare provider or patient?",
		Valid: func(a *Answers) bool {
			return slices.Contains(UserTypes, a.UserType)
		},
	},
	{
		ID:       StepBasicInfo,
		Title:    "Basic Information",
		Subtitle: "Help us personalize your experience",
		Valid: func(a *Answers) bool {
			return filled(a.FullName, a.Email, a.Country)
		},
	},
	{
		ID:       StepProfessionalInfo,
		Title:    "Professional Details",
		Subtitle: "Tell us about your healthcare focus",
		Valid: func(a *Answers) bool {
			if a.IsProvider() {
				return filled(a.Organization, a.Specialty, a.Experience)
			}
			return filled(a.Condition, a.Urgency)
		},
	},
	{
		ID:       StepGoals,
		Title:    "Your Goals",
		Subtitle: "What do you hope to achieve?",
		Valid: func(a *Answers) bool {
			return len(a.Goals) > 0
		},
	},
	{
		ID:       StepConfirmation,
		Title:    "Almost Done!",
		Subtitle: "Review and confirm your information",
		Valid: func(a *Answers) bool {
			return a.Consent
		},
	},
}
