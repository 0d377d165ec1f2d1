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
	"slices"
	"strings"
)

// Field names a single answer in the lead-capture form.
type Field string

const (
	FieldUserType          Field = "userType"
	FieldFullName          Field = "fullName"
	FieldEmail             Field = "email"
	FieldPhone             Field = "phone"
	FieldCountry           Field = "country"
	FieldOrganization      Field = "organization"
	FieldSpecialty         Field = "specialty"
	FieldExperience        Field = "experience"
	FieldPatientType       Field = "patientType"
	FieldCondition         Field = "condition"
	FieldUrgency           Field = "urgency"
	FieldPreviousTreatment Field = "previousTreatment"
	FieldGoals             Field = "goals"
	FieldConsent           Field = "consent"
	FieldNewsletter        Field = "newsletter"
)

// User types accepted by the first step.
const (
	UserTypeProvider = "provider"
	UserTypePatient  = "patient"
)

// UserTypes lists the accepted values of FieldUserType.
var UserTypes = []string{UserTypeProvider, UserTypePatient}

// Kind is the declared value type of a Field.
type Kind int

const (
	KindText Kind = iota
	KindFlag
	KindSet
)

var fieldKinds = map[Field]Kind{
	FieldUserType:          KindText,
	FieldFullName:          KindText,
	FieldEmail:             KindText,
	FieldPhone:             KindText,
	FieldCountry:           KindText,
	FieldOrganization:      KindText,
	FieldSpecialty:         KindText,
	FieldExperience:        KindText,
	FieldPatientType:       KindText,
	FieldCondition:         KindText,
	FieldUrgency:           KindText,
	FieldPreviousTreatment: KindText,
	FieldGoals:             KindSet,
	FieldConsent:           KindFlag,
	FieldNewsletter:        KindFlag,
}

// KindOf returns the declared kind of f and whether f is known.
func KindOf(f Field) (Kind, bool) {
	k, ok := fieldKinds[f]
	return k, ok
}

// Answers is the record accumulated by the form.
type Answers struct {
	UserType          string   `yaml:"userType" json:"userType"`
	FullName          string   `yaml:"fullName" json:"fullName"`
	Email             string   `yaml:"email" json:"email"`
	Phone             string   `yaml:"phone,omitempty" json:"phone,omitempty"`
	Country           string   `yaml:"country" json:"country"`
	Organization      string   `yaml:"organization,omitempty" json:"organization,omitempty"`
	Specialty         string   `yaml:"specialty,omitempty" json:"specialty,omitempty"`
	Experience        string   `yaml:"experience,omitempty" json:"experience,omitempty"`
	PatientType       string   `yaml:"patientType,omitempty" json:"patientType,omitempty"`
	Condition         string   `yaml:"condition,omitempty" json:"condition,omitempty"`
	Urgency           string   `yaml:"urgency,omitempty" json:"urgency,omitempty"`
	PreviousTreatment string   `yaml:"previousTreatment,omitempty" json:"previousTreatment,omitempty"`
	Goals             []string `yaml:"goals" json:"goals"`
	Consent           bool     `yaml:"consent" json:"consent"`
	Newsletter        bool     `yaml:"newsletter" json:"newsletter"`
}

// InitialAnswers returns the answers a fresh form starts with.
func InitialAnswers(newsletter bool) Answers {
	return Answers{Newsletter: newsletter}
}

// Text returns the value of a text field.
func (a *Answers) Text(f Field) string {
	if p := a.textField(f); p != nil {
		return *p
	}
	return ""
}

// Flag returns the value of a boolean field.
func (a *Answers) Flag(f Field) bool {
	if p := a.flagField(f); p != nil {
		return *p
	}
	return false
}

// HasGoal reports whether goal is selected.
func (a *Answers) HasGoal(goal string) bool {
	return slices.Contains(a.Goals, goal)
}

// Clone returns a deep copy.
func (a Answers) Clone() Answers {
	a.Goals = slices.Clone(a.Goals)
	return a
}

// IsProvider reports whether the provider branch of step 2 applies.
func (a *Answers) IsProvider() bool {
	return a.UserType == UserTypeProvider
}

func (a *Answers) textField(f Field) *string {
	switch f {
	case FieldUserType:
		return &a.UserType
	case FieldFullName:
		return &a.FullName
	case FieldEmail:
		return &a.Email
	case FieldPhone:
		return &a.Phone
	case FieldCountry:
		return &a.Country
	case FieldOrganization:
		return &a.Organization
	case FieldSpecialty:
		return &a.Specialty
	case FieldExperience:
		return &a.Experience
	case FieldPatientType:
		return &a.PatientType
	case FieldCondition:
		return &a.Condition
	case FieldUrgency:
		return &a.Urgency
	case FieldPreviousTreatment:
		return &a.PreviousTreatment
	}
	return nil
}

func (a *Answers) flagField(f Field) *bool {
	switch f {
	case FieldConsent:
		return &a.Consent
	case FieldNewsletter:
		return &a.Newsletter
	}
	return nil
}

// toggleGoal adds goal if absent and removes it if present, keeping the
// remaining goals in selection order.
func (a *Answers) toggleGoal(goal string) {
	if i := slices.Index(a.Goals, goal); i >= 0 {
		a.Goals = slices.Delete(a.Goals, i, i+1)
		return
	}
	a.Goals = append(a.Goals, goal)
}

func filled(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
