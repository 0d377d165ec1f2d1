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

// Package content holds the landing page copy and the form option lists.
// The catalog ships embedded in the binary and is parsed once at startup.
package content

import (
	"errors"
	"fmt"
	"time"

	"github.com/medicallyplus/mplus/static"
	"gopkg.in/yaml.v3"
)

// ErrEmptyCarousel is returned when a rotating section has nothing to show.
var ErrEmptyCarousel = errors.New("carousel section has no items")

// Catalog is the full landing page content.
type Catalog struct {
	Brand        Brand        `yaml:"brand"`
	Header       Header       `yaml:"header"`
	Hero         Hero         `yaml:"hero"`
	Problem      Problem      `yaml:"problem"`
	Promise      Promise      `yaml:"promise"`
	Features     Features     `yaml:"features"`
	Preview      Preview      `yaml:"preview"`
	Testimonials Testimonials `yaml:"testimonials"`
	Form         Form         `yaml:"form"`
	Footer       Footer       `yaml:"footer"`
}

// Brand is the product name and slogan.
type Brand struct {
	Name    string `yaml:"name"`
	Tagline string `yaml:"tagline"`
}

// Link points at a page section by id.
type Link struct {
	Label  string `yaml:"label"`
	Target string `yaml:"target"`
}

// Metric is a headline number with its caption.
type Metric struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Option is one selectable value in the form.
type Option struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
	Desc  string `yaml:"desc,omitempty"`
}

type Header struct {
	Nav []Link `yaml:"nav"`
}

type Hero struct {
	Eyebrow         string   `yaml:"eyebrow"`
	Headline        string   `yaml:"headline"`
	Body            string   `yaml:"body"`
	Badges          []string `yaml:"badges"`
	PrimaryAction   Link     `yaml:"primary_action"`
	SecondaryAction Link     `yaml:"secondary_action"`
	Metrics         []Metric `yaml:"metrics"`
}

// CounterStat is an animated figure in the problem section.
type CounterStat struct {
	End         float64       `yaml:"end"`
	Prefix      string        `yaml:"prefix,omitempty"`
	Suffix      string        `yaml:"suffix,omitempty"`
	Decimals    int           `yaml:"decimals,omitempty"`
	Duration    time.Duration `yaml:"duration"`
	Label       string        `yaml:"label"`
	Description string        `yaml:"description"`
}

type PainGroup struct {
	Category string   `yaml:"category"`
	Points   []string `yaml:"points"`
}

type Problem struct {
	Title      string        `yaml:"title"`
	Stats      []CounterStat `yaml:"stats"`
	PainPoints []PainGroup   `yaml:"pain_points"`
}

type PromiseItem struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type Promise struct {
	Title    string        `yaml:"title"`
	Items    []PromiseItem `yaml:"items"`
	Outcomes []Metric      `yaml:"outcomes"`
}

type Feature struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Details     []string `yaml:"details"`
}

type Features struct {
	Title string    `yaml:"title"`
	Items []Feature `yaml:"items"`
	Stats []Metric  `yaml:"stats"`
}

type Platform struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type Demo struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Features    []string `yaml:"features"`
}

type Preview struct {
	Title     string     `yaml:"title"`
	Platforms []Platform `yaml:"platforms"`
	Demos     []Demo     `yaml:"demos"`
}

type Testimonial struct {
	Name         string `yaml:"name"`
	Role         string `yaml:"role"`
	Organization string `yaml:"organization"`
	Location     string `yaml:"location"`
	Rating       int    `yaml:"rating"`
	Quote        string `yaml:"quote"`
	Impact       string `yaml:"impact"`
	Specialty    string `yaml:"specialty"`
	Experience   string `yaml:"experience"`
	Cases        string `yaml:"cases"`
}

type Testimonials struct {
	Title string        `yaml:"title"`
	Items []Testimonial `yaml:"items"`
	Stats []Metric      `yaml:"stats"`
}

// Form holds the option lists offered by the lead-capture form.
type Form struct {
	Title       string   `yaml:"title"`
	UserTypes   []Option `yaml:"user_types"`
	Countries   []string `yaml:"countries"`
	Specialties []string `yaml:"specialties"`
	Experience  []string `yaml:"experience"`
	Urgency     []Option `yaml:"urgency"`
	Goals       []Option `yaml:"goals"`
	NextSteps   []Metric `yaml:"next_steps"`
}

// GoalLabel returns the display label for a goal id, or the id itself.
func (f Form) GoalLabel(id string) string {
	for _, g := range f.Goals {
		if g.Value == id {
			return g.Label
		}
	}
	return id
}

type Contact struct {
	Email string `yaml:"email"`
	Phone string `yaml:"phone"`
}

type LinkGroup struct {
	Title string `yaml:"title"`
	Links []Link `yaml:"links"`
}

type Footer struct {
	Tagline          string      `yaml:"tagline"`
	Contact          Contact     `yaml:"contact"`
	Links            []LinkGroup `yaml:"links"`
	NewsletterPrompt string      `yaml:"newsletter_prompt"`
	Languages        []string    `yaml:"languages"`
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(static.LandingYAML)
}

// MustLoad is Load for callers that cannot proceed without content.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes a catalog document and checks that every rotating
// section has at least one item.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing landing content: %w", err)
	}
	for name, n := range map[string]int{
		"promise":      len(c.Promise.Items),
		"features":     len(c.Features.Items),
		"platforms":    len(c.Preview.Platforms),
		"testimonials": len(c.Testimonials.Items),
	} {
		if n == 0 {
			return nil, fmt.Errorf("%s: %w", name, ErrEmptyCarousel)
		}
	}
	return &c, nil
}
