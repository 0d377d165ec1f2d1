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

package config

import (
	"fmt"
	"time"
)

// Config is the top-level mplus configuration (config.yaml).
type Config struct {
	Version    int              `yaml:"version"`
	Carousels  CarouselsConfig  `yaml:"carousels"`
	Page       PageConfig       `yaml:"page"`
	Form       FormConfig       `yaml:"form"`
	Submission SubmissionConfig `yaml:"submission"`
	Log        LogConfig        `yaml:"log"`
}

// CarouselConfig holds the timing of one auto-rotating section.
type CarouselConfig struct {
	Period   time.Duration `yaml:"period"`
	Cooldown time.Duration `yaml:"cooldown"`
}

// CarouselsConfig holds per-section carousel timings.
type CarouselsConfig struct {
	Promises     CarouselConfig `yaml:"promises"`
	Features     CarouselConfig `yaml:"features"`
	Platforms    CarouselConfig `yaml:"platforms"`
	Testimonials CarouselConfig `yaml:"testimonials"`
}

// PageConfig holds landing page behaviour.
type PageConfig struct {
	// VisibilityThreshold is the fraction of a section's lines that must be
	// on screen before the section counts as visible.
	VisibilityThreshold float64 `yaml:"visibility_threshold"`
	AltScreen           bool    `yaml:"alt_screen"`
}

// FormConfig holds lead-capture form defaults.
type FormConfig struct {
	NewsletterDefault bool `yaml:"newsletter_default"`
}

// Submission targets.
const (
	TargetStub    = "stub"
	TargetWebhook = "webhook"
	TargetOutbox  = "outbox"
)

// SubmissionConfig selects where completed registrations go.
type SubmissionConfig struct {
	Target  string        `yaml:"target"`
	Stub    StubConfig    `yaml:"stub,omitempty"`
	Webhook WebhookConfig `yaml:"webhook,omitempty"`
}

// StubConfig configures the simulated submission target.
type StubConfig struct {
	Delay     time.Duration `yaml:"delay"`
	FailFirst int           `yaml:"fail_first,omitempty"` // reject this many submissions before accepting
}

// WebhookConfig configures the HTTP submission target.
type WebhookConfig struct {
	URL     string        `yaml:"url,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// LogConfig configures the diagnostic log file.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file,omitempty"` // defaults to <cache>/mplus.log
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty"`
}

// Validate reports the first configuration value that cannot be used.
func (c *Config) Validate() error {
	for name, cc := range c.Carousels.byName() {
		if cc.Period <= 0 {
			return fmt.Errorf("carousels.%s.period must be positive", name)
		}
		if cc.Cooldown < 0 {
			return fmt.Errorf("carousels.%s.cooldown must not be negative", name)
		}
	}
	if t := c.Page.VisibilityThreshold; t <= 0 || t > 1 {
		return fmt.Errorf("page.visibility_threshold must be in (0,1], got %v", t)
	}
	switch c.Submission.Target {
	case TargetStub, TargetOutbox:
	case TargetWebhook:
		if c.Submission.Webhook.URL == "" {
			return fmt.Errorf("submission.webhook.url is required for the webhook target")
		}
	default:
		return fmt.Errorf("unknown submission target %q", c.Submission.Target)
	}
	return nil
}

func (cc CarouselsConfig) byName() map[string]CarouselConfig {
	return map[string]CarouselConfig{
		"promises":     cc.Promises,
		"features":     cc.Features,
		"platforms":    cc.Platforms,
		"testimonials": cc.Testimonials,
	}
}
