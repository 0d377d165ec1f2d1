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

import "time"

// DefaultCooldown is how long manual navigation pauses auto-rotation.
const DefaultCooldown = 10 * time.Second

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Carousels: CarouselsConfig{
			Promises:     CarouselConfig{Period: 4 * time.Second, Cooldown: DefaultCooldown},
			Features:     CarouselConfig{Period: 5 * time.Second, Cooldown: DefaultCooldown},
			Platforms:    CarouselConfig{Period: 6 * time.Second, Cooldown: DefaultCooldown},
			Testimonials: CarouselConfig{Period: 7 * time.Second, Cooldown: DefaultCooldown},
		},
		Page: PageConfig{
			VisibilityThreshold: 0.2,
			AltScreen:           true,
		},
		Form: FormConfig{
			NewsletterDefault: true,
		},
		Submission: SubmissionConfig{
			Target: TargetStub,
			Stub:   StubConfig{Delay: 2 * time.Second},
			Webhook: WebhookConfig{
				Timeout: 10 * time.Second,
			},
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// fillDefaults copies defaults into zero-valued fields so a partial
// config.yaml behaves like the full default file.
func fillDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Version == 0 {
		cfg.Version = def.Version
	}
	fillCarousel(&cfg.Carousels.Promises, def.Carousels.Promises)
	fillCarousel(&cfg.Carousels.Features, def.Carousels.Features)
	fillCarousel(&cfg.Carousels.Platforms, def.Carousels.Platforms)
	fillCarousel(&cfg.Carousels.Testimonials, def.Carousels.Testimonials)
	if cfg.Page.VisibilityThreshold == 0 {
		cfg.Page.VisibilityThreshold = def.Page.VisibilityThreshold
	}
	if cfg.Submission.Target == "" {
		cfg.Submission.Target = def.Submission.Target
	}
	if cfg.Submission.Stub.Delay == 0 {
		cfg.Submission.Stub.Delay = def.Submission.Stub.Delay
	}
	if cfg.Submission.Webhook.Timeout == 0 {
		cfg.Submission.Webhook.Timeout = def.Submission.Webhook.Timeout
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = def.Log.MaxSizeMB
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = def.Log.MaxBackups
	}
	if cfg.Log.MaxAgeDays == 0 {
		cfg.Log.MaxAgeDays = def.Log.MaxAgeDays
	}
}

func fillCarousel(cc *CarouselConfig, def CarouselConfig) {
	if cc.Period == 0 {
		cc.Period = def.Period
	}
	if cc.Cooldown == 0 {
		cc.Cooldown = def.Cooldown
	}
}
