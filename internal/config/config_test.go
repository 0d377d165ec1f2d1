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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestDefaultCarouselPeriodsAreDistinct(t *testing.T) {
	cfg := DefaultConfig()
	seen := make(map[time.Duration]string)
	for name, cc := range cfg.Carousels.byName() {
		if other, ok := seen[cc.Period]; ok {
			t.Errorf("carousels %s and %s share period %v", name, other, cc.Period)
		}
		seen[cc.Period] = name
		if cc.Cooldown != DefaultCooldown {
			t.Errorf("carousels.%s.cooldown = %v, want %v", name, cc.Cooldown, DefaultCooldown)
		}
	}
}

func TestParse_PartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("carousels:\n  testimonials:\n    period: 9s\nsubmission:\n  target: outbox\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Carousels.Testimonials.Period != 9*time.Second {
		t.Errorf("testimonials period = %v, want 9s", cfg.Carousels.Testimonials.Period)
	}
	if cfg.Carousels.Testimonials.Cooldown != DefaultCooldown {
		t.Errorf("testimonials cooldown = %v, want default", cfg.Carousels.Testimonials.Cooldown)
	}
	if cfg.Carousels.Features.Period != 5*time.Second {
		t.Errorf("features period = %v, want 5s", cfg.Carousels.Features.Period)
	}
	if cfg.Submission.Target != TargetOutbox {
		t.Errorf("target = %q, want outbox", cfg.Submission.Target)
	}
	if cfg.Page.VisibilityThreshold != 0.2 {
		t.Errorf("visibility threshold = %v, want 0.2", cfg.Page.VisibilityThreshold)
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"negative period", "carousels:\n  promises:\n    period: -1s\n", "period"},
		{"threshold above one", "page:\n  visibility_threshold: 1.5\n", "visibility_threshold"},
		{"unknown target", "submission:\n  target: carrier-pigeon\n", "unknown submission target"},
		{"webhook without url", "submission:\n  target: webhook\n", "webhook.url"},
		{"bad yaml", "carousels: [", "parsing config"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tc.doc)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Parse error = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Submission.Target = TargetWebhook
	cfg.Submission.Webhook.URL = "https://example.com/leads"

	if err := SaveConfigTo(cfg, path); err != nil {
		t.Fatalf("SaveConfigTo: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "period: 7s") {
		t.Errorf("durations should be written as strings, got:\n%s", data)
	}

	got, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if got.Submission.Webhook.URL != cfg.Submission.Webhook.URL {
		t.Errorf("webhook url = %q, want %q", got.Submission.Webhook.URL, cfg.Submission.Webhook.URL)
	}
	if got.Carousels.Testimonials.Period != 7*time.Second {
		t.Errorf("testimonials period = %v, want 7s", got.Carousels.Testimonials.Period)
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ResolvePaths()
	t.Cleanup(ResolvePaths)

	cfg, err := LoadOrDefault()
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.Submission.Target != TargetStub {
		t.Errorf("target = %q, want stub", cfg.Submission.Target)
	}
}

func TestWriteDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ResolvePaths()
	t.Cleanup(ResolvePaths)

	if ConfigExists() {
		t.Fatal("config should not exist in a fresh home")
	}
	if err := WriteDefaults(); err != nil {
		t.Fatalf("WriteDefaults: %v", err)
	}
	if !ConfigExists() {
		t.Fatal("WriteDefaults did not create config.yaml")
	}
	if _, err := LoadConfig(); err != nil {
		t.Fatalf("LoadConfig after WriteDefaults: %v", err)
	}
}

func TestLogFile(t *testing.T) {
	if got := LogFile(LogConfig{File: "/tmp/x.log"}); got != "/tmp/x.log" {
		t.Errorf("LogFile = %q, want explicit path", got)
	}
	if got := LogFile(LogConfig{}); got != filepath.Join(Cache, "mplus.log") {
		t.Errorf("LogFile = %q, want cache default", got)
	}
}
