package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/medicallyplus/mplus/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{"", log.InfoLevel, false},
		{"debug", log.DebugLevel, false},
		{"WARNING", log.WarnLevel, false},
		{"error", log.ErrorLevel, false},
		{"loud", log.InfoLevel, true},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNewWriter_RedactsPersonalData(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, log.DebugLevel)
	l.Redactor.Add("Maria Rodriguez", "fullName")

	l.Info("registration accepted", "name", "Maria Rodriguez", "email", "maria@example.org", "step", 5)

	out := buf.String()
	for _, leaked := range []string{"Maria Rodriguez", "maria@example.org"} {
		if strings.Contains(out, leaked) {
			t.Errorf("log output leaked %q: %s", leaked, out)
		}
	}
	if !strings.Contains(out, "registration accepted") || !strings.Contains(out, "step=5") {
		t.Errorf("log output lost its message: %s", out)
	}
}

func TestNewWriter_KeepsRegistrationIDs(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, log.InfoLevel)

	ids := make([]string, 500)
	for i := range ids {
		ids[i] = uuid.NewString()
		l.Info("registration accepted", "id", ids[i], "email", "lead@example.org")
	}

	out := buf.String()
	for _, id := range ids {
		if !strings.Contains(out, "id="+id) {
			t.Fatalf("id %s was altered in the log:\n%s", id, out)
		}
	}
	if strings.Contains(out, "lead@example.org") {
		t.Error("email leaked while ids were kept")
	}
}

func TestNewWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, log.WarnLevel)
	l.Info("quiet")
	l.Warn("loud")
	if strings.Contains(buf.String(), "quiet") || !strings.Contains(buf.String(), "loud") {
		t.Errorf("level filtering wrong: %s", buf.String())
	}
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "mplus.log")
	l, err := New(config.LogConfig{Level: "info", File: path}, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Debug("verbose forces debug")
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "verbose forces debug") {
		t.Errorf("log file = %q", data)
	}
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	if _, err := New(config.LogConfig{Level: "loud", File: filepath.Join(t.TempDir(), "x.log")}, false); err == nil {
		t.Error("expected an error")
	}
}
