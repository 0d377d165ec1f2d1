package state

import (
	"testing"

	"github.com/medicallyplus/mplus/internal/config"
)

func TestFirstRunAndMarkSeen(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	config.ResolvePaths()
	t.Cleanup(config.ResolvePaths)

	if !FirstRun() {
		t.Fatal("fresh data dir should be a first run")
	}
	if v := LastVersion(); v != "" {
		t.Errorf("LastVersion = %q before any run", v)
	}
	if err := MarkSeen("1.2.3"); err != nil {
		t.Fatal(err)
	}
	if FirstRun() {
		t.Error("still a first run after MarkSeen")
	}
	if v := LastVersion(); v != "1.2.3" {
		t.Errorf("LastVersion = %q, want 1.2.3", v)
	}
}
