package prefs

import (
	"path/filepath"
	"testing"

	"github.com/JohananOppongAmoateng/speg-admin-gateway/pkg/logger"
)

func TestStore_DefaultsOnFirstOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	s, err := Open(path, logger.NopLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	got := s.Get()

	if got.DarkMode || got.SidebarCollapsed {
		t.Fatalf("fresh store not defaulted: %+v", got)
	}
}

func TestStore_ChangesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	s, err := Open(path, logger.NopLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := s.SetDarkMode(true); err != nil {
		t.Fatalf("SetDarkMode: %v", err)
	}

	if err := s.SetSidebarCollapsed(true); err != nil {
		t.Fatalf("SetSidebarCollapsed: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path, logger.NopLogger())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got := reopened.Get()

	if !got.DarkMode {
		t.Fatalf("dark mode flag lost on reopen")
	}

	if !got.SidebarCollapsed {
		t.Fatalf("sidebar flag lost on reopen")
	}
}

func TestStore_SetReplacesBothFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	s, err := Open(path, logger.NopLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.Set(Preferences{DarkMode: true, SidebarCollapsed: false}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got := s.Get()

	if !got.DarkMode || got.SidebarCollapsed {
		t.Fatalf("Set not applied: %+v", got)
	}
}
