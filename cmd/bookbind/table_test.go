package main

import (
	"strings"
	"testing"
	"time"

	"bookbind/internal/deps"
	"bookbind/internal/sessions"
)

func TestSessionsTableKeepsHeaderCase(t *testing.T) {
	rendered := sessionsTable([]sessions.Session{{
		Workspace:     "/scratch/novel-123",
		Target:        "/books/novel.epub",
		FormatVersion: 2,
		Origin:        sessions.OriginCreate,
		CreatedAt:     time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC),
	}})

	for _, want := range []string{"Workspace", "/scratch/novel-123", "/books/novel.epub", "create"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("table missing %q:\n%s", want, rendered)
		}
	}
	if strings.Contains(rendered, "WORKSPACE") {
		t.Errorf("header was uppercased:\n%s", rendered)
	}
}

func TestDoctorTableStates(t *testing.T) {
	rendered := doctorTable([]deps.Status{
		{Name: "zip", Command: "zip", Available: true},
		{Name: "validator", Command: "epubcheck", Optional: true, Detail: "not found in PATH"},
	})

	for _, want := range []string{"ok", "missing (optional)", "not found in PATH"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("table missing %q:\n%s", want, rendered)
		}
	}
}
