package models

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from SessionStatus
		to   SessionStatus
		want bool
	}{
		{"scheduled to confirmed", StatusScheduled, StatusConfirmed, true},
		{"scheduled to cancelled", StatusScheduled, StatusCancelled, true},
		{"scheduled to no_show", StatusScheduled, StatusNoShow, true},
		{"scheduled to completed", StatusScheduled, StatusCompleted, false},
		{"confirmed to in_progress", StatusConfirmed, StatusInProgress, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed to scheduled", StatusConfirmed, StatusScheduled, false},
		{"in_progress to completed", StatusInProgress, StatusCompleted, true},
		{"in_progress to cancelled", StatusInProgress, StatusCancelled, false},
		{"completed is terminal", StatusCompleted, StatusScheduled, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, false},
		{"no_show is terminal", StatusNoShow, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestEnsureVideoLink(t *testing.T) {
	id := uuid.New()

	// A scheduled session never gets a link.
	s := Session{ID: id, Status: StatusScheduled}
	s.EnsureVideoLink("meet.example.com")
	if s.VideoLink != "" {
		t.Errorf("scheduled session got link %q", s.VideoLink)
	}

	// Confirming populates a deterministic link derived from the id.
	s.Status = StatusConfirmed
	s.EnsureVideoLink("meet.example.com")
	want := "https://meet.example.com/therapy-session-" + id.String()
	if s.VideoLink != want {
		t.Errorf("VideoLink = %q, want %q", s.VideoLink, want)
	}

	// A later transition must not regenerate it.
	first := s.VideoLink
	s.Status = StatusInProgress
	s.EnsureVideoLink("other.example.com")
	if s.VideoLink != first {
		t.Errorf("link regenerated: %q -> %q", first, s.VideoLink)
	}
}

func TestEnsureVideoLinkNonEmpty(t *testing.T) {
	s := Session{ID: uuid.New(), Status: StatusInProgress}
	s.EnsureVideoLink("meet.jit.si")
	if s.VideoLink == "" || !strings.HasPrefix(s.VideoLink, "https://") {
		t.Errorf("expected https link, got %q", s.VideoLink)
	}
}

func TestCancellableAt(t *testing.T) {
	now := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		scheduled time.Time
		want      bool
	}{
		{"exactly 24h ahead", now.Add(24 * time.Hour), true},
		{"just under 24h", now.Add(24*time.Hour - time.Second), false},
		{"48h ahead", now.Add(48 * time.Hour), true},
		{"in the past", now.Add(-time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Session{ScheduledDatetime: tt.scheduled}
			if got := s.CancellableAt(now); got != tt.want {
				t.Errorf("CancellableAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusBlocks(t *testing.T) {
	blocking := map[SessionStatus]bool{
		StatusScheduled:  true,
		StatusConfirmed:  true,
		StatusInProgress: true,
		StatusCompleted:  false,
		StatusCancelled:  false,
		StatusNoShow:     false,
	}
	for status, want := range blocking {
		if got := status.Blocks(); got != want {
			t.Errorf("%s.Blocks() = %v, want %v", status, got, want)
		}
	}
}

func TestSessionBeforeCreateDefaults(t *testing.T) {
	s := Session{}
	if err := s.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate() error = %v", err)
	}
	if s.ID == uuid.Nil {
		t.Error("expected a generated id")
	}
	if s.Status != StatusScheduled {
		t.Errorf("Status = %s, want %s", s.Status, StatusScheduled)
	}
	if s.DurationMinutes != 60 {
		t.Errorf("DurationMinutes = %d, want 60", s.DurationMinutes)
	}

	// Explicit values survive.
	fixed := uuid.New()
	s2 := Session{ID: fixed, Status: StatusConfirmed, DurationMinutes: 90}
	if err := s2.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate() error = %v", err)
	}
	if s2.ID != fixed || s2.Status != StatusConfirmed || s2.DurationMinutes != 90 {
		t.Errorf("explicit values overwritten: %+v", s2)
	}
}
