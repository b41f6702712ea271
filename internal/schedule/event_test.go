package schedule

import (
	"testing"
	"time"
)

func TestNewEvent(t *testing.T) {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC)

	t.Run("valid event", func(t *testing.T) {
		e, err := NewEvent("Go workshop", "Intro to Go", start, end)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Name != "Go workshop" {
			t.Errorf("got name %q, want %q", e.Name, "Go workshop")
		}
		if !e.Start.Equal(start) || !e.End.Equal(end) {
			t.Errorf("got interval %v, want [%v, %v)", e.Interval(), start, end)
		}
		if e.CreatedAt.IsZero() {
			t.Error("expected CreatedAt to be set")
		}
	})

	t.Run("trims name", func(t *testing.T) {
		e, err := NewEvent("  Go workshop  ", "", start, end)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Name != "Go workshop" {
			t.Errorf("got name %q, want %q", e.Name, "Go workshop")
		}
	})

	t.Run("duration hours", func(t *testing.T) {
		e, err := NewEvent("Go workshop", "", start, end)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := e.DurationHours(); got != 2.0 {
			t.Errorf("got %v hours, want 2.0", got)
		}
	})
}

func TestNewEvent_Errors(t *testing.T) {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		eventName string
		start     time.Time
		end       time.Time
		wantErr   error
	}{
		{"empty name", "", start, end, ErrEmptyName},
		{"whitespace name", "   ", start, end, ErrEmptyName},
		{"start equals end", "Workshop", start, start, ErrInvalidInterval},
		{"start after end", "Workshop", end, start, ErrInvalidInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEvent(tt.eventName, "", tt.start, tt.end)
			if err != tt.wantErr {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewResource(t *testing.T) {
	t.Run("valid categories", func(t *testing.T) {
		for _, cat := range []string{"room", "instructor", "equipment"} {
			r, err := NewResource("Resource A", cat)
			if err != nil {
				t.Fatalf("category %q: unexpected error: %v", cat, err)
			}
			if string(r.Category) != cat {
				t.Errorf("got category %q, want %q", r.Category, cat)
			}
		}
	})

	t.Run("category is case insensitive", func(t *testing.T) {
		r, err := NewResource("Main Hall", "Room")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Category != CategoryRoom {
			t.Errorf("got category %q, want %q", r.Category, CategoryRoom)
		}
	})

	t.Run("invalid category", func(t *testing.T) {
		if _, err := NewResource("Main Hall", "vehicle"); err != ErrInvalidCategory {
			t.Errorf("got %v, want ErrInvalidCategory", err)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		if _, err := NewResource("", "room"); err != ErrEmptyName {
			t.Errorf("got %v, want ErrEmptyName", err)
		}
	})
}
