package dateutil

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339", "2026-09-01T09:00:00Z", time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)},
		{"rfc3339 with offset", "2026-09-01T11:00:00+02:00", time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)},
		{"datetime-local", "2026-09-01T09:00", time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)},
		{"with seconds", "2026-09-01T09:00:30", time.Date(2026, 9, 1, 9, 0, 30, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("got location %v, want UTC", got.Location())
			}
		})
	}

	t.Run("invalid", func(t *testing.T) {
		for _, input := range []string{"", "2026-09-01", "09:00", "not a time"} {
			if _, err := ParseTimestamp(input); err != ErrInvalidTimestamp {
				t.Errorf("ParseTimestamp(%q): got %v, want ErrInvalidTimestamp", input, err)
			}
		}
	})
}

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := ParseDate("2026-09-01")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("empty defaults to today", func(t *testing.T) {
		got, err := ParseDate("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := TruncateToDay(time.Now().UTC())
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		for _, input := range []string{"01-09-2026", "2026/09/01", "tomorrow"} {
			if _, err := ParseDate(input); err != ErrInvalidDateFormat {
				t.Errorf("ParseDate(%q): got %v, want ErrInvalidDateFormat", input, err)
			}
		}
	})
}

func TestNewDateRange(t *testing.T) {
	t.Run("explicit range", func(t *testing.T) {
		r, err := NewDateRange("2026-09-01", "2026-09-05")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !r.Start.Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("got start %v", r.Start)
		}
		if !r.End.Equal(time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("got end %v", r.End)
		}
	})

	t.Run("empty end defaults to start", func(t *testing.T) {
		r, err := NewDateRange("2026-09-01", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !r.End.Equal(r.Start) {
			t.Errorf("got end %v, want %v", r.End, r.Start)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		if _, err := NewDateRange("2026-09-05", "2026-09-01"); err != ErrEndDateBeforeStart {
			t.Errorf("got %v, want ErrEndDateBeforeStart", err)
		}
	})

	t.Run("invalid start", func(t *testing.T) {
		if _, err := NewDateRange("nope", ""); err != ErrInvalidDateFormat {
			t.Errorf("got %v, want ErrInvalidDateFormat", err)
		}
	})
}

func TestDateRangeBounds(t *testing.T) {
	r, err := NewDateRange("2026-09-01", "2026-09-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	from, to := r.Bounds()
	if !from.Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("got from %v", from)
	}
	// A single-day range covers up to midnight of the next day, exclusive.
	if !to.Equal(time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("got to %v", to)
	}
}
