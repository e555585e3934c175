package exerciselog

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAddAssignsIDAndTimestamp(t *testing.T) {
	s := NewStore()

	entry := s.Add(Entry{Name: "Running", DurationMin: 30, CaloriesBurned: 320, Source: SourceManual})

	if entry.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}
	if entry.LoggedAt.IsZero() {
		t.Fatal("expected timestamp to be set")
	}
}

func TestUpdateAndDelete(t *testing.T) {
	s := NewStore()
	entry := s.Add(Entry{Name: "Cycling", DurationMin: 45, CaloriesBurned: 400, Source: SourceManual})

	dur := 60
	updated, err := s.Update(entry.ID, EntryUpdate{DurationMin: &dur})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.DurationMin != 60 {
		t.Fatalf("duration = %d, want 60", updated.DurationMin)
	}
	if updated.CaloriesBurned != 400 {
		t.Fatalf("calories changed unexpectedly: %v", updated.CaloriesBurned)
	}

	if err := s.Delete(entry.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(entry.ID); err != ErrNotFound {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestLogsByDate(t *testing.T) {
	s := NewStore()

	day1 := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 2, 19, 30, 0, 0, time.UTC)

	s.Add(Entry{Name: "Swim", DurationMin: 40, CaloriesBurned: 350, Source: SourceManual, LoggedAt: day1})
	s.Add(Entry{Name: "Walk", DurationMin: 25, CaloriesBurned: 110, Source: SourceHealthKit, LoggedAt: day1})
	s.Add(Entry{Name: "Yoga", DurationMin: 50, CaloriesBurned: 150, Source: SourceManual, LoggedAt: day2})

	if got := len(s.LogsByDate("2026-03-01")); got != 2 {
		t.Fatalf("day1 entries = %d, want 2", got)
	}
	if got := len(s.LogsByDate("2026-03-02")); got != 1 {
		t.Fatalf("day2 entries = %d, want 1", got)
	}
	if got := len(s.LogsByDate("2026-03-03")); got != 0 {
		t.Fatalf("empty day entries = %d, want 0", got)
	}
}

func TestSummaryByDate(t *testing.T) {
	s := NewStore()

	day := time.Date(2026, 3, 5, 7, 0, 0, 0, time.UTC)
	s.Add(Entry{Name: "Run", DurationMin: 30, CaloriesBurned: 300, Source: SourceManual, LoggedAt: day})
	s.Add(Entry{Name: "Row", DurationMin: 20, CaloriesBurned: 180, Source: SourceManual, LoggedAt: day})

	sum := s.SummaryByDate("2026-03-05")
	if sum.CaloriesBurned != 480 {
		t.Fatalf("calories = %v, want 480", sum.CaloriesBurned)
	}
	if sum.DurationMin != 50 {
		t.Fatalf("duration = %d, want 50", sum.DurationMin)
	}
	if sum.Entries != 2 {
		t.Fatalf("entries = %d, want 2", sum.Entries)
	}
}

func TestRestoreNilEntries(t *testing.T) {
	s := NewStore()
	s.Restore(State{})

	if s.State().Entries == nil {
		t.Fatal("expected entries slice to be non-nil after restore")
	}
	if !s.IsEmpty() {
		t.Fatal("expected empty store")
	}
}

func TestStateDeepCopy(t *testing.T) {
	s := NewStore()
	s.Add(Entry{Name: "Hike", DurationMin: 90, CaloriesBurned: 500, Source: SourceManual})

	st := s.State()
	st.Entries[0].Name = "mutated"

	if got := s.State().Entries[0].Name; got != "Hike" {
		t.Fatalf("store mutated through copy: %q", got)
	}
}
