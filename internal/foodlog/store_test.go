package foodlog

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func entryOn(day time.Time, name string, kcal float64) Entry {
	return Entry{
		FoodID:   "f-" + name,
		FoodName: name,
		Servings: 1,
		Calories: kcal,
		ProteinG: 10,
		CarbsG:   20,
		FatG:     5,
		MealSlot: MealLunch,
		Source:   SourceSearch,
		LoggedAt: day,
	}
}

func TestAddAssignsIDAndTimestamp(t *testing.T) {
	s := NewStore()

	e := s.Add(Entry{FoodName: "rice", MealSlot: MealLunch, Source: SourceSearch})

	if e.ID == uuid.Nil {
		t.Fatalf("expected generated id")
	}
	if e.LoggedAt.IsZero() {
		t.Fatalf("expected logged_at to be set")
	}
}

func TestUpdateAndDelete(t *testing.T) {
	s := NewStore()
	e := s.Add(entryOn(time.Now(), "rice", 240))

	servings := 2.0
	kcal := 480.0
	slot := MealDinner
	updated, err := s.Update(e.ID, EntryUpdate{Servings: &servings, Calories: &kcal, MealSlot: &slot})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Servings != 2 || updated.Calories != 480 || updated.MealSlot != MealDinner {
		t.Fatalf("update not applied: %+v", updated)
	}
	// Untouched fields survive.
	if updated.FoodName != "rice" || updated.ProteinG != 10 {
		t.Fatalf("update clobbered unrelated fields: %+v", updated)
	}

	if err := s.Delete(e.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := s.Delete(e.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := s.Update(e.ID, EntryUpdate{}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound updating deleted entry, got %v", err)
	}
}

func TestLogsByDate(t *testing.T) {
	s := NewStore()
	day1 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)

	s.Add(entryOn(day1, "rice", 240))
	s.Add(entryOn(day1, "tofu", 80))
	s.Add(entryOn(day2, "egg", 80))

	logs := s.LogsByDate("2026-03-01")
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs on 2026-03-01, got %d", len(logs))
	}
	if len(s.LogsByDate("2026-03-02")) != 1 {
		t.Fatalf("expected 1 log on 2026-03-02")
	}
	if len(s.LogsByDate("2026-03-03")) != 0 {
		t.Fatalf("expected no logs on empty day")
	}
}

func TestSummaryByDate(t *testing.T) {
	s := NewStore()
	day := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s.Add(entryOn(day, "rice", 240))
	s.Add(entryOn(day, "tofu", 80))

	sum := s.SummaryByDate("2026-03-01")
	if sum.Calories != 320 {
		t.Fatalf("calories = %v, want 320", sum.Calories)
	}
	if sum.Macros.ProteinG != 20 || sum.Macros.CarbsG != 40 || sum.Macros.FatG != 10 {
		t.Fatalf("unexpected macros: %+v", sum.Macros)
	}
	if sum.Entries != 2 {
		t.Fatalf("entries = %d, want 2", sum.Entries)
	}
}

func TestFavorites(t *testing.T) {
	s := NewStore()

	f := s.AddFavorite(FavoriteFood{Name: "oatmeal", Calories: 150})
	if f.ID == "" {
		t.Fatalf("expected generated favorite id")
	}
	if len(s.Favorites()) != 1 {
		t.Fatalf("expected one favorite")
	}

	if err := s.RemoveFavorite(f.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := s.RemoveFavorite(f.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDefaultEquivalentsSeeded(t *testing.T) {
	s := NewStore()

	eq := s.Equivalents()
	if len(eq) != 10 {
		t.Fatalf("expected 10 reference portions, got %d", len(eq))
	}
	if eq[0].Name != "White Rice" || eq[0].Kcal != 240 {
		t.Fatalf("unexpected first equivalent: %+v", eq[0])
	}
}

func TestRestoreFallsBackToDefaultEquivalents(t *testing.T) {
	s := NewStore()
	s.Add(entryOn(time.Now(), "rice", 240))

	s.Restore(State{})

	if len(s.LogsByDate(time.Now().UTC().Format(dateLayout))) != 0 {
		t.Fatalf("restore did not replace entries")
	}
	if len(s.Equivalents()) != 10 {
		t.Fatalf("expected default equivalents after restoring empty snapshot")
	}
}

func TestStateIsDeepCopy(t *testing.T) {
	s := NewStore()
	e := s.Add(entryOn(time.Now(), "rice", 240))

	st := s.State()
	st.Entries[0].Calories = 999

	got, err := s.Get(e.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Calories != 240 {
		t.Fatalf("mutating a snapshot leaked into the store")
	}
}
