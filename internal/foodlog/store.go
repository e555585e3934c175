package foodlog

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("food log entry not found")
)

const dateLayout = "2006-01-02"

// defaultEquivalents is the built-in reference portion table (Taiwanese
// everyday foods, as shipped with the app). Carried through snapshots so an
// account keeps additions made on its behalf.
var defaultEquivalents = []Equivalent{
	{Name: "White Rice", LocalName: "白飯", Kcal: 240, CarbsG: 53, ProteinG: 4, FatG: 0, ServingName: "1 碗飯"},
	{Name: "Half Bowl Rice", LocalName: "半碗飯", Kcal: 120, CarbsG: 26, ProteinG: 2, FatG: 0, ServingName: "半碗飯"},
	{Name: "Chicken Breast", LocalName: "雞胸肉", Kcal: 165, CarbsG: 0, ProteinG: 31, FatG: 3.6, ServingName: "雞胸 1 份"},
	{Name: "Fish Fillet", LocalName: "魚排", Kcal: 200, CarbsG: 0, ProteinG: 25, FatG: 9, ServingName: "魚排 1 份"},
	{Name: "Braised Egg", LocalName: "滷蛋", Kcal: 80, CarbsG: 1, ProteinG: 6, FatG: 5, ServingName: "滷蛋 1 顆"},
	{Name: "Tofu", LocalName: "豆腐", Kcal: 80, CarbsG: 2, ProteinG: 8, FatG: 4, ServingName: "豆腐 1 份"},
	{Name: "Sweet Potato", LocalName: "地瓜", Kcal: 180, CarbsG: 41, ProteinG: 2, FatG: 0, ServingName: "地瓜 1 根"},
	{Name: "Noodle Soup", LocalName: "麵線", Kcal: 360, CarbsG: 70, ProteinG: 12, FatG: 2, ServingName: "麵線 1 碗"},
	{Name: "Mixed Nuts", LocalName: "堅果", Kcal: 170, CarbsG: 6, ProteinG: 5, FatG: 15, ServingName: "堅果 一小把"},
	{Name: "Light Bento", LocalName: "清爽便當", Kcal: 800, CarbsG: 90, ProteinG: 35, FatG: 25, ServingName: "1 個便當"},
}

// Store holds the active account's food logs, favorites and reference data.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore creates a store seeded with the default reference portions.
func NewStore() *Store {
	return &Store{state: defaultState()}
}

func defaultState() State {
	eq := make([]Equivalent, len(defaultEquivalents))
	copy(eq, defaultEquivalents)
	return State{
		Entries:     []Entry{},
		Favorites:   []FavoriteFood{},
		Equivalents: eq,
	}
}

// Add appends an entry, assigning an id and timestamp when missing.
func (s *Store) Add(e Entry) Entry {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.LoggedAt.IsZero() {
		e.LoggedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Entries = append(s.state.Entries, e)
	return e
}

// Update applies a partial update to an entry.
func (s *Store) Update(id uuid.UUID, u EntryUpdate) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Entries {
		if s.state.Entries[i].ID != id {
			continue
		}

		e := s.state.Entries[i]
		if u.Servings != nil {
			e.Servings = *u.Servings
		}
		if u.Calories != nil {
			e.Calories = *u.Calories
		}
		if u.ProteinG != nil {
			e.ProteinG = *u.ProteinG
		}
		if u.CarbsG != nil {
			e.CarbsG = *u.CarbsG
		}
		if u.FatG != nil {
			e.FatG = *u.FatG
		}
		if u.MealSlot != nil {
			e.MealSlot = *u.MealSlot
		}

		s.state.Entries[i] = e
		return e, nil
	}

	return Entry{}, ErrNotFound
}

// SetPhotoKey attaches a stored photo object key to an entry.
func (s *Store) SetPhotoKey(id uuid.UUID, key string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Entries {
		if s.state.Entries[i].ID == id {
			s.state.Entries[i].PhotoKey = key
			return s.state.Entries[i], nil
		}
	}

	return Entry{}, ErrNotFound
}

// Get returns an entry by id.
func (s *Store) Get(id uuid.UUID) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.state.Entries {
		if e.ID == id {
			return e, nil
		}
	}

	return Entry{}, ErrNotFound
}

// Delete removes an entry by id.
func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.state.Entries {
		if e.ID == id {
			s.state.Entries = append(s.state.Entries[:i], s.state.Entries[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}

// LogsByDate returns entries logged on the given UTC date (YYYY-MM-DD).
func (s *Store) LogsByDate(date string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Entry{}
	for _, e := range s.state.Entries {
		if e.LoggedAt.UTC().Format(dateLayout) == date {
			out = append(out, e)
		}
	}
	return out
}

// TodayLogs returns entries logged today (UTC).
func (s *Store) TodayLogs() []Entry {
	return s.LogsByDate(time.Now().UTC().Format(dateLayout))
}

// SummaryByDate totals calories and macros for a date.
func (s *Store) SummaryByDate(date string) DaySummary {
	logs := s.LogsByDate(date)

	sum := DaySummary{Date: date, Entries: len(logs)}
	for _, e := range logs {
		sum.Calories += e.Calories
		sum.Macros.ProteinG += e.ProteinG
		sum.Macros.CarbsG += e.CarbsG
		sum.Macros.FatG += e.FatG
	}
	return sum
}

// AddFavorite saves a food for quick logging.
func (s *Store) AddFavorite(f FavoriteFood) FavoriteFood {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Favorites = append(s.state.Favorites, f)
	return f
}

// RemoveFavorite deletes a favorite by id.
func (s *Store) RemoveFavorite(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, f := range s.state.Favorites {
		if f.ID == id {
			s.state.Favorites = append(s.state.Favorites[:i], s.state.Favorites[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}

// Favorites returns the saved foods.
func (s *Store) Favorites() []FavoriteFood {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]FavoriteFood, len(s.state.Favorites))
	copy(out, s.state.Favorites)
	return out
}

// Equivalents returns the reference portion table.
func (s *Store) Equivalents() []Equivalent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Equivalent, len(s.state.Equivalents))
	copy(out, s.state.Equivalents)
	return out
}

// Clear resets the store to its defaults (sign-out).
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = defaultState()
}

// State returns a deep copy for snapshotting.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := State{
		Entries:     make([]Entry, len(s.state.Entries)),
		Favorites:   make([]FavoriteFood, len(s.state.Favorites)),
		Equivalents: make([]Equivalent, len(s.state.Equivalents)),
	}
	copy(out.Entries, s.state.Entries)
	copy(out.Favorites, s.state.Favorites)
	copy(out.Equivalents, s.state.Equivalents)
	return out
}

// Restore replaces the whole state (account switch-in). A snapshot with no
// reference data falls back to the built-in table.
func (s *Store) Restore(st State) {
	if st.Entries == nil {
		st.Entries = []Entry{}
	}
	if st.Favorites == nil {
		st.Favorites = []FavoriteFood{}
	}
	if len(st.Equivalents) == 0 {
		st.Equivalents = defaultState().Equivalents
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = st
}

// IsEmpty reports whether any user data (entries or favorites) exists.
func (s *Store) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.state.Entries) == 0 && len(s.state.Favorites) == 0
}
