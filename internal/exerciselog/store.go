package exerciselog

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("exercise log entry not found")
)

const dateLayout = "2006-01-02"

// Store holds the active account's exercise logs.
type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Entries: []Entry{}}}
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

// Update applies a partial update.
func (s *Store) Update(id uuid.UUID, u EntryUpdate) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Entries {
		if s.state.Entries[i].ID != id {
			continue
		}

		e := s.state.Entries[i]
		if u.Name != nil {
			e.Name = *u.Name
		}
		if u.DurationMin != nil {
			e.DurationMin = *u.DurationMin
		}
		if u.CaloriesBurned != nil {
			e.CaloriesBurned = *u.CaloriesBurned
		}
		if u.DistanceKm != nil {
			e.DistanceKm = u.DistanceKm
		}

		s.state.Entries[i] = e
		return e, nil
	}

	return Entry{}, ErrNotFound
}

// Delete removes an entry.
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

// SummaryByDate totals calories burned and duration for a date.
func (s *Store) SummaryByDate(date string) DaySummary {
	logs := s.LogsByDate(date)

	sum := DaySummary{Date: date, Entries: len(logs)}
	for _, e := range logs {
		sum.CaloriesBurned += e.CaloriesBurned
		sum.DurationMin += e.DurationMin
	}
	return sum
}

// Clear resets the store (sign-out).
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{Entries: []Entry{}}
}

// State returns a deep copy for snapshotting.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := State{Entries: make([]Entry, len(s.state.Entries))}
	copy(out.Entries, s.state.Entries)
	return out
}

// Restore replaces the whole state (account switch-in).
func (s *Store) Restore(st State) {
	if st.Entries == nil {
		st.Entries = []Entry{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = st
}

// IsEmpty reports whether any entries exist.
func (s *Store) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.state.Entries) == 0
}
