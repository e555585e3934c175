package profile

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/slimtrack/slimtrack/internal/metabolic"
)

var (
	ErrNoProfile = errors.New("no profile set")
)

// Store holds the active account's profile working set in memory. There is
// exactly one Store instance per process; account switches replace its
// contents wholesale via Restore.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore creates an empty profile store.
func NewStore() *Store {
	return &Store{state: defaultState()}
}

func defaultState() State {
	return State{WeightLogs: []WeightLog{}}
}

// SetProfile replaces the profile and derives the metabolic targets.
func (s *Store) SetProfile(p Profile) Profile {
	derive(&p)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Profile = &p
	return p
}

// UpdateProfile applies a partial update. The derived fields are recomputed
// only when one of weight, height, age, activity level or weight-loss speed
// changed; every other field passes through untouched.
func (s *Store) UpdateProfile(u ProfileUpdate) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Profile == nil {
		return Profile{}, ErrNoProfile
	}

	p := *s.state.Profile
	redo := false

	if u.Gender != nil {
		p.Gender = *u.Gender
		redo = true
	}
	if u.Age != nil {
		p.Age = *u.Age
		redo = true
	}
	if u.HeightCm != nil {
		p.HeightCm = *u.HeightCm
		redo = true
	}
	if u.WeightKg != nil {
		p.WeightKg = *u.WeightKg
		redo = true
	}
	if u.ActivityLevel != nil {
		p.ActivityLevel = *u.ActivityLevel
		redo = true
	}
	if u.WeightLossSpeedKg != nil {
		p.WeightLossSpeedKg = *u.WeightLossSpeedKg
		redo = true
	}
	if u.BodyFatPct != nil {
		p.BodyFatPct = *u.BodyFatPct
	}
	if u.TargetWeightKg != nil {
		p.TargetWeightKg = *u.TargetWeightKg
	}
	if u.TargetDate != nil {
		p.TargetDate = *u.TargetDate
	}
	if u.DietExerciseRatio != nil {
		p.DietExerciseRatio = *u.DietExerciseRatio
	}
	if u.Allergies != nil {
		p.Allergies = *u.Allergies
	}
	if u.ReminderFrequencyDays != nil {
		p.ReminderFrequencyDays = *u.ReminderFrequencyDays
	}

	if redo {
		derive(&p)
	}

	s.state.Profile = &p
	return p, nil
}

// AddWeightLog appends a weight measurement, updates the profile weight and
// re-derives the targets.
func (s *Store) AddWeightLog(req WeightLogRequest) (WeightLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Profile == nil {
		return WeightLog{}, ErrNoProfile
	}

	entry := WeightLog{
		ID:         uuid.New(),
		WeightKg:   req.WeightKg,
		BodyFatPct: req.BodyFatPct,
		Notes:      req.Notes,
		LoggedAt:   time.Now(),
	}
	s.state.WeightLogs = append(s.state.WeightLogs, entry)

	p := *s.state.Profile
	p.WeightKg = req.WeightKg
	if req.BodyFatPct != nil {
		p.BodyFatPct = *req.BodyFatPct
	}
	loggedAt := entry.LoggedAt
	p.LastWeightLoggedAt = &loggedAt
	derive(&p)
	s.state.Profile = &p

	return entry, nil
}

// WeightHistory returns weight logs, newest first.
func (s *Store) WeightHistory() []WeightLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logs := make([]WeightLog, len(s.state.WeightLogs))
	copy(logs, s.state.WeightLogs)
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].LoggedAt.After(logs[j].LoggedAt)
	})
	return logs
}

// Profile returns a copy of the current profile, or nil if none is set.
func (s *Store) Profile() *Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.Profile == nil {
		return nil
	}
	p := *s.state.Profile
	return &p
}

func (s *Store) CompleteOnboarding() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.IsOnboardingComplete = true
}

func (s *Store) SetSubscription(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.HasActiveSubscription = active
}

func (s *Store) IsOnboardingComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.IsOnboardingComplete
}

func (s *Store) HasActiveSubscription() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.HasActiveSubscription
}

// Clear resets the store to its empty defaults (sign-out).
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = defaultState()
}

// State returns a deep copy of the current state for snapshotting.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := State{
		IsOnboardingComplete:  s.state.IsOnboardingComplete,
		HasActiveSubscription: s.state.HasActiveSubscription,
		WeightLogs:            make([]WeightLog, len(s.state.WeightLogs)),
	}
	copy(out.WeightLogs, s.state.WeightLogs)
	if s.state.Profile != nil {
		p := *s.state.Profile
		out.Profile = &p
	}
	return out
}

// Restore replaces the whole state (account switch-in).
func (s *Store) Restore(st State) {
	if st.WeightLogs == nil {
		st.WeightLogs = []WeightLog{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = st
}

// IsEmpty reports whether the store holds no data worth snapshotting.
func (s *Store) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Profile == nil && len(s.state.WeightLogs) == 0
}

func derive(p *Profile) {
	d := metabolic.Derive(metabolic.Inputs{
		Gender:            p.Gender,
		WeightKg:          p.WeightKg,
		HeightCm:          p.HeightCm,
		AgeYears:          p.Age,
		ActivityLevel:     p.ActivityLevel,
		WeightLossSpeedKg: p.WeightLossSpeedKg,
	})

	p.BMR = d.BMR
	p.TDEE = d.TDEE
	p.DailyCalorieTarget = d.DailyCalorieTarget
	p.ProteinTargetG = d.ProteinTargetG
	p.CarbTargetG = d.CarbTargetG
	p.FatTargetG = d.FatTargetG
}
