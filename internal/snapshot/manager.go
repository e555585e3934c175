package snapshot

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/slimtrack/slimtrack/internal/accounts"
	"github.com/slimtrack/slimtrack/internal/exerciselog"
	"github.com/slimtrack/slimtrack/internal/foodlog"
	"github.com/slimtrack/slimtrack/internal/kvstore"
	"github.com/slimtrack/slimtrack/internal/profile"
)

// Manager owns account switching. All switch, sign-out and migration
// operations are serialized internally; handlers may call them
// concurrently.
type Manager struct {
	mu       sync.Mutex
	kv       kvstore.Store
	registry *accounts.Registry

	profiles *profile.Store
	food     *foodlog.Store
	exercise *exerciselog.Store
}

func NewManager(kv kvstore.Store, registry *accounts.Registry, profiles *profile.Store, food *foodlog.Store, exercise *exerciselog.Store) *Manager {
	return &Manager{
		kv:       kv,
		registry: registry,
		profiles: profiles,
		food:     food,
		exercise: exercise,
	}
}

// SwitchTo saves the current account's state (if any) and loads the
// target account's snapshot into the in-memory stores. Switching to
// the already-active account is a no-op. If saving the outgoing
// account fails, the switch aborts and in-memory state is untouched.
func (m *Manager) SwitchTo(ctx context.Context, accountID string) (LoadResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.registry.Known(accountID) {
		return LoadResult{}, accounts.ErrUnknownAccount
	}

	current := m.registry.CurrentID()
	if current == accountID {
		return LoadResult{
			Profile:  StatusLoaded,
			Food:     StatusLoaded,
			Exercise: StatusLoaded,
		}, nil
	}

	if current != "" {
		if err := m.saveAll(ctx, current); err != nil {
			return LoadResult{}, fmt.Errorf("save outgoing account %s: %w", current, err)
		}
	}

	result := m.loadAll(ctx, accountID)

	if err := m.registry.SignInAs(ctx, accountID); err != nil {
		return result, fmt.Errorf("mark account active: %w", err)
	}

	log.Printf("INFO switched to account=%s profile=%s food=%s exercise=%s",
		accountID, result.Profile, result.Food, result.Exercise)
	return result, nil
}

// SignOut saves the current account's state, clears the in-memory
// stores and deactivates the account. Signing out with no active
// account is a no-op.
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.registry.CurrentID()
	if current == "" {
		return nil
	}

	if err := m.saveAll(ctx, current); err != nil {
		return fmt.Errorf("save account %s on sign-out: %w", current, err)
	}

	m.profiles.Clear()
	m.food.Clear()
	m.exercise.Clear()

	if err := m.registry.SignOut(ctx); err != nil {
		return fmt.Errorf("clear active account: %w", err)
	}

	log.Printf("INFO signed out account=%s", current)
	return nil
}

// Save persists the current account's in-memory state without
// switching. No-op when signed out.
func (m *Manager) Save(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.registry.CurrentID()
	if current == "" {
		return nil
	}
	return m.saveAll(ctx, current)
}

// MigrateLegacy moves un-namespaced pre-account snapshots under the
// synthetic local account. Legacy keys are deleted after a successful
// copy, which makes a second run a no-op. The local account is
// registered and activated when any legacy data was found.
func (m *Manager) MigrateLegacy(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := KeysFor(accounts.LocalAccountID)
	pairs := []struct{ from, to string }{
		{legacyProfileKey, keys.Profile},
		{legacyFoodKey, keys.Food},
		{legacyExerciseKey, keys.Exercise},
	}

	migrated := 0
	for _, p := range pairs {
		raw, found, err := m.kv.Get(ctx, p.from)
		if err != nil {
			return fmt.Errorf("read legacy key %s: %w", p.from, err)
		}
		if !found {
			continue
		}

		if err := m.kv.Set(ctx, p.to, raw); err != nil {
			return fmt.Errorf("migrate %s -> %s: %w", p.from, p.to, err)
		}
		if err := m.kv.Delete(ctx, p.from); err != nil {
			return fmt.Errorf("delete legacy key %s: %w", p.from, err)
		}
		migrated++
	}

	if migrated == 0 {
		return nil
	}

	if !m.registry.Known(accounts.LocalAccountID) {
		if err := m.registry.Upsert(ctx, accounts.Account{
			ID:          accounts.LocalAccountID,
			Provider:    accounts.ProviderLocal,
			DisplayName: "Local",
		}); err != nil {
			return fmt.Errorf("register local account: %w", err)
		}
	}

	if m.registry.CurrentID() == "" {
		result := m.loadAll(ctx, accounts.LocalAccountID)
		if err := m.registry.SignInAs(ctx, accounts.LocalAccountID); err != nil {
			return fmt.Errorf("activate local account: %w", err)
		}
		log.Printf("INFO migrated %d legacy collections to account=%s profile=%s food=%s exercise=%s",
			migrated, accounts.LocalAccountID, result.Profile, result.Food, result.Exercise)
	} else {
		log.Printf("INFO migrated %d legacy collections to account=%s", migrated, accounts.LocalAccountID)
	}

	return nil
}

func (m *Manager) saveAll(ctx context.Context, accountID string) error {
	keys := KeysFor(accountID)

	profileRaw, err := encode(m.profiles.State())
	if err != nil {
		return err
	}
	foodRaw, err := encode(m.food.State())
	if err != nil {
		return err
	}
	exerciseRaw, err := encode(m.exercise.State())
	if err != nil {
		return err
	}

	if err := m.kv.Set(ctx, keys.Profile, profileRaw); err != nil {
		return fmt.Errorf("save profile snapshot: %w", err)
	}
	if err := m.kv.Set(ctx, keys.Food, foodRaw); err != nil {
		return fmt.Errorf("save food snapshot: %w", err)
	}
	if err := m.kv.Set(ctx, keys.Exercise, exerciseRaw); err != nil {
		return fmt.Errorf("save exercise snapshot: %w", err)
	}
	return nil
}

// loadAll replaces the in-memory stores with the account's snapshot.
// Each collection falls back to defaults independently: a missing key
// defaults quietly, an undecodable payload is logged and defaulted.
func (m *Manager) loadAll(ctx context.Context, accountID string) LoadResult {
	keys := KeysFor(accountID)
	result := LoadResult{}

	profileState, status := loadCollection[profile.State](ctx, m.kv, keys.Profile)
	result.Profile = status
	m.profiles.Restore(profileState)

	foodState, status := loadCollection[foodlog.State](ctx, m.kv, keys.Food)
	result.Food = status
	m.food.Restore(foodState)

	exerciseState, status := loadCollection[exerciselog.State](ctx, m.kv, keys.Exercise)
	result.Exercise = status
	m.exercise.Restore(exerciseState)

	return result
}

func loadCollection[T any](ctx context.Context, kv kvstore.Store, key string) (T, string) {
	var zero T

	raw, found, err := kv.Get(ctx, key)
	if err != nil {
		log.Printf("WARN failed to read snapshot key=%s, using defaults: %v", key, err)
		return zero, StatusCorrupt
	}
	if !found {
		return zero, StatusDefaulted
	}

	state, err := decode[T](raw)
	if err != nil {
		log.Printf("WARN corrupt snapshot key=%s, using defaults: %v", key, err)
		return zero, StatusCorrupt
	}
	return state, StatusLoaded
}
