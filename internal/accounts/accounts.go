package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/slimtrack/slimtrack/internal/kvstore"
)

// Providers аккаунтов.
const (
	ProviderGoogle   = "google"
	ProviderApple    = "apple"
	ProviderPassword = "password"
	ProviderLocal    = "local"
)

// LocalAccountID is the synthetic account that legacy (pre-account)
// data is migrated into.
const LocalAccountID = "local:default"

const registryKey = "accounts-registry"

var (
	ErrUnknownAccount  = errors.New("unknown account")
	ErrNoActiveAccount = errors.New("no active account")
)

// Account identifies a signed-in identity.
type Account struct {
	ID          string    `json:"id"`
	Provider    string    `json:"provider"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type registryState struct {
	Accounts  []Account `json:"accounts"`
	CurrentID string    `json:"current_id"`
}

// Registry tracks known accounts and the currently active one,
// persisted in the durable KV store.
type Registry struct {
	mu    sync.Mutex
	kv    kvstore.Store
	state registryState
}

// NewRegistry loads the persisted registry. A corrupt payload is
// logged and replaced with an empty registry rather than failing
// startup.
func NewRegistry(ctx context.Context, kv kvstore.Store) (*Registry, error) {
	r := &Registry{kv: kv, state: registryState{Accounts: []Account{}}}

	raw, found, err := kv.Get(ctx, registryKey)
	if err != nil {
		return nil, fmt.Errorf("load accounts registry: %w", err)
	}
	if !found {
		return r, nil
	}

	var st registryState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		log.Printf("WARN accounts registry corrupt, starting empty: %v", err)
		return r, nil
	}
	if st.Accounts == nil {
		st.Accounts = []Account{}
	}
	r.state = st
	return r, nil
}

// Upsert adds or updates an account and persists the registry.
func (r *Registry) Upsert(ctx context.Context, acc Account) error {
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	replaced := false
	for i := range r.state.Accounts {
		if r.state.Accounts[i].ID == acc.ID {
			acc.CreatedAt = r.state.Accounts[i].CreatedAt
			r.state.Accounts[i] = acc
			replaced = true
			break
		}
	}
	if !replaced {
		r.state.Accounts = append(r.state.Accounts, acc)
	}

	return r.persist(ctx)
}

// Remove deletes an account from the registry. Removing the current
// account also clears the active selection.
func (r *Registry) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, acc := range r.state.Accounts {
		if acc.ID == id {
			r.state.Accounts = append(r.state.Accounts[:i], r.state.Accounts[i+1:]...)
			if r.state.CurrentID == id {
				r.state.CurrentID = ""
			}
			return r.persist(ctx)
		}
	}

	return ErrUnknownAccount
}

// SignInAs marks the account as active. The account must be known.
func (r *Registry) SignInAs(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.knownLocked(id) {
		return ErrUnknownAccount
	}

	r.state.CurrentID = id
	return r.persist(ctx)
}

// SignOut clears the active account.
func (r *Registry) SignOut(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.CurrentID = ""
	return r.persist(ctx)
}

// Current returns the active account, or ErrNoActiveAccount.
func (r *Registry) Current() (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.CurrentID == "" {
		return Account{}, ErrNoActiveAccount
	}
	for _, acc := range r.state.Accounts {
		if acc.ID == r.state.CurrentID {
			return acc, nil
		}
	}
	return Account{}, ErrNoActiveAccount
}

// CurrentID returns the active account id, or "" when signed out.
func (r *Registry) CurrentID() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state.CurrentID
}

// List returns all known accounts.
func (r *Registry) List() []Account {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Account, len(r.state.Accounts))
	copy(out, r.state.Accounts)
	return out
}

// Known reports whether the account id exists in the registry.
func (r *Registry) Known(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.knownLocked(id)
}

func (r *Registry) knownLocked(id string) bool {
	for _, acc := range r.state.Accounts {
		if acc.ID == id {
			return true
		}
	}
	return false
}

func (r *Registry) persist(ctx context.Context) error {
	raw, err := json.Marshal(r.state)
	if err != nil {
		return fmt.Errorf("marshal accounts registry: %w", err)
	}
	if err := r.kv.Set(ctx, registryKey, string(raw)); err != nil {
		return fmt.Errorf("persist accounts registry: %w", err)
	}
	return nil
}
