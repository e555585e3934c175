// Package snapshot persists per-account application state in the
// durable KV store and orchestrates account switches: the outgoing
// account's in-memory state is saved wholesale, then the incoming
// account's snapshot is loaded (or defaulted) collection by
// collection.
package snapshot

import (
	"encoding/json"
	"fmt"
)

// Collections persisted per account.
const (
	CollectionProfile  = "profile"
	CollectionFood     = "food"
	CollectionExercise = "exercise"
)

// Legacy un-namespaced keys written before accounts existed.
const (
	legacyProfileKey  = "user-storage"
	legacyFoodKey     = "food-storage"
	legacyExerciseKey = "exercise-storage"
)

// Load statuses per collection.
const (
	StatusLoaded    = "loaded"
	StatusDefaulted = "defaulted"
	StatusCorrupt   = "corrupt"
)

// Keys holds the KV keys for one account's snapshot.
type Keys struct {
	Profile  string
	Food     string
	Exercise string
}

// KeysFor returns the namespaced snapshot keys for an account.
func KeysFor(accountID string) Keys {
	return Keys{
		Profile:  fmt.Sprintf("account:%s:%s", accountID, CollectionProfile),
		Food:     fmt.Sprintf("account:%s:%s", accountID, CollectionFood),
		Exercise: fmt.Sprintf("account:%s:%s", accountID, CollectionExercise),
	}
}

// envelope wraps a collection's state under a "state" field, matching
// the on-disk format the mobile clients already write.
type envelope[T any] struct {
	State T `json:"state"`
}

func encode[T any](state T) (string, error) {
	raw, err := json.Marshal(envelope[T]{State: state})
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(raw), nil
}

func decode[T any](raw string) (T, error) {
	var env envelope[T]
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		var zero T
		return zero, fmt.Errorf("decode snapshot: %w", err)
	}
	return env.State, nil
}

// LoadResult reports, per collection, whether the snapshot was
// loaded, defaulted (missing), or corrupt (present but undecodable).
type LoadResult struct {
	Profile  string `json:"profile"`
	Food     string `json:"food"`
	Exercise string `json:"exercise"`
}

// AllDefaulted reports whether no collection carried data.
func (r LoadResult) AllDefaulted() bool {
	return r.Profile == StatusDefaulted && r.Food == StatusDefaulted && r.Exercise == StatusDefaulted
}
