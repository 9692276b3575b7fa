// Package persist layers typed, JSON-encoded values on top of a kv.Store.
//
// A Value is loaded once, synchronously, when it is created and written back
// on every Set. Loading never fails: a missing key, a read error and a value
// that no longer decodes all yield the caller's default.
package persist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/five82/popcorn/internal/kv"
)

// Value is a single persisted value of type T.
type Value[T any] struct {
	mu     sync.Mutex
	store  kv.Store
	key    string
	value  T
	logger *slog.Logger
}

// Option configures Load.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for write-back failures and decode fallbacks.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Load reads key from store, falling back to def, and immediately writes the
// resulting value back so the store always holds the current value.
func Load[T any](store kv.Store, key string, def T, opts ...Option) *Value[T] {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	v := &Value[T]{
		store:  store,
		key:    key,
		value:  def,
		logger: o.logger.With("component", "persist", "key", key),
	}
	if loaded, ok := v.read(); ok {
		v.value = loaded
	}
	if err := v.write(v.value); err != nil {
		v.logger.Warn("initial write-back failed", "error", err)
	}
	return v
}

// Key returns the storage key.
func (v *Value[T]) Key() string {
	return v.key
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value
}

// Set replaces the current value and writes it to the store. The in-memory
// value is updated even when the write fails.
func (v *Value[T]) Set(value T) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.value = value
	return v.write(value)
}

func (v *Value[T]) read() (T, bool) {
	var zero T
	raw, ok, err := v.store.Get(v.key)
	if err != nil {
		v.logger.Debug("read failed, using default", "error", err)
		return zero, false
	}
	if !ok || len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return zero, false
	}
	var decoded T
	if err := json.Unmarshal(raw, &decoded); err != nil {
		v.logger.Debug("stored value does not decode, using default", "error", err)
		return zero, false
	}
	return decoded, true
}

func (v *Value[T]) write(value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", v.key, err)
	}
	if err := v.store.Set(v.key, raw); err != nil {
		return fmt.Errorf("store %s: %w", v.key, err)
	}
	return nil
}
