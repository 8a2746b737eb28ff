// Package kv defines the key-value contract the claim protocol persists
// through, plus a Redis backend and an in-memory backend.
package kv

import (
	"context"
	"errors"
	"time"
)

// Store is the key-value capability shared by every request handler.
// A zero ttl means the key never expires.
type Store interface {
	// Get returns ErrNotFound when the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes the value unconditionally.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// SetNX writes the value only if the key does not exist.
	// Reports whether the write happened.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// GetDel atomically reads and removes the key.
	// Returns ErrNotFound when the key is absent or expired.
	GetDel(ctx context.Context, key string) ([]byte, error)

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping checks backend connectivity.
	Ping(ctx context.Context) error
}

// Error definitions
var (
	ErrNotFound = errors.New("key not found")
)
