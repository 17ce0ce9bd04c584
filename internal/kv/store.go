// Package kv is the local key-value store holding the session and the
// custom entry collection. Values are opaque strings.
package kv

import (
	"context"
	"errors"
	"fmt"
)

// Keys used by the rest of dexctl.
const (
	KeySession = "@user"
	KeyCustom  = "@custom_pokemon"
)

// Store is a string key-value store. Get reports ok=false for a missing
// key; Remove of a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// ErrClosed is returned by a store used after Close.
var ErrClosed = errors.New("store closed")

// StorageError wraps a failed read, write or removal.
type StorageError struct {
	Op  string // "get", "set", "remove"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("kv %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
