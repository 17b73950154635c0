package storage

import (
	"context"
	"errors"
)

// Blob keys for the collections this service owns. Each key holds one JSON
// array. Hosts are free to store the blobs however they like; nothing beyond
// get/set by key is assumed of them.
const (
	KeyRecipes   = "bunches:recipes"
	KeyFolders   = "bunches:folders"
	KeyGroceries = "bunches:groceries"
)

// ErrMsgKeyNotFound is the message carried by ErrKeyNotFound.
const ErrMsgKeyNotFound = "key not found"

// ErrKeyNotFound is returned by Get when the key has never been written.
// Callers treat it as "empty collection", not as a failure.
var ErrKeyNotFound = errors.New(ErrMsgKeyNotFound)

// KV is the persistence capability injected into the stores. Implementations
// must write atomically at key granularity: a failed Set leaves the previous
// value observable.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Store combines the KV capability with the lifecycle operations the
// application needs from a concrete backend.
type Store interface {
	KV
	Ping(ctx context.Context) error
	Close() error
}

// Driver identifies a concrete storage backend.
type Driver string

const (
	DriverMemory   Driver = "memory"   // in-memory only (tests / ephemeral)
	DriverFile     Driver = "file"     // one JSON file per key (single user default)
	DriverSQLite   Driver = "sqlite"   // embedded sqlite blob table
	DriverPostgres Driver = "postgres" // PostgreSQL blob table
)
