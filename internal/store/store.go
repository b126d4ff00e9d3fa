package store

import (
	"context"
	"errors"
)

var (
	// ErrReservedKey is returned when a caller writes into the reserved system namespace
	ErrReservedKey = errors.New("key is in the reserved system namespace")

	// ErrTxnClosed is returned when a transaction is used after commit or discard
	ErrTxnClosed = errors.New("transaction already closed")
)

// systemPrefix marks keys that belong to the store itself. Records under it
// are excluded from storage usage.
const systemPrefix byte = 0x00

var (
	usageKey       = []byte{systemPrefix, 'u'}
	outboxSeqKey   = []byte{systemPrefix, 's'}
	relayCursorKey = []byte{systemPrefix, 'c'}
	outboxPrefix   = []byte{systemPrefix, 'q'}
)

// Reader defines read access to registry records
type Reader interface {
	// Get returns the value stored under key and whether it exists
	Get(key []byte) ([]byte, bool, error)
	// Has reports whether key exists
	Has(key []byte) (bool, error)
	// Iterate calls fn for every record whose key starts with prefix, in key order.
	// Iteration stops when fn returns false or an error.
	Iterate(prefix []byte, fn func(key, value []byte) (bool, error)) error
	// StorageUsage returns the number of bytes used by registry records
	StorageUsage() uint64
}

// Txn is a single-writer transaction. Writes are visible to the transaction's
// own reads and become durable together on Commit; Discard drops all of them.
type Txn interface {
	Reader
	// Put stores value under key
	Put(key, value []byte) error
	// Delete removes key
	Delete(key []byte) error
	// Enqueue stages an outbox message to be committed with the transaction
	Enqueue(msg *OutboxMessage) error
	// Commit persists every staged write atomically
	Commit() error
	// Discard drops every staged write. It is safe to call after Commit.
	Discard()
}

// Store defines the interface for the registry's persistent key-value storage
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// Begin opens a write transaction. Only one transaction is open at a time;
	// Begin blocks until the previous one is closed.
	Begin(ctx context.Context) (Txn, error)
	// View runs fn against a consistent snapshot
	View(ctx context.Context, fn func(r Reader) error) error
	// StorageUsage returns the committed number of bytes used by registry records
	StorageUsage(ctx context.Context) (uint64, error)
	// Outbox returns the message outbox that shares this store's transactions
	Outbox() Outbox
	// Close closes the underlying database
	Close() error
}

// Config holds the storage configuration
type Config struct {
	// Path of the database directory. Empty means an in-memory database.
	Path string
	// RecordOverheadBytes is charged per record on top of its key and value length
	RecordOverheadBytes uint64
}

func isSystemKey(key []byte) bool {
	return len(key) > 0 && key[0] == systemPrefix
}

func recordSize(key, value []byte, overhead uint64) uint64 {
	return uint64(len(key)) + uint64(len(value)) + overhead
}
