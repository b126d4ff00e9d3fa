package store

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
	"go.uber.org/zap"

	"github.com/feral-file/ff-nft-registry/internal/logger"
)

type levelDBStore struct {
	db       *leveldb.DB
	overhead uint64
}

// New opens the leveldb database described by cfg
func New(cfg Config) (Store, error) {
	var (
		db  *leveldb.DB
		err error
	)
	if cfg.Path == "" {
		db, err = leveldb.Open(storage.NewMemStorage(), nil)
	} else {
		db, err = leveldb.OpenFile(cfg.Path, &opt.Options{ErrorIfMissing: false})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb: %w", err)
	}

	logger.Info("Opened registry storage",
		zap.String("path", cfg.Path),
		zap.Uint64("record_overhead_bytes", cfg.RecordOverheadBytes))

	return &levelDBStore{db: db, overhead: cfg.RecordOverheadBytes}, nil
}

// Begin opens a write transaction
func (s *levelDBStore) Begin(ctx context.Context) (Txn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tr, err := s.db.OpenTransaction()
	if err != nil {
		return nil, fmt.Errorf("failed to open transaction: %w", err)
	}

	usage, err := readUint64(tr, usageKey)
	if err != nil {
		tr.Discard()
		return nil, fmt.Errorf("failed to read storage usage: %w", err)
	}

	return &levelDBTxn{tr: tr, overhead: s.overhead, usage: usage}, nil
}

// View runs fn against a consistent snapshot
func (s *levelDBStore) View(ctx context.Context, fn func(r Reader) error) error {
	return s.withSnapshot(ctx, func(snap *leveldb.Snapshot) error {
		usage, err := readUint64(snap, usageKey)
		if err != nil {
			return fmt.Errorf("failed to read storage usage: %w", err)
		}
		return fn(&snapshotReader{snap: snap, usage: usage})
	})
}

func (s *levelDBStore) withSnapshot(ctx context.Context, fn func(snap *leveldb.Snapshot) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	snap, err := s.db.GetSnapshot()
	if err != nil {
		return fmt.Errorf("failed to get snapshot: %w", err)
	}
	defer snap.Release()

	return fn(snap)
}

// StorageUsage returns the committed storage usage
func (s *levelDBStore) StorageUsage(ctx context.Context) (uint64, error) {
	var usage uint64
	err := s.View(ctx, func(r Reader) error {
		usage = r.StorageUsage()
		return nil
	})
	return usage, err
}

// Outbox returns the message outbox
func (s *levelDBStore) Outbox() Outbox {
	return &outbox{store: s}
}

// Close closes the database
func (s *levelDBStore) Close() error {
	return s.db.Close()
}

// kvReader is the read surface shared by leveldb transactions and snapshots
type kvReader interface {
	Get(key []byte, ro *opt.ReadOptions) ([]byte, error)
	Has(key []byte, ro *opt.ReadOptions) (bool, error)
	NewIterator(slice *util.Range, ro *opt.ReadOptions) iterator.Iterator
}

func get(r kvReader, key []byte) ([]byte, bool, error) {
	value, err := r.Get(key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

func iterate(r kvReader, prefix []byte, fn func(key, value []byte) (bool, error)) error {
	iter := r.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()

	for iter.Next() {
		// the iterator reuses its buffers between calls to Next
		key := append([]byte(nil), iter.Key()...)
		value := append([]byte(nil), iter.Value()...)

		cont, err := fn(key, value)
		if err != nil {
			return err
		}
		if !cont {
			break
		}
	}

	return iter.Error()
}

func readUint64(r kvReader, key []byte) (uint64, error) {
	value, ok, err := get(r, key)
	if err != nil || !ok {
		return 0, err
	}
	if len(value) != 8 {
		return 0, fmt.Errorf("corrupt counter under %x", key)
	}
	return binary.BigEndian.Uint64(value), nil
}

func encodeUint64(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}

type snapshotReader struct {
	snap  *leveldb.Snapshot
	usage uint64
}

func (r *snapshotReader) Get(key []byte) ([]byte, bool, error) {
	return get(r.snap, key)
}

func (r *snapshotReader) Has(key []byte) (bool, error) {
	return r.snap.Has(key, nil)
}

func (r *snapshotReader) Iterate(prefix []byte, fn func(key, value []byte) (bool, error)) error {
	return iterate(r.snap, prefix, fn)
}

func (r *snapshotReader) StorageUsage() uint64 {
	return r.usage
}

type levelDBTxn struct {
	tr       *leveldb.Transaction
	overhead uint64
	usage    uint64
	closed   bool
}

func (t *levelDBTxn) Get(key []byte) ([]byte, bool, error) {
	if t.closed {
		return nil, false, ErrTxnClosed
	}
	return get(t.tr, key)
}

func (t *levelDBTxn) Has(key []byte) (bool, error) {
	if t.closed {
		return false, ErrTxnClosed
	}
	return t.tr.Has(key, nil)
}

func (t *levelDBTxn) Iterate(prefix []byte, fn func(key, value []byte) (bool, error)) error {
	if t.closed {
		return ErrTxnClosed
	}
	return iterate(t.tr, prefix, fn)
}

func (t *levelDBTxn) StorageUsage() uint64 {
	return t.usage
}

// Put stores value under key and moves the usage counter by the size difference
func (t *levelDBTxn) Put(key, value []byte) error {
	if t.closed {
		return ErrTxnClosed
	}
	if len(key) == 0 || isSystemKey(key) {
		return ErrReservedKey
	}

	old, exists, err := get(t.tr, key)
	if err != nil {
		return fmt.Errorf("failed to read previous value: %w", err)
	}
	if err := t.tr.Put(key, value, nil); err != nil {
		return fmt.Errorf("failed to put record: %w", err)
	}

	if exists {
		t.usage -= recordSize(key, old, t.overhead)
	}
	t.usage += recordSize(key, value, t.overhead)
	return nil
}

// Delete removes key and releases its bytes from the usage counter
func (t *levelDBTxn) Delete(key []byte) error {
	if t.closed {
		return ErrTxnClosed
	}
	if len(key) == 0 || isSystemKey(key) {
		return ErrReservedKey
	}

	old, exists, err := get(t.tr, key)
	if err != nil {
		return fmt.Errorf("failed to read previous value: %w", err)
	}
	if !exists {
		return nil
	}
	if err := t.tr.Delete(key, nil); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	t.usage -= recordSize(key, old, t.overhead)
	return nil
}

// Enqueue stages msg in the outbox and assigns its sequence number
func (t *levelDBTxn) Enqueue(msg *OutboxMessage) error {
	if t.closed {
		return ErrTxnClosed
	}

	seq, err := readUint64(t.tr, outboxSeqKey)
	if err != nil {
		return fmt.Errorf("failed to read outbox sequence: %w", err)
	}
	seq++
	msg.Seq = seq

	data, err := msg.encode()
	if err != nil {
		return fmt.Errorf("failed to encode outbox message: %w", err)
	}
	if err := t.tr.Put(outboxKey(seq), data, nil); err != nil {
		return fmt.Errorf("failed to stage outbox message: %w", err)
	}
	if err := t.tr.Put(outboxSeqKey, encodeUint64(seq), nil); err != nil {
		return fmt.Errorf("failed to advance outbox sequence: %w", err)
	}
	return nil
}

// Commit writes the usage counter and persists every staged write
func (t *levelDBTxn) Commit() error {
	if t.closed {
		return ErrTxnClosed
	}
	t.closed = true

	if err := t.tr.Put(usageKey, encodeUint64(t.usage), nil); err != nil {
		t.tr.Discard()
		return fmt.Errorf("failed to persist storage usage: %w", err)
	}
	if err := t.tr.Commit(); err != nil {
		t.tr.Discard()
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Discard drops every staged write
func (t *levelDBTxn) Discard() {
	if t.closed {
		return
	}
	t.closed = true
	t.tr.Discard()
}
