package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
)

// OutboxKind is the kind of a message waiting in the outbox
type OutboxKind string

const (
	// OutboxKindEvent carries an emitted event record
	OutboxKindEvent OutboxKind = "event"
	// OutboxKindRefund carries a refund request for the value-transfer system
	OutboxKindRefund OutboxKind = "refund"
)

// OutboxMessage is a message committed together with a registry call and
// relayed to the message broker afterwards
type OutboxMessage struct {
	Seq       uint64          `json:"seq"`
	ID        string          `json:"id"`
	Kind      OutboxKind      `json:"kind"`
	Subject   string          `json:"subject"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

func (m *OutboxMessage) encode() ([]byte, error) {
	return json.Marshal(m)
}

func decodeOutboxMessage(data []byte) (*OutboxMessage, error) {
	var m OutboxMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func outboxKey(seq uint64) []byte {
	key := make([]byte, len(outboxPrefix)+8)
	copy(key, outboxPrefix)
	binary.BigEndian.PutUint64(key[len(outboxPrefix):], seq)
	return key
}

// Outbox defines the interface for reading and acknowledging relayed messages
//
//go:generate mockgen -source=outbox.go -destination=../mocks/outbox.go -package=mocks -mock_names=Outbox=MockOutbox
type Outbox interface {
	// Pending returns up to limit undelivered messages in sequence order
	Pending(ctx context.Context, limit int) ([]*OutboxMessage, error)
	// Ack removes every message with a sequence number up to and including seq
	// and records seq as the relay cursor
	Ack(ctx context.Context, seq uint64) error
	// Cursor returns the sequence number of the last acknowledged message
	Cursor(ctx context.Context) (uint64, error)
}

type outbox struct {
	store *levelDBStore
}

// Pending returns up to limit undelivered messages in sequence order
func (o *outbox) Pending(ctx context.Context, limit int) ([]*OutboxMessage, error) {
	var messages []*OutboxMessage
	err := o.store.withSnapshot(ctx, func(snap *leveldb.Snapshot) error {
		return iterate(snap, outboxPrefix, func(_, value []byte) (bool, error) {
			msg, err := decodeOutboxMessage(value)
			if err != nil {
				return false, fmt.Errorf("failed to decode outbox message: %w", err)
			}
			messages = append(messages, msg)
			return limit <= 0 || len(messages) < limit, nil
		})
	})
	if err != nil {
		return nil, err
	}

	return messages, nil
}

// Ack removes delivered messages and advances the relay cursor
func (o *outbox) Ack(ctx context.Context, seq uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tr, err := o.store.db.OpenTransaction()
	if err != nil {
		return fmt.Errorf("failed to open transaction: %w", err)
	}

	cursor, err := readUint64(tr, relayCursorKey)
	if err != nil {
		tr.Discard()
		return fmt.Errorf("failed to read relay cursor: %w", err)
	}
	if seq <= cursor {
		tr.Discard()
		return nil
	}

	for s := cursor + 1; s <= seq; s++ {
		if err := tr.Delete(outboxKey(s), nil); err != nil {
			tr.Discard()
			return fmt.Errorf("failed to delete outbox message %d: %w", s, err)
		}
	}
	if err := tr.Put(relayCursorKey, encodeUint64(seq), nil); err != nil {
		tr.Discard()
		return fmt.Errorf("failed to save relay cursor: %w", err)
	}

	if err := tr.Commit(); err != nil {
		tr.Discard()
		return fmt.Errorf("failed to commit ack: %w", err)
	}
	return nil
}

// Cursor returns the sequence number of the last acknowledged message
func (o *outbox) Cursor(ctx context.Context) (uint64, error) {
	var cursor uint64
	err := o.store.withSnapshot(ctx, func(snap *leveldb.Snapshot) error {
		var err error
		cursor, err = readUint64(snap, relayCursorKey)
		return err
	})
	return cursor, err
}
