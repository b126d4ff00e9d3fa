// Package collections provides typed, prefix-namespaced collections on top of
// the registry key-value store. Every collection owns a distinct key prefix so
// records of different collections never collide.
package collections

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/feral-file/ff-nft-registry/internal/adapter"
	"github.com/feral-file/ff-nft-registry/internal/store"
)

const (
	entrySuffix  byte = 'e'
	lengthSuffix byte = 'l'
)

// Prefix is the storage key prefix of one collection
type Prefix []byte

// Child derives a nested prefix from p and the sha256 of name
func (p Prefix) Child(name string) Prefix {
	sum := sha256.Sum256([]byte(name))
	out := make(Prefix, 0, len(p)+len(sum))
	out = append(out, p...)
	return append(out, sum[:]...)
}

func (p Prefix) entryKey(k string) []byte {
	key := make([]byte, 0, len(p)+1+len(k))
	key = append(key, p...)
	key = append(key, entrySuffix)
	return append(key, k...)
}

func (p Prefix) entryPrefix() []byte {
	return p.entryKey("")
}

func (p Prefix) lengthKey() []byte {
	key := make([]byte, 0, len(p)+1)
	key = append(key, p...)
	return append(key, lengthSuffix)
}

func readLength(r store.Reader, p Prefix) (uint64, error) {
	value, ok, err := r.Get(p.lengthKey())
	if err != nil || !ok {
		return 0, err
	}
	if len(value) != 8 {
		return 0, fmt.Errorf("corrupt length under prefix %x", []byte(p))
	}
	return binary.BigEndian.Uint64(value), nil
}

func writeLength(tx store.Txn, p Prefix, n uint64) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, n)
	return tx.Put(p.lengthKey(), buf)
}

// LookupMap is a non-iterable map from K to V
type LookupMap[K ~string, V any] struct {
	prefix Prefix
	json   adapter.JSON
}

// NewLookupMap creates a lookup map under prefix
func NewLookupMap[K ~string, V any](prefix Prefix, json adapter.JSON) *LookupMap[K, V] {
	return &LookupMap[K, V]{prefix: prefix, json: json}
}

// Get returns the value stored under k
func (m *LookupMap[K, V]) Get(r store.Reader, k K) (*V, bool, error) {
	data, ok, err := r.Get(m.prefix.entryKey(string(k)))
	if err != nil || !ok {
		return nil, false, err
	}

	var v V
	if err := m.json.Unmarshal(data, &v); err != nil {
		return nil, false, fmt.Errorf("failed to decode value for %q: %w", k, err)
	}
	return &v, true, nil
}

// Contains reports whether k is present
func (m *LookupMap[K, V]) Contains(r store.Reader, k K) (bool, error) {
	return r.Has(m.prefix.entryKey(string(k)))
}

// Insert stores v under k and reports whether a previous value was replaced
func (m *LookupMap[K, V]) Insert(tx store.Txn, k K, v V) (bool, error) {
	key := m.prefix.entryKey(string(k))
	existed, err := tx.Has(key)
	if err != nil {
		return false, err
	}

	data, err := m.json.Marshal(v)
	if err != nil {
		return false, fmt.Errorf("failed to encode value for %q: %w", k, err)
	}
	if err := tx.Put(key, data); err != nil {
		return false, err
	}
	return existed, nil
}

// Remove deletes k and reports whether it was present
func (m *LookupMap[K, V]) Remove(tx store.Txn, k K) (bool, error) {
	key := m.prefix.entryKey(string(k))
	existed, err := tx.Has(key)
	if err != nil || !existed {
		return false, err
	}
	return true, tx.Delete(key)
}

// UnorderedMap is an iterable map from K to V that tracks its length
type UnorderedMap[K ~string, V any] struct {
	LookupMap[K, V]
}

// NewUnorderedMap creates an unordered map under prefix
func NewUnorderedMap[K ~string, V any](prefix Prefix, json adapter.JSON) *UnorderedMap[K, V] {
	return &UnorderedMap[K, V]{LookupMap: LookupMap[K, V]{prefix: prefix, json: json}}
}

// Len returns the number of entries
func (m *UnorderedMap[K, V]) Len(r store.Reader) (uint64, error) {
	return readLength(r, m.prefix)
}

// Insert stores v under k, growing the length when k is new
func (m *UnorderedMap[K, V]) Insert(tx store.Txn, k K, v V) (bool, error) {
	replaced, err := m.LookupMap.Insert(tx, k, v)
	if err != nil || replaced {
		return replaced, err
	}

	n, err := readLength(tx, m.prefix)
	if err != nil {
		return false, err
	}
	return false, writeLength(tx, m.prefix, n+1)
}

// Remove deletes k, shrinking the length when it was present
func (m *UnorderedMap[K, V]) Remove(tx store.Txn, k K) (bool, error) {
	removed, err := m.LookupMap.Remove(tx, k)
	if err != nil || !removed {
		return removed, err
	}

	n, err := readLength(tx, m.prefix)
	if err != nil {
		return false, err
	}
	return true, writeLength(tx, m.prefix, n-1)
}

// Keys returns every key in storage order
func (m *UnorderedMap[K, V]) Keys(r store.Reader) ([]K, error) {
	entryPrefix := m.prefix.entryPrefix()
	var keys []K
	err := r.Iterate(entryPrefix, func(key, _ []byte) (bool, error) {
		keys = append(keys, K(key[len(entryPrefix):]))
		return true, nil
	})
	return keys, err
}

// UnorderedSet is an iterable set of T that tracks its length
type UnorderedSet[T ~string] struct {
	prefix Prefix
}

// NewUnorderedSet creates a set under prefix
func NewUnorderedSet[T ~string](prefix Prefix) *UnorderedSet[T] {
	return &UnorderedSet[T]{prefix: prefix}
}

// Insert adds v and reports whether it was newly added
func (s *UnorderedSet[T]) Insert(tx store.Txn, v T) (bool, error) {
	key := s.prefix.entryKey(string(v))
	exists, err := tx.Has(key)
	if err != nil || exists {
		return false, err
	}
	if err := tx.Put(key, []byte{}); err != nil {
		return false, err
	}

	n, err := readLength(tx, s.prefix)
	if err != nil {
		return false, err
	}
	return true, writeLength(tx, s.prefix, n+1)
}

// Remove deletes v and reports whether it was present
func (s *UnorderedSet[T]) Remove(tx store.Txn, v T) (bool, error) {
	key := s.prefix.entryKey(string(v))
	exists, err := tx.Has(key)
	if err != nil || !exists {
		return false, err
	}
	if err := tx.Delete(key); err != nil {
		return false, err
	}

	n, err := readLength(tx, s.prefix)
	if err != nil {
		return false, err
	}
	return true, writeLength(tx, s.prefix, n-1)
}

// Contains reports whether v is a member
func (s *UnorderedSet[T]) Contains(r store.Reader, v T) (bool, error) {
	return r.Has(s.prefix.entryKey(string(v)))
}

// Len returns the number of members
func (s *UnorderedSet[T]) Len(r store.Reader) (uint64, error) {
	return readLength(r, s.prefix)
}

// Members returns every member in storage order
func (s *UnorderedSet[T]) Members(r store.Reader) ([]T, error) {
	entryPrefix := s.prefix.entryPrefix()
	var members []T
	err := r.Iterate(entryPrefix, func(key, _ []byte) (bool, error) {
		members = append(members, T(key[len(entryPrefix):]))
		return true, nil
	})
	return members, err
}

// LazyOption is a single optional value stored under its own key
type LazyOption[V any] struct {
	key  []byte
	json adapter.JSON
}

// NewLazyOption creates a lazy option stored under prefix
func NewLazyOption[V any](prefix Prefix, json adapter.JSON) *LazyOption[V] {
	return &LazyOption[V]{key: append(Prefix{}, prefix...), json: json}
}

// Get returns the stored value, if any
func (o *LazyOption[V]) Get(r store.Reader) (*V, bool, error) {
	data, ok, err := r.Get(o.key)
	if err != nil || !ok {
		return nil, false, err
	}

	var v V
	if err := o.json.Unmarshal(data, &v); err != nil {
		return nil, false, fmt.Errorf("failed to decode value: %w", err)
	}
	return &v, true, nil
}

// Set stores v
func (o *LazyOption[V]) Set(tx store.Txn, v V) error {
	data, err := o.json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode value: %w", err)
	}
	return tx.Put(o.key, data)
}
