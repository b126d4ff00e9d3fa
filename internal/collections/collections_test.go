package collections

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-nft-registry/internal/adapter"
	"github.com/feral-file/ff-nft-registry/internal/logger"
	"github.com/feral-file/ff-nft-registry/internal/store"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTxn(t *testing.T) (store.Store, store.Txn) {
	t.Helper()
	s, err := store.New(store.Config{RecordOverheadBytes: 40})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	txn, err := s.Begin(context.Background())
	require.NoError(t, err)
	t.Cleanup(txn.Discard)
	return s, txn
}

func TestLookupMap(t *testing.T) {
	_, txn := newTxn(t)
	m := NewLookupMap[string, record](Prefix{0x10}, adapter.NewJSON())

	replaced, err := m.Insert(txn, "a", record{Name: "first", Count: 1})
	require.NoError(t, err)
	assert.False(t, replaced)

	replaced, err = m.Insert(txn, "a", record{Name: "second", Count: 2})
	require.NoError(t, err)
	assert.True(t, replaced)

	v, ok, err := m.Get(txn, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", v.Name)

	_, ok, err = m.Get(txn, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	removed, err := m.Remove(txn, "a")
	require.NoError(t, err)
	assert.True(t, removed)

	has, err := m.Contains(txn, "a")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestUnorderedMapTracksLength(t *testing.T) {
	_, txn := newTxn(t)
	m := NewUnorderedMap[string, record](Prefix{0x11}, adapter.NewJSON())

	for _, k := range []string{"1", "0", "2"} {
		_, err := m.Insert(txn, k, record{Name: k})
		require.NoError(t, err)
	}
	_, err := m.Insert(txn, "1", record{Name: "again"})
	require.NoError(t, err)

	n, err := m.Len(txn)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), n)

	keys, err := m.Keys(txn)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2"}, keys)

	_, err = m.Remove(txn, "0")
	require.NoError(t, err)
	n, err = m.Len(txn)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)
}

func TestUnorderedSet(t *testing.T) {
	_, txn := newTxn(t)
	parent := Prefix{0x12}
	alice := NewUnorderedSet[string](parent.Child("alice"))
	bob := NewUnorderedSet[string](parent.Child("bob"))

	added, err := alice.Insert(txn, "0")
	require.NoError(t, err)
	assert.True(t, added)
	added, err = alice.Insert(txn, "0")
	require.NoError(t, err)
	assert.False(t, added)
	_, err = bob.Insert(txn, "1")
	require.NoError(t, err)

	members, err := alice.Members(txn)
	require.NoError(t, err)
	assert.Equal(t, []string{"0"}, members)

	has, err := bob.Contains(txn, "0")
	require.NoError(t, err)
	assert.False(t, has)

	removed, err := alice.Remove(txn, "0")
	require.NoError(t, err)
	assert.True(t, removed)
	n, err := alice.Len(txn)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), n)
}

func TestLazyOption(t *testing.T) {
	_, txn := newTxn(t)
	o := NewLazyOption[record](Prefix{0x13}, adapter.NewJSON())

	_, ok, err := o.Get(txn)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, o.Set(txn, record{Name: "collection"}))
	v, ok, err := o.Get(txn)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "collection", v.Name)
}

func TestCollectionsChargeStorage(t *testing.T) {
	_, txn := newTxn(t)
	m := NewUnorderedMap[string, record](Prefix{0x14}, adapter.NewJSON())

	before := txn.StorageUsage()
	_, err := m.Insert(txn, "0", record{Name: "x"})
	require.NoError(t, err)
	assert.Greater(t, txn.StorageUsage(), before)
}

func TestPrefixChildIsDeterministic(t *testing.T) {
	p := Prefix{0x02}
	assert.Equal(t, p.Child("alice"), p.Child("alice"))
	assert.NotEqual(t, p.Child("alice"), p.Child("bob"))
	assert.Len(t, p.Child("alice"), 33)
}
