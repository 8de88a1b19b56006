package engine

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liamcoop/decisions/decision"
)

func newDecision(t *testing.T, id, name string) *decision.Decision {
	t.Helper()

	d, err := decision.NewDecisionBuilder().ID(id).Name(name).Build()
	require.NoError(t, err)
	return d
}

// TestDecisionStoreInterfaceExists verifies InMemoryDecisionStore implements DecisionStore
func TestDecisionStoreInterfaceExists(t *testing.T) {
	var _ DecisionStore = (*InMemoryDecisionStore)(nil)
}

func TestInMemoryDecisionStoreAdd(t *testing.T) {
	store := NewInMemoryDecisionStore()
	d := newDecision(t, "discount", "Discount")

	require.NoError(t, store.Add(d))

	retrieved, err := store.Get("discount")
	require.NoError(t, err)
	assert.Same(t, d, retrieved)
}

// TestInMemoryDecisionStoreAddDuplicate verifies duplicate IDs are rejected and the first one kept
func TestInMemoryDecisionStoreAddDuplicate(t *testing.T) {
	store := NewInMemoryDecisionStore()
	first := newDecision(t, "discount", "First")
	second := newDecision(t, "discount", "Second")

	require.NoError(t, store.Add(first))
	err := store.Add(second)
	assert.ErrorIs(t, err, ErrDecisionExists)
	assert.Contains(t, err.Error(), "discount")

	retrieved, err := store.Get("discount")
	require.NoError(t, err)
	assert.Equal(t, "First", retrieved.Name())
}

func TestInMemoryDecisionStoreGetNotFound(t *testing.T) {
	store := NewInMemoryDecisionStore()

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, ErrDecisionNotFound)
}

// TestInMemoryDecisionStoreList verifies decisions are listed ordered by ID
func TestInMemoryDecisionStoreList(t *testing.T) {
	store := NewInMemoryDecisionStore()

	list, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, list)

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, store.Add(newDecision(t, id, "Decision "+id)))
	}

	list, err = store.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].ID())
	assert.Equal(t, "b", list[1].ID())
	assert.Equal(t, "c", list[2].ID())
}

func TestInMemoryDecisionStoreUpdate(t *testing.T) {
	store := NewInMemoryDecisionStore()

	err := store.Update(newDecision(t, "discount", "Missing"))
	assert.ErrorIs(t, err, ErrDecisionNotFound)

	require.NoError(t, store.Add(newDecision(t, "discount", "Old")))
	require.NoError(t, store.Update(newDecision(t, "discount", "New")))

	retrieved, err := store.Get("discount")
	require.NoError(t, err)
	assert.Equal(t, "New", retrieved.Name())
}

func TestInMemoryDecisionStoreDelete(t *testing.T) {
	store := NewInMemoryDecisionStore()
	require.NoError(t, store.Add(newDecision(t, "discount", "Discount")))

	require.NoError(t, store.Delete("discount"))

	_, err := store.Get("discount")
	assert.ErrorIs(t, err, ErrDecisionNotFound)

	err = store.Delete("discount")
	assert.ErrorIs(t, err, ErrDecisionNotFound)
}

// TestInMemoryDecisionStoreConcurrentReadWrite verifies concurrent readers and writers are safe
func TestInMemoryDecisionStoreConcurrentReadWrite(t *testing.T) {
	store := NewInMemoryDecisionStore()
	const writers = 20

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		d := newDecision(t, fmt.Sprintf("decision-%02d", i), "Concurrent")
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Add(d)
		}()
		go func() {
			defer wg.Done()
			_, _ = store.List()
			_, _ = store.Get(d.ID())
		}()
	}
	wg.Wait()

	list, err := store.List()
	require.NoError(t, err)
	assert.Len(t, list, writers)
}
