package ports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sonda/pkg/domain"
)

type snapshotCollector struct {
	snapshots []domain.Snapshot
	errs      []error
	completed bool
}

func (c *snapshotCollector) OnNext(s domain.Snapshot) { c.snapshots = append(c.snapshots, s) }
func (c *snapshotCollector) OnError(err error)        { c.errs = append(c.errs, err) }
func (c *snapshotCollector) OnComplete()              { c.completed = true }

// RunStoreContract runs a suite of tests to verify that a Store implementation
// adheres to the defined interface contract. action must change the store's state.
// Snapshot delivery is expected to be synchronous.
func RunStoreContract[A, R any](t *testing.T, store Store[A, R], action A) {
	t.Run("Emits Current Snapshot On Subscribe", func(t *testing.T) {
		c := &snapshotCollector{}
		sub := store.State().Subscribe(c)
		defer sub.Unsubscribe()

		require.Len(t, c.snapshots, 1, "subscribe should deliver the current snapshot")
		assert.Empty(t, c.errs)
	})

	t.Run("Emits After Dispatch", func(t *testing.T) {
		c := &snapshotCollector{}
		sub := store.State().Subscribe(c)
		defer sub.Unsubscribe()

		store.Dispatch(action)
		require.Len(t, c.snapshots, 2, "dispatch should deliver a new snapshot")
		assert.NotEqual(t, c.snapshots[0], c.snapshots[1])
	})

	t.Run("Unsubscribe Stops Delivery", func(t *testing.T) {
		c := &snapshotCollector{}
		sub := store.State().Subscribe(c)
		sub.Unsubscribe()
		sub.Unsubscribe()

		store.Dispatch(action)
		assert.Len(t, c.snapshots, 1)
		assert.False(t, c.completed)
	})
}
