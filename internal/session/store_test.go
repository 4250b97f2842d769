package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/harmonymatch/admin-gateway/internal/console"
	"github.com/harmonymatch/admin-gateway/internal/models"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	state := console.NewState()
	state.SetPage(1)
	state.SetSelected("u1", true)

	assert.NoError(t, store.Put(ctx, "moderator1", state))

	got, err := store.Get(ctx, "moderator1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"u1"}, got.Selected)
}

func TestMemoryStore_GetReturnsPrivateCopy(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	state := console.NewState()
	state.SetSelected("u1", true)
	assert.NoError(t, store.Put(ctx, "moderator1", state))

	first, err := store.Get(ctx, "moderator1")
	assert.NoError(t, err)
	second, err := store.Get(ctx, "moderator1")
	assert.NoError(t, err)

	// Mutations on one request's copy must not bleed into another's, or
	// into the store itself before Put.
	first.SetSelected("u2", true)
	assert.Equal(t, []string{"u1"}, second.Selected)

	stored, err := store.Get(ctx, "moderator1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"u1"}, stored.Selected)
}

func TestMemoryStore_PutSnapshotsState(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	state := console.NewState()
	state.SetSelected("u1", true)
	assert.NoError(t, store.Put(ctx, "moderator1", state))

	state.SetSelected("u2", true)

	got, err := store.Get(ctx, "moderator1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"u1"}, got.Selected)
}

func TestMemoryStore_ConcurrentOperatorRequests(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	assert.NoError(t, store.Put(ctx, "moderator1", console.NewState()))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				state, err := store.Get(ctx, "moderator1")
				assert.NoError(t, err)
				state.SetSelected("user-1", true)
				state.SetSelected("user-1", false)
				assert.NoError(t, store.Put(ctx, "moderator1", state))
			}
		}()
	}
	wg.Wait()
}

func TestMemoryStore_MissingSession(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()

	_, err := store.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestMemoryStore_ExpiredSessionIsGone(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	defer store.Close()
	ctx := context.Background()

	assert.NoError(t, store.Put(ctx, "moderator1", console.NewState()))
	time.Sleep(25 * time.Millisecond)

	_, err := store.Get(ctx, "moderator1")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)

	store.mu.RLock()
	_, lingering := store.entries["moderator1"]
	store.mu.RUnlock()
	assert.False(t, lingering, "expired entry should be dropped on read")
}

func TestMemoryStore_OperatorsAreIsolated(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	a := console.NewState()
	a.SetSelected("u1", true)
	b := console.NewState()
	b.SetSelected("u9", true)

	assert.NoError(t, store.Put(ctx, "alice", a))
	assert.NoError(t, store.Put(ctx, "bob", b))

	gotA, err := store.Get(ctx, "alice")
	assert.NoError(t, err)
	gotB, err := store.Get(ctx, "bob")
	assert.NoError(t, err)
	assert.Equal(t, []string{"u1"}, gotA.Selected)
	assert.Equal(t, []string{"u9"}, gotB.Selected)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	assert.NoError(t, store.Put(ctx, "moderator1", console.NewState()))
	assert.NoError(t, store.Delete(ctx, "moderator1"))

	_, err := store.Get(ctx, "moderator1")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}
