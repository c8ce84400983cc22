package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"friendgraph/internal/user"
)

func mustUser(t *testing.T, username string) *user.User {
	t.Helper()
	u, err := user.New(username, 30, []string{"reading"})
	require.NoError(t, err)
	return u
}

func TestMemory_FindByID(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	u := mustUser(t, "Alice")
	require.NoError(t, m.Save(ctx, u))

	got, err := m.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.Username, got.Username)

	missing, err := m.FindByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemory_FindManyByIDs_SkipsUnknown(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	a := mustUser(t, "Alice")
	b := mustUser(t, "Bob")
	require.NoError(t, m.SaveMany(ctx, a, b))

	got, err := m.FindManyByIDs(ctx, []string{a.ID, "nope", b.ID})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestMemory_FindAll_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	names := []string{"Alice", "Bob", "Carol"}
	for _, n := range names {
		require.NoError(t, m.Save(ctx, mustUser(t, n)))
	}

	all, err := m.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, n := range names {
		assert.Equal(t, n, all[i].Username)
	}

	// Re-saving must not change position
	first := all[0]
	first.Age = 31
	require.NoError(t, m.Save(ctx, first))
	all, err = m.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alice", all[0].Username)
	assert.Equal(t, 31, all[0].Age)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	u := mustUser(t, "Alice")
	require.NoError(t, m.Save(ctx, u))

	got, err := m.FindByID(ctx, u.ID)
	require.NoError(t, err)
	got.Hobbies[0] = "mutated"

	again, err := m.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "reading", again.Hobbies[0])
}

func TestMemory_UpdateScore_OnlyTouchesScore(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	u := mustUser(t, "Alice")
	require.NoError(t, m.Save(ctx, u))

	require.NoError(t, m.UpdateScore(ctx, u.ID, 2.5))

	got, err := m.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.5, got.PopularityScore)
	assert.Equal(t, "Alice", got.Username)

	// Unknown id is a no-op
	require.NoError(t, m.UpdateScore(ctx, "nope", 1))
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	u := mustUser(t, "Alice")
	require.NoError(t, m.Save(ctx, u))

	require.NoError(t, m.Delete(ctx, u.ID))
	got, err := m.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	all, err := m.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, m.Delete(ctx, u.ID)) // idempotent
}

func TestMemory_RemoveFriendRef(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	a := mustUser(t, "Alice")
	b := mustUser(t, "Bob")
	b.AddFriend(a.ID)
	require.NoError(t, m.SaveMany(ctx, a, b))

	require.NoError(t, m.RemoveFriendRef(ctx, a.ID))

	got, err := m.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Friends)
}
