package social

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeScore_NoFriends(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	a := seedUser(t, svc, "Alice", "reading", "coding")

	assert.Equal(t, 0.0, svc.ComputeScore(ctx, a.ID))
}

func TestComputeScore_FriendsNoSharedHobbies(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	a := seedUser(t, svc, "Alice", "reading", "coding")
	b := seedUser(t, svc, "Bob", "gaming", "sports")

	_, _, err := svc.Link(ctx, a.ID, b.ID)
	require.NoError(t, err)

	assert.Equal(t, 1.0, svc.ComputeScore(ctx, a.ID))
	assert.Equal(t, 1.0, svc.ComputeScore(ctx, b.ID))
}

func TestComputeScore_SharedHobbies(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	a := seedUser(t, svc, "Alice", "reading", "coding", "gaming")
	b := seedUser(t, svc, "Bob", "gaming", "sports", "reading")

	_, _, err := svc.Link(ctx, a.ID, b.ID)
	require.NoError(t, err)

	// 1 friend + 2 shared hobbies * 0.5
	assert.Equal(t, 2.0, svc.ComputeScore(ctx, a.ID))
}

func TestComputeScore_DuplicateHobbiesCountedWithMultiplicity(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	a := seedUser(t, svc, "Alice", "chess", "chess")
	b := seedUser(t, svc, "Bob", "chess")

	_, _, err := svc.Link(ctx, a.ID, b.ID)
	require.NoError(t, err)

	// Both of Alice's entries match the union of Bob's hobbies
	assert.Equal(t, 2.0, svc.ComputeScore(ctx, a.ID))
	assert.Equal(t, 1.5, svc.ComputeScore(ctx, b.ID))
}

func TestComputeScore_UnionAcrossFriends(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	a := seedUser(t, svc, "Alice", "reading", "gaming")
	b := seedUser(t, svc, "Bob", "reading")
	c := seedUser(t, svc, "Carol", "gaming")

	_, _, err := svc.Link(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, _, err = svc.Link(ctx, a.ID, c.ID)
	require.NoError(t, err)

	// 2 friends + both hobbies present in the friends' union
	assert.Equal(t, 3.0, svc.ComputeScore(ctx, a.ID))
}

func TestComputeScore_UnknownUserIsZero(t *testing.T) {
	svc := newTestService()
	assert.Equal(t, 0.0, svc.ComputeScore(context.Background(), "nope"))
}

func TestRecomputeScore_Persists(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	a := seedUser(t, svc, "Alice", "reading", "coding")
	b := seedUser(t, svc, "Bob", "coding", "gaming")

	_, _, err := svc.Link(ctx, a.ID, b.ID)
	require.NoError(t, err)

	// 1 friend + 1 shared hobby * 0.5, persisted by Link's recompute
	assert.Equal(t, 1.5, fetch(t, svc, a.ID).PopularityScore)
	assert.Equal(t, 1.5, fetch(t, svc, b.ID).PopularityScore)
}

func TestRecomputeScores_AllIdsUpdated(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	a := seedUser(t, svc, "Alice", "reading")
	b := seedUser(t, svc, "Bob", "reading")
	c := seedUser(t, svc, "Carol", "reading")

	_, _, err := svc.Link(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, _, err = svc.Link(ctx, b.ID, c.ID)
	require.NoError(t, err)

	svc.RecomputeScores(ctx, []string{a.ID, b.ID, c.ID})

	assert.Equal(t, 1.5, fetch(t, svc, a.ID).PopularityScore)
	assert.Equal(t, 2.5, fetch(t, svc, b.ID).PopularityScore)
	assert.Equal(t, 1.5, fetch(t, svc, c.ID).PopularityScore)
}

func TestScoreResetAfterUnlink(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	a := seedUser(t, svc, "Alice", "reading")
	b := seedUser(t, svc, "Bob", "reading")

	_, _, err := svc.Link(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, _, err = svc.Unlink(ctx, a.ID, b.ID)
	require.NoError(t, err)

	assert.Equal(t, 0.0, fetch(t, svc, a.ID).PopularityScore)
	assert.Equal(t, 0.0, fetch(t, svc, b.ID).PopularityScore)
}
