package social

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// sharedHobbyWeight is the contribution of each shared hobby to the score.
const sharedHobbyWeight = 0.5

// ComputeScore derives the popularity score of a user from current stored
// state: friend count plus half a point per entry of the user's own hobby
// list (duplicates counted) that any friend also has.
//
// Score derivation is a best-effort side effect of an already-successful
// mutation, so failures here are logged and collapsed to 0 rather than
// propagated; the value self-heals on the next recomputation.
func (s *Service) ComputeScore(ctx context.Context, id string) float64 {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("Score computation failed, defaulting to 0",
			zap.String("user_id", id),
			zap.Error(err),
		)
		return 0
	}
	if u == nil {
		s.logger.Warn("Score requested for unknown user", zap.String("user_id", id))
		return 0
	}

	numFriends := len(u.Friends)
	if numFriends == 0 {
		return 0
	}

	friends, err := s.store.FindManyByIDs(ctx, u.Friends)
	if err != nil {
		s.logger.Warn("Score computation failed, defaulting to 0",
			zap.String("user_id", id),
			zap.Error(err),
		)
		return 0
	}

	friendHobbies := make(map[string]struct{})
	for _, f := range friends {
		for _, h := range f.Hobbies {
			friendHobbies[h] = struct{}{}
		}
	}

	shared := 0
	for _, h := range u.Hobbies {
		if _, ok := friendHobbies[h]; ok {
			shared++
		}
	}

	return float64(numFriends) + sharedHobbyWeight*float64(shared)
}

// RecomputeScore computes and persists the score of a single user. Only the
// score field is written, so a concurrent attribute edit cannot be clobbered.
func (s *Service) RecomputeScore(ctx context.Context, id string) float64 {
	score := s.ComputeScore(ctx, id)
	if err := s.store.UpdateScore(ctx, id, score); err != nil {
		s.logger.Warn("Failed to persist score",
			zap.String("user_id", id),
			zap.Error(err),
		)
	}
	return score
}

// RecomputeScores recomputes each id independently and concurrently; there
// is no ordering dependency between them, each only reads the current
// persisted state of its own user and friends.
func (s *Service) RecomputeScores(ctx context.Context, ids []string) {
	var g errgroup.Group
	for _, id := range ids {
		id := id
		g.Go(func() error {
			s.RecomputeScore(ctx, id)
			return nil
		})
	}
	_ = g.Wait()
}
