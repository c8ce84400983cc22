// Package social implements the graph-consistency and score-derivation
// engine: mutations that keep friendship links symmetric, popularity score
// recomputation, and the node/edge projection of the stored graph.
package social

import (
	"context"

	"go.uber.org/zap"

	"friendgraph/internal/store"
	"friendgraph/internal/user"
	"friendgraph/pkg/apperr"
	"friendgraph/pkg/logger"
)

// Service applies graph mutations against the store. Every operation that
// touches two records runs under a pair lock and persists both sides in one
// atomic store write, so the symmetry invariant is never observably violated.
type Service struct {
	store  store.Store
	logger *zap.Logger
	locks  pairLock
}

// NewService creates a graph service over the given store
func NewService(st store.Store) *Service {
	return &Service{
		store:  st,
		logger: logger.Named("social"),
	}
}

// Create validates the input and stores a new user with no friends and a
// zero score
func (s *Service) Create(ctx context.Context, username string, age int, hobbies []string) (*user.User, error) {
	u, err := user.New(username, age, hobbies)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("user_id", u.ID),
		zap.String("username", u.Username),
	)
	return u, nil
}

// Get returns the user with the given id
func (s *Service) Get(ctx context.Context, id string) (*user.User, error) {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NewUserNotFound(id)
	}
	return u, nil
}

// List returns all users in store enumeration order
func (s *Service) List(ctx context.Context) ([]*user.User, error) {
	users, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*user.User{}
	}
	return users, nil
}

// Update applies a partial attribute update. The caller's own score is
// recomputed on every successful update; when the hobby list was replaced
// the scores of all current friends are recomputed as well, since hobby
// overlap feeds their scores too.
func (s *Service) Update(ctx context.Context, id string, upd user.Update) (*user.User, error) {
	unlock := s.locks.lockOne(id)
	defer unlock()

	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NewUserNotFound(id)
	}

	hobbiesChanged, err := u.Apply(upd)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, u); err != nil {
		return nil, err
	}

	s.RecomputeScore(ctx, id)
	if hobbiesChanged && len(u.Friends) > 0 {
		s.RecomputeScores(ctx, u.Friends)
	}

	updated, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a user. A user that still has friends cannot be deleted;
// the caller must unlink first. The friend-reference scrub runs even though
// the conflict guard should make it a no-op, so a historically asymmetric
// record can never leave a dangling id behind.
func (s *Service) Delete(ctx context.Context, id string) error {
	unlock := s.locks.lockOne(id)
	defer unlock()

	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return apperr.NewUserNotFound(id)
	}
	if len(u.Friends) > 0 {
		return apperr.NewConflict("cannot delete user with active friendships, remove all friendships first")
	}

	if err := s.store.RemoveFriendRef(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("User deleted", zap.String("user_id", id))
	return nil
}

// Link creates a mutual friendship between two users and recomputes both
// scores. The existing-edge check looks at both sides, so an asymmetric
// state left by an external writer is treated as an existing edge rather
// than made worse.
func (s *Service) Link(ctx context.Context, id, friendID string) (*user.User, *user.User, error) {
	if id == friendID {
		return nil, nil, apperr.NewValidation("friendId", "user cannot be friends with themselves")
	}

	unlock := s.locks.lockPair(id, friendID)
	defer unlock()

	u, f, err := s.getPair(ctx, id, friendID)
	if err != nil {
		return nil, nil, err
	}

	if u.HasFriend(friendID) || f.HasFriend(id) {
		return nil, nil, apperr.NewConflict("friendship already exists")
	}

	u.AddFriend(friendID)
	f.AddFriend(id)
	if err := s.store.SaveMany(ctx, u, f); err != nil {
		return nil, nil, err
	}

	s.RecomputeScores(ctx, []string{id, friendID})

	s.logger.Info("Users linked",
		zap.String("user_id", id),
		zap.String("friend_id", friendID),
	)
	return s.getPair(ctx, id, friendID)
}

// Unlink removes the friendship between two users and recomputes both
// scores. Unlinking a pair that is not linked is a no-op, not an error.
func (s *Service) Unlink(ctx context.Context, id, friendID string) (*user.User, *user.User, error) {
	unlock := s.locks.lockPair(id, friendID)
	defer unlock()

	u, f, err := s.getPair(ctx, id, friendID)
	if err != nil {
		return nil, nil, err
	}

	u.RemoveFriend(friendID)
	f.RemoveFriend(id)
	if err := s.store.SaveMany(ctx, u, f); err != nil {
		return nil, nil, err
	}

	s.RecomputeScores(ctx, []string{id, friendID})

	s.logger.Info("Users unlinked",
		zap.String("user_id", id),
		zap.String("friend_id", friendID),
	)
	return s.getPair(ctx, id, friendID)
}

// getPair fetches both records, reporting the first missing id
func (s *Service) getPair(ctx context.Context, id, friendID string) (*user.User, *user.User, error) {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if u == nil {
		return nil, nil, apperr.NewUserNotFound(id)
	}

	f, err := s.store.FindByID(ctx, friendID)
	if err != nil {
		return nil, nil, err
	}
	if f == nil {
		return nil, nil, apperr.NewUserNotFound(friendID)
	}
	return u, f, nil
}
