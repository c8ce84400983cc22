// Package store defines the persistence contract for user records and
// provides two implementations: an in-memory store and a Neo4j-backed one.
// The engine is written against this interface only; nothing above it knows
// which backend is wired.
package store

import (
	"context"

	"friendgraph/internal/user"
)

// Store is the capability set the graph engine consumes.
//
// FindAll's enumeration order is backend-defined but must be stable between
// calls while the data is unchanged; graph projection positions users by this
// order. The memory store yields insertion order, the Neo4j store orders by
// creation time.
type Store interface {
	// FindByID returns the user or (nil, nil) when the id is unknown.
	FindByID(ctx context.Context, id string) (*user.User, error)
	// FindManyByIDs returns the users that exist among ids; unknown ids are
	// silently skipped.
	FindManyByIDs(ctx context.Context, ids []string) ([]*user.User, error)
	// FindAll returns every user record.
	FindAll(ctx context.Context) ([]*user.User, error)
	// Save upserts a single record.
	Save(ctx context.Context, u *user.User) error
	// SaveMany upserts all given records as one atomic operation. Both sides
	// of a friendship edit go through here so no reader can observe a
	// half-written pair.
	SaveMany(ctx context.Context, users ...*user.User) error
	// UpdateScore writes only the popularity score of the given record,
	// leaving every other field untouched.
	UpdateScore(ctx context.Context, id string, score float64) error
	// Delete removes the record; deleting an unknown id is a no-op.
	Delete(ctx context.Context, id string) error
	// RemoveFriendRef strips id from every other record's friend set.
	RemoveFriendRef(ctx context.Context, id string) error
	// Close releases backend resources.
	Close(ctx context.Context) error
}
