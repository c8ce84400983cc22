package store

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"friendgraph/internal/user"
	"friendgraph/pkg/apperr"
	"friendgraph/pkg/logger"
)

// Neo4j persists user records as :User nodes. Records are stored
// document-style (the friend set is a list property, mirroring the Store
// contract) rather than as relationships, so the engine above stays
// backend-agnostic.
type Neo4j struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewNeo4j wraps an already-connected driver
func NewNeo4j(driver neo4j.DriverWithContext) *Neo4j {
	return &Neo4j{
		driver: driver,
		logger: logger.Named("store.neo4j"),
	}
}

func (s *Neo4j) FindByID(ctx context.Context, id string) (*user.User, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (u:User {id: $id})
		RETURN u
	`, map[string]any{"id": id})
	if err != nil {
		return nil, apperr.NewStore("findById", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, apperr.NewStore("findById", err)
		}
		return nil, nil
	}
	return userFromRecord(result.Record())
}

func (s *Neo4j) FindManyByIDs(ctx context.Context, ids []string) ([]*user.User, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (u:User)
		WHERE u.id IN $ids
		RETURN u
	`, map[string]any{"ids": ids})
	if err != nil {
		return nil, apperr.NewStore("findManyByIds", err)
	}
	return collectUsers(ctx, result, "findManyByIds")
}

func (s *Neo4j) FindAll(ctx context.Context) ([]*user.User, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (u:User)
		RETURN u
		ORDER BY u.created_at
	`, nil)
	if err != nil {
		return nil, apperr.NewStore("findAll", err)
	}
	return collectUsers(ctx, result, "findAll")
}

func (s *Neo4j) Save(ctx context.Context, u *user.User) error {
	return s.SaveMany(ctx, u)
}

// SaveMany upserts all records inside one write transaction via a single
// UNWIND, so a concurrent reader sees either none or all of the writes.
func (s *Neo4j) SaveMany(ctx context.Context, users ...*user.User) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	rows := make([]map[string]any, 0, len(users))
	for _, u := range users {
		rows = append(rows, map[string]any{
			"id":              u.ID,
			"username":        u.Username,
			"age":             u.Age,
			"hobbies":         u.Hobbies,
			"friends":         u.Friends,
			"createdAt":       u.CreatedAt.UTC().Format(time.RFC3339Nano),
			"popularityScore": u.PopularityScore,
		})
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return tx.Run(ctx, `
			UNWIND $rows AS row
			MERGE (u:User {id: row.id})
			SET u.username = row.username,
			    u.age = row.age,
			    u.hobbies = row.hobbies,
			    u.friends = row.friends,
			    u.created_at = datetime(row.createdAt),
			    u.popularity_score = row.popularityScore
		`, map[string]any{"rows": rows})
	})
	if err != nil {
		return apperr.NewStore("save", err)
	}
	return nil
}

func (s *Neo4j) UpdateScore(ctx context.Context, id string, score float64) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.Run(ctx, `
		MATCH (u:User {id: $id})
		SET u.popularity_score = $score
	`, map[string]any{"id": id, "score": score})
	if err != nil {
		return apperr.NewStore("updateScore", err)
	}
	return nil
}

func (s *Neo4j) Delete(ctx context.Context, id string) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.Run(ctx, `
		MATCH (u:User {id: $id})
		DETACH DELETE u
	`, map[string]any{"id": id})
	if err != nil {
		return apperr.NewStore("delete", err)
	}
	return nil
}

func (s *Neo4j) RemoveFriendRef(ctx context.Context, id string) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.Run(ctx, `
		MATCH (u:User)
		WHERE $id IN u.friends
		SET u.friends = [fid IN u.friends WHERE fid <> $id]
	`, map[string]any{"id": id})
	if err != nil {
		return apperr.NewStore("updateManyRemovingReference", err)
	}

	s.logger.Debug("Stripped friend references", zap.String("user_id", id))
	return nil
}

func (s *Neo4j) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// Record mapping helpers

func collectUsers(ctx context.Context, result neo4j.ResultWithContext, op string) ([]*user.User, error) {
	var users []*user.User
	for result.Next(ctx) {
		u, err := userFromRecord(result.Record())
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := result.Err(); err != nil {
		return nil, apperr.NewStore(op, err)
	}
	return users, nil
}

func userFromRecord(record *neo4j.Record) (*user.User, error) {
	val, ok := record.Get("u")
	if !ok {
		return nil, apperr.NewStore("scan", fmt.Errorf("record has no user node"))
	}
	node, ok := val.(neo4j.Node)
	if !ok {
		return nil, apperr.NewStore("scan", fmt.Errorf("unexpected value type %T", val))
	}

	return &user.User{
		ID:              getString(node.Props, "id"),
		Username:        getString(node.Props, "username"),
		Age:             int(getInt64(node.Props, "age")),
		Hobbies:         getStringSlice(node.Props, "hobbies"),
		Friends:         getStringSlice(node.Props, "friends"),
		CreatedAt:       getTime(node.Props, "created_at"),
		PopularityScore: getFloat64(node.Props, "popularity_score"),
	}, nil
}

func getString(props map[string]any, key string) string {
	if s, ok := props[key].(string); ok {
		return s
	}
	return ""
}

func getInt64(props map[string]any, key string) int64 {
	if n, ok := props[key].(int64); ok {
		return n
	}
	return 0
}

func getFloat64(props map[string]any, key string) float64 {
	switch v := props[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

func getStringSlice(props map[string]any, key string) []string {
	out := []string{}
	if vals, ok := props[key].([]any); ok {
		for _, v := range vals {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

func getTime(props map[string]any, key string) time.Time {
	if t, ok := props[key].(time.Time); ok {
		return t
	}
	return time.Time{}
}
