package store

import (
	"context"
	"sync"

	"friendgraph/internal/user"
)

// Memory is a mutex-guarded in-memory Store. It keeps insertion order for
// FindAll so projection layout is deterministic, and it deep-copies records
// on the way in and out so callers never share memory with the store.
type Memory struct {
	mu    sync.RWMutex
	users map[string]*user.User
	order []string
}

// NewMemory returns an empty in-memory store
func NewMemory() *Memory {
	return &Memory{users: make(map[string]*user.User)}
}

func (m *Memory) FindByID(ctx context.Context, id string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return u.Clone(), nil
}

func (m *Memory) FindManyByIDs(ctx context.Context, ids []string) ([]*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*user.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u.Clone())
		}
	}
	return out, nil
}

func (m *Memory) FindAll(ctx context.Context) ([]*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*user.User, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.users[id].Clone())
	}
	return out, nil
}

func (m *Memory) Save(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.put(u)
	return nil
}

func (m *Memory) SaveMany(ctx context.Context, users ...*user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Single critical section: a concurrent FindAll sees either none or all
	// of these writes.
	for _, u := range users {
		m.put(u)
	}
	return nil
}

func (m *Memory) UpdateScore(ctx context.Context, id string, score float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u, ok := m.users[id]; ok {
		u.PopularityScore = score
	}
	return nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return nil
	}
	delete(m.users, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) RemoveFriendRef(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		u.RemoveFriend(id)
	}
	return nil
}

func (m *Memory) Close(ctx context.Context) error {
	return nil
}

// put upserts without locking; callers hold m.mu
func (m *Memory) put(u *user.User) {
	if _, ok := m.users[u.ID]; !ok {
		m.order = append(m.order, u.ID)
	}
	m.users[u.ID] = u.Clone()
}
