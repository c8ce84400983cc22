package social

import (
	"hash/fnv"
	"sync"
)

// pairLock serializes mutations per user id using striped mutexes. Two-record
// operations take both stripes in index order so concurrent Link/Unlink calls
// on overlapping pairs cannot deadlock or interleave their read-check-write
// sequences.
type pairLock struct {
	stripes [64]sync.Mutex
}

func (p *pairLock) stripe(id string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return int(h.Sum32() % uint32(len(p.stripes)))
}

// lockOne locks the stripe for a single id and returns the unlock func
func (p *pairLock) lockOne(id string) func() {
	i := p.stripe(id)
	p.stripes[i].Lock()
	return p.stripes[i].Unlock
}

// lockPair locks the stripes for both ids in index order and returns the
// unlock func. Ids that hash to the same stripe share one lock.
func (p *pairLock) lockPair(a, b string) func() {
	i, j := p.stripe(a), p.stripe(b)
	if i > j {
		i, j = j, i
	}
	p.stripes[i].Lock()
	if i != j {
		p.stripes[j].Lock()
	}
	return func() {
		if i != j {
			p.stripes[j].Unlock()
		}
		p.stripes[i].Unlock()
	}
}
