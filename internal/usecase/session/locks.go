package session

import (
	"hash/fnv"
	"sync"
)

const lockStripes = 64

// sessionLocks serializes read-modify-write cycles per session inside one
// process. Different sessions may share a stripe.
type sessionLocks struct {
	stripes [lockStripes]sync.Mutex
}

func (l *sessionLocks) lock(sessionID string) func() {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	mu := &l.stripes[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}
