package room

import (
	"sync"

	"github.com/mcoot/bankit-go/internal/model"
)

// roomLocks serializes operations per room code. Entries are never
// reaped; an idle entry is a single mutex and rooms are bounded by
// storage TTLs.
type roomLocks struct {
	mu    sync.Mutex
	locks map[model.RoomCode]*sync.Mutex
}

func newRoomLocks() *roomLocks {
	return &roomLocks{
		locks: make(map[model.RoomCode]*sync.Mutex),
	}
}

// lock acquires the mutex for a room code and returns its unlock func
func (l *roomLocks) lock(code model.RoomCode) func() {
	l.mu.Lock()
	m, ok := l.locks[code]
	if !ok {
		m = &sync.Mutex{}
		l.locks[code] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
