package services

import (
	"bytes"
	"sync"

	"github.com/google/uuid"
)

// parentLocks serializes ordering and cascade writes per sibling-set parent
// (a board's columns, a column's cards). Entries are never freed; the map is
// bounded by the number of live parent ids.
var parentLocks sync.Map // uuid.UUID -> *sync.Mutex

func lockParent(id uuid.UUID) func() {
	v, _ := parentLocks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// lockParents acquires both locks in a stable order so two concurrent moves
// between the same pair of columns cannot deadlock.
func lockParents(a, b uuid.UUID) func() {
	if a == b {
		return lockParent(a)
	}
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	unlockA := lockParent(a)
	unlockB := lockParent(b)
	return func() {
		unlockB()
		unlockA()
	}
}
