package registry

import "sync"

// courseLocks hands out one mutex per course so that writes touching the
// same course serialize while different courses proceed in parallel.
type courseLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newCourseLocks() *courseLocks {
	return &courseLocks{locks: make(map[uint]*sync.Mutex)}
}

// For returns the mutex guarding courseID, creating it on first use.
// Locks are never released back; the per-course footprint is one mutex.
func (cl *courseLocks) For(courseID uint) *sync.Mutex {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	l, ok := cl.locks[courseID]
	if !ok {
		l = &sync.Mutex{}
		cl.locks[courseID] = l
	}
	return l
}
