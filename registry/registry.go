// Package registry owns every write to course seat counters and
// enrollment records. Handlers must not mutate either table directly:
// the coordinator is the only writer, and it performs the ledger write
// and the counter update as one transaction while holding the course
// lock. That pairing is what keeps enrolled_seats equal to the count of
// ENROLLED ledger rows under concurrent requests.
package registry

import "gorm.io/gorm"

// Registry bundles the enrollment core components over one database
// handle and one shared set of per-course locks.
type Registry struct {
	Coordinator *Coordinator
	Courses     *CourseStore
	Ledger      *Ledger
	Stats       *StatsAggregator
}

// Default is the process-wide instance, set by Init at startup.
var Default *Registry

// New builds a Registry over db. The coordinator and the course store
// share the lock table so capacity changes serialize with enrollments.
func New(db *gorm.DB) *Registry {
	locks := newCourseLocks()
	return &Registry{
		Coordinator: &Coordinator{db: db, locks: locks, maxAttempts: defaultMaxAttempts, backoff: defaultBackoff},
		Courses:     &CourseStore{db: db, locks: locks},
		Ledger:      &Ledger{db: db},
		Stats:       &StatsAggregator{db: db},
	}
}

// Init sets up the global Default registry.
func Init(db *gorm.DB) {
	Default = New(db)
}
