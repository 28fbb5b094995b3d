package app

import (
	"sync"

	"crewline/internal/common"
)

// applicantLocks serializes decisions per applicant. Two concurrent accepts
// for the same person must not both pass the overlap check before either
// commits; everything between the status read and the decision write runs
// under this lock.
type applicantLocks struct {
	mu    sync.Mutex
	locks map[common.UUID]*applicantLock
}

type applicantLock struct {
	mu   sync.Mutex
	refs int
}

func newApplicantLocks() *applicantLocks {
	return &applicantLocks{locks: make(map[common.UUID]*applicantLock)}
}

// Lock acquires the applicant's mutex and returns the release func.
func (l *applicantLocks) Lock(applicantID common.UUID) func() {
	l.mu.Lock()
	entry, ok := l.locks[applicantID]
	if !ok {
		entry = &applicantLock{}
		l.locks[applicantID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, applicantID)
		}
		l.mu.Unlock()
	}
}
