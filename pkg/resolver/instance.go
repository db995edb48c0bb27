package resolver

import (
	"sync"
)

var (
	instanceMu sync.Mutex
	instance   *Resolver
)

// Instance returns the process-shared resolver, creating it on the first
// call. Options are honored only by the creating call; a later call that
// passes options gets the existing instance together with
// ErrAlreadyInitialized instead of a silent reconfiguration.
func Instance(opts ...Option) (*Resolver, error) {
	instanceMu.Lock()
	defer instanceMu.Unlock()

	if instance != nil {
		if len(opts) > 0 {
			return instance, ErrAlreadyInitialized
		}
		return instance, nil
	}

	r, err := New(opts...)
	if err != nil {
		return nil, err
	}

	instance = r
	return instance, nil
}

// ResetInstance discards the shared instance so the next Instance call
// creates a fresh one. Intended for tests.
func ResetInstance() {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	instance = nil
}
