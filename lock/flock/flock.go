package flock

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"

	"github.com/projecteru2/uuidkey/lock"
)

const pollInterval = 50 * time.Millisecond

var _ lock.Locker = (*Lock)(nil)

// Lock is an flock(2)-based lock on an existing path, typically a directory.
// The path is opened read-only, so nothing is created on disk.
type Lock struct {
	fl *flock.Flock
}

// New returns a Lock on path. Nothing is opened until Lock is called.
func New(path string) *Lock {
	return &Lock{fl: flock.New(path, flock.SetFlag(os.O_RDONLY))}
}

// Lock polls for the exclusive lock until it is held or ctx ends.
func (l *Lock) Lock(ctx context.Context) error {
	ok, err := l.fl.TryLockContext(ctx, pollInterval)
	if err != nil {
		return fmt.Errorf("lock %s: %w", l.fl.Path(), err)
	}
	if !ok {
		return fmt.Errorf("lock %s: %w", l.fl.Path(), context.Cause(ctx))
	}
	return nil
}

// Unlock releases the lock and closes the file descriptor.
func (l *Lock) Unlock(context.Context) error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("unlock %s: %w", l.fl.Path(), err)
	}
	return nil
}
