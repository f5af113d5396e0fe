// Package lock defines the mutual-exclusion contract used around output writes.
package lock

import "context"

// Locker is a context-aware exclusive lock.
type Locker interface {
	Lock(ctx context.Context) error
	Unlock(ctx context.Context) error
}

// WithLock runs fn while holding l. l is released whatever fn returns; an
// unlock failure is reported only when fn itself succeeded.
func WithLock(ctx context.Context, l Locker, fn func() error) (err error) {
	if err = l.Lock(ctx); err != nil {
		return err
	}
	defer func() {
		if uerr := l.Unlock(ctx); uerr != nil && err == nil {
			err = uerr
		}
	}()
	return fn()
}
