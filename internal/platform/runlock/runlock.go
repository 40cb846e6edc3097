// Package runlock keeps two ingestion processes from writing the same
// store at once.
package runlock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/gofrs/flock"
)

var ErrIngestionLocked = errors.New("another ingestion run holds the lock")

// Acquire takes a non-blocking exclusive lock on path. The returned release
// func unlocks it and is safe to call more than once.
func Acquire(path string) (func() error, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create lock dir: %w", err)
		}
	}

	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIngestionLocked, path)
	}

	return func() error {
		if !lock.Locked() {
			return nil
		}
		if err := lock.Unlock(); err != nil {
			return fmt.Errorf("release lock %s: %w", path, err)
		}
		return nil
	}, nil
}
