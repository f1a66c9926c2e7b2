package app

import (
	"fmt"

	"github.com/gofrs/flock"
)

// outputLock is an advisory lock held for the lifetime of a watcher so
// two watch invocations cannot fight over the same artifact.
type outputLock struct {
	lock *flock.Flock
}

func (l *outputLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if !l.lock.Locked() {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("unlock output lock: %w", err)
	}
	return nil
}

func acquireOutputLock(outputPath string) (*outputLock, bool, error) {
	f := flock.New(outputPath + ".lock")
	locked, err := f.TryLock()
	if err != nil {
		return nil, false, fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return nil, true, nil
	}
	return &outputLock{lock: f}, false, nil
}
