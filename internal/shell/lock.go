package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// staleLockAge is the age after which a leftover rc file lock is ignored.
const staleLockAge = 2 * time.Minute

// ErrRCFileLocked is returned when another setup holds the rc file lock.
var ErrRCFileLocked = errors.New("rc file is locked: another venvctl setup may be running")

// rcLock guards an rc file against concurrent setup runs.
type rcLock struct {
	path string
	file *os.File
}

// lockPath returns the lock file location for rcPath.
func lockPath(rcPath string) string {
	return rcPath + ".venvctl-lock"
}

// acquireRCLock creates the lock file next to rcPath with O_EXCL. A lock
// older than staleLockAge is removed and acquisition retried once.
func acquireRCLock(rcPath string) (*rcLock, error) {
	path := lockPath(rcPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, &RCFileError{Path: path, Message: "failed to create lock directory", Cause: err}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o600)
	if errors.Is(err, os.ErrExist) && lockIsStale(path) {
		_ = os.Remove(path)
		file, err = os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o600)
	}
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, ErrRCFileLocked
		}
		return nil, &RCFileError{Path: path, Message: "failed to create lock file", Cause: err}
	}

	if _, err := fmt.Fprintf(file, "pid=%d\n", os.Getpid()); err != nil {
		file.Close()
		os.Remove(path)
		return nil, &RCFileError{Path: path, Message: "failed to write lock file", Cause: err}
	}

	return &rcLock{path: path, file: file}, nil
}

// release closes and removes the lock file.
func (l *rcLock) release() error {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove lock file: %w", err)
	}
	return nil
}

func lockIsStale(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return time.Since(info.ModTime()) > staleLockAge
}
