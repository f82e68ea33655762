package adapters

import (
	"path/filepath"

	"vibranium/internal/ports"
	"vibranium/internal/types"
)

// FlockProjectLock takes an exclusive advisory lock on a file inside the
// ledger directory for the duration of a mutating command.
type FlockProjectLock struct{}

func NewFlockProjectLock() FlockProjectLock {
	return FlockProjectLock{}
}

func (l FlockProjectLock) Acquire(root string) (func(), error) {
	dir := LedgerDir(root)
	if !dirExists(dir) {
		return nil, types.NewLedgerMissingError(dir)
	}
	return acquireFileLock(filepath.Join(dir, types.LockFileName))
}

var _ ports.ProjectLockPort = FlockProjectLock{}
