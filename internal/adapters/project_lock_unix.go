//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"
)

// acquireFileLock blocks until an exclusive flock on path is held. The
// kernel drops the lock if the process dies, so an orphaned lock file is
// harmless.
func acquireFileLock(path string) (func(), error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to open lock file " + path).
			WithCause(err)
	}
	if err := unix.Flock(int(file.Fd()), unix.LOCK_EX); err != nil {
		_ = file.Close()
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to lock " + path).
			WithCause(err)
	}
	released := false
	return func() {
		if released {
			return
		}
		released = true
		if err := unix.Flock(int(file.Fd()), unix.LOCK_UN); err != nil {
			log.Debug().Err(err).Str("path", path).Msg("flock unlock failed")
		}
		if err := file.Close(); err != nil {
			log.Debug().Err(err).Str("path", path).Msg("lock file close failed")
		}
	}, nil
}
