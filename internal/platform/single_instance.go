package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// ErrAlreadyRunning indicates another timer process already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	minLockPort = 20000
	maxLockPort = 39999
)

// InstanceGuard keeps a localhost port bound for the life of the process so
// that a second launch cannot create a second session engine.
type InstanceGuard struct {
	listener net.Listener
}

// AcquireSingleInstance binds the port derived from appName.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := LockAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", address, errors.Join(ErrAlreadyRunning, err))
	}
	return &InstanceGuard{listener: listener}, nil
}

// Release frees the lock. Safe on a nil guard.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	guard.listener = nil
	return err
}

// LockAddress returns the deterministic localhost address used for appName.
func LockAddress(appName string) string {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	span := uint32(maxLockPort - minLockPort + 1)
	return fmt.Sprintf("127.0.0.1:%d", minLockPort+int(hash.Sum32()%span))
}
