// Package vfs implements the filesystem-independent layer sitting between
// the syscall entry points and a concrete filesystem driver: a vtable
// contract (VOps), a mountpoint table with longest-prefix lookup, and the
// opaque per-open-file Handle each syscall operates on.
package vfs

import "sync"

// Handle is the opaque per-open-file object a VOps implementation attaches
// its own cursor state to via Private. The reader/writer lock it carries
// replaces the filesystem vtable's Shlock/Shunlock/Exlock/Exunlock: Go's
// sync.RWMutex is the natural fit, and putting it here means every VOps
// implementation shares one locking primitive instead of reimplementing it.
type Handle struct {
	mu sync.RWMutex

	FS   VOps
	Path string

	// Private is filesystem-specific per-open-file state (e.g. a *fat.DirEntry
	// plus a read cursor for vfs.FatFS). VOps implementations type-assert it.
	Private interface{}
}

// Shlock acquires the handle for shared (reader) access, held across one
// read-side syscall's data-plane operation.
func (h *Handle) Shlock() { h.mu.RLock() }

// Shunlock releases a shared lock acquired by Shlock.
func (h *Handle) Shunlock() { h.mu.RUnlock() }

// Exlock acquires the handle for exclusive access, held across one
// write/ioctl syscall or an entire writev vector.
func (h *Handle) Exlock() { h.mu.Lock() }

// Exunlock releases an exclusive lock acquired by Exlock.
func (h *Handle) Exunlock() { h.mu.Unlock() }
