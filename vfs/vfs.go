package vfs

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// Errors surfaced by the VFS layer itself, independent of any filesystem
// implementation's own errors.
var (
	ErrNoMount      = errors.New("no filesystem mounted for path")
	ErrNotSupported = errors.New("operation not supported by this filesystem")
	ErrIsDirectory  = errors.New("is a directory")
	ErrNotDirectory = errors.New("not a directory")
)

// Stat mirrors the subset of file metadata the syscall layer's
// stat64/lstat64 need to copy back to user space. Name is populated only
// when Stat comes from a directory listing (DirLister.Readdir); it's empty
// from VOps.Stat itself, which already knows the path it was asked about.
type Stat struct {
	Name    string
	Size    int64
	IsDir   bool
	ModTime time.Time
}

// DirLister is an optional capability a VOps implementation may provide for
// directory enumeration. VOps itself stays exactly the syscall-facing
// vtable spec.md §4.6 specifies (open/close/read/write/ioctl/stat); nothing
// in that contract lists directories, but the afero adapter needs to, so
// it's a separate interface instead of widening VOps for every backend.
type DirLister interface {
	Readdir(h *Handle) ([]Stat, error)
}

// VOps is the filesystem vtable every mounted filesystem implements: open
// resolves a path to a Handle, the remaining operations take a Handle
// previously returned by Open. Shlock/Shunlock/Exlock/Exunlock live on
// Handle itself (see handle.go) rather than in this interface, since they
// are identical for every implementation and Go's sync.RWMutex already
// supplies them.
type VOps interface {
	Open(path string) (*Handle, error)
	Close(h *Handle) error
	Read(h *Handle, dest []byte) (int, error)
	Write(h *Handle, src []byte) (int, error)
	Ioctl(h *Handle, request int, arg uintptr) (int, error)
	Stat(path string) (Stat, error)
}

type mountEntry struct {
	prefix string
	fs     VOps
}

// MountTable is the process-wide ordered (prefix, filesystem) list the VFS
// dispatches through. Lookup resolves to the longest matching prefix, so a
// more specific mount always wins over "/".
type MountTable struct {
	entries []mountEntry
}

// NewMountTable returns an empty mount table. Callers add the root mount
// with Add("/", fs) before any lookup can succeed.
func NewMountTable() *MountTable {
	return &MountTable{}
}

// Add registers fs at prefix, keeping entries sorted longest-prefix-first
// so Lookup's first match is always the most specific one.
func (m *MountTable) Add(prefix string, fs VOps) {
	m.entries = append(m.entries, mountEntry{prefix: prefix, fs: fs})
	sort.SliceStable(m.entries, func(i, j int) bool {
		return len(m.entries[i].prefix) > len(m.entries[j].prefix)
	})
}

// Lookup returns the filesystem mounted at the longest prefix of path, and
// the portion of path relative to that mount (always starting with '/').
func (m *MountTable) Lookup(path string) (fs VOps, relative string, err error) {
	for _, e := range m.entries {
		if e.prefix == "/" || strings.HasPrefix(path, e.prefix) {
			rel := strings.TrimPrefix(path, e.prefix)
			if rel == "" || rel[0] != '/' {
				rel = "/" + rel
			}
			return e.fs, rel, nil
		}
	}
	return nil, "", ErrNoMount
}
