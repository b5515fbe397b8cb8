package vfs

import (
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// AferoFS wraps a mounted VOps as an afero.Fs, grounded directly on the
// teacher's go-fs.go (GoFs/GoFile wrapping its concrete *Fs) but adapted to
// wrap the VOps interface instead, so it works against any VOps backend,
// not just FatFS. This lets cmd/kfatctl's ls/diagnose subcommands use
// afero.Walk exactly the way the teacher's cmd/gofat/main.go does, instead
// of hand-rolling directory recursion.
type AferoFS struct {
	Ops VOps
}

// NewAferoFS wraps ops for afero consumption.
func NewAferoFS(ops VOps) *AferoFS {
	return &AferoFS{Ops: ops}
}

func (a *AferoFS) Name() string { return "FAT" }

func (a *AferoFS) Open(name string) (afero.File, error) {
	p := toAbs(name)
	h, err := a.Ops.Open(p)
	if err != nil {
		return nil, err
	}
	st, err := a.Ops.Stat(p)
	if err != nil {
		_ = a.Ops.Close(h)
		return nil, err
	}
	return &aferoFile{ops: a.Ops, handle: h, path: p, stat: st}, nil
}

// OpenFile ignores flag/perm: the mounted filesystem is read-only by
// design (spec.md Non-goals exclude writing to the image).
func (a *AferoFS) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	return a.Open(name)
}

func (a *AferoFS) Stat(name string) (os.FileInfo, error) {
	p := toAbs(name)
	st, err := a.Ops.Stat(p)
	if err != nil {
		return nil, err
	}
	return aferoFileInfo{name: baseName(p), stat: st}, nil
}

func (a *AferoFS) Create(name string) (afero.File, error)    { return nil, ErrNotSupported }
func (a *AferoFS) Mkdir(name string, perm os.FileMode) error { return ErrNotSupported }
func (a *AferoFS) MkdirAll(p string, perm os.FileMode) error { return ErrNotSupported }
func (a *AferoFS) Remove(name string) error                  { return ErrNotSupported }
func (a *AferoFS) RemoveAll(p string) error                   { return ErrNotSupported }
func (a *AferoFS) Rename(oldname, newname string) error       { return ErrNotSupported }
func (a *AferoFS) Chmod(name string, mode os.FileMode) error  { return ErrNotSupported }
func (a *AferoFS) Chown(name string, uid, gid int) error      { return ErrNotSupported }
func (a *AferoFS) Chtimes(name string, atime, mtime time.Time) error {
	return ErrNotSupported
}

func toAbs(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if name == "" || name == "." {
		return "/"
	}
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	return name
}

func baseName(p string) string {
	if p == "/" {
		return "/"
	}
	return path.Base(strings.TrimSuffix(p, "/"))
}

// aferoFile implements afero.File over a VOps Handle. Write-side methods
// all report ErrNotSupported: the mounted filesystem never writes to the
// image (spec.md Non-goals).
type aferoFile struct {
	ops    VOps
	handle *Handle
	path   string
	stat   Stat

	dirEntries []Stat
	dirRead    bool
}

func (f *aferoFile) Close() error {
	return f.ops.Close(f.handle)
}

func (f *aferoFile) Read(p []byte) (int, error) {
	f.handle.Shlock()
	defer f.handle.Shunlock()
	return f.ops.Read(f.handle, p)
}

// ReadAt repositions the handle's cursor, reads, then restores it. This
// mirrors the usage pattern in the teacher's cmd/gofat/main.go
// (file.ReadAt(buffer, offset)) without requiring VOps itself to grow a
// random-access method: only FatFS's cursor needs touching, and aferoFile
// lives in the same package as FatFS to do it directly.
func (f *aferoFile) ReadAt(p []byte, off int64) (int, error) {
	cur, ok := f.handle.Private.(*fatCursor)
	if !ok {
		return 0, ErrNotSupported
	}
	f.handle.Shlock()
	defer f.handle.Shunlock()
	saved := cur.offset
	cur.offset = off
	n, err := f.ops.Read(f.handle, p)
	cur.offset = saved
	return n, err
}

func (f *aferoFile) Seek(offset int64, whence int) (int64, error) {
	cur, ok := f.handle.Private.(*fatCursor)
	if !ok {
		return 0, ErrNotSupported
	}

	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = cur.offset + offset
	case io.SeekEnd:
		abs = int64(cur.entry.FileSize) + offset
	default:
		return 0, ErrNotSupported
	}
	if abs < 0 {
		return 0, ErrNotSupported
	}
	cur.offset = abs
	return abs, nil
}

func (f *aferoFile) Write(p []byte) (int, error)              { return 0, ErrNotSupported }
func (f *aferoFile) WriteAt(p []byte, off int64) (int, error) { return 0, ErrNotSupported }
func (f *aferoFile) WriteString(s string) (int, error)        { return 0, ErrNotSupported }
func (f *aferoFile) Truncate(size int64) error                { return ErrNotSupported }
func (f *aferoFile) Sync() error                               { return nil }
func (f *aferoFile) Name() string                              { return f.path }

func (f *aferoFile) Stat() (os.FileInfo, error) {
	return aferoFileInfo{name: baseName(f.path), stat: f.stat}, nil
}

func (f *aferoFile) Readdir(count int) ([]os.FileInfo, error) {
	if !f.dirRead {
		lister, ok := f.ops.(DirLister)
		if !ok {
			return nil, ErrNotSupported
		}
		entries, err := lister.Readdir(f.handle)
		if err != nil {
			return nil, err
		}
		f.dirEntries = entries
		f.dirRead = true
	}

	n := len(f.dirEntries)
	if count > 0 && count < n {
		n = count
	}
	if n == 0 && count > 0 {
		return nil, io.EOF
	}

	out := make([]os.FileInfo, n)
	for i, e := range f.dirEntries[:n] {
		out[i] = aferoFileInfo{name: e.Name, stat: e}
	}
	f.dirEntries = f.dirEntries[n:]
	return out, nil
}

func (f *aferoFile) Readdirnames(n int) ([]string, error) {
	infos, err := f.Readdir(n)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(infos))
	for i, fi := range infos {
		names[i] = fi.Name()
	}
	return names, nil
}

// aferoFileInfo adapts a vfs.Stat (plus a resolved name) to os.FileInfo,
// the way the teacher's entryHeaderFileInfo (stat.go) adapts an
// ExtendedEntryHeader.
type aferoFileInfo struct {
	name string
	stat Stat
}

func (i aferoFileInfo) Name() string { return i.name }
func (i aferoFileInfo) Size() int64  { return i.stat.Size }
func (i aferoFileInfo) Mode() fs.FileMode {
	if i.stat.IsDir {
		return fs.ModeDir
	}
	return 0
}
func (i aferoFileInfo) ModTime() time.Time { return i.stat.ModTime }
func (i aferoFileInfo) IsDir() bool        { return i.stat.IsDir }
func (i aferoFileInfo) Sys() interface{}   { return i.stat }
