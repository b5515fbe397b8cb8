package vfs

import (
	"io"
	"time"

	"github.com/aligator/kfat/fat"
)

// FatFS adapts the fat package's read-only FAT12/16/32 engine into VOps.
// Grounded on the teacher's Fs.Open/readFileAt call sites (fs.go, file.go):
// the same open-resolves-an-entry, read-advances-a-cursor shape, rebuilt
// against the fat package's memory-resident primitives instead of the
// teacher's io.ReadSeeker + sector cache.
type FatFS struct {
	hdr *fat.Header
}

// NewFatFS mounts a FAT16 or FAT32 image already resident in memory. FAT12
// images and malformed headers are rejected by fat.NewHeader.
func NewFatFS(image []byte) (*FatFS, error) {
	hdr, err := fat.NewHeader(image)
	if err != nil {
		return nil, err
	}
	return &FatFS{hdr: hdr}, nil
}

// fatCursor is a Handle's private per-open-file state: the resolved
// directory entry plus a read offset that advances across repeated Read
// calls, the way a real file descriptor's position does.
type fatCursor struct {
	entry  *fat.DirEntry
	offset int64
}

// Open resolves path against the mounted image and installs a fresh cursor
// on the returned Handle.
func (f *FatFS) Open(path string) (*Handle, error) {
	entry, err := fat.SearchEntry(f.hdr, path)
	if err != nil {
		return nil, err
	}
	return &Handle{FS: f, Path: path, Private: &fatCursor{entry: entry}}, nil
}

// Close is a no-op: the mounted image is read-only and memory-resident, so
// there is no per-handle resource to release beyond the cursor itself
// (collected with the Handle).
func (f *FatFS) Close(h *Handle) error {
	return nil
}

// Read copies up to len(dest) bytes starting at the handle's current
// cursor and advances it by the number of bytes copied. Reading a
// directory returns ErrIsDirectory.
func (f *FatFS) Read(h *Handle, dest []byte) (int, error) {
	cur := h.Private.(*fatCursor)
	if cur.entry.IsDir() {
		return 0, ErrIsDirectory
	}
	n, err := fat.ReadAt(f.hdr, cur.entry, cur.offset, dest)
	cur.offset += int64(n)
	if err != nil {
		return n, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Write always fails: spec.md's Non-goals explicitly exclude writing to
// the FAT image.
func (f *FatFS) Write(h *Handle, src []byte) (int, error) {
	return 0, ErrNotSupported
}

// Ioctl always fails: this design defines no device-specific commands for
// a read-only in-memory FAT image.
func (f *FatFS) Ioctl(h *Handle, request int, arg uintptr) (int, error) {
	return 0, ErrNotSupported
}

// Stat resolves path and reports its size, directory bit and modification
// time without opening a lasting handle.
func (f *FatFS) Stat(path string) (Stat, error) {
	entry, err := fat.SearchEntry(f.hdr, path)
	if err != nil {
		return Stat{}, err
	}
	return statFromEntry(entry), nil
}

// Readdir implements DirLister: it lists a directory handle's immediate
// children, preferring each entry's reassembled VFAT long name over its
// 8.3 short name. Volume-label entries are skipped, matching the walker's
// own filtering rule.
func (f *FatFS) Readdir(h *Handle) ([]Stat, error) {
	cur, ok := h.Private.(*fatCursor)
	if !ok {
		return nil, ErrNotSupported
	}
	if !cur.entry.IsDir() {
		return nil, ErrNotDirectory
	}

	cluster := cur.entry.FirstCluster()
	var data []byte
	if cluster == 0 {
		data, cluster = fat.RootDir(f.hdr)
	}

	var out []Stat
	err := fat.Walk(f.hdr, cluster, data, func(entry *fat.DirEntry, longName string) bool {
		if entry.IsVolumeID() {
			return false
		}
		name := longName
		if name == "" {
			name = fat.ShortName(entry)
		}
		st := statFromEntry(entry)
		st.Name = name
		out = append(out, st)
		return false
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// statFromEntry decodes a directory entry's size, directory bit and
// write-date/write-time pair into a Stat, mirroring the teacher's
// entryHeaderFileInfo.ModTime (stat.go): an invalid date decodes to the
// zero time, since the date and time fields are independent on disk.
func statFromEntry(e *fat.DirEntry) Stat {
	return Stat{
		Size:    int64(e.FileSize),
		IsDir:   e.IsDir(),
		ModTime: mergeDateTime(fat.ParseDate(e.WrtDate), fat.ParseTime(e.WrtTime)),
	}
}

func mergeDateTime(date, clock time.Time) time.Time {
	if date.IsZero() {
		return time.Time{}
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC)
}
