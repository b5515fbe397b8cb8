package syscall

import (
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/aligator/kfat/fat"
	"github.com/aligator/kfat/kernel"
	"github.com/aligator/kfat/vfs"
)

// iovecSize mirrors sizeof(struct iovec){void *, size_t} on a 64-bit ABI,
// used only for the ARGS_COPYBUF_SIZE bound check spec.md §4.7 specifies
// (sizeof(iovec)*iovcnt <= ARGS_COPYBUF_SIZE); Go's actual Iovec struct
// layout below is irrelevant to that arithmetic.
const iovecSize = 16

// Iovec is one segment of a readv/writev vector: a simulated user-space
// buffer and its length is simply len(Base).
type Iovec struct {
	Base []byte
}

// State bundles the per-process collaborators a syscall entry point needs:
// the current task (spec.md's get_curr_task()), the fault-injectable
// user-memory primitives, the process-wide mount table, and a logger. A
// real kernel reaches these through global/per-CPU state; this module has
// no scheduler to hang them off of, so they're wired explicitly.
type State struct {
	Task   *kernel.Task
	Mem    *kernel.UserMemory
	Mounts *vfs.MountTable
	Log    *zap.SugaredLogger
}

// exvfsOpen resolves path through the mount table and dispatches to the
// owning filesystem's Open, the way spec.md's data flow (§2) describes the
// VFS layer multiplexing onto FAT lookups.
func exvfsOpen(mounts *vfs.MountTable, path string) (*vfs.Handle, error) {
	fs, rel, err := mounts.Lookup(path)
	if err != nil {
		return nil, err
	}
	h, err := fs.Open(rel)
	if err != nil {
		return nil, err
	}
	h.FS = fs
	h.Path = rel
	return h, nil
}

func exvfsClose(h *vfs.Handle) error {
	return h.FS.Close(h)
}

// errnoFromLookup translates a fat/vfs sentinel error into the fixed errno
// taxonomy spec.md §7 specifies for lookup faults.
func errnoFromLookup(err error) SPtr {
	switch {
	case errors.Is(err, fat.ErrNotFound):
		return ENOENT
	case errors.Is(err, fat.ErrNotDir):
		return ENOTDIR
	case errors.Is(err, fat.ErrInvalidPath):
		return EINVAL
	case errors.Is(err, vfs.ErrNoMount):
		return ENOENT
	default:
		return EINVAL
	}
}

// lookupFD validates fd is nonnegative, within the handle array, and
// non-empty, per spec.md §4.7's "a file descriptor is valid iff" rule.
func (s *State) lookupFD(fd int) (*vfs.Handle, SPtr) {
	h := s.Task.Handle(fd)
	if h == nil {
		return nil, EBADF
	}
	return h, 0
}

// canonicalize duplicates userPath into the task's args scratch buffer and
// canonicalizes it against CWD. It does not take the preemption gate
// itself: since it reads the mutable CWD, its callers (Open, stat64Impl)
// call it with preemption already disabled and keep the gate held through
// the VFS open dispatch that follows.
func (s *State) canonicalize(userPath []byte) (string, SPtr) {
	pathBuf := s.Task.ArgsCopyBuf[:kernel.ArgsCopyBufSize/2]
	in, err := s.Mem.DuplicateUserPath(pathBuf, userPath)
	if err != nil {
		if errors.Is(err, kernel.ErrTooLong) {
			return "", ENAMETOOLONG
		}
		return "", EFAULT
	}

	absBuf := s.Task.ArgsCopyBuf[kernel.ArgsCopyBufSize/2:]
	n, err := kernel.ComputeAbsPath(in, s.Task.CWD, absBuf)
	if err != nil {
		return "", ENAMETOOLONG
	}
	return string(absBuf[:n]), 0
}

// Open implements the open syscall: duplicate path, canonicalize against
// CWD, find the lowest free handle slot, dispatch through the VFS, and
// install the handle. Slot search, canonicalization and the VFS dispatch
// all run with preemption disabled, per spec.md §4.7 ("Open must run with
// preemption disabled in this design").
func (s *State) Open(userPath []byte, flags int, mode int) SPtr {
	kernel.DisablePreemption()
	defer kernel.EnablePreemption()

	absPath, errno := s.canonicalize(userPath)
	if errno != 0 {
		return errno
	}

	fd := -1
	for i, h := range s.Task.Handles {
		if h == nil {
			fd = i
			break
		}
	}
	if fd < 0 {
		s.Log.Debugw("open", "path", absPath, "errno", int(EMFILE))
		return EMFILE
	}

	h, err := exvfsOpen(s.Mounts, absPath)
	if err != nil {
		errno := errnoFromLookup(err)
		s.Log.Debugw("open", "path", absPath, "errno", int(errno))
		return errno
	}

	s.Task.Handles[fd] = h
	s.Log.Debugw("open", "path", absPath, "fd", fd)
	return SPtr(fd)
}

// Close implements the close syscall: preemption is disabled across the
// lookup, VFS dispatch and slot release so a concurrent close on another
// task thread cannot race and double-free the handle.
func (s *State) Close(fd int) SPtr {
	kernel.DisablePreemption()
	defer kernel.EnablePreemption()

	h, errno := s.lookupFD(fd)
	if h == nil {
		return errno
	}
	if err := exvfsClose(h); err != nil {
		s.Log.Debugw("close", "fd", fd, "error", err)
		return EINVAL
	}
	s.Task.FreeHandle(fd)
	s.Log.Debugw("close", "fd", fd)
	return 0
}

// fsRead performs the filesystem-facing half of a read: clamp to the IO
// scratch buffer and read into it. It assumes the caller already holds h's
// shared lock; it does not touch user memory, so a caller with a wider
// critical section (Readv, which holds the lock across copy-to-user as
// well) and a caller with a narrower one (Read, which releases the lock
// before copying to user) can both build on it.
func (s *State) fsRead(h *vfs.Handle, count int) (scratch []byte, n int, err error) {
	if count > len(s.Task.IOCopyBuf) {
		count = len(s.Task.IOCopyBuf)
	}
	scratch = s.Task.IOCopyBuf[:count]
	n, err = h.FS.Read(h, scratch)
	return scratch, n, err
}

// Read implements the read syscall: acquire the shared lock, read into
// scratch, release the lock, then copy to user — the exact ordering
// spec.md §4.7 specifies, so the lock is never held across the
// copy-to-user step.
//
// Open question (spec.md §9): if CopyToUser fails after a successful
// filesystem read, the stream offset is not rewound — the bytes already
// read are considered consumed.
func (s *State) Read(fd int, userBuf []byte, count int) SPtr {
	h, errno := s.lookupFD(fd)
	if h == nil {
		return errno
	}

	h.Shlock()
	scratch, n, err := s.fsRead(h, count)
	h.Shunlock()

	if err != nil && !errors.Is(err, io.EOF) {
		s.Log.Debugw("read", "fd", fd, "errno", int(EINVAL))
		return EINVAL
	}
	if cerr := s.Mem.CopyToUser(userBuf, scratch[:n]); cerr != nil {
		s.Log.Debugw("read", "fd", fd, "errno", int(EFAULT))
		return EFAULT
	}

	s.Log.Debugw("read", "fd", fd, "count", count, "result", n)
	return SPtr(n)
}

// copyWriteScratch clamps count to the IO scratch buffer and copies the
// user buffer into it. It touches only user memory, never the filesystem,
// so callers run it before acquiring any lock — spec.md §4.7's "copy from
// user into scratch first ... acquire exclusive lock, write, release".
func (s *State) copyWriteScratch(userBuf []byte, count int) (scratch []byte, errno SPtr) {
	if count > len(s.Task.IOCopyBuf) {
		count = len(s.Task.IOCopyBuf)
	}
	scratch = s.Task.IOCopyBuf[:count]
	if len(userBuf) < count {
		return nil, EFAULT
	}
	if err := s.Mem.CopyFromUser(scratch, userBuf[:count]); err != nil {
		return nil, EFAULT
	}
	return scratch, 0
}

// fsWrite performs the filesystem-facing half of a write, assuming the
// caller already holds h's exclusive lock and has already copied the data
// into scratch.
func (s *State) fsWrite(h *vfs.Handle, scratch []byte) SPtr {
	n, err := h.FS.Write(h, scratch)
	if err != nil {
		return EINVAL
	}
	return SPtr(n)
}

// Write implements the write syscall: copy from user into scratch first,
// so an EFAULT can never be observed after the filesystem has already
// changed state, then acquire the exclusive lock, write, and release.
func (s *State) Write(fd int, userBuf []byte, count int) SPtr {
	h, errno := s.lookupFD(fd)
	if h == nil {
		return errno
	}

	scratch, errno := s.copyWriteScratch(userBuf, count)
	if errno != 0 {
		s.Log.Debugw("write", "fd", fd, "errno", int(errno))
		return errno
	}

	h.Exlock()
	r := s.fsWrite(h, scratch)
	h.Exunlock()

	s.Log.Debugw("write", "fd", fd, "count", count, "result", int64(r))
	return r
}

// Readv implements the readv syscall: the rwlock is taken once across the
// entire vector (spec.md §4.7/§5), including each segment's copy-to-user,
// since a vectored operation's critical section is the whole vector rather
// than one segment. A short transfer stops issuing further segments. On
// error, the cumulative byte count is returned unless zero bytes were
// transferred, in which case the error itself is returned.
func (s *State) Readv(fd int, iov []Iovec) SPtr {
	if len(iov)*iovecSize > len(s.Task.ArgsCopyBuf) {
		return EINVAL
	}
	h, errno := s.lookupFD(fd)
	if h == nil {
		return errno
	}

	h.Shlock()
	defer h.Shunlock()

	var total int64
	for _, seg := range iov {
		scratch, n, err := s.fsRead(h, len(seg.Base))
		if err != nil && !errors.Is(err, io.EOF) {
			if total == 0 {
				s.Log.Debugw("readv", "fd", fd, "errno", int(EINVAL))
				return EINVAL
			}
			break
		}
		if cerr := s.Mem.CopyToUser(seg.Base, scratch[:n]); cerr != nil {
			if total == 0 {
				s.Log.Debugw("readv", "fd", fd, "errno", int(EFAULT))
				return EFAULT
			}
			break
		}
		total += int64(n)
		if n < len(seg.Base) {
			break
		}
	}
	s.Log.Debugw("readv", "fd", fd, "total", total)
	return SPtr(total)
}

// Writev implements the writev syscall with the same cumulative-bytes
// semantics as Readv, exclusive-locked across the whole vector.
func (s *State) Writev(fd int, iov []Iovec) SPtr {
	if len(iov)*iovecSize > len(s.Task.ArgsCopyBuf) {
		return EINVAL
	}
	h, errno := s.lookupFD(fd)
	if h == nil {
		return errno
	}

	h.Exlock()
	defer h.Exunlock()

	var total int64
	for _, seg := range iov {
		scratch, werrno := s.copyWriteScratch(seg.Base, len(seg.Base))
		if werrno != 0 {
			if total == 0 {
				s.Log.Debugw("writev", "fd", fd, "errno", int(werrno))
				return werrno
			}
			break
		}
		r := s.fsWrite(h, scratch)
		if r < 0 {
			if total == 0 {
				s.Log.Debugw("writev", "fd", fd, "errno", int(r))
				return r
			}
			break
		}
		total += int64(r)
		if int(r) < len(seg.Base) {
			break
		}
	}
	s.Log.Debugw("writev", "fd", fd, "total", total)
	return SPtr(total)
}

// Ioctl implements the ioctl syscall: exclusive lock, delegate to the
// filesystem's Ioctl vop.
func (s *State) Ioctl(fd int, request int, arg uintptr) SPtr {
	h, errno := s.lookupFD(fd)
	if h == nil {
		return errno
	}

	h.Exlock()
	n, err := h.FS.Ioctl(h, request, arg)
	h.Exunlock()

	if err != nil {
		s.Log.Debugw("ioctl", "fd", fd, "request", request, "error", err)
		return EINVAL
	}
	return SPtr(n)
}

// stat64Impl is shared by Stat64 and Lstat64: canonicalize, open, shared-
// lock, stat, release, close, and report the result through statBuf.
func (s *State) stat64Impl(userPath []byte, statBuf *vfs.Stat) SPtr {
	kernel.DisablePreemption()
	absPath, errno := s.canonicalize(userPath)
	if errno != 0 {
		kernel.EnablePreemption()
		return errno
	}

	h, err := exvfsOpen(s.Mounts, absPath)
	kernel.EnablePreemption()
	if err != nil {
		errno := errnoFromLookup(err)
		s.Log.Debugw("stat64", "path", absPath, "errno", int(errno))
		return errno
	}

	h.Shlock()
	st, statErr := h.FS.Stat(h.Path)
	h.Shunlock()

	kernel.DisablePreemption()
	if cerr := exvfsClose(h); cerr != nil {
		s.Log.Debugw("stat64", "path", absPath, "close-error", cerr)
	}
	kernel.EnablePreemption()

	if statErr != nil {
		errno := errnoFromLookup(statErr)
		s.Log.Debugw("stat64", "path", absPath, "errno", int(errno))
		return errno
	}

	if err := s.Mem.CopyStatToUser(); err != nil {
		return EFAULT
	}
	*statBuf = st
	s.Log.Debugw("stat64", "path", absPath, "size", st.Size)
	return 0
}

// Stat64 implements the stat64 syscall.
func (s *State) Stat64(userPath []byte, statBuf *vfs.Stat) SPtr {
	return s.stat64Impl(userPath, statBuf)
}

// Lstat64 aliases Stat64 byte for byte: this design has no symlinks
// (spec.md Non-goals), so there is no distinct case for lstat64 to handle,
// exactly as spec.md §8's "lstat64(p) == stat64(p)" invariant requires.
func (s *State) Lstat64(userPath []byte, statBuf *vfs.Stat) SPtr {
	return s.stat64Impl(userPath, statBuf)
}

// recognizedFcntlCmds names the commands Fcntl64 recognizes well enough to
// log, even though none of them are actually implemented.
var recognizedFcntlCmds = map[int]string{
	0: "F_DUPFD",
	1: "F_GETFD",
	2: "F_SETFD",
	3: "F_GETFL",
	4: "F_SETFL",
}

// Fcntl64 is unsupported in this design and always returns -EINVAL, but
// logs the recognized command name for observability, per spec.md §4.7 and
// its Open Question resolution: a future implementation may start
// supporting F_DUPFD and friends, but must not silently begin succeeding
// without a contract revision.
func (s *State) Fcntl64(fd int, cmd int, arg uintptr) SPtr {
	if name, ok := recognizedFcntlCmds[cmd]; ok {
		s.Log.Debugw("fcntl64: recognized but unsupported command", "fd", fd, "cmd", name)
	} else {
		s.Log.Debugw("fcntl64: unrecognized command", "fd", fd, "cmd", cmd)
	}
	return EINVAL
}
