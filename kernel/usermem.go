package kernel

import "errors"

// ErrFault simulates a page fault while copying to or from user memory.
// The real collaborator (spec.md §6, "consumed upward") only promises to
// "return 0 on success, negative error otherwise" across a C ABI; this
// stand-in expresses the same contract as an idiomatic Go error so the
// syscall layer's EFAULT handling is actually testable.
var ErrFault = errors.New("page fault while accessing user memory")

// ErrTooLong is returned when a user-supplied path or buffer does not fit
// the caller's destination scratch space.
var ErrTooLong = errors.New("path too long for scratch buffer")

// UserMemory is a fault-injectable stand-in for the real kernel's
// user-address-space access primitives (copy_from_user, copy_to_user,
// copy_str_from_user, duplicate_user_path). spec.md places the real thing
// out of scope as an external collaborator; this is the one invented
// stand-in SPEC_FULL.md calls out as necessary to make the syscall
// contract testable at all.
type UserMemory struct {
	// Fault, if set, is consulted before every access; returning true
	// simulates a fault on that particular call.
	Fault func() bool
}

func (u *UserMemory) faulted() bool {
	return u.Fault != nil && u.Fault()
}

// CopyFromUser copies len(dest) bytes from a simulated user pointer src.
func (u *UserMemory) CopyFromUser(dest, src []byte) error {
	if u.faulted() {
		return ErrFault
	}
	copy(dest, src)
	return nil
}

// CopyToUser copies len(src) bytes to a simulated user pointer dest.
func (u *UserMemory) CopyToUser(dest, src []byte) error {
	if u.faulted() {
		return ErrFault
	}
	copy(dest, src)
	return nil
}

// CopyStrFromUser copies a NUL-terminated string from src into dest,
// stopping at the first NUL byte or at len(dest), whichever comes first,
// and returns it without its terminator.
func (u *UserMemory) CopyStrFromUser(dest, src []byte) (string, error) {
	if u.faulted() {
		return "", ErrFault
	}
	n := 0
	for n < len(src) && n < len(dest) && src[n] != 0 {
		dest[n] = src[n]
		n++
	}
	return string(dest[:n]), nil
}

// DuplicateUserPath copies, length-checks and validates a user-supplied
// path string: it must fit in dest (with room for the copy) and must not
// be empty.
func (u *UserMemory) DuplicateUserPath(dest, src []byte) (string, error) {
	if u.faulted() {
		return "", ErrFault
	}
	if len(src) >= len(dest) {
		return "", ErrTooLong
	}
	s, err := u.CopyStrFromUser(dest, src)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", ErrFault
	}
	return s, nil
}

// CopyStatToUser simulates copying a decoded stat result to a user-space
// destination for stat64/lstat64, which marshal a struct rather than a
// plain byte buffer; the fault-injection contract is identical to
// CopyToUser's.
func (u *UserMemory) CopyStatToUser() error {
	if u.faulted() {
		return ErrFault
	}
	return nil
}
