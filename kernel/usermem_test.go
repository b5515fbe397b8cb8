package kernel

import (
	"errors"
	"testing"
)

func TestUserMemory_CopyFromUser(t *testing.T) {
	u := &UserMemory{}
	dest := make([]byte, 4)
	if err := u.CopyFromUser(dest, []byte("data")); err != nil {
		t.Fatalf("CopyFromUser() error = %v", err)
	}
	if string(dest) != "data" {
		t.Fatalf("CopyFromUser() dest = %q, want %q", dest, "data")
	}
}

func TestUserMemory_FaultInjection(t *testing.T) {
	u := &UserMemory{Fault: func() bool { return true }}

	if err := u.CopyFromUser(make([]byte, 1), []byte("x")); !errors.Is(err, ErrFault) {
		t.Fatalf("CopyFromUser() error = %v, want ErrFault", err)
	}
	if err := u.CopyToUser(make([]byte, 1), []byte("x")); !errors.Is(err, ErrFault) {
		t.Fatalf("CopyToUser() error = %v, want ErrFault", err)
	}
	if _, err := u.CopyStrFromUser(make([]byte, 4), []byte("x\x00")); !errors.Is(err, ErrFault) {
		t.Fatalf("CopyStrFromUser() error = %v, want ErrFault", err)
	}
	if _, err := u.DuplicateUserPath(make([]byte, 4), []byte("/a")); !errors.Is(err, ErrFault) {
		t.Fatalf("DuplicateUserPath() error = %v, want ErrFault", err)
	}
	if err := u.CopyStatToUser(); !errors.Is(err, ErrFault) {
		t.Fatalf("CopyStatToUser() error = %v, want ErrFault", err)
	}
}

func TestUserMemory_CopyStrFromUser_StopsAtNul(t *testing.T) {
	u := &UserMemory{}
	dest := make([]byte, 8)
	s, err := u.CopyStrFromUser(dest, []byte("hi\x00garbage"))
	if err != nil {
		t.Fatalf("CopyStrFromUser() error = %v", err)
	}
	if s != "hi" {
		t.Fatalf("CopyStrFromUser() = %q, want %q", s, "hi")
	}
}

func TestUserMemory_DuplicateUserPath_TooLong(t *testing.T) {
	u := &UserMemory{}
	_, err := u.DuplicateUserPath(make([]byte, 2), []byte("/abc"))
	if !errors.Is(err, ErrTooLong) {
		t.Fatalf("DuplicateUserPath() error = %v, want ErrTooLong", err)
	}
}

func TestUserMemory_DuplicateUserPath_EmptyIsFault(t *testing.T) {
	u := &UserMemory{}
	_, err := u.DuplicateUserPath(make([]byte, 8), []byte("\x00"))
	if !errors.Is(err, ErrFault) {
		t.Fatalf("DuplicateUserPath() error = %v, want ErrFault", err)
	}
}
