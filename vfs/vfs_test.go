package vfs

import (
	"errors"
	"testing"
)

type stubVOps struct{ tag string }

func (s *stubVOps) Open(path string) (*Handle, error)                     { return &Handle{}, nil }
func (s *stubVOps) Close(h *Handle) error                                 { return nil }
func (s *stubVOps) Read(h *Handle, dest []byte) (int, error)              { return 0, nil }
func (s *stubVOps) Write(h *Handle, src []byte) (int, error)              { return 0, nil }
func (s *stubVOps) Ioctl(h *Handle, request int, arg uintptr) (int, error) { return 0, nil }
func (s *stubVOps) Stat(path string) (Stat, error)                        { return Stat{}, nil }

func TestMountTable_LongestPrefixWins(t *testing.T) {
	mt := NewMountTable()
	root := &stubVOps{tag: "root"}
	sub := &stubVOps{tag: "sub"}
	mt.Add("/", root)
	mt.Add("/mnt/data", sub)

	fs, rel, err := mt.Lookup("/mnt/data/file.txt")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if fs.(*stubVOps).tag != "sub" {
		t.Fatalf("Lookup picked %q, want sub mount", fs.(*stubVOps).tag)
	}
	if rel != "/file.txt" {
		t.Fatalf("Lookup relative = %q, want /file.txt", rel)
	}

	fs, rel, err = mt.Lookup("/elsewhere")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if fs.(*stubVOps).tag != "root" {
		t.Fatalf("Lookup picked %q, want root mount", fs.(*stubVOps).tag)
	}
	if rel != "/elsewhere" {
		t.Fatalf("Lookup relative = %q, want /elsewhere", rel)
	}
}

func TestMountTable_NoMatch(t *testing.T) {
	mt := NewMountTable()
	mt.Add("/mnt", &stubVOps{})

	if _, _, err := mt.Lookup("/other"); !errors.Is(err, ErrNoMount) {
		t.Fatalf("Lookup error = %v, want ErrNoMount", err)
	}
}

func TestHandle_SharedLocksDoNotBlockEachOther(t *testing.T) {
	h := &Handle{}
	h.Shlock()
	defer h.Shunlock()

	done := make(chan struct{})
	go func() {
		h.Shlock()
		h.Shunlock()
		close(done)
	}()
	<-done
}

func TestHandle_ExclusiveLockBlocksShared(t *testing.T) {
	h := &Handle{}
	h.Exlock()

	acquired := make(chan struct{})
	go func() {
		h.Shlock()
		close(acquired)
		h.Shunlock()
	}()

	select {
	case <-acquired:
		t.Fatal("shared lock acquired while exclusive lock was held")
	default:
	}

	h.Exunlock()
	<-acquired
}
