package kernel

import (
	"testing"

	"github.com/aligator/kfat/vfs"
)

func TestTask_HandleOutOfRange(t *testing.T) {
	task := NewTask(1, "/")
	if h := task.Handle(-1); h != nil {
		t.Fatalf("Handle(-1) = %v, want nil", h)
	}
	if h := task.Handle(MaxHandles); h != nil {
		t.Fatalf("Handle(MaxHandles) = %v, want nil", h)
	}
}

func TestTask_HandleRoundTrip(t *testing.T) {
	task := NewTask(1, "/")
	want := &vfs.Handle{Path: "/a"}
	task.Handles[3] = want

	if got := task.Handle(3); got != want {
		t.Fatalf("Handle(3) = %v, want %v", got, want)
	}

	task.FreeHandle(3)
	if got := task.Handle(3); got != nil {
		t.Fatalf("Handle(3) after FreeHandle = %v, want nil", got)
	}
}

func TestTask_FreeHandleOutOfRangeIsNoop(t *testing.T) {
	task := NewTask(1, "/")
	task.FreeHandle(-1)
	task.FreeHandle(MaxHandles)
}

func TestArgsCopyBufSize_FitsTwoMaxPaths(t *testing.T) {
	if ArgsCopyBufSize/2 < MaxPath {
		t.Fatalf("ArgsCopyBufSize/2 = %d, want >= MaxPath (%d)", ArgsCopyBufSize/2, MaxPath)
	}
}
