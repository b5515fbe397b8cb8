package kernel

import "sync"

// preemptionGate is the process-global cooperative-yield gate spec.md §5
// describes: held around handle-table slot allocation/release, CWD-
// dependent path canonicalization, and the VFS open/close dispatch. It is
// deliberately coarse and non-reentrant, the same shape as the teacher's
// own Fs.lock sync.Mutex (fs.go) guarding its sector cache. Design Notes §9
// already earmarks this as convertible to a per-process lock without
// changing the external contract; that replacement isn't undertaken here
// since this module has no multi-process scheduler to make the difference
// observable.
var preemptionGate sync.Mutex

// DisablePreemption and EnablePreemption are a matched, non-nesting pair.
func DisablePreemption() { preemptionGate.Lock() }

// EnablePreemption releases the gate acquired by DisablePreemption.
func EnablePreemption() { preemptionGate.Unlock() }
