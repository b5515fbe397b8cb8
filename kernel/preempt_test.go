package kernel

import "testing"

func TestDisablePreemption_BlocksConcurrentAcquire(t *testing.T) {
	DisablePreemption()

	acquired := make(chan struct{})
	go func() {
		DisablePreemption()
		close(acquired)
		EnablePreemption()
	}()

	select {
	case <-acquired:
		t.Fatal("second DisablePreemption() acquired the gate while it was held")
	default:
	}

	EnablePreemption()
	<-acquired
}
