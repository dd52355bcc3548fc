//go:build linux

// Package affinity pins the calling OS thread to a single CPU core, used
// by the server's worker pool to approximate the thread-per-core
// scheduling model: each worker goroutine locks itself to an OS thread
// and pins that thread to one core before it starts serving connections.
package affinity

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// Pin locks the calling goroutine to its current OS thread and restricts
// that thread to core. Callers should invoke this once at the top of a
// long-lived worker goroutine, before doing any other work.
func Pin(core int) error {
	runtime.LockOSThread()

	var set unix.CPUSet
	set.Zero()
	set.Set(core)

	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("affinity: pin to core %d: %w", core, err)
	}
	return nil
}

// NumCPU reports the number of cores available to pin workers to.
func NumCPU() int {
	return runtime.NumCPU()
}
