//go:build !linux

package affinity

import "runtime"

// Pin is a no-op on platforms without sched_setaffinity; the worker still
// runs, just without a pinned core.
func Pin(core int) error {
	return nil
}

// NumCPU reports the number of cores available to pin workers to.
func NumCPU() int {
	return runtime.NumCPU()
}
