package kernel

import "sync"

// The interrupt gate (C1). In the single-hart original, disabling
// interrupts is sufficient to keep scheduler/timer/process-table
// state consistent because nothing else can run concurrently. Here
// the clock driver genuinely runs on its own goroutine, so the gate
// is backed by a real mutex rather than a flag.
type intrGate struct {
	mu sync.Mutex
}

func (g *intrGate) enterCritical() { g.mu.Lock() }

func (g *intrGate) leaveCritical() { g.mu.Unlock() }

// IntrFlag is returned by SaveAndDisable and consumed by Restore,
// mirroring the C gate's save_and_disable/restore pair. This port has
// no nested-critical-section caller (every entry point balances its
// own enter/leave), so the flag carries no information beyond "call
// Restore exactly once" and is always true.
type IntrFlag bool

// SaveAndDisable enters the critical section and reports that it did
// so, mirroring save_and_disable.
func (k *Kernel) SaveAndDisable() IntrFlag {
	k.enterCritical()
	return true
}

// Restore leaves the critical section entered by SaveAndDisable.
func (k *Kernel) Restore(f IntrFlag) {
	if f {
		k.leaveCritical()
	}
}
