package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// assertInvariants checks the structural invariants that must hold
// whenever no process holds the critical section: every process in
// the table is reachable by exactly the state its fields claim, the
// parent/sibling tree is consistent in both directions, and idleproc
// is never itself a table entry. No test in this package calls it.
func assertInvariants(t *testing.T, k *Kernel) {
	t.Helper()
	k.enterCritical()
	defer k.leaveCritical()

	for pid, p := range k.procs {
		assert.Equal(t, pid, p.PID, "process table key must match its own PID")
		assert.NotSame(t, k.idle, p, "idleproc must never be a table entry")

		if p.Parent != nil {
			found := false
			for c := p.Parent.Cptr; c != nil; c = c.Optr {
				if c == p {
					found = true
					break
				}
			}
			assert.True(t, found, "pid %d must be reachable from its parent's Cptr/Optr chain", pid)
		}

		if p.Yptr != nil {
			assert.Same(t, p, p.Yptr.Optr, "pid %d's younger sibling must point back", pid)
		}
		if p.Optr != nil {
			assert.Same(t, p, p.Optr.Yptr, "pid %d's older sibling must point back", pid)
		} else if p.Parent != nil {
			assert.Same(t, p, p.Parent.Cptr, "pid %d with no older sibling must be its parent's Cptr", pid)
		}

		switch p.State {
		case StateRunnable:
			assert.True(t, p == k.current || p.runElem != nil, "runnable pid %d must be current or on the run queue", pid)
		case StateZombie:
			assert.Nil(t, p.runElem, "zombie pid %d must not be on the run queue", pid)
		}
	}
}
