package kernel

import "runtime"

// WakeupProc moves p to RUNNABLE and, unless it is already current or
// the idle process, enqueues it onto the run queue. Waking an
// already-RUNNABLE process only warns — duplicate wakeups never stack.
func (k *Kernel) WakeupProc(p *Process) {
	k.enterCritical()
	k.wakeupProcLocked(p)
	k.leaveCritical()
}

func (k *Kernel) wakeupProcLocked(p *Process) {
	if p.State == StateZombie {
		k.fatalf("wakeup_proc called on zombie pid %d", p.PID)
	}
	if p.State == StateRunnable {
		k.warnf("wakeup_proc on already-runnable pid %d is a no-op", p.PID)
		return
	}
	p.State = StateRunnable
	p.WaitState = 0
	if p != k.current && p != k.idle {
		k.policy.Enqueue(k.rq, p)
	}
}

// Schedule re-enqueues current if still runnable, picks the next
// process (falling back to idle), and switches the CPU to it. It is
// the Go port of kern/schedule/sched.c's schedule(), adapted so the
// critical section is released before the (genuinely blocking)
// context switch rather than after it returns: unlike the single-hart
// C original, the clock driver here runs on its own goroutine and
// would deadlock against a critical section held across a parked
// process. See DESIGN.md.
func (k *Kernel) Schedule() {
	k.enterCritical()
	cur := k.current
	cur.NeedResched = false
	if cur.State == StateRunnable && cur != k.idle {
		k.policy.Enqueue(k.rq, cur)
	}

	next := k.policy.PickNext(k.rq)
	if next != nil {
		k.policy.Dequeue(k.rq, next)
	} else {
		next = k.idle
	}
	next.Runs++
	k.current = next

	if next == cur {
		k.leaveCritical()
		return
	}
	k.leaveCritical()
	k.switchTo(cur, next)
}

// CPUIdle is the body of idleproc: it never returns, and reschedules
// whenever need_resched is set (by ProcInit at boot, and by every clock
// tick that finds idleproc current).
func (k *Kernel) CPUIdle(self *Process) {
	for {
		if self.NeedResched {
			k.Schedule()
			continue
		}
		// A real CPU would HLT here; a goroutine must at least yield
		// so the clock-tick and worker goroutines can make progress.
		runtime.Gosched()
	}
}
