package kernel

// Timer is the Go equivalent of timer_t: a pending wake for Proc,
// expressed as an offset from the timer immediately before it in the
// kernel's delta list so that advancing time costs O(1) per tick.
type Timer struct {
	Expires uint32
	Proc    *Process
	elem    *dlistElem[*Timer]
}

// addTimer inserts t into the delta list, preserving every other
// timer's absolute firing tick. Callers must already hold the
// critical section, mirroring add_timer being called from within one
// in do_sleep.
func (k *Kernel) addTimer(t *Timer) {
	var acc uint32
	for e := k.timers.Front(); e != nil; e = e.Next() {
		node := e.Value
		if acc+node.Expires > t.Expires {
			delta := t.Expires - acc
			node.Expires -= delta
			t.Expires = delta
			t.elem = k.timers.InsertBefore(t, e)
			return
		}
		acc += node.Expires
	}
	t.Expires -= acc
	t.elem = k.timers.PushBack(t)
}

// delTimer removes t from the delta list, folding its remaining
// offset into its successor so later timers still fire at their
// original absolute tick. It is a no-op if t is not currently linked
// (idempotent, as do_sleep's post-wake cleanup requires). Callers
// must already hold the critical section.
func (k *Kernel) delTimer(t *Timer) {
	if t.elem == nil {
		return
	}
	if t.Expires > 0 {
		if next := t.elem.Next(); next != nil {
			next.Value.Expires += t.Expires
		}
	}
	k.timers.Remove(t.elem)
	t.elem = nil
}

// runTimerList decrements the head timer, fires every timer whose
// expiry has reached zero, and then ticks the scheduling policy for
// the current process — the body of the clock tick handler's timer
// half (kern/schedule/sched.c's run_timer_list). Callers must already
// hold the critical section (ClockTick establishes it).
func (k *Kernel) runTimerList() {
	if e := k.timers.Front(); e != nil {
		e.Value.Expires--
		for {
			e := k.timers.Front()
			if e == nil || e.Value.Expires != 0 {
				break
			}
			t := e.Value
			k.timers.Remove(e)
			t.elem = nil
			if t.Proc.WaitState&WTTimer == 0 {
				k.warnf("timer fired on proc %d that was not sleeping on a timer", t.Proc.PID)
			}
			k.wakeupProcLocked(t.Proc)
		}
	}
	if k.current != nil {
		if k.current == k.idle {
			// idleproc is never enqueued, so the policy has nothing
			// to decrement; it simply asks to be rescheduled.
			k.current.NeedResched = true
		} else {
			k.policy.ProcTick(k.rq, k.current)
		}
	}
}
