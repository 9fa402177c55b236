package kernel

import "fmt"

// CloneFlags selects what a child shares with its parent in DoFork,
// mirroring the CLONE_VM/CLONE_FS flags do_fork interprets.
type CloneFlags uint32

const (
	CloneVM CloneFlags = 1 << iota
	CloneFS
)

// exitCodeKilled is reported by a process that self-terminates
// because it observed PF_EXITING on return from an interrupted block
// — the Go spelling of the original's "-KILLED".
const exitCodeKilled = -1

// DoFork creates a new process sharing or copying the parent's
// address space and file table according to flags, and schedules it
// to run fn(arg) once dispatched. There is no separate
// parent_tf/user_sp: this module has no real user-mode trap frame, so
// "what the child resumes running" is expressed directly as a
// ProcFunc rather than a manufactured register snapshot — the
// Go-native reading of kernel_thread's "caller manufactures a trap
// frame containing (fn, arg)".
func (k *Kernel) DoFork(flags CloneFlags, fn ProcFunc, arg any) (PID, error) {
	k.enterCritical()
	full := len(k.procs) >= k.cfg.MaxProcess
	k.leaveCritical()
	if full {
		return 0, ErrNoFreeProc
	}

	parent := k.current
	child := k.allocProc()
	child.SetName(parent.Name, k.cfg.ProcNameLen)

	pages, err := k.pageAlloc.AllocPages(k.cfg.KStackPages)
	if err != nil {
		return 0, fmt.Errorf("do_fork: acquire kstack: %w", ErrNoMem)
	}
	child.KStack = kstackHandle{pages: pages}

	if parent.FS != nil {
		if flags&CloneFS != 0 {
			parent.FS.incRef()
			child.FS = parent.FS
		} else {
			child.FS = dupFDTable(parent.FS)
		}
	}

	if parent.MM != nil {
		if flags&CloneVM != 0 {
			parent.MM.incRef()
			child.MM = parent.MM
		} else {
			mm := NewAddressSpace()
			LockMM(k, parent.MM, parent)
			dupMmap(mm, parent.MM)
			UnlockMM(k, parent.MM)
			child.MM = mm
		}
	}

	k.enterCritical()
	pid, err := k.allocPID()
	if err != nil {
		k.leaveCritical()
		k.unwindFork(child, flags)
		return 0, err
	}
	k.insertProc(pid, child)
	child.setLinks(parent)
	k.wakeupProcLocked(child)
	k.leaveCritical()

	k.spawnKernelThread(child, fn, arg)
	return pid, nil
}

// unwindFork releases exactly what DoFork had already acquired for
// child before the failure, in reverse order — a cascading-cleanup
// discipline expressed as ordered statements instead of goto labels.
func (k *Kernel) unwindFork(child *Process, flags CloneFlags) {
	if child.MM != nil {
		if flags&CloneVM != 0 {
			child.MM.decRef()
		} else if child.MM.decRef() == 0 {
			exitMmap(child.MM)
		}
	}
	if child.FS != nil {
		if flags&CloneFS != 0 {
			child.FS.decRef()
		} else if child.FS.decRef() == 0 {
			child.FS.CloseAll()
		}
	}
	if child.KStack.valid() {
		k.pageAlloc.FreePages(child.KStack.pages)
	}
}

// DoExit tears down the calling process's resources, reparents its
// children to initproc, wakes whoever is waiting on it, and
// reschedules. It never returns: reaching past Schedule is a fatal
// kernel assertion, exactly as in the original.
func (k *Kernel) DoExit(code int) int {
	self := k.current
	if self == k.idle || self == k.init {
		k.fatalf("idleproc or initproc attempted to exit")
	}

	if self.MM != nil {
		if self.MM.decRef() == 0 {
			exitMmap(self.MM)
		}
		self.MM = nil
	}
	if self.FS != nil {
		if self.FS.decRef() == 0 {
			self.FS.CloseAll()
		}
		self.FS = nil
	}

	self.State = StateZombie
	self.ExitCode = code

	k.enterCritical()
	if p := self.Parent; p != nil && p.State == StateSleeping && p.WaitState&WTChild != 0 {
		k.wakeupProcLocked(p)
	}
	self.eachChild(func(c *Process) {
		c.removeLinks()
		c.setLinks(k.init)
		if c.State == StateZombie && k.init.State == StateSleeping && k.init.WaitState&WTChild != 0 {
			k.wakeupProcLocked(k.init)
		}
	})
	k.leaveCritical()

	k.Schedule()
	k.fatalf("schedule returned past do_exit for pid %d", self.PID)
	return 0
}

// DoWait blocks until the child named by pid (or, if pid is zero, any
// child) has exited, reaps it, and reports its exit code through out
// when out is non-nil.
func (k *Kernel) DoWait(pid PID, out *int) error {
	self := k.current
	for {
		k.enterCritical()

		var zombie *Process
		haveCandidate := false
		if pid != 0 {
			target := k.procs[pid]
			if target == nil || target.Parent != self {
				k.leaveCritical()
				return ErrBadProc
			}
			haveCandidate = true
			if target.State == StateZombie {
				zombie = target
			}
		} else {
			self.eachChild(func(c *Process) {
				haveCandidate = true
				if zombie == nil && c.State == StateZombie {
					zombie = c
				}
			})
		}

		if zombie != nil {
			if out != nil {
				*out = zombie.ExitCode
			}
			k.removeProc(zombie.PID)
			zombie.removeLinks()
			k.leaveCritical()
			k.pageAlloc.FreePages(zombie.KStack.pages)
			return nil
		}

		if !haveCandidate {
			k.leaveCritical()
			return ErrBadProc
		}

		self.State = StateSleeping
		self.WaitState = WTChild
		k.leaveCritical()
		k.Schedule()

		if self.Flags&PFExiting != 0 {
			k.DoExit(exitCodeKilled)
		}
	}
}

// DoKill marks pid as exiting and, if it is blocked on an
// interruptible wait, wakes it so it can observe the flag. Killing an
// already-exiting process fails with ErrKilled.
func (k *Kernel) DoKill(pid PID) error {
	k.enterCritical()
	defer k.leaveCritical()

	p := k.procs[pid]
	if p == nil {
		return ErrBadProc
	}
	if p.Flags&PFExiting != 0 {
		return ErrKilled
	}
	p.Flags |= PFExiting
	if p.State == StateSleeping && p.WaitState&WTInterrupted != 0 {
		k.wakeupProcLocked(p)
	}
	return nil
}

// DoYield hints that current should give up the CPU. The actual
// reschedule happens the next time the caller reaches SafePoint.
func (k *Kernel) DoYield() {
	k.current.NeedResched = true
}

// SafePoint reschedules if need_resched is set, the Go stand-in for
// the "next safe point" (trap return) that a real kernel checks
// between kernel-thread work units.
func (k *Kernel) SafePoint() {
	if k.current.NeedResched {
		k.Schedule()
	}
}

// DoSleep blocks current for the given number of ticks.
func (k *Kernel) DoSleep(ticks uint32) {
	self := k.current

	k.enterCritical()
	t := &Timer{Proc: self, Expires: ticks}
	self.State = StateSleeping
	self.WaitState = WTTimer
	k.addTimer(t)
	k.leaveCritical()

	k.Schedule()

	k.enterCritical()
	k.delTimer(t)
	k.leaveCritical()
}
