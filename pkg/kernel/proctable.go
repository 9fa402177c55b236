package kernel

// allocProc allocates a zeroed, PID-less process record, mirroring
// alloc_proc: state UNINIT, cr3 pointing at the boot page table,
// fresh context, empty name. Callers must still assign a PID and
// insert it into the table before the process is visible to anything
// else.
func (k *Kernel) allocProc() *Process {
	return &Process{
		PID:   -1,
		State: StateUninit,
		CR3:   k.bootCR3,
		ctx:   newProcContext(),
	}
}

// FindProc is an O(1) lookup by PID: the table is a Go map rather
// than a hand-rolled hash bucket array.
func (k *Kernel) FindProc(pid PID) *Process {
	k.enterCritical()
	defer k.leaveCritical()
	return k.procs[pid]
}

// NrProcess returns the number of live process records.
func (k *Kernel) NrProcess() int {
	k.enterCritical()
	defer k.leaveCritical()
	return len(k.procs)
}

// allocPID returns a PID not currently owned by any live process. It
// uses an amortized-O(1)-with-occasional-rescan scheme: on a rescan,
// nextSafe is tightened to the smallest live PID strictly above
// lastPID, rather than reset all the way back to MaxPID. Callers must
// hold the critical section.
func (k *Kernel) allocPID() (PID, error) {
	for attempts := 0; attempts < int(k.cfg.MaxPID)+1; attempts++ {
		k.lastPID++
		if k.lastPID >= k.cfg.MaxPID {
			k.lastPID = 1
		}
		if k.lastPID >= k.nextSafe {
			k.nextSafe = k.cfg.MaxPID
			taken := false
			for pid := range k.procs {
				if pid == k.lastPID {
					taken = true
				} else if pid > k.lastPID && pid < k.nextSafe {
					k.nextSafe = pid
				}
			}
			if taken {
				continue
			}
		} else if _, exists := k.procs[k.lastPID]; exists {
			continue
		}
		return k.lastPID, nil
	}
	return 0, ErrNoFreeProc
}

// insertProc adds p to the process table under pid, mirroring
// hash_proc plus the global-list insertion. Callers must hold the
// critical section.
func (k *Kernel) insertProc(pid PID, p *Process) {
	p.PID = pid
	k.procs[pid] = p
}

// removeProc removes pid from the process table, mirroring unhash.
// Callers must hold the critical section.
func (k *Kernel) removeProc(pid PID) {
	delete(k.procs, pid)
}
