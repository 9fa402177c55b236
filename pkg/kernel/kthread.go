package kernel

// procContext is the Go stand-in for the opaque callee-saved register
// context plus trap frame that the assembly switch_to/forkrets pair
// exchange in the original kernel. Rather than emulate a MIPS stack
// layout, a process is backed by one goroutine and "context" reduces
// to a single-slot baton channel: holding the right to run is holding
// the token. This is grounded in the goroutine-per-G handoff channels
// used by the toysched reference material (see DESIGN.md).
type procContext struct {
	token chan struct{}
}

func newProcContext() *procContext {
	return &procContext{token: make(chan struct{})}
}

// switchTo is the Go port of proc_run's low-level half: it hands the
// CPU token to to and parks from until it is handed back. To the
// caller it appears to return once from is resumed — possibly by an
// entirely different, later Schedule() call made by whatever process
// switches back to it, exactly as switch_to "returns" into whichever
// process it was last given to.
func (k *Kernel) switchTo(from, to *Process) {
	to.ctx.token <- struct{}{}
	<-from.ctx.token
}

// spawnKernelThread starts proc's goroutine. It blocks on its own
// token until first dispatched (the Go equivalent of a freshly forked
// thread sitting at forkret until proc_run switches to it), then runs
// fn and finally self-terminates exactly as a kernel_thread trampoline
// calls do_exit on fn's return.
func (k *Kernel) spawnKernelThread(proc *Process, fn ProcFunc, arg any) {
	go func() {
		<-proc.ctx.token
		ret := fn(k, proc, arg)
		k.DoExit(ret)
	}()
}

// spawnIdle starts idleproc's goroutine directly in CPUIdle, with no
// initial token wait: idleproc is current from the moment ProcInit
// constructs it, so nothing ever needs to switch to it for the first
// time.
func (k *Kernel) spawnIdle(proc *Process) {
	go k.CPUIdle(proc)
}
