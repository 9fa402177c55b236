package kernel

import (
	"io"
	"log/slog"
)

// Kernel holds all scheduling state as an explicit value rather than a
// set of process-wide globals: every entry point is a method on *Kernel
// rather than touching package-level state, so multiple independent
// kernels can exist (useful for tests) without aliasing.
type Kernel struct {
	intrGate

	cfg    Config
	logger *slog.Logger

	procs             map[PID]*Process
	current, idle, init *Process
	rq                *runQueue
	policy            SchedClass
	timers            *dlist[*Timer]
	lastPID, nextSafe PID
	ticks             uint64
	bootCR3           uintptr

	pageAlloc PageAllocator
	elfLoader ELFLoader
}

// New constructs a Kernel. A nil logger discards kernel log output
// (slog.New(slog.NewTextHandler(io.Discard, nil))), so callers always
// have a usable *slog.Logger in hand rather than nil-checking at every
// call site.
func New(cfg Config, pageAlloc PageAllocator, elfLoader ELFLoader, logger *slog.Logger) *Kernel {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	k := &Kernel{
		cfg:       cfg,
		logger:    logger,
		procs:     map[PID]*Process{},
		rq:        newRunQueue(cfg.MaxTimeSlice),
		policy:    roundRobin{},
		timers:    newDList[*Timer](),
		nextSafe:  cfg.MaxPID,
		pageAlloc: pageAlloc,
		elfLoader: elfLoader,
	}
	k.policy.Init(k.rq)
	return k
}

// ProcInit constructs idleproc (PID 0) and forks initproc (PID 1)
// running initMain. It must be called exactly once, before any clock
// tick is delivered and before any other goroutine touches the Kernel.
func (k *Kernel) ProcInit(initMain ProcFunc) error {
	idle := &Process{
		PID:         0,
		Name:        "idle",
		State:       StateRunnable,
		CR3:         k.bootCR3,
		ctx:         newProcContext(),
		FS:          NewFDTable(),
		NeedResched: true,
	}
	k.idle = idle
	k.current = idle

	pid, err := k.DoFork(CloneFS, initMain, nil)
	if err != nil {
		return err
	}
	k.init = k.procs[pid]

	k.spawnIdle(idle)
	return nil
}

// AssertQuiescent checks the two-process end state init_main asserts
// after its reap loop drains: only idleproc and initproc remain, and
// initproc has no children of its own left unreaped.
func (k *Kernel) AssertQuiescent() {
	k.enterCritical()
	defer k.leaveCritical()
	if len(k.procs) != 1 {
		k.fatalf("expected only initproc to remain, found %d live processes", len(k.procs))
	}
	if k.init.Cptr != nil {
		k.fatalf("initproc still has unreaped children")
	}
}

// Current returns the process currently holding the CPU. It is meant
// for tests and diagnostics, not for kernel-thread bodies, which
// already know themselves as the self argument of their ProcFunc.
func (k *Kernel) Current() *Process {
	k.enterCritical()
	defer k.leaveCritical()
	return k.current
}
