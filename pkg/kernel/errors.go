package kernel

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by kernel operations. Wrap with fmt.Errorf
// and %w when a call site needs to add context; compare with errors.Is.
var (
	// ErrNoFreeProc means the process table is at MaxProcess, or no
	// PID is free below MaxPID.
	ErrNoFreeProc = errors.New("no free process slot")
	// ErrNoMem means a simulated allocation (kernel stack, mm, fs)
	// failed.
	ErrNoMem = errors.New("out of memory")
	// ErrInval means a caller-supplied argument is malformed (a bad
	// argv, an out-of-range PID, a nil required collaborator).
	ErrInval = errors.New("invalid argument")
	// ErrInvalELF means the ELFLoader rejected a program image.
	ErrInvalELF = errors.New("invalid executable image")
	// ErrBadProc means an operation targeted a PID that does not name
	// a live process (or, for DoWait, not a child of the caller), or a
	// file descriptor that is not open in an FDTable.
	ErrBadProc = errors.New("no such process")
	// ErrKilled means the operation's process was killed and the
	// result should be discarded rather than trusted.
	ErrKilled = errors.New("process was killed")
)

// fatalf logs an unrecoverable kernel condition and panics. It is used
// only for conditions that are impossible to recover from: idleproc or
// initproc exiting, schedule returning into do_exit, a double-unlock,
// or an invariant violation.
func (k *Kernel) fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	k.logger.Error(msg)
	panic(msg)
}

func (k *Kernel) warnf(format string, args ...any) {
	k.logger.Warn(fmt.Sprintf(format, args...))
}
