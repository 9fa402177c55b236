// Package kernel implements the process lifecycle and preemptive
// scheduling core of a small teaching kernel: process table and PID
// allocation, a pluggable run-queue policy, wait queues and
// semaphores, a delta-list timer subsystem, and the fork/exit/wait/
// kill/yield/sleep/execve operations that drive them.
//
// The package mirrors the layout of a single-hart kernel's process,
// schedule and sync translation units, collapsed into one Go package
// because the state they share (the run queue, the timer list, the
// process table, the currently running process) is too tightly
// coupled to split across import-cyclic subpackages — the same reason
// the Go runtime itself keeps proc.go, lock_sema.go and sema.go in one
// "runtime" package rather than several.
//
// Device drivers, the address-space/VM manager, the file descriptor
// table and the binary loader are not implemented here: they are
// consumed through the PageAllocator and ELFLoader interfaces in
// collab.go and the AddressSpace and FDTable types in mm.go and fs.go.
package kernel
