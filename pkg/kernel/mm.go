package kernel

// VMA is a minimal virtual memory area: [Start, End) with rwx Flags.
// The real paging/page-fault machinery vmm.h builds on top of this is
// an explicit non-goal; this struct exists only so AddressSpace has
// something concrete to refcount, lock and duplicate.
type VMA struct {
	Start, End uintptr
	Flags      uint32
}

const (
	VMRead uint32 = 1 << iota
	VMWrite
	VMExec
	VMStack
)

// AddressSpace is the Go equivalent of mm_struct: a refcounted,
// lockable set of mappings shared by every thread cloned with
// CLONE_VM and deep-copied otherwise.
type AddressSpace struct {
	mmap     []VMA
	count    Counter
	sem      *Semaphore
	lockedBy PID
	pgdir    uintptr
}

// NewAddressSpace returns a fresh address space with a refcount of 1,
// mirroring mm_create.
func NewAddressSpace() *AddressSpace {
	mm := &AddressSpace{sem: NewSemaphore(1)}
	mm.count.Set(1)
	return mm
}

func (mm *AddressSpace) Count() int64 { return mm.count.Read() }

func (mm *AddressSpace) incRef() int64 { return mm.count.AddReturn(1) }

func (mm *AddressSpace) decRef() int64 { return mm.count.SubReturn(1) }

// LockMM acquires mm.sem and records the locking process, mirroring
// lock_mm. A nil mm is a documented no-op, matching the original's
// null-check.
func LockMM(k *Kernel, mm *AddressSpace, self *Process) {
	if mm == nil {
		return
	}
	_ = mm.sem.Down(k, self)
	mm.lockedBy = self.PID
}

// UnlockMM releases mm.sem, mirroring unlock_mm.
func UnlockMM(k *Kernel, mm *AddressSpace) {
	if mm == nil {
		return
	}
	mm.sem.Up(k)
	mm.lockedBy = 0
}

// dupMmap deep-copies from's mappings into to, mirroring dup_mmap used
// by do_fork when CLONE_VM is not set.
func dupMmap(to, from *AddressSpace) {
	to.mmap = append(to.mmap[:0:0], from.mmap...)
}

// exitMmap clears a address space's mappings, mirroring exit_mmap;
// called once mm.count reaches zero.
func exitMmap(mm *AddressSpace) {
	mm.mmap = nil
}
