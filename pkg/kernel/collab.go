package kernel

// Collaborators the core consumes but does not implement: device
// drivers, the address-space manager, the file-descriptor table and
// the binary loader. Concrete, simulation-grade implementations ship
// in mm.go and fs.go so the core is exercisable without a real MMU or
// file system; a real kernel would swap these for the genuine thing
// without touching pkg/kernel.

// kstackHandle is the opaque handle returned by PageAllocator for a
// process's kernel stack.
type kstackHandle struct {
	pages []byte
}

func (h kstackHandle) valid() bool { return h.pages != nil }

// PageAllocator is the page/slab allocator collaborator: alloc_pages,
// free_pages.
type PageAllocator interface {
	AllocPages(n int) ([]byte, error)
	FreePages(buf []byte)
}

// ELFLoader is the binary loader collaborator. Load resolves a
// program name to a kernel-native entry point and a fresh address
// space, standing in for load_icode's ELF parsing — file-system
// semantics and the ELF format are explicit non-goals of this module.
type ELFLoader interface {
	Load(name string, argv []string) (ProcFunc, *AddressSpace, error)
}
