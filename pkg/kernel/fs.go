package kernel

import "sync"

// fileStatus mirrors struct file's status enum in kern/fs/file.h.
type fileStatus uint8

const (
	fileClosed fileStatus = iota
	fileOpened
)

// file is the Go equivalent of struct file: a refcounted open handle
// into the in-memory VFS stand-in below.
type file struct {
	status    fileStatus
	pos       int64
	openCount Counter
	data      *memInode
}

// memInode is the non-goal-scoped in-memory stand-in for a real
// file system's inode; it exists only so FDTable has something to
// open/read/write/seek/close against.
type memInode struct {
	mu   sync.Mutex
	name string
	buf  []byte
}

// FDTable is the Go equivalent of fs_struct: a refcounted, per-process
// table of open files, grounded on kern/fs/file.h.
type FDTable struct {
	mu    sync.Mutex
	count Counter
	files map[int]*file
	vfs   map[string]*memInode
	next  int
}

// NewFDTable returns a fresh, empty file-descriptor table with a
// refcount of 1, mirroring fs_create.
func NewFDTable() *FDTable {
	t := &FDTable{files: map[int]*file{}, vfs: map[string]*memInode{}}
	t.count.Set(1)
	return t
}

func (t *FDTable) incRef() int64 { return t.count.AddReturn(1) }

func (t *FDTable) decRef() int64 { return t.count.SubReturn(1) }

// dupFDTable deep-copies from's open files into a new table,
// mirroring dup_fs when CLONE_FS is not requested.
func dupFDTable(from *FDTable) *FDTable {
	to := NewFDTable()
	from.mu.Lock()
	defer from.mu.Unlock()
	for fd, f := range from.files {
		nf := *f
		to.files[fd] = &nf
		if fd >= to.next {
			to.next = fd + 1
		}
	}
	for name, inode := range from.vfs {
		to.vfs[name] = inode
	}
	return to
}

// Open creates or opens name for reading/writing and returns its fd,
// mirroring sysfile_open.
func (t *FDTable) Open(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	inode, ok := t.vfs[name]
	if !ok {
		inode = &memInode{name: name}
		t.vfs[name] = inode
	}
	fd := t.next
	t.next++
	t.files[fd] = &file{status: fileOpened, data: inode}
	t.files[fd].openCount.Set(1)
	return fd
}

// Read copies up to len(buf) bytes from fd's current position,
// mirroring sysfile_read.
func (t *FDTable) Read(fd int, buf []byte) (int, error) {
	t.mu.Lock()
	f, ok := t.files[fd]
	t.mu.Unlock()
	if !ok || f.status != fileOpened {
		return 0, ErrBadProc
	}
	f.data.mu.Lock()
	defer f.data.mu.Unlock()
	n := copy(buf, f.data.buf[minInt(int(f.pos), len(f.data.buf)):])
	f.pos += int64(n)
	return n, nil
}

// Write appends b at fd's current position, mirroring sysfile_write.
func (t *FDTable) Write(fd int, b []byte) (int, error) {
	t.mu.Lock()
	f, ok := t.files[fd]
	t.mu.Unlock()
	if !ok || f.status != fileOpened {
		return 0, ErrBadProc
	}
	f.data.mu.Lock()
	defer f.data.mu.Unlock()
	f.data.buf = append(f.data.buf, b...)
	f.pos += int64(len(b))
	return len(b), nil
}

// Seek repositions fd, mirroring sysfile_seek.
func (t *FDTable) Seek(fd int, pos int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	f, ok := t.files[fd]
	if !ok {
		return ErrBadProc
	}
	f.pos = pos
	return nil
}

// Close marks fd closed, mirroring sysfile_close.
func (t *FDTable) Close(fd int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	f, ok := t.files[fd]
	if !ok {
		return ErrBadProc
	}
	f.status = fileClosed
	delete(t.files, fd)
	return nil
}

// CloseAll closes every open descriptor, mirroring fs_closeall (called
// by do_exit/do_execve).
func (t *FDTable) CloseAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for fd, f := range t.files {
		f.status = fileClosed
		delete(t.files, fd)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
