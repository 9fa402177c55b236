package kernel

import (
	"testing"
	"time"
)

// testTimeout bounds how long driveClock waits for a done signal
// before declaring the test hung rather than blocking forever.
const testTimeout = 2 * time.Second

// fakeELFLoader is the ELFLoader collaborator test double: programs
// are registered as plain Go closures rather than parsed from an
// image, same idea as ProgramRegistry but without its own locking so
// tests can register programs before the kernel ever starts.
type fakeELFLoader struct {
	programs map[string]ProcFunc
}

func newFakeELFLoader() *fakeELFLoader {
	return &fakeELFLoader{programs: map[string]ProcFunc{}}
}

func (f *fakeELFLoader) register(name string, fn ProcFunc) {
	f.programs[name] = fn
}

func (f *fakeELFLoader) Load(name string, argv []string) (ProcFunc, *AddressSpace, error) {
	fn, ok := f.programs[name]
	if !ok {
		return nil, nil, ErrInvalELF
	}
	return fn, NewAddressSpace(), nil
}

// testConfig returns a Config scaled down for fast, deterministic
// tests: a small process table and a short max time slice so
// round-robin behavior is observable in a handful of ticks.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxPID = 64
	cfg.MaxProcess = 32
	cfg.KStackPages = 2
	cfg.MaxTimeSlice = 3
	cfg.TimerInterval = time.Millisecond
	return cfg
}

// newTestKernel builds a Kernel with a SlabPageAllocator sized for
// testConfig and the given ELFLoader (a fakeELFLoader when nil).
func newTestKernel(t *testing.T, loader ELFLoader) (*Kernel, Config) {
	t.Helper()
	cfg := testConfig()
	pages := NewSlabPageAllocator(cfg.MaxProcess*cfg.KStackPages, 4096)
	if loader == nil {
		loader = newFakeELFLoader()
	}
	return New(cfg, pages, loader, nil), cfg
}

// bootKernel runs ProcInit with initMain and returns the kernel plus
// a done channel initMain is expected to close once it has reaped
// every child, the same boot shape cmd/gokernel/main.go uses.
func bootKernel(t *testing.T, initMain ProcFunc) (*Kernel, chan struct{}) {
	t.Helper()
	k, _ := newTestKernel(t, nil)
	done := make(chan struct{})
	wrapped := func(k *Kernel, self *Process, arg any) int {
		initMain(k, self, arg)
		close(done)
		select {}
	}
	if err := k.ProcInit(wrapped); err != nil {
		t.Fatalf("ProcInit: %v", err)
	}
	return k, done
}

// driveClock runs a background ticker against k until done fires or
// the timeout elapses, mirroring cmd/gokernel/main.go's own ticker
// goroutine. It returns whether done fired before the timeout.
func driveClock(k *Kernel, done <-chan struct{}, timeout time.Duration) bool {
	ticker := time.NewTicker(200 * time.Microsecond)
	defer ticker.Stop()
	deadline := time.After(timeout)
	for {
		select {
		case <-done:
			return true
		case <-deadline:
			return false
		case <-ticker.C:
			k.ClockTick()
		}
	}
}
