package kernel

// semGrantFlag is the wakeup flag up() reports to a waiter it hands
// the slot to. A waiter resumed with any other flag (in practice,
// zero — the default a direct WakeupProc from DoKill leaves behind)
// was not granted the semaphore and must treat the wake as an
// interruption.
const semGrantFlag uint32 = 1

// Semaphore is a counting semaphore built on WaitQueue, the Go
// equivalent of semaphore_t plus sem_init/up/down/try_down.
type Semaphore struct {
	value int
	wq    *WaitQueue
}

// NewSemaphore returns a semaphore initialized to value, mirroring
// sem_init.
func NewSemaphore(value int) *Semaphore {
	return &Semaphore{value: value, wq: newWaitQueue()}
}

// TryDown attempts to acquire without blocking.
func (s *Semaphore) TryDown(k *Kernel) bool {
	k.enterCritical()
	defer k.leaveCritical()
	if s.value > 0 {
		s.value--
		return true
	}
	return false
}

// Down acquires the semaphore, blocking proc (which must be current)
// if it is not immediately available. Returns ErrKilled if the block
// was cut short by DoKill rather than by being granted the slot.
func (s *Semaphore) Down(k *Kernel, proc *Process) error {
	k.enterCritical()
	if s.value > 0 {
		s.value--
		k.leaveCritical()
		return nil
	}
	w := &Waiter{Proc: proc}
	proc.State = StateSleeping
	proc.WaitState = WTInterrupted
	s.wq.Add(w)
	k.leaveCritical()

	k.Schedule()

	k.enterCritical()
	s.wq.Del(w)
	k.leaveCritical()

	if w.WakeupFlags != semGrantFlag {
		return ErrKilled
	}
	return nil
}

// Up releases the semaphore, handing it directly to the longest-
// waiting blocked process if one exists rather than incrementing
// value, mirroring up()'s wait_queue_first/wakeup_wait path.
func (s *Semaphore) Up(k *Kernel) {
	k.enterCritical()
	w := s.wq.First()
	if w == nil {
		s.value++
		k.leaveCritical()
		return
	}
	w.WakeupFlags = semGrantFlag
	s.wq.Del(w)
	k.leaveCritical()
	k.WakeupProc(w.Proc)
}
