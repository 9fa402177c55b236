package kernel

// Waiter binds a blocked process to its membership in a WaitQueue,
// the Go equivalent of wait_t in kern/sync/wait.c. WakeupFlags
// records why the process was woken, mirroring the original field;
// Semaphore.Down reads it to tell a granted slot from an interruption.
type Waiter struct {
	Proc        *Process
	WakeupFlags uint32
	elem        *dlistElem[*Waiter]
}

// WaitQueue is a FIFO of blocked processes, the Go equivalent of
// wait_queue_t.
type WaitQueue struct {
	list *dlist[*Waiter]
}

func newWaitQueue() *WaitQueue {
	return &WaitQueue{list: newDList[*Waiter]()}
}

// Add links w into the queue. Callers must hold the kernel's critical
// section: wait queue membership is shared state.
func (q *WaitQueue) Add(w *Waiter) { w.elem = q.list.PushBack(w) }

// Del unlinks w. It is a no-op if w is not currently queued.
func (q *WaitQueue) Del(w *Waiter) { q.list.Remove(w.elem) }

func (q *WaitQueue) Empty() bool { return q.list.Empty() }

func (q *WaitQueue) Len() int { return q.list.Len() }

// First returns the head waiter without removing it, or nil.
func (q *WaitQueue) First() *Waiter {
	if e := q.list.Front(); e != nil {
		return e.Value
	}
	return nil
}

// WakeupFirst wakes the head waiter with the given reported flag,
// removing it from the queue when del is true, mirroring wakeup_first.
func (q *WaitQueue) WakeupFirst(k *Kernel, flag uint32, del bool) *Waiter {
	w := q.First()
	if w == nil {
		return nil
	}
	w.WakeupFlags = flag
	if del {
		q.Del(w)
	}
	k.WakeupProc(w.Proc)
	return w
}

// WakeupAll wakes every waiter currently queued with the given
// reported flag, removing each from the queue when del is true,
// mirroring wakeup_queue.
func (q *WaitQueue) WakeupAll(k *Kernel, flag uint32, del bool) {
	var all []*Waiter
	q.list.Each(func(w *Waiter) { all = append(all, w) })
	for _, w := range all {
		w.WakeupFlags = flag
		if del {
			q.Del(w)
		}
		k.WakeupProc(w.Proc)
	}
}
