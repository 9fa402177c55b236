package kernel

// SchedClass is the run-queue policy vtable, encoded as a Go
// interface rather than a struct of function pointers so a second
// policy can be dropped in behind runQueue without touching the
// scheduler core.
type SchedClass interface {
	Init(rq *runQueue)
	Enqueue(rq *runQueue, p *Process)
	Dequeue(rq *runQueue, p *Process)
	PickNext(rq *runQueue) *Process
	ProcTick(rq *runQueue, p *Process)
}

// runQueue is the Go equivalent of struct run_queue.
type runQueue struct {
	list         *dlist[*Process]
	procNum      int
	maxTimeSlice int
}

func newRunQueue(maxTimeSlice int) *runQueue {
	return &runQueue{list: newDList[*Process](), maxTimeSlice: maxTimeSlice}
}

// roundRobin is the default SchedClass, ported from
// kern/schedule/default_sched.c.
type roundRobin struct{}

func (roundRobin) Init(rq *runQueue) {
	rq.list = newDList[*Process]()
	rq.procNum = 0
}

func (roundRobin) Enqueue(rq *runQueue, p *Process) {
	if p.TimeSlice == 0 || p.TimeSlice > rq.maxTimeSlice {
		p.TimeSlice = rq.maxTimeSlice
	}
	p.runElem = rq.list.PushBack(p)
	rq.procNum++
}

func (roundRobin) Dequeue(rq *runQueue, p *Process) {
	rq.list.Remove(p.runElem)
	p.runElem = nil
	rq.procNum--
}

func (roundRobin) PickNext(rq *runQueue) *Process {
	if e := rq.list.Front(); e != nil {
		return e.Value
	}
	return nil
}

func (roundRobin) ProcTick(rq *runQueue, p *Process) {
	p.TimeSlice--
	if p.TimeSlice <= 0 {
		p.NeedResched = true
	}
}
