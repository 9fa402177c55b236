package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundRobinEnqueueDequeueFIFO(t *testing.T) {
	rq := newRunQueue(3)
	var rr roundRobin
	rr.Init(rq)

	p1 := &Process{PID: 1}
	p2 := &Process{PID: 2}
	p3 := &Process{PID: 3}
	rr.Enqueue(rq, p1)
	rr.Enqueue(rq, p2)
	rr.Enqueue(rq, p3)

	require.Equal(t, 3, rq.procNum)

	assert.Same(t, p1, rr.PickNext(rq))
	rr.Dequeue(rq, p1)
	assert.Same(t, p2, rr.PickNext(rq))
	rr.Dequeue(rq, p2)
	assert.Same(t, p3, rr.PickNext(rq))
	rr.Dequeue(rq, p3)
	assert.Equal(t, 0, rq.procNum)
	assert.Nil(t, rr.PickNext(rq))
}

func TestRoundRobinEnqueueAssignsTimeSlice(t *testing.T) {
	rq := newRunQueue(5)
	var rr roundRobin
	rr.Init(rq)

	p := &Process{PID: 1}
	rr.Enqueue(rq, p)
	assert.Equal(t, 5, p.TimeSlice, "a fresh process must be given the full time slice")
}

func TestRoundRobinEnqueuePreservesInRangeTimeSlice(t *testing.T) {
	rq := newRunQueue(5)
	var rr roundRobin
	rr.Init(rq)

	p := &Process{PID: 1, TimeSlice: 2}
	rr.Enqueue(rq, p)
	assert.Equal(t, 2, p.TimeSlice, "a process re-enqueued mid-slice must keep its remaining slice")
}

func TestRoundRobinEnqueueClampsOversizedTimeSlice(t *testing.T) {
	rq := newRunQueue(5)
	var rr roundRobin
	rr.Init(rq)

	p := &Process{PID: 1, TimeSlice: 99}
	rr.Enqueue(rq, p)
	assert.Equal(t, 5, p.TimeSlice)
}

func TestRoundRobinProcTickDecrementsAndFlagsResched(t *testing.T) {
	rq := newRunQueue(2)
	var rr roundRobin
	rr.Init(rq)

	p := &Process{PID: 1, TimeSlice: 2}
	rr.ProcTick(rq, p)
	assert.Equal(t, 1, p.TimeSlice)
	assert.False(t, p.NeedResched)

	rr.ProcTick(rq, p)
	assert.Equal(t, 0, p.TimeSlice)
	assert.True(t, p.NeedResched, "time slice reaching zero must request a reschedule")
}
