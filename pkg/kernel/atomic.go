package kernel

import "sync/atomic"

// Counter is the Go equivalent of atomic_t: a machine-word counter
// safe to read, set, and add to without a surrounding critical
// section, used for mm/fs refcounts (mm_count, fs_count).
type Counter struct {
	v atomic.Int64
}

func (c *Counter) Read() int64 { return c.v.Load() }

func (c *Counter) Set(val int64) { c.v.Store(val) }

// AddReturn adds delta and returns the new value, mirroring
// atomic_add_return.
func (c *Counter) AddReturn(delta int64) int64 { return c.v.Add(delta) }

// SubReturn subtracts delta and returns the new value, mirroring
// atomic_sub_return.
func (c *Counter) SubReturn(delta int64) int64 { return c.v.Add(-delta) }
