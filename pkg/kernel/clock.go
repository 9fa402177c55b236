package kernel

// ClockTick is the clock interrupt handler (kern/driver/clock.c's
// clock_int_handler). It is meant to be invoked periodically by an
// external driver — cmd/gokernel runs one on a time.Ticker at
// Config.TimerInterval — standing in for the hardware timer reloading
// its compare register. Unlike the original single-hart target, this
// call can race a genuinely concurrent process goroutine, so it
// establishes the critical section itself.
func (k *Kernel) ClockTick() {
	k.enterCritical()
	k.ticks++
	k.runTimerList()
	k.leaveCritical()
}

// Ticks returns the number of clock ticks delivered since boot.
func (k *Kernel) Ticks() uint64 {
	k.enterCritical()
	defer k.leaveCritical()
	return k.ticks
}
