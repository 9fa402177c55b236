package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcStateString(t *testing.T) {
	cases := map[ProcState]string{
		StateUninit:   "UNINIT",
		StateRunnable: "RUNNABLE",
		StateSleeping: "SLEEPING",
		StateZombie:   "ZOMBIE",
		ProcState(99): "UNKNOWN",
	}
	for state, want := range cases {
		assert.Equal(t, want, state.String())
	}
}
