package kernel

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the kernel's tunables as a struct, rather than
// compile-time constants, so the demo driver can load them from a
// YAML file and override them with flags.
type Config struct {
	MaxPID        PID           `yaml:"max_pid"`
	MaxProcess    int           `yaml:"max_process"`
	KStackPages   int           `yaml:"kstack_pages"`
	KStackSize    int           `yaml:"kstack_size"`
	ProcNameLen   int           `yaml:"proc_name_len"`
	ExecMaxArgNum int           `yaml:"exec_max_arg_num"`
	ExecMaxArgLen int           `yaml:"exec_max_arg_len"`
	MaxTimeSlice  int           `yaml:"max_time_slice"`
	TimerInterval time.Duration `yaml:"timer_interval"`

	// CalleeSaveBytes has no effect here: switchTo is a channel
	// handoff, not a real stack swap, so there is nothing to reserve.
	// Kept as a documented, unused tunable so the field stays visible
	// to a reader; defaults to 0.
	CalleeSaveBytes int `yaml:"callee_save_bytes"`
}

// DefaultConfig returns the kernel's tunables scaled to sensible
// defaults for a demonstration run rather than real hardware.
func DefaultConfig() Config {
	return Config{
		MaxPID:          1 << 16,
		MaxProcess:      4096,
		KStackPages:     2,
		KStackSize:      2 * 4096,
		ProcNameLen:     15,
		ExecMaxArgNum:   16,
		ExecMaxArgLen:   4096,
		MaxTimeSlice:    5,
		TimerInterval:   10 * time.Millisecond,
		CalleeSaveBytes: 0,
	}
}

// LoadConfig reads a YAML file over DefaultConfig, so a config file
// only needs to mention the fields it overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
