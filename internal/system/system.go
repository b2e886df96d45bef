// Package system holds process-level helpers: file descriptor limits
// and hardware-derived defaults.
package system

import (
	"fmt"
	"runtime"
	"syscall"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/sirupsen/logrus"
)

// InitResourceLimits raises the open-file limit so a large input folder
// can be processed with several workers. Failures are logged and
// ignored; the run still works with the inherited limit.
func InitResourceLimits(log *logrus.Logger) {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.WithError(err).Warn("could not read open-file limit")
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.WithError(err).Warn("could not raise open-file limit")
	} else {
		log.WithField("limit", rLimit.Cur).Debug("open-file limit raised")
	}
}

// DefaultWorkers returns the physical core count, falling back to the
// logical count when it cannot be determined.
func DefaultWorkers() int {
	n, err := cpu.Counts(false)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}
	return n
}

// MemorySummary describes available memory for the startup log line.
func MemorySummary() string {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return "memory: unknown"
	}
	return fmt.Sprintf("memory: %.1f GiB free of %.1f GiB",
		float64(vm.Available)/(1<<30), float64(vm.Total)/(1<<30))
}
