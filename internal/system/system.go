// Package system reports host facts used to size worker pools and print run statistics.
package system

import (
	"fmt"
	"runtime"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

const mib = 1 << 20

// DefaultWorkers is the number of physical cores, or logical CPUs when that can't be read
func DefaultWorkers() int {
	n, err := cpu.Counts(false)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}
	return n
}

// ResolveWorkers maps a configured worker count to an effective one, capped by the job count
func ResolveWorkers(configured, jobs int) int {
	n := configured
	if n <= 0 {
		n = DefaultWorkers()
	}
	if jobs > 0 && n > jobs {
		n = jobs
	}
	if n < 1 {
		n = 1
	}
	return n
}

// MemoryStats is a one-line summary of host and process memory
func MemoryStats() string {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	heap := fmt.Sprintf("heap %d MiB, %d GC", ms.HeapAlloc/mib, ms.NumGC)

	vm, err := mem.VirtualMemory()
	if err != nil {
		return heap
	}
	return fmt.Sprintf("%s | host %d/%d MiB (%.1f%%)", heap, vm.Used/mib, vm.Total/mib, vm.UsedPercent)
}

// RaiseFileLimit lifts the soft open-file limit toward target so the server can hold many sessions
func RaiseFileLimit(target uint64, log zerolog.Logger) {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Warn().Err(err).Msg("could not read open file limit")
		return
	}
	if rLimit.Cur >= target {
		return
	}

	rLimit.Cur = target
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}
	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Warn().Err(err).Msg("could not raise open file limit")
		return
	}
	log.Debug().Uint64("limit", rLimit.Cur).Msg("open file limit raised")
}
