// Package device reports the host resources relevant to planning a launch:
// CPU topology and memory. It backs the CLI environment report and the
// default process count when a profile leaves NumProcesses unset.
package device

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/vk/accelgo/internal/ctxlog"
)

// Report is a snapshot of the host at launch-planning time.
type Report struct {
	OS           string
	Arch         string
	Hostname     string
	KernelArch   string
	PhysicalCPUs int
	LogicalCPUs  int
	TotalMemory  uint64
	FreeMemory   uint64
}

// Snapshot gathers the host report. Partial failures degrade the report
// instead of failing it: a host where memory stats are unreadable can still
// plan a launch from CPU counts.
func Snapshot(ctx context.Context) Report {
	logger := ctxlog.FromContext(ctx)
	r := Report{OS: runtime.GOOS, Arch: runtime.GOARCH}

	if info, err := host.InfoWithContext(ctx); err == nil {
		r.Hostname = info.Hostname
		r.KernelArch = info.KernelArch
	} else {
		logger.Debug("host info unavailable", "error", err)
	}

	if n, err := cpu.CountsWithContext(ctx, false); err == nil {
		r.PhysicalCPUs = n
	} else {
		logger.Debug("physical cpu count unavailable", "error", err)
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		r.LogicalCPUs = n
	} else {
		logger.Debug("logical cpu count unavailable", "error", err)
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		r.TotalMemory = vm.Total
		r.FreeMemory = vm.Available
	} else {
		logger.Debug("memory stats unavailable", "error", err)
	}

	return r
}

// DefaultNumProcesses is the process count used when nothing configures
// one: the physical core count, falling back to logical, never below 1.
func (r Report) DefaultNumProcesses() int {
	if r.PhysicalCPUs > 0 {
		return r.PhysicalCPUs
	}
	if r.LogicalCPUs > 0 {
		return r.LogicalCPUs
	}
	return 1
}

// String renders the report for the CLI environment command.
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "OS:            %s/%s\n", r.OS, r.Arch)
	if r.Hostname != "" {
		fmt.Fprintf(&b, "Hostname:      %s\n", r.Hostname)
	}
	if r.KernelArch != "" {
		fmt.Fprintf(&b, "Kernel arch:   %s\n", r.KernelArch)
	}
	fmt.Fprintf(&b, "Physical CPUs: %d\n", r.PhysicalCPUs)
	fmt.Fprintf(&b, "Logical CPUs:  %d\n", r.LogicalCPUs)
	fmt.Fprintf(&b, "Total memory:  %s\n", formatBytes(r.TotalMemory))
	fmt.Fprintf(&b, "Free memory:   %s\n", formatBytes(r.FreeMemory))
	return b.String()
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
