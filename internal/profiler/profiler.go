package profiler

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vk/accelgo/internal/ctxlog"
)

// TraceReadyFunc is invoked each time a profiling cycle completes, with the
// profiler holding the captured data for that cycle.
type TraceReadyFunc func(p *Profiler)

// Profiler measures step timings according to a cyclical schedule and hands
// completed traces to a trace-ready callback. It is an option-driven
// collaborator: construct it with the sparse kwargs produced by a
// ProfileKwargs bundle and it keeps its own defaults for everything else.
//
// Not goroutine-safe; a profiler belongs to one training loop.
type Profiler struct {
	activities     []string
	schedule       *ScheduleOption
	onTraceReady   TraceReadyFunc
	recordShapes   bool
	profileMemory  bool
	withStack      bool
	withFlops      bool
	outputTraceDir string

	step       int
	traceCount int
	running    bool
	lastMark   time.Time

	// per-trace aggregates, keyed by event name, insertion-ordered
	events map[string]*eventStats
	order  []string
}

type eventStats struct {
	count int
	total time.Duration
}

// New builds a profiler from a sparse kwargs map. Unknown keys and
// incompatible value types are construction errors; absent keys keep the
// profiler's defaults.
func New(opts map[string]any) (*Profiler, error) {
	p := &Profiler{
		activities: []string{"cpu"},
		events:     make(map[string]*eventStats),
	}
	for key, val := range opts {
		ok := true
		switch key {
		case "activities":
			p.activities, ok = val.([]string)
		case "schedule":
			p.schedule, ok = val.(*ScheduleOption)
		case "on_trace_ready":
			p.onTraceReady, ok = val.(TraceReadyFunc)
		case "record_shapes":
			p.recordShapes, ok = val.(bool)
		case "profile_memory":
			p.profileMemory, ok = val.(bool)
		case "with_stack":
			p.withStack, ok = val.(bool)
		case "with_flops":
			p.withFlops, ok = val.(bool)
		case "output_trace_dir":
			p.outputTraceDir, ok = val.(string)
		default:
			return nil, fmt.Errorf("profiler: unknown option %q", key)
		}
		if !ok {
			return nil, fmt.Errorf("profiler: option %q has incompatible type %T", key, val)
		}
	}
	if p.schedule != nil {
		if err := p.schedule.Validate(); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Activities returns the activity set this profiler was configured with.
func (p *Profiler) Activities() []string { return p.activities }

// TraceCount returns how many times the trace-ready callback has fired.
func (p *Profiler) TraceCount() int { return p.traceCount }

// Start begins profiling. Step timing is measured from here.
func (p *Profiler) Start(ctx context.Context) {
	ctxlog.FromContext(ctx).Debug("profiler started",
		"activities", p.activities, "scheduled", p.schedule != nil)
	p.running = true
	p.lastMark = time.Now()
}

// Step closes the current schedule step. Time elapsed since the previous
// Step (or Start) is attributed to the step when the schedule says to
// record; completing a cycle's active phase flushes the trace to the
// trace-ready callback.
func (p *Profiler) Step() {
	if !p.running {
		return
	}
	elapsed := time.Since(p.lastMark)
	p.lastMark = time.Now()

	action := ActionRecord
	if p.schedule != nil {
		action = p.schedule.actionAt(p.step)
	}
	p.step++

	switch action {
	case ActionRecord, ActionRecordAndSave:
		p.record("profiler_step", elapsed)
	}
	if action == ActionRecordAndSave {
		p.flush()
	}
}

// Record times fn and attributes it to name when the profiler is currently
// inside a recording step. fn always runs.
func (p *Profiler) Record(name string, fn func()) {
	start := time.Now()
	fn()
	if !p.running {
		return
	}
	action := ActionRecord
	if p.schedule != nil {
		action = p.schedule.actionAt(p.step)
	}
	if action == ActionRecord || action == ActionRecordAndSave {
		p.record(name, time.Since(start))
	}
}

// Stop ends profiling. In unscheduled mode the whole run is one cycle, so
// the pending trace is flushed here.
func (p *Profiler) Stop(ctx context.Context) {
	if !p.running {
		return
	}
	p.running = false
	if p.schedule == nil && len(p.events) > 0 {
		p.flush()
	}
	ctxlog.FromContext(ctx).Debug("profiler stopped",
		"steps", p.step, "traces", p.traceCount)
}

func (p *Profiler) record(name string, d time.Duration) {
	st, ok := p.events[name]
	if !ok {
		st = &eventStats{}
		p.events[name] = st
		p.order = append(p.order, name)
	}
	st.count++
	st.total += d
}

func (p *Profiler) flush() {
	p.traceCount++
	if p.onTraceReady != nil {
		p.onTraceReady(p)
	}
	p.events = make(map[string]*eventStats)
	p.order = nil
}

// KeyAverages returns the aggregated events of the trace currently being
// assembled. Inside a trace-ready callback this is the completed cycle.
func (p *Profiler) KeyAverages() KeyAverages {
	rows := make([]KeyAverage, 0, len(p.order))
	for _, name := range p.order {
		st := p.events[name]
		rows = append(rows, KeyAverage{Name: name, Count: st.count, CPUTimeTotal: st.total})
	}
	return KeyAverages(rows)
}

// KeyAverage is one aggregated event row.
type KeyAverage struct {
	Name         string
	Count        int
	CPUTimeTotal time.Duration
}

// KeyAverages is a renderable collection of aggregated events.
type KeyAverages []KeyAverage

// Table renders the aggregates as a plain-text table, longest total first,
// with a summary footer.
func (ka KeyAverages) Table() string {
	rows := make([]KeyAverage, len(ka))
	copy(rows, ka)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CPUTimeTotal > rows[j].CPUTimeTotal
	})

	var b strings.Builder
	fmt.Fprintf(&b, "%-32s %10s %16s\n", "Name", "Calls", "CPU total")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	var total time.Duration
	for _, r := range rows {
		fmt.Fprintf(&b, "%-32s %10d %16s\n", r.Name, r.Count, r.CPUTimeTotal)
		total += r.CPUTimeTotal
	}
	b.WriteString(strings.Repeat("-", 60) + "\n")
	fmt.Fprintf(&b, "CPU time total: %s\n", total)
	return b.String()
}
