package kwargs

import "github.com/vk/accelgo/internal/profiler"

// ProfileKwargs customizes the profiler built by Accelerator.Profile. A nil
// Schedule means always-on profiling with a single trace at stop.
type ProfileKwargs struct {
	Activities     []string
	Schedule       *profiler.ScheduleOption
	OnTraceReady   profiler.TraceReadyFunc
	RecordShapes   bool
	ProfileMemory  bool
	WithStack      bool
	WithFlops      bool
	OutputTraceDir string
}

// DefaultProfileKwargs returns a bundle holding the profiler defaults.
func DefaultProfileKwargs() ProfileKwargs {
	return ProfileKwargs{}
}

// Fields implements Handler. The callback field diffs on nil-ness only:
// any non-nil callback is an override.
func (k ProfileKwargs) Fields() []Field {
	d := DefaultProfileKwargs()
	return []Field{
		{Name: "activities", Default: d.Activities, Value: k.Activities},
		{Name: "schedule", Default: d.Schedule, Value: k.Schedule},
		{Name: "on_trace_ready", Default: d.OnTraceReady, Value: k.OnTraceReady},
		{Name: "record_shapes", Default: d.RecordShapes, Value: k.RecordShapes},
		{Name: "profile_memory", Default: d.ProfileMemory, Value: k.ProfileMemory},
		{Name: "with_stack", Default: d.WithStack, Value: k.WithStack},
		{Name: "with_flops", Default: d.WithFlops, Value: k.WithFlops},
		{Name: "output_trace_dir", Default: d.OutputTraceDir, Value: k.OutputTraceDir},
	}
}
