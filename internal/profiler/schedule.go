package profiler

import "fmt"

// Action is what the schedule tells the profiler to do at a given step.
type Action int

const (
	// ActionNone: stay idle for this step.
	ActionNone Action = iota
	// ActionWarmup: run the profiling machinery without keeping results.
	ActionWarmup
	// ActionRecord: record this step into the current trace.
	ActionRecord
	// ActionRecordAndSave: record this step, then close the cycle and hand
	// the trace to the trace-ready callback.
	ActionRecordAndSave
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionWarmup:
		return "warmup"
	case ActionRecord:
		return "record"
	case ActionRecordAndSave:
		return "record_and_save"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ScheduleOption describes the cyclical profiling window: skip SkipFirst
// steps once, then repeat [Wait idle, Warmup, Active recording] cycles.
// Repeat == 0 means cycle until the run ends.
type ScheduleOption struct {
	Wait      int
	Warmup    int
	Active    int
	Repeat    int
	SkipFirst int
}

// Validate checks that the schedule describes at least one recordable step
// per cycle and carries no negative phase lengths.
func (s ScheduleOption) Validate() error {
	if s.Wait < 0 || s.Warmup < 0 || s.Active < 1 || s.Repeat < 0 || s.SkipFirst < 0 {
		return fmt.Errorf("invalid profiler schedule (wait=%d warmup=%d active=%d repeat=%d skip_first=%d): wait/warmup/repeat/skip_first must be >= 0 and active >= 1",
			s.Wait, s.Warmup, s.Active, s.Repeat, s.SkipFirst)
	}
	return nil
}

// stepsPerCycle is the length of one wait/warmup/active cycle.
func (s ScheduleOption) stepsPerCycle() int {
	return s.Wait + s.Warmup + s.Active
}

// actionAt maps a zero-based step counter to the action for that step.
func (s ScheduleOption) actionAt(step int) Action {
	if step < s.SkipFirst {
		return ActionNone
	}
	step -= s.SkipFirst

	cycle := s.stepsPerCycle()
	if s.Repeat > 0 && step/cycle >= s.Repeat {
		return ActionNone
	}

	pos := step % cycle
	switch {
	case pos < s.Wait:
		return ActionNone
	case pos < s.Wait+s.Warmup:
		return ActionWarmup
	case pos < cycle-1:
		return ActionRecord
	default:
		return ActionRecordAndSave
	}
}
