package profiler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScheduleOption_ActionSequence(t *testing.T) {
	t.Parallel()

	s := ScheduleOption{Wait: 1, Warmup: 1, Active: 2, Repeat: 1}

	want := []Action{
		ActionNone,          // wait
		ActionWarmup,        // warmup
		ActionRecord,        // active
		ActionRecordAndSave, // last active step closes the cycle
		ActionNone,          // repeat budget exhausted
		ActionNone,
	}
	for step, expected := range want {
		require.Equalf(t, expected, s.actionAt(step), "step %d", step)
	}
}

func TestScheduleOption_SkipFirstShiftsCycles(t *testing.T) {
	t.Parallel()

	s := ScheduleOption{Wait: 0, Warmup: 1, Active: 1, SkipFirst: 2}

	require.Equal(t, ActionNone, s.actionAt(0))
	require.Equal(t, ActionNone, s.actionAt(1))
	require.Equal(t, ActionWarmup, s.actionAt(2))
	require.Equal(t, ActionRecordAndSave, s.actionAt(3))
	require.Equal(t, ActionWarmup, s.actionAt(4))
	require.Equal(t, ActionRecordAndSave, s.actionAt(5))
}

func TestScheduleOption_UnlimitedRepeat(t *testing.T) {
	t.Parallel()

	s := ScheduleOption{Wait: 1, Warmup: 0, Active: 1, Repeat: 0}

	// Cycles keep coming for as long as steps do.
	for cycle := 0; cycle < 10; cycle++ {
		require.Equal(t, ActionNone, s.actionAt(cycle*2))
		require.Equal(t, ActionRecordAndSave, s.actionAt(cycle*2+1))
	}
}

func TestScheduleOption_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, ScheduleOption{Wait: 1, Warmup: 1, Active: 2, Repeat: 1}.Validate())
	require.Error(t, ScheduleOption{Active: 0}.Validate(), "a cycle without active steps records nothing")
	require.Error(t, ScheduleOption{Wait: -1, Active: 1}.Validate())
	require.Error(t, ScheduleOption{Active: 1, SkipFirst: -3}.Validate())
}

func TestAction_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "none", ActionNone.String())
	require.Equal(t, "record_and_save", ActionRecordAndSave.String())
}
