package accelerator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/accelgo/internal/ddp"
	"github.com/vk/accelgo/internal/kwargs"
	"github.com/vk/accelgo/internal/precision"
	"github.com/vk/accelgo/internal/profiler"
)

func TestNew_GradScalerKwargsApplied(t *testing.T) {
	t.Parallel()

	scalerHandler := kwargs.DefaultGradScalerKwargs()
	scalerHandler.InitScale = 1024
	scalerHandler.GrowthFactor = 2 // equal to the default, must not override

	acc, err := New(
		WithMixedPrecision("fp16"),
		WithKwargsHandlers(scalerHandler),
	)
	require.NoError(t, err)
	require.Equal(t, precision.MixedPrecisionFP16, acc.MixedPrecision())

	scaler := acc.Scaler()
	require.NotNil(t, scaler)

	// The overridden tunable is applied.
	require.Equal(t, 1024.0, scaler.InitScale())

	// Everything else keeps the scaler's own defaults.
	require.Equal(t, 2.0, scaler.GrowthFactor())
	require.Equal(t, 0.5, scaler.BackoffFactor())
	require.Equal(t, 2000, scaler.GrowthInterval())
	require.True(t, scaler.Enabled())
}

func TestNew_NoScalerOutsideFP16(t *testing.T) {
	t.Parallel()

	acc, err := New(WithMixedPrecision("bf16"))
	require.NoError(t, err)
	require.Nil(t, acc.Scaler())
}

func TestNew_RejectsDuplicateHandlers(t *testing.T) {
	t.Parallel()

	_, err := New(WithKwargsHandlers(
		kwargs.DefaultDistributedDataParallelKwargs(),
		kwargs.DefaultDistributedDataParallelKwargs(),
	))
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate")
}

func TestNew_RejectsUnknownPolicy(t *testing.T) {
	t.Parallel()

	_, err := New(WithMixedPrecision("fp8"))
	require.Error(t, err)
}

func TestAutocast_NestedOverride(t *testing.T) {
	t.Parallel()

	disabled := kwargs.DefaultAutocastKwargs()
	disabled.Enabled = false

	acc, err := New(WithMixedPrecision("fp16"))
	require.NoError(t, err)

	restore := acc.Autocast()
	require.Equal(t, precision.Float16, acc.ComputeDType())

	// A disabled inner frame upcasts back to full precision.
	restoreInner := acc.AutocastWith(disabled)
	require.Equal(t, precision.Float32, acc.ComputeDType())
	restoreInner()

	// Back in fp16 after the inner frame exits.
	require.Equal(t, precision.Float16, acc.ComputeDType())
	restore()

	require.Equal(t, precision.Float32, acc.ComputeDType())
}

func TestPrepare_DDPKwargsApplied(t *testing.T) {
	t.Parallel()

	ddpHandler := kwargs.DefaultDistributedDataParallelKwargs()
	ddpHandler.BucketCapMB = 15
	ddpHandler.FindUnusedParameters = true

	acc, err := New(WithKwargsHandlers(ddpHandler))
	require.NoError(t, err)

	w, err := acc.Prepare(context.Background(), ddp.Linear(100, 200))
	require.NoError(t, err)

	require.Equal(t, int64(15*1024*1024), w.BucketBytesCap())
	require.True(t, w.FindUnusedParameters())
	require.Equal(t, 0, w.Dim())
	require.True(t, w.BroadcastBuffers())
	require.False(t, w.GradientAsBucketView())
}

func TestProfile_ScheduleDrivesTraceReady(t *testing.T) {
	t.Parallel()

	count := 0
	profileHandler := kwargs.DefaultProfileKwargs()
	profileHandler.Activities = []string{"cpu"}
	profileHandler.Schedule = &profiler.ScheduleOption{Wait: 1, Warmup: 1, Active: 2, Repeat: 1}
	profileHandler.OnTraceReady = func(p *profiler.Profiler) { count++ }

	acc, err := New(WithKwargsHandlers(profileHandler))
	require.NoError(t, err)

	prof, stop, err := acc.Profile(context.Background())
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		prof.Step()
	}
	stop()

	// steps_per_cycle=4, cycles=25, capped by repeat=1.
	require.Equal(t, 1, count)
	require.Equal(t, []string{"cpu"}, prof.Activities())
}

func TestProfile_DefaultsWhenNoHandlerRegistered(t *testing.T) {
	t.Parallel()

	acc, err := New()
	require.NoError(t, err)

	prof, stop, err := acc.Profile(context.Background())
	require.NoError(t, err)
	prof.Step()
	stop()

	require.Equal(t, []string{"cpu"}, prof.Activities())
}
