package kwargs

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/vk/accelgo/internal/profiler"
)

func TestVariants_DefaultsYieldEmptyMap(t *testing.T) {
	t.Parallel()

	handlers := []Handler{
		DefaultGradScalerKwargs(),
		DefaultAutocastKwargs(),
		DefaultDistributedDataParallelKwargs(),
		DefaultProfileKwargs(),
		DefaultInitProcessGroupKwargs(),
	}
	for _, h := range handlers {
		require.Emptyf(t, ToKwargs(h), "%T with defaults must yield an empty mapping", h)
	}
}

func TestGradScalerKwargs_Overrides(t *testing.T) {
	t.Parallel()

	k := DefaultGradScalerKwargs()
	k.InitScale = 1024
	k.GrowthFactor = 4.0

	want := map[string]any{"init_scale": 1024.0, "growth_factor": 4.0}
	require.Empty(t, cmp.Diff(want, ToKwargs(k)))
}

func TestAutocastKwargs_Overrides(t *testing.T) {
	t.Parallel()

	k := DefaultAutocastKwargs()
	k.Enabled = false

	require.Empty(t, cmp.Diff(map[string]any{"enabled": false}, ToKwargs(k)))

	cache := true
	k = DefaultAutocastKwargs()
	k.CacheEnabled = &cache

	got := ToKwargs(k)
	require.Len(t, got, 1)
	require.Equal(t, &cache, got["cache_enabled"])
}

func TestDistributedDataParallelKwargs_Overrides(t *testing.T) {
	t.Parallel()

	k := DefaultDistributedDataParallelKwargs()
	k.BucketCapMB = 15
	k.FindUnusedParameters = true

	want := map[string]any{
		"bucket_cap_mb":          15,
		"find_unused_parameters": true,
	}
	require.Empty(t, cmp.Diff(want, ToKwargs(k)))
}

func TestProfileKwargs_Overrides(t *testing.T) {
	t.Parallel()

	k := DefaultProfileKwargs()
	k.Activities = []string{"cpu"}
	k.Schedule = &profiler.ScheduleOption{Wait: 1, Warmup: 1, Active: 2, Repeat: 1}
	k.OnTraceReady = func(p *profiler.Profiler) {}

	got := ToKwargs(k)
	require.Len(t, got, 3)
	require.Equal(t, []string{"cpu"}, got["activities"])
	require.Equal(t, &profiler.ScheduleOption{Wait: 1, Warmup: 1, Active: 2, Repeat: 1}, got["schedule"])
	require.NotNil(t, got["on_trace_ready"])
}

func TestInitProcessGroupKwargs_Overrides(t *testing.T) {
	t.Parallel()

	k := DefaultInitProcessGroupKwargs()
	k.Timeout = time.Minute

	require.Empty(t, cmp.Diff(map[string]any{"timeout": time.Minute}, ToKwargs(k)))
}
