package dynamo

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/vk/accelgo/internal/envscope"
	"github.com/vk/accelgo/internal/kwargs"
)

func TestNewPluginFromEnv_Overrides(t *testing.T) {
	func() {
		scope := envscope.Clear()
		defer scope.Restore()

		require.NoError(t, scope.Set(EnvPrefix+"BACKEND", "aot_ts_nvfuser"))
		require.NoError(t, scope.Set(EnvPrefix+"MODE", "reduce-overhead"))

		plugin, err := NewPluginFromEnv()
		require.NoError(t, err)

		want := map[string]any{"backend": "aot_ts_nvfuser", "mode": "reduce-overhead"}
		require.Empty(t, cmp.Diff(want, kwargs.ToKwargs(plugin)))
	}()

	// The scoped overlay must not leak past its block.
	require.NotEqual(t, "aot_ts_nvfuser", os.Getenv(EnvPrefix+"BACKEND"))
}

func TestNewPluginFromEnv_DefaultsWhenUnset(t *testing.T) {
	scope := envscope.Clear()
	defer scope.Restore()

	plugin, err := NewPluginFromEnv()
	require.NoError(t, err)
	require.Equal(t, DefaultPlugin(), plugin)
	require.Empty(t, kwargs.ToKwargs(plugin))
}

func TestNewPluginFromEnv_BooleanFields(t *testing.T) {
	scope := envscope.Clear()
	defer scope.Restore()

	require.NoError(t, scope.Set(EnvPrefix+"FULLGRAPH", "true"))
	require.NoError(t, scope.Set(EnvPrefix+"DYNAMIC", "false"))

	plugin, err := NewPluginFromEnv()
	require.NoError(t, err)
	require.True(t, plugin.Fullgraph)
	require.NotNil(t, plugin.Dynamic)
	require.False(t, *plugin.Dynamic)

	got := kwargs.ToKwargs(plugin)
	require.Contains(t, got, "fullgraph")
	require.Contains(t, got, "dynamic")
	require.NotContains(t, got, "backend")
}

func TestNewPluginFromEnv_MalformedBooleanFailsFast(t *testing.T) {
	scope := envscope.Clear()
	defer scope.Restore()

	require.NoError(t, scope.Set(EnvPrefix+"FULLGRAPH", "yes please"))

	_, err := NewPluginFromEnv()
	require.Error(t, err)
	require.Contains(t, err.Error(), EnvPrefix+"FULLGRAPH")
}
