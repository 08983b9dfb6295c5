package kwargs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// mockHandler is a minimal three-field bundle for exercising the diff
// mechanics without a real collaborator.
type mockHandler struct {
	A int
	B bool
	C float64
}

func defaultMockHandler() mockHandler {
	return mockHandler{A: 0, B: false, C: 3.0}
}

func (m mockHandler) Fields() []Field {
	d := defaultMockHandler()
	return []Field{
		{Name: "a", Default: d.A, Value: m.A},
		{Name: "b", Default: d.B, Value: m.B},
		{Name: "c", Default: d.C, Value: m.C},
	}
}

func TestToKwargs_AllDefaultsYieldEmptyMap(t *testing.T) {
	t.Parallel()

	got := ToKwargs(defaultMockHandler())
	require.Empty(t, got)
}

func TestToKwargs_SingleOverride(t *testing.T) {
	t.Parallel()

	m := defaultMockHandler()
	m.A = 2

	got := ToKwargs(m)
	want := map[string]any{"a": 2}
	require.Empty(t, cmp.Diff(want, got))
}

func TestToKwargs_MultipleOverrides(t *testing.T) {
	t.Parallel()

	m := defaultMockHandler()
	m.A = 2
	m.B = true
	require.Empty(t, cmp.Diff(map[string]any{"a": 2, "b": true}, ToKwargs(m)))

	m = defaultMockHandler()
	m.A = 2
	m.C = 2.25
	require.Empty(t, cmp.Diff(map[string]any{"a": 2, "c": 2.25}, ToKwargs(m)))
}

func TestToKwargs_ExplicitDefaultIsExcluded(t *testing.T) {
	t.Parallel()

	// Setting a field to a value equal to its default must not mark it as
	// an override: the diff is equality-based, not assignment-based.
	m := defaultMockHandler()
	m.C = 3.0

	require.Empty(t, ToKwargs(m))
}

func TestToKwargs_IsPure(t *testing.T) {
	t.Parallel()

	m := defaultMockHandler()
	m.B = true

	first := ToKwargs(m)
	second := ToKwargs(m)
	require.Empty(t, cmp.Diff(first, second))
	require.Equal(t, mockHandler{B: true, C: 3.0}, m)
}
