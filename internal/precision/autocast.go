package precision

import "fmt"

// DType is the floating point width an operation computes in.
type DType int

const (
	Float32 DType = iota
	Float16
	BFloat16
)

func (d DType) String() string {
	switch d {
	case Float32:
		return "float32"
	case Float16:
		return "float16"
	case BFloat16:
		return "bfloat16"
	default:
		return fmt.Sprintf("dtype(%d)", int(d))
	}
}

// MixedPrecision names the reduced-precision policy a run was configured
// with.
type MixedPrecision string

const (
	MixedPrecisionNo   MixedPrecision = "no"
	MixedPrecisionFP16 MixedPrecision = "fp16"
	MixedPrecisionBF16 MixedPrecision = "bf16"
)

// ParseMixedPrecision validates a policy string ("" means "no").
func ParseMixedPrecision(s string) (MixedPrecision, error) {
	switch MixedPrecision(s) {
	case "", MixedPrecisionNo:
		return MixedPrecisionNo, nil
	case MixedPrecisionFP16:
		return MixedPrecisionFP16, nil
	case MixedPrecisionBF16:
		return MixedPrecisionBF16, nil
	default:
		return "", fmt.Errorf("unknown mixed precision %q (want no, fp16 or bf16)", s)
	}
}

// DType returns the reduced compute dtype the policy selects.
func (m MixedPrecision) DType() DType {
	switch m {
	case MixedPrecisionFP16:
		return Float16
	case MixedPrecisionBF16:
		return BFloat16
	default:
		return Float32
	}
}

// frame is one autocast override on the stack.
type frame struct {
	enabled bool
	dtype   DType
}

// AutocastStack is an explicit stack of autocast override frames. Each Push
// returns a restore func that pops back to the previous frame; deferring it
// covers both normal and error exits. The bottom of the stack is "autocast
// off", so an empty stack computes in Float32.
//
// Not goroutine-safe; a stack belongs to one accelerator.
type AutocastStack struct {
	frames []frame
}

// Push enters an autocast frame. When enabled is false the frame forces
// full precision even if an enclosing frame reduced it.
func (s *AutocastStack) Push(enabled bool, dtype DType) (restore func()) {
	s.frames = append(s.frames, frame{enabled: enabled, dtype: dtype})
	depth := len(s.frames)
	return func() {
		// Pops must unwind in LIFO order; restoring an inner frame after an
		// outer one already popped is a programmer error.
		if len(s.frames) != depth {
			panic(fmt.Sprintf("autocast: out-of-order restore (depth %d, expected %d)", len(s.frames), depth))
		}
		s.frames = s.frames[:depth-1]
	}
}

// Depth returns the number of active frames.
func (s *AutocastStack) Depth() int { return len(s.frames) }

// ComputeDType reports the dtype an op run right now would compute in: the
// reduced dtype of the innermost frame when that frame is enabled,
// Float32 otherwise.
func (s *AutocastStack) ComputeDType() DType {
	if len(s.frames) == 0 {
		return Float32
	}
	top := s.frames[len(s.frames)-1]
	if !top.enabled {
		return Float32
	}
	return top.dtype
}
