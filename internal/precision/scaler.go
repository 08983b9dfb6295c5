package precision

import "fmt"

// GradScaler stands in for the framework's fp16 gradient scaler. It owns
// its defaults and accepts sparse overrides at construction; the scaling
// arithmetic itself belongs to the framework and is not modelled here.
type GradScaler struct {
	initScale      float64
	growthFactor   float64
	backoffFactor  float64
	growthInterval int
	enabled        bool
}

// NewGradScaler builds a scaler from a sparse kwargs map. Keys not present
// keep the scaler's own defaults; unknown keys and wrong value types are
// construction errors.
func NewGradScaler(opts map[string]any) (*GradScaler, error) {
	s := &GradScaler{
		initScale:      65536,
		growthFactor:   2.0,
		backoffFactor:  0.5,
		growthInterval: 2000,
		enabled:        true,
	}
	for key, val := range opts {
		ok := true
		switch key {
		case "init_scale":
			s.initScale, ok = val.(float64)
		case "growth_factor":
			s.growthFactor, ok = val.(float64)
		case "backoff_factor":
			s.backoffFactor, ok = val.(float64)
		case "growth_interval":
			s.growthInterval, ok = val.(int)
		case "enabled":
			s.enabled, ok = val.(bool)
		default:
			return nil, fmt.Errorf("grad scaler: unknown option %q", key)
		}
		if !ok {
			return nil, fmt.Errorf("grad scaler: option %q has incompatible type %T", key, val)
		}
	}
	return s, nil
}

// InitScale returns the applied starting scale.
func (s *GradScaler) InitScale() float64 { return s.initScale }

// GrowthFactor returns the applied scale growth factor.
func (s *GradScaler) GrowthFactor() float64 { return s.growthFactor }

// BackoffFactor returns the applied scale backoff factor.
func (s *GradScaler) BackoffFactor() float64 { return s.backoffFactor }

// GrowthInterval returns the applied growth interval in steps.
func (s *GradScaler) GrowthInterval() int { return s.growthInterval }

// Enabled reports whether scaling is active.
func (s *GradScaler) Enabled() bool { return s.enabled }
