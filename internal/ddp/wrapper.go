// Package ddp models the distributed data parallel wrapper's option
// surface: a wrapped module reports the tunables that were applied to it,
// with the framework's documented defaults for everything left untouched.
// The gradient synchronization itself lives in the framework.
package ddp

import "fmt"

// Module is the minimal stand-in for a model handed to Prepare.
type Module struct {
	Name       string
	ParamCount int
}

// Linear returns a module shaped like a dense layer, for tests and
// examples.
func Linear(in, out int) Module {
	return Module{
		Name:       fmt.Sprintf("linear_%dx%d", in, out),
		ParamCount: in*out + out,
	}
}

// Wrapper is a module wrapped for distributed data parallel training.
type Wrapper struct {
	module Module

	dim                  int
	broadcastBuffers     bool
	bucketCapMB          int
	findUnusedParameters bool
	checkReduction       bool
	gradientAsBucketView bool
	staticGraph          bool
}

// Wrap applies a sparse kwargs map on top of the wrapper defaults. Unknown
// keys and wrong value types are construction errors; there is no partially
// wrapped module.
func Wrap(m Module, opts map[string]any) (*Wrapper, error) {
	w := &Wrapper{
		module:           m,
		dim:              0,
		broadcastBuffers: true,
		bucketCapMB:      25,
	}
	for key, val := range opts {
		ok := true
		switch key {
		case "dim":
			w.dim, ok = val.(int)
		case "broadcast_buffers":
			w.broadcastBuffers, ok = val.(bool)
		case "bucket_cap_mb":
			w.bucketCapMB, ok = val.(int)
		case "find_unused_parameters":
			w.findUnusedParameters, ok = val.(bool)
		case "check_reduction":
			w.checkReduction, ok = val.(bool)
		case "gradient_as_bucket_view":
			w.gradientAsBucketView, ok = val.(bool)
		case "static_graph":
			w.staticGraph, ok = val.(bool)
		default:
			return nil, fmt.Errorf("ddp: unknown option %q", key)
		}
		if !ok {
			return nil, fmt.Errorf("ddp: option %q has incompatible type %T", key, val)
		}
	}
	return w, nil
}

// Module returns the wrapped module.
func (w *Wrapper) Module() Module { return w.module }

// Dim returns the applied scatter dimension.
func (w *Wrapper) Dim() int { return w.dim }

// BroadcastBuffers reports whether buffers are broadcast at forward start.
func (w *Wrapper) BroadcastBuffers() bool { return w.broadcastBuffers }

// BucketCapMB returns the applied gradient bucket capacity in megabytes.
func (w *Wrapper) BucketCapMB() int { return w.bucketCapMB }

// BucketBytesCap returns the gradient bucket capacity in bytes.
func (w *Wrapper) BucketBytesCap() int64 { return int64(w.bucketCapMB) * 1024 * 1024 }

// FindUnusedParameters reports whether unused-parameter detection is on.
func (w *Wrapper) FindUnusedParameters() bool { return w.findUnusedParameters }

// CheckReduction reports whether reduction checking is on.
func (w *Wrapper) CheckReduction() bool { return w.checkReduction }

// GradientAsBucketView reports whether gradients alias bucket views.
func (w *Wrapper) GradientAsBucketView() bool { return w.gradientAsBucketView }

// StaticGraph reports whether the wrapper assumes a static graph.
func (w *Wrapper) StaticGraph() bool { return w.staticGraph }
