package accelerator

import (
	"context"
	"fmt"

	"github.com/vk/accelgo/internal/ctxlog"
	"github.com/vk/accelgo/internal/ddp"
	"github.com/vk/accelgo/internal/kwargs"
	"github.com/vk/accelgo/internal/precision"
	"github.com/vk/accelgo/internal/profiler"
)

// Accelerator wires kwargs handlers into the framework collaborators: it
// translates each registered bundle into the sparse overrides its
// collaborator understands and leaves the collaborator's own defaults in
// charge of the rest.
type Accelerator struct {
	mixedPrecision precision.MixedPrecision
	autocast       precision.AutocastStack

	scalerKwargs  *kwargs.GradScalerKwargs
	autocastK     *kwargs.AutocastKwargs
	ddpKwargs     *kwargs.DistributedDataParallelKwargs
	profileKwargs *kwargs.ProfileKwargs
	initPGKwargs  *kwargs.InitProcessGroupKwargs

	scaler *precision.GradScaler
}

// Option configures an Accelerator under construction.
type Option func(*Accelerator) error

// WithMixedPrecision selects the reduced-precision policy ("no", "fp16",
// "bf16").
func WithMixedPrecision(policy string) Option {
	return func(a *Accelerator) error {
		mp, err := precision.ParseMixedPrecision(policy)
		if err != nil {
			return err
		}
		a.mixedPrecision = mp
		return nil
	}
}

// WithKwargsHandlers registers option bundles. At most one bundle per
// variant may be registered; a duplicate is a construction error.
func WithKwargsHandlers(handlers ...kwargs.Handler) Option {
	return func(a *Accelerator) error {
		for _, h := range handlers {
			switch k := h.(type) {
			case kwargs.GradScalerKwargs:
				if a.scalerKwargs != nil {
					return fmt.Errorf("duplicate GradScalerKwargs handler")
				}
				a.scalerKwargs = &k
			case kwargs.AutocastKwargs:
				if a.autocastK != nil {
					return fmt.Errorf("duplicate AutocastKwargs handler")
				}
				a.autocastK = &k
			case kwargs.DistributedDataParallelKwargs:
				if a.ddpKwargs != nil {
					return fmt.Errorf("duplicate DistributedDataParallelKwargs handler")
				}
				a.ddpKwargs = &k
			case kwargs.ProfileKwargs:
				if a.profileKwargs != nil {
					return fmt.Errorf("duplicate ProfileKwargs handler")
				}
				a.profileKwargs = &k
			case kwargs.InitProcessGroupKwargs:
				if a.initPGKwargs != nil {
					return fmt.Errorf("duplicate InitProcessGroupKwargs handler")
				}
				a.initPGKwargs = &k
			default:
				return fmt.Errorf("unsupported kwargs handler type %T", h)
			}
		}
		return nil
	}
}

// New builds an Accelerator. The fp16 gradient scaler is created here, with
// the registered GradScalerKwargs overrides applied, so a misconfigured
// bundle surfaces at construction rather than at first backward pass.
func New(opts ...Option) (*Accelerator, error) {
	a := &Accelerator{mixedPrecision: precision.MixedPrecisionNo}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if a.mixedPrecision == precision.MixedPrecisionFP16 {
		var overrides map[string]any
		if a.scalerKwargs != nil {
			overrides = kwargs.ToKwargs(*a.scalerKwargs)
		}
		scaler, err := precision.NewGradScaler(overrides)
		if err != nil {
			return nil, fmt.Errorf("building grad scaler: %w", err)
		}
		a.scaler = scaler
	}
	return a, nil
}

// MixedPrecision returns the active reduced-precision policy.
func (a *Accelerator) MixedPrecision() precision.MixedPrecision {
	return a.mixedPrecision
}

// Scaler returns the fp16 gradient scaler, nil under other policies.
func (a *Accelerator) Scaler() *precision.GradScaler { return a.scaler }

// Autocast enters an autocast frame using the bundle registered at
// construction (or the defaults) and returns its restore func.
func (a *Accelerator) Autocast() (restore func()) {
	k := kwargs.DefaultAutocastKwargs()
	if a.autocastK != nil {
		k = *a.autocastK
	}
	return a.AutocastWith(k)
}

// AutocastWith enters an autocast frame configured by an explicit bundle,
// overriding the construction-time one for just this frame. Frames nest;
// callers defer the returned restore.
func (a *Accelerator) AutocastWith(k kwargs.AutocastKwargs) (restore func()) {
	return a.autocast.Push(k.Enabled, a.mixedPrecision.DType())
}

// ComputeDType reports the dtype an op would compute in right now, given
// the active autocast frames.
func (a *Accelerator) ComputeDType() precision.DType {
	return a.autocast.ComputeDType()
}

// Prepare wraps a module for distributed training, applying the registered
// DDP bundle's overrides.
func (a *Accelerator) Prepare(ctx context.Context, m ddp.Module) (*ddp.Wrapper, error) {
	var overrides map[string]any
	if a.ddpKwargs != nil {
		overrides = kwargs.ToKwargs(*a.ddpKwargs)
	}
	w, err := ddp.Wrap(m, overrides)
	if err != nil {
		return nil, fmt.Errorf("preparing %s: %w", m.Name, err)
	}
	ctxlog.FromContext(ctx).Debug("module prepared",
		"module", m.Name,
		"bucket_cap_mb", w.BucketCapMB(),
		"find_unused_parameters", w.FindUnusedParameters())
	return w, nil
}

// Profile builds and starts a profiler from the registered ProfileKwargs
// bundle. The returned stop func must be called when the profiled section
// ends; unscheduled profilers flush their single trace there.
func (a *Accelerator) Profile(ctx context.Context) (prof *profiler.Profiler, stop func(), err error) {
	var overrides map[string]any
	if a.profileKwargs != nil {
		overrides = kwargs.ToKwargs(*a.profileKwargs)
	}
	prof, err = profiler.New(overrides)
	if err != nil {
		return nil, nil, fmt.Errorf("building profiler: %w", err)
	}
	prof.Start(ctx)
	return prof, func() { prof.Stop(ctx) }, nil
}
