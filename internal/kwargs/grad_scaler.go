package kwargs

// GradScalerKwargs customizes the gradient scaler used for fp16 mixed
// precision. Field names and defaults mirror the framework scaler's own
// constructor so overrides pass through untranslated.
type GradScalerKwargs struct {
	InitScale      float64
	GrowthFactor   float64
	BackoffFactor  float64
	GrowthInterval int
	Enabled        bool
}

// DefaultGradScalerKwargs returns a bundle holding the scaler's documented
// defaults. Callers mutate the fields they want to override.
func DefaultGradScalerKwargs() GradScalerKwargs {
	return GradScalerKwargs{
		InitScale:      65536,
		GrowthFactor:   2.0,
		BackoffFactor:  0.5,
		GrowthInterval: 2000,
		Enabled:        true,
	}
}

// Fields implements Handler.
func (k GradScalerKwargs) Fields() []Field {
	d := DefaultGradScalerKwargs()
	return []Field{
		{Name: "init_scale", Default: d.InitScale, Value: k.InitScale},
		{Name: "growth_factor", Default: d.GrowthFactor, Value: k.GrowthFactor},
		{Name: "backoff_factor", Default: d.BackoffFactor, Value: k.BackoffFactor},
		{Name: "growth_interval", Default: d.GrowthInterval, Value: k.GrowthInterval},
		{Name: "enabled", Default: d.Enabled, Value: k.Enabled},
	}
}
