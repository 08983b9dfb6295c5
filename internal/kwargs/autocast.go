package kwargs

// AutocastKwargs customizes an autocast frame pushed by the accelerator.
// CacheEnabled is a tri-state: nil leaves the framework's weight-cache
// behavior untouched.
type AutocastKwargs struct {
	Enabled      bool
	CacheEnabled *bool
}

// DefaultAutocastKwargs returns a bundle holding the autocast defaults.
func DefaultAutocastKwargs() AutocastKwargs {
	return AutocastKwargs{Enabled: true}
}

// Fields implements Handler.
func (k AutocastKwargs) Fields() []Field {
	d := DefaultAutocastKwargs()
	return []Field{
		{Name: "enabled", Default: d.Enabled, Value: k.Enabled},
		{Name: "cache_enabled", Default: d.CacheEnabled, Value: k.CacheEnabled},
	}
}
