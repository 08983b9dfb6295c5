package kwargs

import "time"

// InitProcessGroupKwargs customizes distributed process group setup.
type InitProcessGroupKwargs struct {
	Backend    string
	InitMethod string
	Timeout    time.Duration
}

// DefaultInitProcessGroupKwargs returns a bundle holding the process group
// defaults.
func DefaultInitProcessGroupKwargs() InitProcessGroupKwargs {
	return InitProcessGroupKwargs{
		Backend:    "gloo",
		InitMethod: "env://",
		Timeout:    30 * time.Minute,
	}
}

// Fields implements Handler.
func (k InitProcessGroupKwargs) Fields() []Field {
	d := DefaultInitProcessGroupKwargs()
	return []Field{
		{Name: "backend", Default: d.Backend, Value: k.Backend},
		{Name: "init_method", Default: d.InitMethod, Value: k.InitMethod},
		{Name: "timeout", Default: d.Timeout, Value: k.Timeout},
	}
}
