package profiles

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/vk/accelgo/internal/kwargs"
)

// DecodeFunc turns the body of a `handler "<kind>"` block into a populated
// kwargs handler. Decoders start from the variant's defaults and apply only
// the attributes present in the block.
type DecodeFunc func(body hcl.Body) (kwargs.Handler, error)

// Registry maps handler block kinds to their decoders. A single registry
// backs one loader; tests can register extra kinds without touching the
// builtins.
type Registry struct {
	decoders map[string]DecodeFunc
}

// NewRegistry returns a registry with the built-in handler kinds
// registered.
func NewRegistry() *Registry {
	r := &Registry{decoders: make(map[string]DecodeFunc)}
	r.Register("grad_scaler", decodeGradScaler)
	r.Register("autocast", decodeAutocast)
	r.Register("ddp", decodeDDP)
	r.Register("profile", decodeProfile)
	r.Register("init_process_group", decodeInitProcessGroup)
	return r
}

// Register adds a decoder for a handler kind. Registering the same kind
// twice is a programmer error.
func (r *Registry) Register(kind string, fn DecodeFunc) {
	if _, exists := r.decoders[kind]; exists {
		panic(fmt.Sprintf("handler decoder for kind %q already registered", kind))
	}
	r.decoders[kind] = fn
}

// Decode dispatches a handler block to its kind's decoder.
func (r *Registry) Decode(kind string, body hcl.Body) (kwargs.Handler, error) {
	fn, ok := r.decoders[kind]
	if !ok {
		return nil, fmt.Errorf("unknown handler kind %q", kind)
	}
	h, err := fn(body)
	if err != nil {
		return nil, fmt.Errorf("handler %q: %w", kind, err)
	}
	return h, nil
}

// Kinds returns the registered handler kinds, for error messages and docs.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.decoders))
	for k := range r.decoders {
		kinds = append(kinds, k)
	}
	return kinds
}
