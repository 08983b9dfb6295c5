// Package dynamo holds the compiler-backend plugin: a kwargs handler whose
// fields can be populated from ACCELGO_DYNAMO_* environment variables at
// construction time.
package dynamo

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vk/accelgo/internal/kwargs"
)

// EnvPrefix is the fixed prefix for environment-driven plugin fields. The
// uppercase suffix names the field: ACCELGO_DYNAMO_BACKEND sets Backend.
const EnvPrefix = "ACCELGO_DYNAMO_"

// Plugin selects and tunes the dynamo compilation backend. Dynamic is a
// tri-state: nil defers shape-dynamism detection to the framework.
type Plugin struct {
	Backend   string
	Mode      string
	Fullgraph bool
	Dynamic   *bool
	Disable   bool
}

// DefaultPlugin returns a plugin holding the declared defaults. Backend
// "no" means compilation is off.
func DefaultPlugin() Plugin {
	return Plugin{Backend: "no", Mode: "default"}
}

// NewPluginFromEnv builds a plugin from the process environment. Fields
// without a matching variable keep their defaults; malformed boolean values
// fail fast with the offending variable named.
func NewPluginFromEnv() (Plugin, error) {
	p := DefaultPlugin()
	if v, ok := os.LookupEnv(EnvPrefix + "BACKEND"); ok {
		p.Backend = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "MODE"); ok {
		p.Mode = v
	}
	if err := envBool(EnvPrefix+"FULLGRAPH", &p.Fullgraph); err != nil {
		return Plugin{}, err
	}
	if err := envBool(EnvPrefix+"DISABLE", &p.Disable); err != nil {
		return Plugin{}, err
	}
	if v, ok := os.LookupEnv(EnvPrefix + "DYNAMIC"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Plugin{}, fmt.Errorf("dynamo: %s: %q is not a boolean", EnvPrefix+"DYNAMIC", v)
		}
		p.Dynamic = &b
	}
	return p, nil
}

func envBool(name string, dst *bool) error {
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("dynamo: %s: %q is not a boolean", name, v)
	}
	*dst = b
	return nil
}

// Fields implements kwargs.Handler.
func (p Plugin) Fields() []kwargs.Field {
	d := DefaultPlugin()
	return []kwargs.Field{
		{Name: "backend", Default: d.Backend, Value: p.Backend},
		{Name: "mode", Default: d.Mode, Value: p.Mode},
		{Name: "fullgraph", Default: d.Fullgraph, Value: p.Fullgraph},
		{Name: "dynamic", Default: d.Dynamic, Value: p.Dynamic},
		{Name: "disable", Default: d.Disable, Value: p.Disable},
	}
}
