package profiles

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/accelgo/internal/kwargs"
	"github.com/vk/accelgo/internal/profiler"
)

// bodyAttributes evaluates all attributes of a block body to cty values.
// Nested blocks are rejected here, so attribute-only handler kinds report
// them as errors instead of silently dropping them.
func bodyAttributes(body hcl.Body) (map[string]cty.Value, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	out := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("attribute %q: %w", name, diags)
		}
		out[name] = val
	}
	return out, nil
}

// set decodes a single cty value into a Go destination, naming the
// attribute on failure.
func set[T any](name string, val cty.Value, dst *T) error {
	if err := gocty.FromCtyValue(val, dst); err != nil {
		return fmt.Errorf("attribute %q: %w", name, err)
	}
	return nil
}

func decodeGradScaler(body hcl.Body) (kwargs.Handler, error) {
	attrs, err := bodyAttributes(body)
	if err != nil {
		return nil, err
	}
	k := kwargs.DefaultGradScalerKwargs()
	for name, val := range attrs {
		switch name {
		case "init_scale":
			err = set(name, val, &k.InitScale)
		case "growth_factor":
			err = set(name, val, &k.GrowthFactor)
		case "backoff_factor":
			err = set(name, val, &k.BackoffFactor)
		case "growth_interval":
			err = set(name, val, &k.GrowthInterval)
		case "enabled":
			err = set(name, val, &k.Enabled)
		default:
			return nil, fmt.Errorf("unsupported argument %q", name)
		}
		if err != nil {
			return nil, err
		}
	}
	return k, nil
}

func decodeAutocast(body hcl.Body) (kwargs.Handler, error) {
	attrs, err := bodyAttributes(body)
	if err != nil {
		return nil, err
	}
	k := kwargs.DefaultAutocastKwargs()
	for name, val := range attrs {
		switch name {
		case "enabled":
			err = set(name, val, &k.Enabled)
		case "cache_enabled":
			var b bool
			if err = set(name, val, &b); err == nil {
				k.CacheEnabled = &b
			}
		default:
			return nil, fmt.Errorf("unsupported argument %q", name)
		}
		if err != nil {
			return nil, err
		}
	}
	return k, nil
}

func decodeDDP(body hcl.Body) (kwargs.Handler, error) {
	attrs, err := bodyAttributes(body)
	if err != nil {
		return nil, err
	}
	k := kwargs.DefaultDistributedDataParallelKwargs()
	for name, val := range attrs {
		switch name {
		case "dim":
			err = set(name, val, &k.Dim)
		case "broadcast_buffers":
			err = set(name, val, &k.BroadcastBuffers)
		case "bucket_cap_mb":
			err = set(name, val, &k.BucketCapMB)
		case "find_unused_parameters":
			err = set(name, val, &k.FindUnusedParameters)
		case "check_reduction":
			err = set(name, val, &k.CheckReduction)
		case "gradient_as_bucket_view":
			err = set(name, val, &k.GradientAsBucketView)
		case "static_graph":
			err = set(name, val, &k.StaticGraph)
		default:
			return nil, fmt.Errorf("unsupported argument %q", name)
		}
		if err != nil {
			return nil, err
		}
	}
	return k, nil
}

// decodeProfile uses gohcl because the profile handler carries a nested
// schedule block, not just attributes.
func decodeProfile(body hcl.Body) (kwargs.Handler, error) {
	var raw profileHandlerBody
	if diags := gohcl.DecodeBody(body, nil, &raw); diags.HasErrors() {
		return nil, diags
	}
	k := kwargs.DefaultProfileKwargs()
	if raw.Activities != nil {
		k.Activities = *raw.Activities
	}
	if raw.RecordShapes != nil {
		k.RecordShapes = *raw.RecordShapes
	}
	if raw.ProfileMemory != nil {
		k.ProfileMemory = *raw.ProfileMemory
	}
	if raw.WithStack != nil {
		k.WithStack = *raw.WithStack
	}
	if raw.WithFlops != nil {
		k.WithFlops = *raw.WithFlops
	}
	if raw.OutputTraceDir != nil {
		k.OutputTraceDir = *raw.OutputTraceDir
	}
	if raw.Schedule != nil {
		sched := &profiler.ScheduleOption{}
		if raw.Schedule.Wait != nil {
			sched.Wait = *raw.Schedule.Wait
		}
		if raw.Schedule.Warmup != nil {
			sched.Warmup = *raw.Schedule.Warmup
		}
		if raw.Schedule.Active != nil {
			sched.Active = *raw.Schedule.Active
		}
		if raw.Schedule.Repeat != nil {
			sched.Repeat = *raw.Schedule.Repeat
		}
		if raw.Schedule.SkipFirst != nil {
			sched.SkipFirst = *raw.Schedule.SkipFirst
		}
		if err := sched.Validate(); err != nil {
			return nil, err
		}
		k.Schedule = sched
	}
	return k, nil
}

func decodeInitProcessGroup(body hcl.Body) (kwargs.Handler, error) {
	attrs, err := bodyAttributes(body)
	if err != nil {
		return nil, err
	}
	k := kwargs.DefaultInitProcessGroupKwargs()
	for name, val := range attrs {
		switch name {
		case "backend":
			err = set(name, val, &k.Backend)
		case "init_method":
			err = set(name, val, &k.InitMethod)
		case "timeout":
			var raw string
			if err = set(name, val, &raw); err == nil {
				var d time.Duration
				d, err = time.ParseDuration(raw)
				if err != nil {
					err = fmt.Errorf("attribute %q: %w", name, err)
				} else {
					k.Timeout = d
				}
			}
		default:
			return nil, fmt.Errorf("unsupported argument %q", name)
		}
		if err != nil {
			return nil, err
		}
	}
	return k, nil
}
