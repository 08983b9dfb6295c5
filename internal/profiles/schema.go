package profiles

import "github.com/hashicorp/hcl/v2"

// rootSchema is the top-level structure of a profile file.
type rootSchema struct {
	Profiles []*profileBlock `hcl:"profile,block"`
}

// profileBlock is one `profile "<name>" { ... }` block. Scalar settings are
// pointers so an absent attribute is distinguishable from an explicit
// default.
type profileBlock struct {
	Name           string          `hcl:"name,label"`
	MixedPrecision *string         `hcl:"mixed_precision,optional"`
	NumProcesses   *int            `hcl:"num_processes,optional"`
	DynamoBackend  *string         `hcl:"dynamo_backend,optional"`
	Handlers       []*handlerBlock `hcl:"handler,block"`
}

// handlerBlock is one `handler "<kind>" { ... }` block. The body is kept
// opaque here; the decoder registry interprets it against the kind's field
// table.
type handlerBlock struct {
	Kind string   `hcl:"kind,label"`
	Body hcl.Body `hcl:",remain"`
}

// scheduleBlock is the `schedule { ... }` block inside a profile handler.
type scheduleBlock struct {
	Wait      *int `hcl:"wait,optional"`
	Warmup    *int `hcl:"warmup,optional"`
	Active    *int `hcl:"active,optional"`
	Repeat    *int `hcl:"repeat,optional"`
	SkipFirst *int `hcl:"skip_first,optional"`
}

// profileHandlerBody is the decoded body of a `handler "profile"` block.
type profileHandlerBody struct {
	Activities     *[]string      `hcl:"activities,optional"`
	RecordShapes   *bool          `hcl:"record_shapes,optional"`
	ProfileMemory  *bool          `hcl:"profile_memory,optional"`
	WithStack      *bool          `hcl:"with_stack,optional"`
	WithFlops      *bool          `hcl:"with_flops,optional"`
	OutputTraceDir *string        `hcl:"output_trace_dir,optional"`
	Schedule       *scheduleBlock `hcl:"schedule,block"`
}
