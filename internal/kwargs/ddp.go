package kwargs

// DistributedDataParallelKwargs customizes the distributed wrapper applied
// by Accelerator.Prepare. Defaults mirror the framework wrapper's
// constructor; BucketCapMB is the gradient bucket capacity in megabytes.
type DistributedDataParallelKwargs struct {
	Dim                  int
	BroadcastBuffers     bool
	BucketCapMB          int
	FindUnusedParameters bool
	CheckReduction       bool
	GradientAsBucketView bool
	StaticGraph          bool
}

// DefaultDistributedDataParallelKwargs returns a bundle holding the
// wrapper's documented defaults.
func DefaultDistributedDataParallelKwargs() DistributedDataParallelKwargs {
	return DistributedDataParallelKwargs{
		Dim:                  0,
		BroadcastBuffers:     true,
		BucketCapMB:          25,
		FindUnusedParameters: false,
		CheckReduction:       false,
		GradientAsBucketView: false,
		StaticGraph:          false,
	}
}

// Fields implements Handler.
func (k DistributedDataParallelKwargs) Fields() []Field {
	d := DefaultDistributedDataParallelKwargs()
	return []Field{
		{Name: "dim", Default: d.Dim, Value: k.Dim},
		{Name: "broadcast_buffers", Default: d.BroadcastBuffers, Value: k.BroadcastBuffers},
		{Name: "bucket_cap_mb", Default: d.BucketCapMB, Value: k.BucketCapMB},
		{Name: "find_unused_parameters", Default: d.FindUnusedParameters, Value: k.FindUnusedParameters},
		{Name: "check_reduction", Default: d.CheckReduction, Value: k.CheckReduction},
		{Name: "gradient_as_bucket_view", Default: d.GradientAsBucketView, Value: k.GradientAsBucketView},
		{Name: "static_graph", Default: d.StaticGraph, Value: k.StaticGraph},
	}
}
