// Package accelerator exposes the training-run facade. An Accelerator is
// constructed once per run with a precision policy and a set of kwargs
// handlers, then hands out configured collaborators: the gradient scaler,
// autocast frames, the distributed wrapper, and the profiler.
package accelerator
