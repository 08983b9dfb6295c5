// Package profiler implements the step profiler the accelerator hands out:
// a wait/warmup/active/repeat/skip-first schedule driving when step timings
// are captured, and a trace-ready callback fired once per completed cycle.
package profiler
