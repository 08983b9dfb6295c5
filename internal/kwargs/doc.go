// Package kwargs defines the typed option bundles ("kwargs handlers") that
// customize how the accelerator configures its framework collaborators:
// gradient scaling, autocast, distributed wrapping, profiling, and process
// group setup. Each bundle declares the downstream defaults for its fields;
// ToKwargs diffs a bundle against those defaults and hands only the changed
// fields to the collaborator, which keeps its own defaults authoritative for
// everything left untouched.
package kwargs
