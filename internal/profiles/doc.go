// Package profiles loads declarative launch profiles from HCL. A profile
// bundles run-level settings (precision policy, process count, dynamo
// backend) with handler blocks that decode into the typed kwargs bundles
// the accelerator consumes.
package profiles
