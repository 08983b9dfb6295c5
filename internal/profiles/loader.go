package profiles

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/accelgo/internal/ctxlog"
	"github.com/vk/accelgo/internal/fsutil"
	"github.com/vk/accelgo/internal/kwargs"
	"github.com/vk/accelgo/internal/precision"
)

// Profile is a fully decoded launch profile: run-level settings plus the
// kwargs handlers declared in its handler blocks.
type Profile struct {
	Name           string
	MixedPrecision precision.MixedPrecision
	NumProcesses   int // 0 means unset; the caller picks a host default
	DynamoBackend  string

	handlers []kwargs.Handler
}

// Handlers returns the profile's kwargs handlers in declaration order.
func (p *Profile) Handlers() []kwargs.Handler {
	out := make([]kwargs.Handler, len(p.handlers))
	copy(out, p.handlers)
	return out
}

// Loader parses profile files and decodes their handler blocks through a
// decoder registry.
type Loader struct {
	registry *Registry
}

// NewLoader creates a loader. A nil registry means the built-in handler
// kinds.
func NewLoader(registry *Registry) *Loader {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Loader{registry: registry}
}

// Load parses path (an .hcl file or a directory of them) into profiles.
// Any malformed profile fails the whole load; there is no partially decoded
// result.
func (l *Loader) Load(ctx context.Context, path string) ([]*Profile, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.HCLFiles(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loading launch profiles", "path", path, "files", len(files))

	parser := hclparse.NewParser()
	var profiles []*Profile
	seen := make(map[string]string) // profile name -> file it came from

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parsing %s: %w", file, diags)
		}

		var root rootSchema
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("decoding %s: %w", file, diags)
		}

		for _, block := range root.Profiles {
			if prev, dup := seen[block.Name]; dup {
				return nil, fmt.Errorf("profile %q declared in both %s and %s", block.Name, prev, file)
			}
			seen[block.Name] = file

			profile, err := l.translate(block)
			if err != nil {
				return nil, fmt.Errorf("%s: profile %q: %w", file, block.Name, err)
			}
			profiles = append(profiles, profile)
		}
	}

	logger.Debug("launch profiles loaded", "count", len(profiles))
	return profiles, nil
}

// LoadProfile loads path and selects one profile by name. An empty name is
// allowed when the path holds exactly one profile.
func (l *Loader) LoadProfile(ctx context.Context, path, name string) (*Profile, error) {
	profiles, err := l.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	if name == "" {
		if len(profiles) != 1 {
			return nil, fmt.Errorf("%s declares %d profiles; select one with its name", path, len(profiles))
		}
		return profiles[0], nil
	}
	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("profile %q not found in %s", name, path)
}

// translate turns a decoded profile block into a Profile, running each
// handler block through the decoder registry.
func (l *Loader) translate(block *profileBlock) (*Profile, error) {
	p := &Profile{Name: block.Name, MixedPrecision: precision.MixedPrecisionNo}

	if block.MixedPrecision != nil {
		mp, err := precision.ParseMixedPrecision(*block.MixedPrecision)
		if err != nil {
			return nil, err
		}
		p.MixedPrecision = mp
	}
	if block.NumProcesses != nil {
		if *block.NumProcesses < 1 {
			return nil, fmt.Errorf("num_processes must be >= 1, got %d", *block.NumProcesses)
		}
		p.NumProcesses = *block.NumProcesses
	}
	if block.DynamoBackend != nil {
		p.DynamoBackend = *block.DynamoBackend
	}

	kinds := make(map[string]struct{})
	for _, hb := range block.Handlers {
		if _, dup := kinds[hb.Kind]; dup {
			return nil, fmt.Errorf("duplicate handler %q", hb.Kind)
		}
		kinds[hb.Kind] = struct{}{}

		h, err := l.registry.Decode(hb.Kind, hb.Body)
		if err != nil {
			return nil, err
		}
		p.handlers = append(p.handlers, h)
	}
	return p, nil
}
