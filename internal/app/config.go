package app

import "errors"

// Config holds everything an App instance needs to run. CLI flags fill it;
// zero values mean "not set here" and defer to the profile or host default.
type Config struct {
	ProfilePath string // .hcl file or directory of them
	ProfileName string // profile to select when the path declares several

	NumProcesses   int
	MixedPrecision string
	DynamoBackend  string
	MainAddr       string
	MainPort       int

	LogFormat string
	LogLevel  string

	EnvReport bool     // print the host report and exit
	Command   []string // training command vector
}

// NewConfig validates a config assembled by the CLI layer.
func NewConfig(cfg Config) (*Config, error) {
	if !cfg.EnvReport && len(cfg.Command) == 0 {
		return nil, errors.New("a command to launch is required (or use -env for the host report)")
	}
	return &cfg, nil
}
