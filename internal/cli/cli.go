package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/accelgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("cli parser started")
	flagSet := flag.NewFlagSet("accelgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
accelgo - launch training commands with typed acceleration options.

Usage:
  accelgo [options] [--] COMMAND [ARGS...]

Arguments:
  COMMAND [ARGS...]
    The training command to run, one subprocess per rank. Each rank
    receives ACCELGO_RANK, ACCELGO_LOCAL_RANK and ACCELGO_WORLD_SIZE.

Options:
`)
		flagSet.PrintDefaults()
	}

	profileFlag := flagSet.String("profile", "", "Path to a launch profile (.hcl file or directory).")
	pFlag := flagSet.String("P", "", "Path to a launch profile (shorthand).")
	nameFlag := flagSet.String("name", "", "Profile name to select when the path declares several.")
	numProcsFlag := flagSet.Int("num-processes", 0, "Ranks to launch. 0 defers to the profile, then the host core count.")
	mixedPrecisionFlag := flagSet.String("mixed-precision", "", "Mixed precision policy: 'no', 'fp16' or 'bf16'.")
	dynamoBackendFlag := flagSet.String("dynamo-backend", "", "Dynamo compilation backend advertised to ranks.")
	mainAddrFlag := flagSet.String("main-addr", "", "Rendezvous address for the ranks. Defaults to 127.0.0.1.")
	mainPortFlag := flagSet.Int("main-port", 0, "Rendezvous port for the ranks. Defaults to 29500.")
	envFlag := flagSet.Bool("env", false, "Print the host environment report and exit.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("arguments parsed")

	profilePath := *profileFlag
	if profilePath == "" {
		profilePath = *pFlag
	}

	command := flagSet.Args()
	if len(command) == 0 && !*envFlag {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *numProcsFlag < 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid num-processes: must be >= 0"}
	}

	config, err := app.NewConfig(app.Config{
		ProfilePath:    profilePath,
		ProfileName:    *nameFlag,
		NumProcesses:   *numProcsFlag,
		MixedPrecision: *mixedPrecisionFlag,
		DynamoBackend:  *dynamoBackendFlag,
		MainAddr:       *mainAddrFlag,
		MainPort:       *mainPortFlag,
		EnvReport:      *envFlag,
		LogFormat:      logFormat,
		LogLevel:       logLevel,
		Command:        command,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("cli parser finished")
	return config, false, nil
}
