// Package launch runs a training command as one subprocess per rank. The
// contract is fire-and-wait: spawn every rank, block until all exit, and
// surface any non-zero exit together with the rank's captured output. There
// is no retry and no streaming interaction with the children.
package launch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/vk/accelgo/internal/ctxlog"
)

// Environment variables injected into every rank's process.
const (
	EnvRank           = "ACCELGO_RANK"
	EnvLocalRank      = "ACCELGO_LOCAL_RANK"
	EnvWorldSize      = "ACCELGO_WORLD_SIZE"
	EnvMainAddr       = "ACCELGO_MAIN_ADDR"
	EnvMainPort       = "ACCELGO_MAIN_PORT"
	EnvMixedPrecision = "ACCELGO_MIXED_PRECISION"
	EnvDynamoBackend  = "ACCELGO_DYNAMO_BACKEND"
)

// Config describes one launch: the command vector and the run-level
// settings each rank learns through its environment.
type Config struct {
	NumProcesses   int
	MainAddr       string
	MainPort       int
	MixedPrecision string
	DynamoBackend  string
	Command        []string
}

// Validate rejects configs that cannot describe a launch.
func (c *Config) Validate() error {
	if len(c.Command) == 0 {
		return errors.New("launch: command is required")
	}
	if c.NumProcesses < 1 {
		return fmt.Errorf("launch: num_processes must be >= 1, got %d", c.NumProcesses)
	}
	return nil
}

// ExitError reports a rank that finished with a non-zero status, carrying
// its captured output for diagnosis.
type ExitError struct {
	Rank   int
	Code   int
	Output string
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("rank %d exited with status %d\n%s", e.Rank, e.Code, e.Output)
}

// Launcher spawns and supervises the per-rank subprocesses of one run.
type Launcher struct {
	config Config
}

// NewLauncher validates the config and returns a launcher.
func NewLauncher(config Config) (*Launcher, error) {
	if config.MainAddr == "" {
		config.MainAddr = "127.0.0.1"
	}
	if config.MainPort == 0 {
		config.MainPort = 29500
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Launcher{config: config}, nil
}

// Run launches every rank concurrently and blocks until all have exited.
// The first rank failure cancels the context handed to the remaining
// children; its ExitError is returned.
func (l *Launcher) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("launching",
		"command", l.config.Command,
		"num_processes", l.config.NumProcesses,
		"mixed_precision", l.config.MixedPrecision)

	g, ctx := errgroup.WithContext(ctx)
	for rank := 0; rank < l.config.NumProcesses; rank++ {
		rank := rank
		g.Go(func() error {
			return l.runRank(ctx, rank)
		})
	}
	return g.Wait()
}

func (l *Launcher) runRank(ctx context.Context, rank int) error {
	cmd := exec.CommandContext(ctx, l.config.Command[0], l.config.Command[1:]...)
	cmd.Env = append(os.Environ(), l.rankEnv(rank)...)

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	if err == nil {
		ctxlog.FromContext(ctx).Debug("rank finished", "rank", rank)
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Rank: rank, Code: exitErr.ExitCode(), Output: output.String()}
	}
	return fmt.Errorf("launch: rank %d: %w", rank, err)
}

// rankEnv builds the injected environment for one rank. Single-node launch,
// so local rank equals rank.
func (l *Launcher) rankEnv(rank int) []string {
	env := []string{
		EnvRank + "=" + strconv.Itoa(rank),
		EnvLocalRank + "=" + strconv.Itoa(rank),
		EnvWorldSize + "=" + strconv.Itoa(l.config.NumProcesses),
		EnvMainAddr + "=" + l.config.MainAddr,
		EnvMainPort + "=" + strconv.Itoa(l.config.MainPort),
	}
	if l.config.MixedPrecision != "" {
		env = append(env, EnvMixedPrecision+"="+l.config.MixedPrecision)
	}
	if l.config.DynamoBackend != "" {
		env = append(env, EnvDynamoBackend+"="+l.config.DynamoBackend)
	}
	return env
}
