package execution

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// SubprocessError is returned when the deployment CLI exits unsuccessfully.
type SubprocessError struct {
	Command  string
	ExitCode int
	Err      error
}

func (e *SubprocessError) Error() string {
	return fmt.Sprintf("command %v failed with exit code %d: %v", e.Command, e.ExitCode, e.Err)
}

func (e *SubprocessError) Unwrap() error {
	return e.Err
}

type Deployer interface {
	Deploy(ctx context.Context, args []string) error
}

// DeployCLI runs the deployment CLI through the package runner, e.g.
// `npx now <args>`.
type DeployCLI struct {
	Binary     string
	Command    []string
	WorkingDir string
	// Secrets are redacted from the streamed output and the logged command.
	Secrets []string
	Stdout  io.Writer
	Stderr  io.Writer
}

func NewDeployCLI(workingDir string, secrets ...string) DeployCLI {
	return DeployCLI{
		Binary:     "npx",
		Command:    []string{"now"},
		WorkingDir: workingDir,
		Secrets:    secrets,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

func (d DeployCLI) Deploy(ctx context.Context, args []string) error {
	cmdArgs := append(append([]string{}, d.Command...), args...)
	pattern := SecretsPattern(d.Secrets)

	stdout := NewFilteringWriter(d.Stdout, pattern)
	stderr := NewFilteringWriter(d.Stderr, pattern)

	cmd := exec.CommandContext(ctx, d.Binary, cmdArgs...)
	slog.Info("Running deployment command",
		slog.Group("command",
			"binary", d.Binary,
			"args", RedactSecrets(cmdArgs, pattern),
			"workingDir", d.WorkingDir,
		),
	)
	cmd.Dir = d.WorkingDir
	cmd.Env = os.Environ()
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	stdout.Flush()
	stderr.Flush()

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		slog.Error("Command execution failed",
			"command", d.Binary,
			"exitCode", exitCode,
			"error", err,
		)
		return &SubprocessError{Command: d.Binary, ExitCode: exitCode, Err: err}
	}
	slog.Info("Deployment command finished")
	return nil
}
