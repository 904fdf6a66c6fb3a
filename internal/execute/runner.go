package execute

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// CommandError is returned when a template command cannot be run.
type CommandError struct {
	Cmd   string
	Cause error
	Stage string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed during %s: %v", e.Cmd, e.Stage, e.Cause)
}
func (e *CommandError) Unwrap() error { return e.Cause }

// Runner executes expanded template commands, passing their output through
// to the configured streams.
type Runner struct {
	stdout io.Writer
	stderr io.Writer
}

// NewRunner creates a Runner. Nil streams default to the process's own.
func NewRunner(stdout, stderr io.Writer) *Runner {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Runner{stdout: stdout, stderr: stderr}
}

// Run executes one argv and returns its exit code. A non-zero exit is not an
// error; failing to start the command is.
func (r *Runner) Run(ctx context.Context, argv []string) (int, error) {
	if len(argv) == 0 {
		return 0, ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	cmd.Stdin = nil

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return -1, &CommandError{Cmd: argv[0], Cause: err, Stage: "start"}
	}
	return 0, nil
}
