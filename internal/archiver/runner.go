package archiver

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

// ExitError reports an archiver run that finished with a non-zero status.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return msg
	}
	return fmt.Sprintf("7z exited with status %d", e.Code)
}

// SpawnError reports an archiver that could not be started or waited on.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// Runner invokes the external archiver for one folder at a time.
type Runner struct {
	// Path is the archiver executable found by Locate.
	Path string

	// Dir is the working directory of the child process. Empty means the
	// current directory.
	Dir string

	// Timeout kills the archiver when it runs longer. Zero disables it.
	Timeout time.Duration

	// OnOutput, if set, receives every stdout line (the -bb3 file log).
	OnOutput func(line string)
}

// Args builds the argv, excluding the executable itself.
func Args(archive string, c Container, files []string) []string {
	args := []string{"a", "-mx=9", "-bb3"}
	args = append(args, c.Flags()...)
	args = append(args, archive)
	args = append(args, files...)
	return args
}

// Run archives files into archive using container c. It returns only after the
// child process has exited and both of its output streams are drained.
func (r *Runner) Run(ctx context.Context, archive string, c Container, files []string) error {
	if c == Auto {
		return errors.New("archiver: container must be resolved before running")
	}
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.Path, Args(archive, c, files)...)
	cmd.Dir = r.Dir
	cmd.WaitDelay = 5 * time.Second

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &SpawnError{Command: r.Path, Err: err}
	}

	if err := cmd.Start(); err != nil {
		return &SpawnError{Command: r.Path, Err: err}
	}

	drainLines(stdout, r.OnOutput)

	err = cmd.Wait()
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &SpawnError{Command: r.Path, Err: ctxErr}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Code: exitErr.ExitCode(), Stderr: stderr.String()}
	}
	return &SpawnError{Command: r.Path, Err: err}
}

func drainLines(r io.Reader, fn func(string)) {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line = strings.TrimRight(line, "\r\n"); line != "" && fn != nil {
			fn(line)
		}
		if err != nil {
			return
		}
	}
}
