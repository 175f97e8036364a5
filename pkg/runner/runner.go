// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package runner

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
)

// waitDelay bounds how long output pipes are drained after the process is
// killed, since grandchildren may hold them open.
const waitDelay = 5 * time.Second

// Runner runs a command to completion.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) Result
}

// Result is the outcome of a single command.
type Result struct {
	Command  []string      `json:"command" yaml:"command"`
	ExitCode int           `json:"exitCode" yaml:"exitCode"`
	Output   string        `json:"output,omitempty" yaml:"output,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Err      error         `json:"-" yaml:"-"`
}

// Failed reports whether the command did not exit cleanly.
func (r Result) Failed() bool {
	return r.Err != nil || r.ExitCode != 0
}

// String returns the command line.
func (r Result) String() string {
	return strings.Join(r.Command, " ")
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	out io.Writer
	dir string
	env []string
}

// Option configures an ExecRunner.
type Option func(*ExecRunner)

// WithOutput streams combined output to w while it is captured.
func WithOutput(w io.Writer) Option {
	return func(r *ExecRunner) {
		r.out = w
	}
}

// WithDir sets the working directory for commands.
func WithDir(dir string) Option {
	return func(r *ExecRunner) {
		r.dir = dir
	}
}

// WithEnv appends KEY=VALUE entries to the inherited environment.
func WithEnv(env ...string) Option {
	return func(r *ExecRunner) {
		r.env = append(r.env, env...)
	}
}

// NewExecRunner returns a runner backed by os/exec.
func NewExecRunner(opts ...Option) *ExecRunner {
	r := &ExecRunner{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes name with args and blocks until it exits or ctx is done.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) Result {
	res := Result{Command: append([]string{name}, args...)}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = waitDelay
	cmd.Dir = r.dir
	if len(r.env) > 0 {
		cmd.Env = append(cmd.Environ(), r.env...)
	}

	var buf bytes.Buffer
	var w io.Writer = &buf
	if r.out != nil {
		w = io.MultiWriter(&buf, r.out)
	}
	cmd.Stdout = w
	cmd.Stderr = w

	start := time.Now()
	err := cmd.Run()
	res.Duration = time.Since(start)
	res.Output = buf.String()

	if err == nil {
		return res
	}

	var exitErr *exec.ExitError
	switch {
	case ctx.Err() != nil:
		res.ExitCode = -1
		res.Err = errors.Wrap(errors.ErrCodeTimeout, fmt.Sprintf("command %q interrupted", name), ctx.Err())
	case stderrors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		res.Err = errors.WrapWithContext(errors.ErrCodeExecFailed,
			fmt.Sprintf("command %q exited with code %d", name, res.ExitCode), err,
			map[string]any{"exit_code": res.ExitCode})
	default:
		res.ExitCode = -1
		res.Err = errors.Wrap(errors.ErrCodeExecFailed, fmt.Sprintf("failed to start command %q", name), err)
	}
	return res
}

// Recorder is a Runner that records invocations and returns canned results.
type Recorder struct {
	mu      sync.Mutex
	calls   [][]string
	results map[string]Result
	// Hook, when set, is called for every invocation before the result is
	// looked up.
	Hook func(ctx context.Context, cmd []string)
}

// NewRecorder returns an empty Recorder. Unknown commands succeed.
func NewRecorder() *Recorder {
	return &Recorder{results: make(map[string]Result)}
}

// SetResult registers the result returned when the command line matches
// exactly.
func (r *Recorder) SetResult(cmd []string, res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[strings.Join(cmd, "\x00")] = res
}

// Fail makes the given command line exit with code.
func (r *Recorder) Fail(code int, cmd ...string) {
	r.SetResult(cmd, Result{
		ExitCode: code,
		Err: errors.NewWithContext(errors.ErrCodeExecFailed,
			fmt.Sprintf("command %q exited with code %d", strings.Join(cmd, " "), code),
			map[string]any{"exit_code": code}),
	})
}

// Run implements Runner.
func (r *Recorder) Run(ctx context.Context, name string, args ...string) Result {
	cmd := append([]string{name}, args...)
	if r.Hook != nil {
		r.Hook(ctx, cmd)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, cmd)

	res, ok := r.results[strings.Join(cmd, "\x00")]
	if !ok {
		res = Result{}
	}
	res.Command = cmd
	return res
}

// Calls returns a copy of the recorded command lines in invocation order.
func (r *Recorder) Calls() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]string, len(r.calls))
	copy(out, r.calls)
	return out
}
