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

package deployer

import (
	"fmt"
	"time"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/item"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/runner"
)

// Step is the outcome of one command.
type Step struct {
	Command Command
	Result  runner.Result
	// WaitErr is set when the command succeeded but readiness did not.
	WaitErr error
	Waited  time.Duration
}

// Failed reports whether the command or its readiness wait failed.
func (s Step) Failed() bool {
	return s.Result.Failed() || s.WaitErr != nil
}

// Err returns the command error, else the readiness error.
func (s Step) Err() error {
	if s.Result.Err != nil {
		return s.Result.Err
	}
	if s.Result.ExitCode != 0 {
		return fmt.Errorf("%s exited with code %d", s.Command.Script, s.Result.ExitCode)
	}
	return s.WaitErr
}

// Report summarizes an Apply.
type Report struct {
	RunID       string
	Policy      Policy
	Steps       []Step
	Duration    time.Duration
	Interrupted bool
}

// Failed returns the failed steps in execution order.
func (r *Report) Failed() []Step {
	var failed []Step
	for _, s := range r.Steps {
		if s.Failed() {
			failed = append(failed, s)
		}
	}
	return failed
}

// Err aggregates every step error, or returns nil when all steps succeeded.
func (r *Report) Err() error {
	var errs []error
	for _, s := range r.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", s.Command.ID(), s.Err()))
	}
	return utilerrors.NewAggregate(errs)
}

// Summary returns a one line description of the run.
func (r *Report) Summary() string {
	var services, micro int
	for _, s := range r.Steps {
		if s.Command.Pool == item.PoolServices {
			services++
		} else {
			micro++
		}
	}
	return fmt.Sprintf("Applied %d commands (%d services, %d microservices) in %v. Failed: %d.",
		len(r.Steps), services, micro, r.Duration.Round(time.Millisecond), len(r.Failed()))
}

// StepView is the serializable form of a Step.
type StepView struct {
	Pool     item.Pool `json:"pool" yaml:"pool"`
	ID       string    `json:"id" yaml:"id"`
	Kind     item.Kind `json:"kind" yaml:"kind"`
	Status   string    `json:"status" yaml:"status"`
	ExitCode int       `json:"exitCode" yaml:"exitCode"`
	Duration string    `json:"duration" yaml:"duration"`
	Error    string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// View returns serializable rows for every step.
func (r *Report) View() []StepView {
	rows := make([]StepView, 0, len(r.Steps))
	for _, s := range r.Steps {
		v := StepView{
			Pool:     s.Command.Pool,
			ID:       s.Command.ID(),
			Kind:     s.Command.Kind,
			Status:   "success",
			ExitCode: s.Result.ExitCode,
			Duration: (s.Result.Duration + s.Waited).Round(time.Millisecond).String(),
		}
		if s.Failed() {
			v.Status = "failed"
			v.Error = s.Err().Error()
		}
		rows = append(rows, v)
	}
	return rows
}
