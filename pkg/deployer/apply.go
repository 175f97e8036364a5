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
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/item"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/readiness"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/runner"
)

// Apply runs the plan of the last Materialize.
func (d *Deployer) Apply(ctx context.Context) (*Report, error) {
	plan := d.Plan()
	if plan == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "nothing to apply, run Materialize first")
	}
	return d.ApplyPlan(ctx, plan)
}

// ApplyPlan runs the services commands of plan, then its microservices
// commands, one at a time. The returned report holds a result for every
// command that ran. The error is non-nil when the run was interrupted or
// stopped by PolicyAbort.
func (d *Deployer) ApplyPlan(ctx context.Context, plan *Plan) (*Report, error) {
	start := time.Now()
	report := &Report{RunID: plan.RunID, Policy: d.policy}
	log := slog.With("run_id", plan.RunID)

	log.Info("applying plan",
		"services", len(plan.Services),
		"microservices", len(plan.Microservices),
		"policy", d.policy,
	)
	defer func() {
		report.Duration = time.Since(start)
	}()

	for _, pool := range item.Pools {
		for _, cmd := range plan.Pool(pool) {
			if err := ctx.Err(); err != nil {
				report.Interrupted = true
				log.Warn("apply interrupted", "next", cmd.ID(), "pool", pool)
				return report, errors.Wrap(errors.ErrCodeTimeout, "apply interrupted", err)
			}

			step := d.applyCommand(ctx, log, cmd)
			report.Steps = append(report.Steps, step)

			if step.Failed() && d.policy == PolicyAbort {
				log.Error("stopping after failed command", "script", cmd.Script, "error", step.Err())
				return report, errors.WrapWithContext(errors.ErrCodeExecFailed,
					fmt.Sprintf("command %s failed", cmd.ID()), step.Err(),
					map[string]any{"pool": string(pool), "script": cmd.Script})
			}
		}
	}

	log.Info("apply complete", "summary", report.Summary())
	return report, nil
}

func (d *Deployer) applyCommand(ctx context.Context, log *slog.Logger, cmd Command) Step {
	step := Step{Command: cmd}

	sleep := -1
	if d.sleepInScript {
		sleep = cmd.Sleep
	}
	if err := finalizeScript(cmd.Script, d.shell, sleep); err != nil {
		step.Result = runner.Result{
			Command:  []string{cmd.Script},
			ExitCode: -1,
			Err:      errors.Wrap(errors.ErrCodeInternal, "failed to prepare script", err),
		}
		commandsTotal.WithLabelValues(string(cmd.Pool), "error").Inc()
		return step
	}

	log.Info("running command", "pool", cmd.Pool, "script", cmd.Script, "kind", cmd.Kind)
	step.Result = d.runner.Run(ctx, cmd.Script)
	commandDuration.WithLabelValues(string(cmd.Pool)).Observe(step.Result.Duration.Seconds())

	if step.Result.Failed() {
		commandsTotal.WithLabelValues(string(cmd.Pool), "failed").Inc()
		log.Error("command failed",
			"script", cmd.Script,
			"exit_code", step.Result.ExitCode,
			"error", step.Result.Err,
		)
		return step
	}
	commandsTotal.WithLabelValues(string(cmd.Pool), "success").Inc()

	waitStart := time.Now()
	err := d.waiter.Wait(ctx, readiness.Target{
		Kind:      cmd.Kind,
		Name:      cmd.Name,
		Namespace: cmd.Namespace,
		Manifest:  cmd.Manifest,
		Delay:     time.Duration(cmd.Sleep) * time.Second,
	})
	step.Waited = time.Since(waitStart)
	readinessWait.WithLabelValues(string(cmd.Kind)).Observe(step.Waited.Seconds())
	if err != nil {
		step.WaitErr = err
		log.Error("resource not ready", "script", cmd.Script, "error", err)
	}
	return step
}
