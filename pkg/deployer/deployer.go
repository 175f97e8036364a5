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
	"strings"
	"sync"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/defaults"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/producer"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/provider"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/readiness"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/runner"
)

// Policy decides what Apply does after a failed command.
type Policy string

const (
	// PolicyContinue runs every command and reports failures at the end.
	PolicyContinue Policy = "continue"
	// PolicyAbort stops at the first failed command.
	PolicyAbort Policy = "abort"
)

// ParsePolicy parses a policy name. Empty means PolicyContinue.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyContinue:
		return PolicyContinue, nil
	case PolicyAbort:
		return PolicyAbort, nil
	default:
		return "", fmt.Errorf("unknown policy %q (want %s or %s)", s, PolicyContinue, PolicyAbort)
	}
}

// Deployer collects producers, materializes their items and applies them.
//
// A Deployer is not safe for concurrent Materialize or Apply calls.
type Deployer struct {
	namespace   string
	outputDir   string
	shell       string
	policy      Policy
	checksums   bool
	concurrency int

	runner   runner.Runner
	waiter   readiness.Waiter
	provider provider.Client

	// sleepInScript is true when the fixed delay is written into scripts.
	sleepInScript bool

	mu        sync.Mutex
	producers []producer.Producer
	plan      *Plan
}

// Option configures a Deployer.
type Option func(*Deployer)

// WithNamespace sets the run namespace used by items that do not set one.
func WithNamespace(ns string) Option {
	return func(d *Deployer) {
		d.namespace = ns
	}
}

// WithOutputDir sets the root of the generated tree.
func WithOutputDir(dir string) Option {
	return func(d *Deployer) {
		d.outputDir = dir
	}
}

// WithRunner sets the command runner.
func WithRunner(r runner.Runner) Option {
	return func(d *Deployer) {
		d.runner = r
	}
}

// WithWaiter sets the readiness waiter. A SleepWaiter that does not sleep in
// process keeps the delay in the scripts.
func WithWaiter(w readiness.Waiter) Option {
	return func(d *Deployer) {
		d.waiter = w
		sw, ok := w.(readiness.SleepWaiter)
		d.sleepInScript = ok && !sw.InProcess
	}
}

// WithProvider sets the cloud provider handed to producers and used by
// Bootstrap.
func WithProvider(p provider.Client) Option {
	return func(d *Deployer) {
		d.provider = p
	}
}

// WithPolicy sets the failure policy.
func WithPolicy(p Policy) Option {
	return func(d *Deployer) {
		d.policy = p
	}
}

// WithChecksums enables or disables checksums.txt in each pool directory.
func WithChecksums(enabled bool) Option {
	return func(d *Deployer) {
		d.checksums = enabled
	}
}

// WithProduceConcurrency bounds how many producers run at once. Items are
// still merged in registration order.
func WithProduceConcurrency(n int) Option {
	return func(d *Deployer) {
		d.concurrency = n
	}
}

// WithShell sets the interpreter written into script shebangs.
func WithShell(shell string) Option {
	return func(d *Deployer) {
		d.shell = shell
	}
}

// New returns a Deployer. Without options it writes to "outputs", runs
// commands with os/exec, keeps going after failures and sleeps in scripts.
func New(opts ...Option) *Deployer {
	d := &Deployer{
		namespace:     defaults.Namespace,
		outputDir:     defaults.OutputDir,
		shell:         defaults.Shell,
		policy:        PolicyContinue,
		checksums:     true,
		concurrency:   1,
		runner:        runner.NewExecRunner(),
		waiter:        readiness.SleepWaiter{},
		sleepInScript: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.concurrency < 1 {
		d.concurrency = 1
	}
	return d
}

// Register appends a producer. Producers are not de-duplicated.
func (d *Deployer) Register(p producer.Producer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.producers = append(d.producers, p)
}

// Producers returns the registered producers in order.
func (d *Deployer) Producers() []producer.Producer {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]producer.Producer, len(d.producers))
	copy(out, d.producers)
	return out
}

// Plan returns the plan of the last successful Materialize, or nil.
func (d *Deployer) Plan() *Plan {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.plan
}

// OutputDir returns the root of the generated tree.
func (d *Deployer) OutputDir() string {
	return d.outputDir
}
