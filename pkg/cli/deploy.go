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

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/urfave/cli/v3"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/config"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/deployer"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/k8s/client"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/producer"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/provider"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/readiness"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/runner"
)

// Replaced in tests.
var (
	newRunner = func() runner.Runner {
		return runner.NewExecRunner(runner.WithOutput(os.Stderr))
	}
	newKubeClient = client.New
)

// loadConfig loads the deployment file and applies command-line overrides.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if dir := cmd.String("output-dir"); dir != "" {
		cfg.OutputDir = dir
	}
	if p := cmd.String("policy"); p != "" {
		cfg.Apply.Policy = p
	}
	if m := cmd.String("readiness"); m != "" {
		cfg.Apply.Readiness.Mode = strings.ToLower(m)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildDeployer wires a deployer from cfg and registers its components in
// file order.
func buildDeployer(cfg *config.Config, opts ...deployer.Option) (*deployer.Deployer, error) {
	policy, err := deployer.ParsePolicy(cfg.Apply.Policy)
	if err != nil {
		return nil, err
	}

	base := []deployer.Option{
		deployer.WithNamespace(cfg.Namespace),
		deployer.WithOutputDir(cfg.OutputDir),
		deployer.WithShell(cfg.Apply.Shell),
		deployer.WithPolicy(policy),
		deployer.WithChecksums(cfg.ChecksumsEnabled()),
		deployer.WithProduceConcurrency(cfg.Concurrency),
		deployer.WithRunner(newRunner()),
	}
	if cfg.Provider != nil {
		p, err := provider.New(*cfg.Provider)
		if err != nil {
			return nil, err
		}
		base = append(base, deployer.WithProvider(p))
	}

	d := deployer.New(append(base, opts...)...)
	for i, c := range cfg.Components {
		p, err := producer.New(c.Kind, c.Name, c.Params)
		if err != nil {
			return nil, fmt.Errorf("components[%d] %s: %w", i, c.Name, err)
		}
		d.Register(p)
	}
	return d, nil
}

// waiterOption returns the readiness waiter for cfg. The wait mode connects
// to the cluster on first use, after bootstrap has fetched credentials.
func waiterOption(cfg *config.Config, kube client.Options) deployer.Option {
	r := cfg.Apply.Readiness
	if r.Mode != config.ModeWait {
		return deployer.WithWaiter(readiness.SleepWaiter{})
	}

	return deployer.WithWaiter(&lazyWaiter{build: func() (readiness.Waiter, error) {
		cs, err := newKubeClient(kube)
		if err != nil {
			return nil, fmt.Errorf("readiness wait needs cluster access: %w", err)
		}
		return readiness.NewKubeWaiter(cs,
			readiness.WithBackoff(wait.Backoff{
				Duration: r.InitialInterval,
				Factor:   2.0,
				Jitter:   0.1,
				Steps:    r.Steps,
				Cap:      r.MaxInterval,
			}),
			readiness.WithTimeout(r.Timeout),
		), nil
	}})
}

type lazyWaiter struct {
	build func() (readiness.Waiter, error)

	once   sync.Once
	waiter readiness.Waiter
	err    error
}

func (l *lazyWaiter) Wait(ctx context.Context, target readiness.Target) error {
	l.once.Do(func() {
		l.waiter, l.err = l.build()
	})
	if l.err != nil {
		return l.err
	}
	return l.waiter.Wait(ctx, target)
}
