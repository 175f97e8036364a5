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
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/config"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/defaults"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/deployer"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/header"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/k8s/client"
)

// reportDocument is the json and yaml form of an apply report.
type reportDocument struct {
	header.Header `yaml:",inline"`
	Summary       string              `json:"summary" yaml:"summary"`
	Interrupted   bool                `json:"interrupted,omitempty" yaml:"interrupted,omitempty"`
	Steps         []deployer.StepView `json:"steps" yaml:"steps"`
}

func kubeOptions(cmd *cli.Command) client.Options {
	return client.Options{
		Kubeconfig: cmd.String("kubeconfig"),
		Context:    cmd.String("kube-context"),
		Timeout:    defaults.ReadinessInitialInterval * 5,
	}
}

func applyCmd() *cli.Command {
	return &cli.Command{
		Name:  "apply",
		Usage: "Generate the outputs tree and run its scripts against the cluster",
		Description: `Generates the outputs tree, bootstraps the cluster (provider credentials,
namespace), then runs every services script followed by every microservices
script, in sequence order.

With --policy continue (default) every script runs and failures are reported
at the end. With --policy abort the first failure stops the run.

With --readiness sleep (default) each script sleeps for the item's delay.
With --readiness wait the tool polls the cluster until the applied objects
are ready instead.`,
		Flags: []cli.Flag{
			outputDirFlag(),
			&cli.StringFlag{
				Name:  "policy",
				Usage: "Failure policy: continue or abort (overrides the deployment file)",
			},
			&cli.StringFlag{
				Name:  "readiness",
				Usage: fmt.Sprintf("Readiness mode: %s or %s (overrides the deployment file)", config.ModeSleep, config.ModeWait),
			},
			&cli.StringFlag{
				Name:    "kubeconfig",
				Aliases: []string{"k"},
				Usage:   "Path to kubeconfig used by --readiness wait (default: KUBECONFIG or ~/.kube/config)",
			},
			&cli.StringFlag{
				Name:  "kube-context",
				Usage: "Kubeconfig context used by --readiness wait",
			},
			&cli.BoolFlag{
				Name:  "skip-bootstrap",
				Usage: "Do not fetch cluster credentials or create the namespace",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			d, err := buildDeployer(cfg, waiterOption(cfg, kubeOptions(cmd)))
			if err != nil {
				return err
			}

			if _, err := d.Materialize(ctx); err != nil {
				return fmt.Errorf("failed to generate outputs: %w", err)
			}

			if !cmd.Bool("skip-bootstrap") {
				if _, err := d.Bootstrap(ctx); err != nil {
					return fmt.Errorf("failed to bootstrap cluster: %w", err)
				}
			}

			report, applyErr := d.Apply(ctx)
			if report != nil {
				doc := reportDocument{
					Header: header.New(header.KindReport,
						header.WithVersion(version),
						header.WithRunID(report.RunID),
						header.WithMetadata("policy", string(report.Policy))),
					Summary:     report.Summary(),
					Interrupted: report.Interrupted,
					Steps:       report.View(),
				}
				if err := writeResult(ctx, cmd, doc.Steps, doc); err != nil {
					return err
				}
				fmt.Fprintln(os.Stderr, report.Summary())
			}
			if applyErr != nil {
				return applyErr
			}
			if failed := report.Failed(); len(failed) > 0 {
				slog.Warn("apply finished with failures", "failed", len(failed), "policy", deployer.PolicyContinue)
				return fmt.Errorf("%d of %d commands failed: %w", len(failed), len(report.Steps), report.Err())
			}
			return nil
		},
	}
}
