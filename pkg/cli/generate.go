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

	"github.com/urfave/cli/v3"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/deployer"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/header"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/item"
)

// planRow is one table line of a plan.
type planRow struct {
	Pool      item.Pool `json:"pool"`
	ID        string    `json:"id"`
	Kind      item.Kind `json:"kind"`
	Namespace string    `json:"namespace"`
	Sleep     int       `json:"sleep"`
}

// planDocument is the json and yaml form of a plan.
type planDocument struct {
	header.Header `yaml:",inline"`
	Spec          *deployer.Plan `json:"spec" yaml:"spec"`
}

func planRows(p *deployer.Plan) []planRow {
	rows := make([]planRow, 0, p.Len())
	for _, c := range p.Commands() {
		rows = append(rows, planRow{
			Pool:      c.Pool,
			ID:        c.ID(),
			Kind:      c.Kind,
			Namespace: c.Namespace,
			Sleep:     c.Sleep,
		})
	}
	return rows
}

func generateCmd() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Write deployment manifests and scripts without applying them",
		Description: `Runs every component of the deployment file and writes the outputs tree:

  <output-dir>/services_output/resources/000__<name>.yml
  <output-dir>/services_output/000__<name>.sh
  <output-dir>/deploy_output/...

The outputs directory is cleared first, so generating twice gives the same tree.`,
		Flags: []cli.Flag{
			outputDirFlag(),
			&cli.StringFlag{
				Name:  "readiness",
				Usage: "Readiness mode written into scripts (sleep or wait)",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			d, err := buildDeployer(cfg, waiterOption(cfg, kubeOptions(cmd)))
			if err != nil {
				return err
			}

			plan, err := d.Materialize(ctx)
			if err != nil {
				return fmt.Errorf("failed to generate outputs: %w", err)
			}

			slog.Info("outputs generated",
				"dir", plan.OutputDir,
				"services", len(plan.Services),
				"microservices", len(plan.Microservices),
			)
			doc := planDocument{
				Header: header.New(header.KindPlan, header.WithVersion(version), header.WithRunID(plan.RunID)),
				Spec:   plan,
			}
			return writeResult(ctx, cmd, planRows(plan), doc)
		},
	}
}
