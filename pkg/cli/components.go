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

	"github.com/urfave/cli/v3"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/producer"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/provider"
)

type kindRow struct {
	Type string `json:"type" yaml:"type"`
	Kind string `json:"kind" yaml:"kind"`
}

func componentsCmd() *cli.Command {
	return &cli.Command{
		Name:  "components",
		Usage: "List the component and provider kinds a deployment file can use",
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var rows []kindRow
			for _, k := range producer.Kinds() {
				rows = append(rows, kindRow{Type: "component", Kind: k})
			}
			for _, k := range provider.Kinds() {
				rows = append(rows, kindRow{Type: "provider", Kind: k})
			}
			return writeResult(ctx, cmd, rows, rows)
		},
	}
}
