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
	"strings"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/runner"
)

// BootstrapCommands returns the commands Bootstrap runs: provider
// credentials, namespace creation, then switching the current context to the
// namespace.
func (d *Deployer) BootstrapCommands() [][]string {
	var cmds [][]string
	if d.provider != nil {
		cmds = append(cmds, d.provider.BootstrapCommands()...)
	}
	return append(cmds,
		[]string{"kubectl", "create", "namespace", d.namespace},
		[]string{"kubectl", "config", "set-context", "--current", "--namespace=" + d.namespace},
	)
}

// Bootstrap prepares the cluster for Apply. A namespace that already exists
// is not a failure. Other failures follow the deployer policy.
func (d *Deployer) Bootstrap(ctx context.Context) ([]runner.Result, error) {
	cmds := d.BootstrapCommands()
	results := make([]runner.Result, 0, len(cmds))

	slog.Info("bootstrapping cluster", "namespace", d.namespace, "commands", len(cmds))

	for _, c := range cmds {
		if err := ctx.Err(); err != nil {
			return results, errors.Wrap(errors.ErrCodeTimeout, "bootstrap interrupted", err)
		}

		res := d.runner.Run(ctx, c[0], c[1:]...)
		if res.Failed() && isNamespaceCreate(c) && strings.Contains(res.Output, "AlreadyExists") {
			slog.Info("namespace already exists", "namespace", d.namespace)
			res.Err = nil
			res.ExitCode = 0
		}
		results = append(results, res)

		if !res.Failed() {
			continue
		}
		slog.Error("bootstrap command failed", "command", res.String(), "exit_code", res.ExitCode, "error", res.Err)
		if d.policy == PolicyAbort {
			return results, errors.WrapWithContext(errors.ErrCodeExecFailed,
				fmt.Sprintf("bootstrap command %q failed", res.String()), res.Err,
				map[string]any{"exit_code": res.ExitCode})
		}
	}
	return results, nil
}

func isNamespaceCreate(c []string) bool {
	return len(c) >= 3 && c[0] == "kubectl" && c[1] == "create" && c[2] == "namespace"
}
