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

// Package runner executes external commands and reports their outcome.
//
// Every invocation yields a Result with the exit code, captured output and
// duration, so callers decide whether a failure stops the run.
//
//	r := runner.NewExecRunner(runner.WithOutput(os.Stdout))
//	res := r.Run(ctx, "/bin/bash", "outputs/deploy_output/000__db.sh")
//	if res.Failed() {
//	    slog.Error("script failed", "exit_code", res.ExitCode, "error", res.Err)
//	}
//
// Recorder is an in-memory Runner for tests.
package runner
