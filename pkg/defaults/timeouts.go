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

package defaults

import "time"

// Apply stage defaults.
const (
	// SleepSeconds is the pause after a command when an item leaves sleep unset.
	SleepSeconds = 10

	// Shell is the interpreter written into the shebang of generated scripts.
	Shell = "/bin/bash"

	// OutputDir is the root of the generated tree.
	OutputDir = "outputs"

	// Namespace is used when neither the config nor the item names one.
	Namespace = "default"
)

// Readiness polling defaults.
const (
	// ReadinessInitialInterval is the first backoff delay between readiness checks.
	ReadinessInitialInterval = 2 * time.Second

	// ReadinessMaxInterval caps the backoff delay between checks.
	ReadinessMaxInterval = 30 * time.Second

	// ReadinessSteps bounds the number of readiness checks per item.
	ReadinessSteps = 12

	// ReadinessTimeout bounds the total wait for a single item.
	ReadinessTimeout = 5 * time.Minute
)

// CLI timeouts for command-line operations.
const (
	// CLIPushTimeout is the default timeout for pushing the outputs artifact.
	CLIPushTimeout = 5 * time.Minute
)
