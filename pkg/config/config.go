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

package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/defaults"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/provider"
)

// Readiness modes.
const (
	// ModeSleep sleeps a fixed time after each command.
	ModeSleep = "sleep"
	// ModeWait polls the cluster until the applied objects are ready.
	ModeWait = "wait"
)

// Config is a deployment file.
type Config struct {
	Namespace   string           `yaml:"namespace"`
	OutputDir   string           `yaml:"outputDir"`
	Provider    *provider.Config `yaml:"provider,omitempty"`
	Apply       Apply            `yaml:"apply"`
	Concurrency int              `yaml:"concurrency"`
	Checksums   *bool            `yaml:"checksums,omitempty"`
	Components  []Component      `yaml:"components"`
}

// Apply configures command execution.
type Apply struct {
	Policy    string    `yaml:"policy"`
	Shell     string    `yaml:"shell"`
	Readiness Readiness `yaml:"readiness"`
}

// Readiness configures the wait after each command.
type Readiness struct {
	Mode            string        `yaml:"mode"`
	Timeout         time.Duration `yaml:"timeout"`
	InitialInterval time.Duration `yaml:"initialInterval"`
	MaxInterval     time.Duration `yaml:"maxInterval"`
	Steps           int           `yaml:"steps"`
}

// Component is one producer entry.
type Component struct {
	Kind   string         `yaml:"kind"`
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params"`
}

// Load reads, decodes and validates the deployment file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, fmt.Sprintf("failed to open config %s", path), err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode strictly decodes a deployment file, applies defaults and validates it.
func Decode(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to read config", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to parse config", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Namespace == "" {
		c.Namespace = defaults.Namespace
	}
	if c.OutputDir == "" {
		c.OutputDir = defaults.OutputDir
	}
	if c.Apply.Policy == "" {
		c.Apply.Policy = "continue"
	}
	if c.Apply.Shell == "" {
		c.Apply.Shell = defaults.Shell
	}
	r := &c.Apply.Readiness
	if r.Mode == "" {
		r.Mode = ModeSleep
	}
	if r.Timeout == 0 {
		r.Timeout = defaults.ReadinessTimeout
	}
	if r.InitialInterval == 0 {
		r.InitialInterval = defaults.ReadinessInitialInterval
	}
	if r.MaxInterval == 0 {
		r.MaxInterval = defaults.ReadinessMaxInterval
	}
	if r.Steps == 0 {
		r.Steps = defaults.ReadinessSteps
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 1
	}
	for i := range c.Components {
		if c.Components[i].Name == "" {
			c.Components[i].Name = c.Components[i].Kind
		}
	}
}

// ChecksumsEnabled reports whether checksum files are written. Default true.
func (c *Config) ChecksumsEnabled() bool {
	return c.Checksums == nil || *c.Checksums
}

// Validate reports every problem in the file at once.
func (c *Config) Validate() error {
	var problems []string

	switch strings.ToLower(c.Apply.Policy) {
	case "continue", "abort":
	default:
		problems = append(problems, fmt.Sprintf("apply.policy %q must be continue or abort", c.Apply.Policy))
	}

	r := c.Apply.Readiness
	switch r.Mode {
	case ModeSleep, ModeWait:
	default:
		problems = append(problems, fmt.Sprintf("apply.readiness.mode %q must be %s or %s", r.Mode, ModeSleep, ModeWait))
	}
	if r.Timeout < 0 || r.InitialInterval < 0 || r.MaxInterval < 0 || r.Steps < 0 {
		problems = append(problems, "apply.readiness values must not be negative")
	}

	if c.Provider != nil && c.Provider.Kind == "" {
		problems = append(problems, "provider.kind is required when provider is set")
	}

	if len(c.Components) == 0 {
		problems = append(problems, "at least one component is required")
	}
	seen := make(map[string]int, len(c.Components))
	for i, comp := range c.Components {
		if comp.Kind == "" {
			problems = append(problems, fmt.Sprintf("components[%d].kind is required", i))
		}
		if prev, ok := seen[comp.Name]; ok {
			problems = append(problems, fmt.Sprintf("components[%d] reuses name %q from components[%d]", i, comp.Name, prev))
			continue
		}
		seen[comp.Name] = i
	}

	if len(problems) > 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"invalid config: "+strings.Join(problems, "; "),
			map[string]any{"problems": len(problems)})
	}
	return nil
}
