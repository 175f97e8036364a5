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

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/item"
)

// Command is one queued script.
type Command struct {
	Pool      item.Pool `json:"pool" yaml:"pool"`
	Seq       int       `json:"seq" yaml:"seq"`
	Name      string    `json:"name" yaml:"name"`
	Kind      item.Kind `json:"kind" yaml:"kind"`
	Namespace string    `json:"namespace" yaml:"namespace"`
	// Script is the generated shell script.
	Script string `json:"script" yaml:"script"`
	// Manifest is the written manifest or payload file. Empty for secrets_file.
	Manifest string `json:"manifest,omitempty" yaml:"manifest,omitempty"`
	// Sleep is the delay in seconds after the command.
	Sleep int `json:"sleep" yaml:"sleep"`
}

// ID returns the "<seq>__<name>" stem shared by the script and manifest.
func (c Command) ID() string {
	return fileStem(c.Seq, c.Name)
}

func fileStem(seq int, name string) string {
	return fmt.Sprintf("%03d__%s", seq, name)
}

// Plan is the result of Materialize.
type Plan struct {
	RunID         string    `json:"runId" yaml:"runId"`
	OutputDir     string    `json:"outputDir" yaml:"outputDir"`
	Namespace     string    `json:"namespace" yaml:"namespace"`
	Services      []Command `json:"services" yaml:"services"`
	Microservices []Command `json:"microservices" yaml:"microservices"`
	// Files lists every written file in write order.
	Files []string `json:"files" yaml:"files"`
}

// Pool returns the commands queued for pool.
func (p *Plan) Pool(pool item.Pool) []Command {
	if pool == item.PoolServices {
		return p.Services
	}
	return p.Microservices
}

// Commands returns every command in execution order.
func (p *Plan) Commands() []Command {
	out := make([]Command, 0, len(p.Services)+len(p.Microservices))
	out = append(out, p.Services...)
	return append(out, p.Microservices...)
}

// Len returns the number of queued commands.
func (p *Plan) Len() int {
	return len(p.Services) + len(p.Microservices)
}

func (p *Plan) add(c Command) {
	if c.Pool == item.PoolServices {
		p.Services = append(p.Services, c)
		return
	}
	p.Microservices = append(p.Microservices, c)
}
