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

package rabbitmq

import (
	"context"

	"k8s.io/utils/ptr"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/components/internal"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/item"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/producer"
)

// Kind is the registry kind.
const Kind = "rabbitmq"

var defaultResources = internal.Resources{
	RequestsCPU:    "100m",
	RequestsMemory: "256Mi",
	LimitsCPU:      "1",
	LimitsMemory:   "1Gi",
}

// Config is the rabbitmq component configuration.
type Config struct {
	Image               string             `yaml:"image"`
	Version             string             `yaml:"version"`
	User                string             `yaml:"user"`
	Password            string             `yaml:"password"`
	Replicas            int                `yaml:"replicas"`
	LoadBalancer        bool               `yaml:"loadBalancer"`
	LoadBalancerIP      string             `yaml:"loadBalancerIP"`
	AllowedSourceRanges []string           `yaml:"allowedSourceRanges"`
	Resources           internal.Resources `yaml:"resources"`
}

// Producer yields the rabbitmq items.
type Producer struct {
	name     string
	cfg      Config
	renderer *internal.Renderer
}

// New validates cfg, applies defaults and returns the producer.
func New(name string, cfg Config) (*Producer, error) {
	if name == "" {
		name = Kind
	}
	if err := internal.RequireNonEmpty(Kind, "password", cfg.Password); err != nil {
		return nil, err
	}
	if cfg.Replicas < 0 {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "rabbitmq replicas must not be negative")
	}
	if !cfg.LoadBalancer && (cfg.LoadBalancerIP != "" || len(cfg.AllowedSourceRanges) > 0) {
		return nil, errors.New(errors.ErrCodeInvalidRequest,
			"rabbitmq loadBalancerIP and allowedSourceRanges need loadBalancer: true")
	}

	if cfg.Image == "" {
		cfg.Image = "rabbitmq"
	}
	if cfg.Version == "" {
		cfg.Version = "3.12-management"
	}
	if cfg.User == "" {
		cfg.User = "pumpwood"
	}
	if cfg.Replicas == 0 {
		cfg.Replicas = 1
	}
	cfg.Resources = cfg.Resources.WithDefaults(defaultResources)

	return &Producer{name: name, cfg: cfg, renderer: internal.NewRenderer(Kind, GetTemplate)}, nil
}

func (p *Producer) Name() string { return p.name }

type templateData struct {
	Config
	Name string
}

// Produce renders the items.
func (p *Producer) Produce(_ context.Context, _ producer.Context) ([]item.Item, error) {
	data := templateData{Config: p.cfg, Name: p.name}

	secret, err := p.renderer.Render("secret", data)
	if err != nil {
		return nil, err
	}
	deployment, err := p.renderer.Render("deployment", data)
	if err != nil {
		return nil, err
	}

	items := []item.Item{
		item.NewManifest(item.KindSecrets, p.name+"-secrets", secret, ptr.To(5)),
		item.NewManifest(item.KindDeploy, p.name, deployment, ptr.To(30)),
	}

	if p.cfg.LoadBalancer {
		lb, err := p.renderer.Render("loadbalancer", data)
		if err != nil {
			return nil, err
		}
		items = append(items, item.NewManifest(item.KindServices, p.name+"-lb", lb, nil))
	}
	return items, nil
}

func init() {
	producer.MustRegister(Kind, func(name string, params map[string]any) (producer.Producer, error) {
		var cfg Config
		if err := producer.DecodeParams(params, &cfg); err != nil {
			return nil, err
		}
		return New(name, cfg)
	})
}
