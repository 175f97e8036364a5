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

package postgres

import (
	"context"

	"k8s.io/utils/ptr"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/components/internal"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/item"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/producer"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/provider"
)

const (
	// Kind is the registry kind.
	Kind = "postgres"

	defaultImage   = "postgres"
	defaultVersion = "15"
)

var defaultResources = internal.Resources{
	RequestsCPU:    "250m",
	RequestsMemory: "512Mi",
	LimitsCPU:      "2",
	LimitsMemory:   "4Gi",
}

// Config is the postgres component configuration.
type Config struct {
	Image          string             `yaml:"image"`
	Version        string             `yaml:"version"`
	User           string             `yaml:"user"`
	Password       string             `yaml:"password"`
	Database       string             `yaml:"database"`
	DiskName       string             `yaml:"diskName"`
	DiskSize       string             `yaml:"diskSize"`
	MaxConnections int                `yaml:"maxConnections"`
	SharedBuffers  string             `yaml:"sharedBuffers"`
	Resources      internal.Resources `yaml:"resources"`
}

// Producer yields the postgres items.
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
	if err := internal.RequireNonEmpty(Kind,
		"password", cfg.Password,
		"diskName", cfg.DiskName,
		"diskSize", cfg.DiskSize,
	); err != nil {
		return nil, err
	}
	if _, err := provider.ParseDiskSize(cfg.DiskSize); err != nil {
		return nil, err
	}

	if cfg.Image == "" {
		cfg.Image = defaultImage
	}
	if cfg.Version == "" {
		cfg.Version = defaultVersion
	}
	if cfg.User == "" {
		cfg.User = "pumpwood"
	}
	if cfg.Database == "" {
		cfg.Database = "pumpwood"
	}
	if cfg.MaxConnections == 0 {
		cfg.MaxConnections = 1000
	}
	if cfg.SharedBuffers == "" {
		cfg.SharedBuffers = "256MB"
	}
	cfg.Resources = cfg.Resources.WithDefaults(defaultResources)

	return &Producer{name: name, cfg: cfg, renderer: internal.NewRenderer(Kind, GetTemplate)}, nil
}

func (p *Producer) Name() string { return p.name }

type templateData struct {
	Config
	Name string
}

// Produce renders the items. It fails when no provider is configured.
func (p *Producer) Produce(_ context.Context, pctx producer.Context) ([]item.Item, error) {
	if pctx.Provider == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "postgres needs a cloud provider to create its volume")
	}
	data := templateData{Config: p.cfg, Name: p.name}

	secret, err := p.renderer.Render("secret", data)
	if err != nil {
		return nil, err
	}
	volume, err := pctx.Provider.VolumeManifest(provider.VolumeSpec{
		Name:      p.name + "-data",
		DiskName:  p.cfg.DiskName,
		DiskSize:  p.cfg.DiskSize,
		Namespace: pctx.Namespace,
	})
	if err != nil {
		return nil, err
	}
	deployment, err := p.renderer.Render("deployment", data)
	if err != nil {
		return nil, err
	}
	service, err := p.renderer.Render("service", data)
	if err != nil {
		return nil, err
	}

	return []item.Item{
		item.NewManifest(item.KindSecrets, p.name+"-secrets", secret, ptr.To(5)),
		item.NewManifest(item.KindVolume, p.name+"-volume", volume, ptr.To(10)),
		item.NewManifest(item.KindDeploy, p.name, deployment, ptr.To(30)),
		item.NewManifest(item.KindDeploy, p.name+"-service", service, nil),
	}, nil
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
