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

package gateway

import (
	"context"
	"fmt"
	"strings"

	"k8s.io/utils/ptr"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/components/internal"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/item"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/producer"
)

// Kind is the registry kind.
const Kind = "gateway"

// Upstream routes a path prefix to a cluster service.
type Upstream struct {
	Path    string `yaml:"path"`
	Service string `yaml:"service"`
	Port    int    `yaml:"port"`
}

// Config is the gateway component configuration.
type Config struct {
	Image             string     `yaml:"image"`
	Version           string     `yaml:"version"`
	Replicas          int        `yaml:"replicas"`
	ServerName        string     `yaml:"serverName"`
	TLSCertFile       string     `yaml:"tlsCertFile"`
	TLSKeyFile        string     `yaml:"tlsKeyFile"`
	ConfigFile        string     `yaml:"configFile"`
	Upstreams         []Upstream `yaml:"upstreams"`
	LoadBalancerIP    string     `yaml:"loadBalancerIP"`
	ClientMaxBodySize string     `yaml:"clientMaxBodySize"`
	ProxyTimeout      string     `yaml:"proxyTimeout"`
}

// Producer yields the gateway items.
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
	if (cfg.TLSCertFile == "") != (cfg.TLSKeyFile == "") {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "gateway needs both tlsCertFile and tlsKeyFile, or neither")
	}
	if cfg.ConfigFile == "" && len(cfg.Upstreams) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "gateway needs upstreams or a configFile")
	}
	for i, u := range cfg.Upstreams {
		if !strings.HasPrefix(u.Path, "/") || u.Service == "" || u.Port <= 0 || u.Port > 65535 {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("gateway upstream %d is invalid", i),
				map[string]any{"path": u.Path, "service": u.Service, "port": u.Port})
		}
	}

	if cfg.Image == "" {
		cfg.Image = "nginx"
	}
	if cfg.Version == "" {
		cfg.Version = "1.25-alpine"
	}
	if cfg.Replicas <= 0 {
		cfg.Replicas = 1
	}
	if cfg.ServerName == "" {
		cfg.ServerName = "_"
	}
	if cfg.ClientMaxBodySize == "" {
		cfg.ClientMaxBodySize = "100m"
	}
	if cfg.ProxyTimeout == "" {
		cfg.ProxyTimeout = "300s"
	}

	return &Producer{name: name, cfg: cfg, renderer: internal.NewRenderer(Kind, GetTemplate)}, nil
}

func (p *Producer) Name() string { return p.name }

type templateData struct {
	Config
	Name string
	TLS  bool
}

// Produce renders the items.
func (p *Producer) Produce(_ context.Context, _ producer.Context) ([]item.Item, error) {
	data := templateData{Config: p.cfg, Name: p.name, TLS: p.cfg.TLSCertFile != ""}

	var items []item.Item
	if data.TLS {
		items = append(items, item.NewSecretFile(p.name+"-tls", []string{
			"tls.crt=" + p.cfg.TLSCertFile,
			"tls.key=" + p.cfg.TLSKeyFile,
		}, ptr.To(2)))
	}

	conf := item.NewConfigMapFile(p.name+"-nginx", p.name+"-nginx.conf", "default.conf", "", ptr.To(2))
	if p.cfg.ConfigFile != "" {
		conf.FilePath = p.cfg.ConfigFile
	} else {
		body, err := p.renderer.Render("nginx.conf", data)
		if err != nil {
			return nil, err
		}
		conf.Content = body
	}
	items = append(items, conf)

	deployment, err := p.renderer.Render("deployment", data)
	if err != nil {
		return nil, err
	}
	lb, err := p.renderer.Render("loadbalancer", data)
	if err != nil {
		return nil, err
	}

	return append(items,
		item.NewManifest(item.KindDeploy, p.name, deployment, ptr.To(20)),
		item.NewManifest(item.KindServices, p.name+"-lb", lb, nil),
	), nil
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
