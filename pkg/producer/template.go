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

package producer

import (
	"context"
	"fmt"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/item"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/render"
)

// KindTemplate is the registry kind of TemplateProducer.
const KindTemplate = "template"

// TemplateItem is one item rendered from a template.
type TemplateItem struct {
	Type         item.Kind `yaml:"type"`
	Name         string    `yaml:"name"`
	Template     string    `yaml:"template"`
	TemplateFile string    `yaml:"templateFile"`
	Sleep        *int      `yaml:"sleep"`
	Namespace    string    `yaml:"namespace"`
	// FileName and KeyName apply to configmap_file items.
	FileName string `yaml:"file_name"`
	KeyName  string `yaml:"keyname"`
}

// TemplateConfig is the params of a template component.
type TemplateConfig struct {
	// Values are passed to every template.
	Values map[string]any `yaml:"values"`
	// Required lists value keys that must be present and non-empty.
	Required []string       `yaml:"required"`
	Items    []TemplateItem `yaml:"items"`
}

// TemplateProducer renders manifest and configmap_file items from templates.
type TemplateProducer struct {
	name   string
	cfg    TemplateConfig
	engine *render.Engine
}

// NewTemplateProducer validates cfg and returns the producer. Required values
// are checked here so a missing key fails at construction.
func NewTemplateProducer(name string, cfg TemplateConfig) (*TemplateProducer, error) {
	if len(cfg.Items) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "template component has no items")
	}
	if err := render.Require(cfg.Values, cfg.Required...); err != nil {
		return nil, err
	}
	for i, ti := range cfg.Items {
		if (ti.Template == "") == (ti.TemplateFile == "") {
			return nil, errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("template item %d (%s) needs exactly one of template or templateFile", i, ti.Name))
		}
		if !ti.Type.IsManifest() && ti.Type != item.KindConfigMapFile {
			return nil, errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("template item %d (%s) has unsupported type %q", i, ti.Name, ti.Type))
		}
	}
	return &TemplateProducer{name: name, cfg: cfg, engine: render.NewEngine(render.Options{})}, nil
}

func (p *TemplateProducer) Name() string { return p.name }

// Produce renders every item with the configured values plus namespace.
func (p *TemplateProducer) Produce(ctx context.Context, pctx Context) ([]item.Item, error) {
	data := make(map[string]any, len(p.cfg.Values)+1)
	for k, v := range p.cfg.Values {
		data[k] = v
	}
	if _, ok := data["namespace"]; !ok {
		data["namespace"] = pctx.Namespace
	}

	items := make([]item.Item, 0, len(p.cfg.Items))
	for _, ti := range p.cfg.Items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var (
			body string
			err  error
		)
		if ti.TemplateFile != "" {
			body, err = p.engine.RenderFile(ti.TemplateFile, data)
		} else {
			body, err = p.engine.RenderString(p.name+"/"+ti.Name, ti.Template, data)
		}
		if err != nil {
			return nil, err
		}

		var it item.Item
		if ti.Type == item.KindConfigMapFile {
			it = item.NewConfigMapFile(ti.Name, ti.FileName, ti.KeyName, body, ti.Sleep).InNamespace(ti.Namespace)
		} else {
			it = item.NewManifest(ti.Type, ti.Name, body, ti.Sleep).InNamespace(ti.Namespace)
		}
		if err := item.Validate(it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func init() {
	MustRegister(KindTemplate, func(name string, params map[string]any) (Producer, error) {
		var cfg TemplateConfig
		if err := DecodeParams(params, &cfg); err != nil {
			return nil, err
		}
		return NewTemplateProducer(name, cfg)
	})
}
