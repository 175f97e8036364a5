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

// Package internal holds helpers shared by the component producers.
package internal

import (
	"fmt"
	"strings"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/render"
)

// TemplateFunc looks up an embedded template by name.
type TemplateFunc func(name string) (string, bool)

// NewTemplateGetter returns a TemplateFunc over a fixed set of templates.
func NewTemplateGetter(templates map[string]string) TemplateFunc {
	return func(name string) (string, bool) {
		tmpl, ok := templates[name]
		return tmpl, ok
	}
}

// Renderer renders a component's embedded templates.
type Renderer struct {
	Component string
	Get       TemplateFunc
	engine    *render.Engine
}

// NewRenderer returns a renderer with a strict engine.
func NewRenderer(component string, get TemplateFunc) *Renderer {
	return &Renderer{Component: component, Get: get, engine: render.NewEngine(render.Options{})}
}

// Render renders the named template with data.
func (r *Renderer) Render(name string, data any) (string, error) {
	tmpl, ok := r.Get(name)
	if !ok {
		return "", errors.New(errors.ErrCodeNotFound,
			fmt.Sprintf("%s template %q not found", r.Component, name))
	}
	return r.engine.RenderString(r.Component+"/"+name, tmpl, data)
}

// RequireNonEmpty returns an InvalidRequest error naming every empty field.
// fields alternates name and value.
func RequireNonEmpty(component string, fields ...string) error {
	var missing []string
	for i := 0; i+1 < len(fields); i += 2 {
		if strings.TrimSpace(fields[i+1]) == "" {
			missing = append(missing, fields[i])
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return errors.NewWithContext(errors.ErrCodeInvalidRequest,
		fmt.Sprintf("%s requires %s", component, strings.Join(missing, ", ")),
		map[string]any{"missing": missing})
}

// Resources are container requests and limits.
type Resources struct {
	RequestsCPU    string `yaml:"requestsCpu"`
	RequestsMemory string `yaml:"requestsMemory"`
	LimitsCPU      string `yaml:"limitsCpu"`
	LimitsMemory   string `yaml:"limitsMemory"`
}

// WithDefaults fills empty fields from def.
func (r Resources) WithDefaults(def Resources) Resources {
	if r.RequestsCPU == "" {
		r.RequestsCPU = def.RequestsCPU
	}
	if r.RequestsMemory == "" {
		r.RequestsMemory = def.RequestsMemory
	}
	if r.LimitsCPU == "" {
		r.LimitsCPU = def.LimitsCPU
	}
	if r.LimitsMemory == "" {
		r.LimitsMemory = def.LimitsMemory
	}
	return r
}
