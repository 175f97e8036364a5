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

package render

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
)

// Options configure an Engine.
type Options struct {
	// Funcs are merged over the sprig functions.
	Funcs template.FuncMap
	// AllowMissing renders missing keys as zero values instead of failing.
	AllowMissing bool
}

// Engine renders templates.
type Engine struct {
	funcs       template.FuncMap
	missingKeys string
}

// NewEngine returns an engine with sprig functions and strict missing keys.
func NewEngine(opts Options) *Engine {
	fm := sprig.TxtFuncMap()
	for k, v := range opts.Funcs {
		fm[k] = v
	}
	mk := "missingkey=error"
	if opts.AllowMissing {
		mk = "missingkey=zero"
	}
	return &Engine{funcs: fm, missingKeys: mk}
}

// RenderString renders tpl with data.
func (e *Engine) RenderString(name, tpl string, data any) (string, error) {
	t, err := template.New(name).Option(e.missingKeys).Funcs(e.funcs).Parse(tpl)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidRequest, fmt.Sprintf("failed to parse template %s", name), err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidRequest, fmt.Sprintf("failed to render template %s", name), err)
	}
	return buf.String(), nil
}

// RenderFile reads path and renders it with data.
func (e *Engine) RenderFile(path string, data any) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeNotFound, fmt.Sprintf("failed to read template %s", path), err)
	}
	return e.RenderString(path, string(b), data)
}

// Require returns an error listing every key that is absent or empty in
// values.
func Require(values map[string]any, keys ...string) error {
	var missing []string
	for _, k := range keys {
		v, ok := values[k]
		if !ok || v == nil {
			missing = append(missing, k)
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return errors.NewWithContext(errors.ErrCodeInvalidRequest,
		fmt.Sprintf("missing required parameters: %s", strings.Join(missing, ", ")),
		map[string]any{"missing": missing})
}
