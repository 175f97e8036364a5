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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
)

func TestRenderString(t *testing.T) {
	e := NewEngine(Options{})

	out, err := e.RenderString("secret", `password: {{ .password | b64enc }}`, map[string]any{"password": "pw"})
	require.NoError(t, err)
	assert.Equal(t, "password: cHc=", out)
}

func TestRenderStringMissingKey(t *testing.T) {
	e := NewEngine(Options{})

	_, err := e.RenderString("db", `port: {{ .db_portdatalake_db_port }}`, map[string]any{"db_port": 5432})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "db_portdatalake_db_port")
}

func TestRenderStringAllowMissing(t *testing.T) {
	e := NewEngine(Options{AllowMissing: true})

	out, err := e.RenderString("db", `port: {{ .port | default 5432 }}`, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "port: 5432", out)
}

func TestRenderStringParseError(t *testing.T) {
	_, err := NewEngine(Options{}).RenderString("bad", `{{ .x `, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse template bad")
}

func TestCustomFuncs(t *testing.T) {
	e := NewEngine(Options{Funcs: template.FuncMap{"shout": strings.ToUpper}})

	out, err := e.RenderString("f", `{{ shout .name }}`, map[string]any{"name": "pumpwood"})
	require.NoError(t, err)
	assert.Equal(t, "PUMPWOOD", out)
}

func TestRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svc.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("name: {{ .name }}"), 0o600))

	out, err := NewEngine(Options{}).RenderFile(path, map[string]any{"name": "gateway"})
	require.NoError(t, err)
	assert.Equal(t, "name: gateway", out)

	_, err = NewEngine(Options{}).RenderFile(filepath.Join(t.TempDir(), "missing"), nil)
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
}

func TestRequire(t *testing.T) {
	values := map[string]any{"a": "x", "b": "", "c": nil, "d": 0}

	assert.NoError(t, Require(values, "a", "d"))

	err := Require(values, "a", "b", "c", "e")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b, c, e")
}
