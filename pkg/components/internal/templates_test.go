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

package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
)

func TestRenderer(t *testing.T) {
	r := NewRenderer("demo", NewTemplateGetter(map[string]string{
		"secret.yaml": "name: {{ .Name }}",
	}))

	out, err := r.Render("secret.yaml", struct{ Name string }{"db"})
	require.NoError(t, err)
	assert.Equal(t, "name: db", out)

	_, err = r.Render("missing.yaml", nil)
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))

	_, err = r.Render("secret.yaml", struct{ Other string }{"x"})
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
}

func TestRequireNonEmpty(t *testing.T) {
	assert.NoError(t, RequireNonEmpty("postgres", "password", "pw", "diskName", "d"))

	err := RequireNonEmpty("postgres", "password", "", "diskName", " ", "diskSize", "10Gi")
	require.Error(t, err)
	assert.Equal(t, "[INVALID_REQUEST] postgres requires password, diskName", err.Error())
}

func TestResourcesWithDefaults(t *testing.T) {
	got := Resources{LimitsCPU: "2"}.WithDefaults(Resources{RequestsCPU: "100m", RequestsMemory: "128Mi", LimitsCPU: "1", LimitsMemory: "1Gi"})
	assert.Equal(t, Resources{RequestsCPU: "100m", RequestsMemory: "128Mi", LimitsCPU: "2", LimitsMemory: "1Gi"}, got)
}
