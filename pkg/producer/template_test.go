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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/item"
)

func TestTemplateProducer(t *testing.T) {
	p, err := New(KindTemplate, "dataloader", map[string]any{
		"values":   map[string]any{"version": "2.1", "db_port": 5432},
		"required": []any{"version", "db_port"},
		"items": []any{
			map[string]any{
				"type":     "deploy",
				"name":     "dataloader",
				"template": "image: pumpwood/dataloader:{{ .version }}\nport: {{ .db_port }}\nns: {{ .namespace }}",
				"sleep":    20,
			},
			map[string]any{
				"type":      "configmap_file",
				"name":      "dataloader-conf",
				"template":  "port={{ .db_port }}",
				"file_name": "loader.ini",
			},
		},
	})
	require.NoError(t, err)

	items, err := p.Produce(context.Background(), Context{Namespace: "prod"})
	require.NoError(t, err)
	require.Len(t, items, 2)

	m := items[0].(*item.Manifest)
	assert.Equal(t, item.KindDeploy, m.Kind())
	assert.Equal(t, "image: pumpwood/dataloader:2.1\nport: 5432\nns: prod", m.Content)
	assert.Equal(t, 20, m.SleepSeconds())

	cm := items[1].(*item.ConfigMapFile)
	assert.Equal(t, "port=5432", cm.Content)
	assert.Equal(t, "loader.ini", cm.PayloadName())
}

func TestTemplateProducerMissingKeyFailsRender(t *testing.T) {
	p, err := NewTemplateProducer("dataloader", TemplateConfig{
		Values: map[string]any{"db_port": 5432},
		Items: []TemplateItem{{
			Type:     item.KindDeploy,
			Name:     "dataloader",
			Template: "port: {{ .db_portdatalake_db_port }}",
		}},
	})
	require.NoError(t, err)

	_, err = p.Produce(context.Background(), Context{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
}

func TestNewTemplateProducerValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  TemplateConfig
	}{
		{"no items", TemplateConfig{}},
		{"required missing", TemplateConfig{
			Required: []string{"password"},
			Items:    []TemplateItem{{Type: item.KindSecrets, Name: "s", Template: "x"}},
		}},
		{"both template sources", TemplateConfig{
			Items: []TemplateItem{{Type: item.KindDeploy, Name: "d", Template: "x", TemplateFile: "y"}},
		}},
		{"secrets_file not templated", TemplateConfig{
			Items: []TemplateItem{{Type: item.KindSecretsFile, Name: "d", Template: "x"}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTemplateProducer("c", tt.cfg)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
		})
	}
}
