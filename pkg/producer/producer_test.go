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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/item"
)

func TestRegisterDuplicate(t *testing.T) {
	err := Register(KindItems, func(string, map[string]any) (Producer, error) { return nil, nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	assert.Panics(t, func() {
		MustRegister(KindTemplate, func(string, map[string]any) (Producer, error) { return nil, nil })
	})
}

func TestKindsIncludesBuiltins(t *testing.T) {
	kinds := Kinds()
	assert.Contains(t, kinds, KindItems)
	assert.Contains(t, kinds, KindTemplate)
	assert.IsNonDecreasing(t, kinds)
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New("kafka", "broker", nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "kafka")
}

func TestDecodeParams(t *testing.T) {
	type cfg struct {
		Version string `yaml:"version"`
		Port    int    `yaml:"port"`
	}

	var c cfg
	require.NoError(t, DecodeParams(map[string]any{"version": "1.2", "port": 5432}, &c))
	assert.Equal(t, cfg{Version: "1.2", Port: 5432}, c)

	err := DecodeParams(map[string]any{"versoin": "1.2"}, &c)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))

	require.NoError(t, DecodeParams(nil, &c))
}

func TestStaticAndFunc(t *testing.T) {
	a := item.NewManifest(item.KindSecrets, "a", "X", nil)
	p := Static("fixed", a)

	items, err := p.Produce(context.Background(), Context{})
	require.NoError(t, err)
	assert.Equal(t, "fixed", p.Name())
	assert.Equal(t, []item.Item{a}, items)
}

func TestFileProducer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- type: secrets
  name: a
  content: X
  sleep: 5
- type: deploy
  name: b
  content: Y
`), 0o600))

	p, err := New(KindItems, "raw", map[string]any{
		"path": path,
		"items": []any{
			map[string]any{"type": "services", "name": "lb", "content": "Z"},
		},
	})
	require.NoError(t, err)

	items, err := p.Produce(context.Background(), Context{Namespace: "ns"})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].ItemName())
	assert.Equal(t, "b", items[1].ItemName())
	assert.Equal(t, item.KindServices, items[2].Kind())
}

func TestFileProducerErrors(t *testing.T) {
	_, err := NewFileProducer("empty", FileConfig{})
	require.Error(t, err)

	p, err := NewFileProducer("missing", FileConfig{Path: filepath.Join(t.TempDir(), "nope.yaml")})
	require.NoError(t, err)
	_, err = p.Produce(context.Background(), Context{})
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))

	p, err = NewFileProducer("bad", FileConfig{Items: []item.Record{{Type: "ingress", Name: "x"}}})
	require.NoError(t, err)
	_, err = p.Produce(context.Background(), Context{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingress")
}
