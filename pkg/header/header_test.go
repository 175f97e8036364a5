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

package header

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNew(t *testing.T) {
	h := New(KindPlan, WithVersion("v1.2.3"), WithRunID("run-1"), WithMetadata("empty", ""))

	assert.Equal(t, KindPlan, h.Kind)
	assert.Equal(t, APIVersion, h.APIVersion)
	assert.Equal(t, "v1.2.3", h.Metadata["version"])
	assert.Equal(t, "run-1", h.Metadata["run_id"])
	assert.NotContains(t, h.Metadata, "empty")

	_, err := time.Parse(time.RFC3339, h.Metadata["timestamp"])
	assert.NoError(t, err)
}

func TestKindIsValid(t *testing.T) {
	assert.True(t, KindPlan.IsValid())
	assert.True(t, KindReport.IsValid())
	assert.False(t, Kind("Recipe").IsValid())
}

func TestEmbeddedSerialization(t *testing.T) {
	doc := struct {
		Header `yaml:",inline"`
		Spec   string `json:"spec" yaml:"spec"`
	}{Header: New(KindReport), Spec: "x"}

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	var flat map[string]any
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal(t, "ApplyReport", flat["kind"])
	assert.Equal(t, "x", flat["spec"])

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "kind: ApplyReport\n")
	assert.Contains(t, string(out), "apiVersion: pumpwood.deploy/v1\n")
}
