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

package item

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
)

// Record is the untyped form of a deployment item as it appears in YAML.
type Record struct {
	Type      Kind       `yaml:"type" json:"type"`
	Name      string     `yaml:"name" json:"name"`
	Content   string     `yaml:"content,omitempty" json:"content,omitempty"`
	Path      StringList `yaml:"path,omitempty" json:"path,omitempty"`
	Sleep     *int       `yaml:"sleep,omitempty" json:"sleep,omitempty"`
	Namespace string     `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	FileName  string     `yaml:"file_name,omitempty" json:"file_name,omitempty"`
	KeyName   string     `yaml:"keyname,omitempty" json:"keyname,omitempty"`
	FilePath  string     `yaml:"file_path,omitempty" json:"file_path,omitempty"`
}

// StringList decodes from either a scalar string or a sequence of strings.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		if s == "" {
			*l = nil
			return nil
		}
		*l = StringList{s}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*l = list
		return nil
	default:
		return fmt.Errorf("path must be a string or a list of strings, line %d", node.Line)
	}
}

// Decode converts the record into its typed variant.
func (r Record) Decode() (Item, error) {
	var it Item
	switch {
	case r.Type.IsManifest():
		m := NewManifest(r.Type, r.Name, r.Content, r.Sleep)
		m.Namespace = r.Namespace
		it = m
	case r.Type == KindSecretsFile:
		s := NewSecretFile(r.Name, []string(r.Path), r.Sleep)
		s.Namespace = r.Namespace
		it = s
	case r.Type == KindConfigMapFile:
		c := NewConfigMapFile(r.Name, r.FileName, r.KeyName, r.Content, r.Sleep)
		c.FilePath = r.FilePath
		c.Namespace = r.Namespace
		it = c
	default:
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown deployment item type %q", r.Type),
			map[string]any{"name": r.Name})
	}
	if err := Validate(it); err != nil {
		return nil, err
	}
	return it, nil
}

// ToRecord converts a typed item back to its record form.
func ToRecord(it Item) Record {
	r := Record{Type: it.Kind(), Name: it.ItemName()}
	switch v := it.(type) {
	case *Manifest:
		r.Content = v.Content
		r.Sleep = v.Sleep
		r.Namespace = v.Namespace
	case *SecretFile:
		r.Path = StringList(v.Paths)
		r.Sleep = v.Sleep
		r.Namespace = v.Namespace
	case *ConfigMapFile:
		r.Content = v.Content
		r.FilePath = v.FilePath
		r.FileName = v.FileName
		r.KeyName = v.KeyName
		r.Sleep = v.Sleep
		r.Namespace = v.Namespace
	}
	return r
}

// DecodeAll decodes a YAML sequence of records into typed items, stopping at
// the first invalid record.
func DecodeAll(data []byte) ([]Item, error) {
	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to parse deployment items", err)
	}
	items := make([]Item, 0, len(records))
	for i, rec := range records {
		it, err := rec.Decode()
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid deployment item at index %d", i), err,
				map[string]any{"index": i})
		}
		items = append(items, it)
	}
	return items, nil
}
