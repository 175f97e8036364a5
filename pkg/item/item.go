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
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/defaults"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
)

// Item is a single deployment item.
type Item interface {
	// Kind returns the item kind, which also determines its pool.
	Kind() Kind
	// ItemName returns the name used to derive output file names.
	ItemName() string
	// SleepSeconds returns the delay after applying the item.
	SleepSeconds() int
	// TargetNamespace returns the item namespace, or def when unset.
	TargetNamespace(def string) string
}

// common holds the fields every variant shares.
type common struct {
	Name      string
	Sleep     *int
	Namespace string
}

func (c common) ItemName() string { return c.Name }

func (c common) SleepSeconds() int {
	if c.Sleep == nil {
		return defaults.SleepSeconds
	}
	return *c.Sleep
}

func (c common) TargetNamespace(def string) string {
	if c.Namespace != "" {
		return c.Namespace
	}
	return def
}

// Manifest is an item whose content is written to a file and applied.
type Manifest struct {
	common
	ItemKind Kind
	Content  string
}

// NewManifest returns a manifest item. kind must be a manifest kind.
func NewManifest(kind Kind, name, content string, sleep *int) *Manifest {
	return &Manifest{
		common:   common{Name: name, Sleep: sleep},
		ItemKind: kind,
		Content:  content,
	}
}

func (m *Manifest) Kind() Kind { return m.ItemKind }

// InNamespace overrides the run namespace for this item.
func (m *Manifest) InNamespace(ns string) *Manifest {
	m.Namespace = ns
	return m
}

// SecretFile is a secret created from local files with kubectl create secret.
type SecretFile struct {
	common
	// Paths holds "key=path" entries. Entries without a key use the file name.
	Paths []string
}

// NewSecretFile returns a secrets_file item.
func NewSecretFile(name string, paths []string, sleep *int) *SecretFile {
	return &SecretFile{
		common: common{Name: name, Sleep: sleep},
		Paths:  paths,
	}
}

func (s *SecretFile) Kind() Kind { return KindSecretsFile }

// InNamespace overrides the run namespace for this item.
func (s *SecretFile) InNamespace(ns string) *SecretFile {
	s.Namespace = ns
	return s
}

// ConfigMapFile is a config map created from a payload file.
type ConfigMapFile struct {
	common
	// Content is the payload. Ignored when FilePath is set.
	Content string
	// FilePath is a local file copied byte for byte as the payload.
	FilePath string
	// FileName is the payload file name under resources.
	FileName string
	// KeyName scopes the payload to a single config map key.
	KeyName string
}

// NewConfigMapFile returns a configmap_file item with an inline payload.
func NewConfigMapFile(name, fileName, keyName, content string, sleep *int) *ConfigMapFile {
	return &ConfigMapFile{
		common:   common{Name: name, Sleep: sleep},
		Content:  content,
		FileName: fileName,
		KeyName:  keyName,
	}
}

func (c *ConfigMapFile) Kind() Kind { return KindConfigMapFile }

// InNamespace overrides the run namespace for this item.
func (c *ConfigMapFile) InNamespace(ns string) *ConfigMapFile {
	c.Namespace = ns
	return c
}

// sequencedName matches the <seq>__ prefix of generated manifest files.
var sequencedName = regexp.MustCompile(`^[0-9]+__`)

// PayloadName returns the file name for the payload: FileName, else the base
// name of FilePath, else the item name.
func (c *ConfigMapFile) PayloadName() string {
	if c.FileName != "" {
		return c.FileName
	}
	if c.FilePath != "" {
		return filepath.Base(c.FilePath)
	}
	return c.Name
}

// Validate checks the fields every deployer path relies on.
func Validate(it Item) error {
	if it == nil {
		return errors.New(errors.ErrCodeInvalidRequest, "nil deployment item")
	}
	name := it.ItemName()
	if strings.TrimSpace(name) == "" {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "deployment item name is empty",
			map[string]any{"kind": string(it.Kind())})
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("deployment item name %q is not a valid file name", name),
			map[string]any{"kind": string(it.Kind())})
	}
	if s := it.SleepSeconds(); s < 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("deployment item %q has negative sleep %d", name, s),
			map[string]any{"kind": string(it.Kind())})
	}

	switch v := it.(type) {
	case *Manifest:
		if !v.ItemKind.IsManifest() {
			return errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("item %q has kind %q which does not carry a manifest", name, v.ItemKind))
		}
	case *SecretFile:
		if len(v.Paths) == 0 {
			return errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("secrets_file item %q has no paths", name))
		}
	case *ConfigMapFile:
		if v.Content == "" && v.FilePath == "" {
			return errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("configmap_file item %q needs content or file_path", name))
		}
		fn := v.PayloadName()
		if strings.ContainsAny(fn, `/\`) || fn == "." || fn == ".." {
			return errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("configmap_file item %q has invalid file name %q", name, fn))
		}
		if sequencedName.MatchString(fn) {
			return errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("configmap_file item %q file name %q collides with generated manifest names", name, fn))
		}
	}
	return nil
}
