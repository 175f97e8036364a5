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
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/item"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/provider"
)

// Context carries run-wide collaborators to producers.
type Context struct {
	// Namespace is the run namespace.
	Namespace string
	// Provider is the cloud provider client. It may be nil.
	Provider provider.Client
}

// Producer yields deployment items for one component.
type Producer interface {
	Name() string
	Produce(ctx context.Context, pctx Context) ([]item.Item, error)
}

// Func adapts a function to the Producer interface.
type Func struct {
	ID string
	Fn func(ctx context.Context, pctx Context) ([]item.Item, error)
}

func (f Func) Name() string { return f.ID }

func (f Func) Produce(ctx context.Context, pctx Context) ([]item.Item, error) {
	return f.Fn(ctx, pctx)
}

// Static returns a producer that always yields items.
func Static(name string, items ...item.Item) Producer {
	return Func{ID: name, Fn: func(context.Context, Context) ([]item.Item, error) {
		return items, nil
	}}
}

// Factory builds a producer from its configured name and raw params.
type Factory func(name string, params map[string]any) (Producer, error)

var (
	globalFactories = make(map[string]Factory)
	globalMu        sync.RWMutex
)

// Register registers a factory for kind. Registering a kind twice is an error.
func Register(kind string, factory Factory) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if _, exists := globalFactories[kind]; exists {
		return fmt.Errorf("producer kind %s already registered", kind)
	}
	globalFactories[kind] = factory
	return nil
}

// MustRegister is Register for init functions; it panics on error.
func MustRegister(kind string, factory Factory) {
	if err := Register(kind, factory); err != nil {
		panic(err)
	}
}

// Kinds returns the registered kinds, sorted.
func Kinds() []string {
	globalMu.RLock()
	defer globalMu.RUnlock()

	kinds := make([]string, 0, len(globalFactories))
	for k := range globalFactories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// New builds a producer of the given kind.
func New(kind, name string, params map[string]any) (Producer, error) {
	globalMu.RLock()
	factory, ok := globalFactories[kind]
	globalMu.RUnlock()

	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown component kind %q", kind),
			map[string]any{"name": name, "registered": Kinds()})
	}
	p, err := factory(name, params)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid %s component %q", kind, name), err,
			map[string]any{"kind": kind, "name": name})
	}
	return p, nil
}

// DecodeParams decodes raw params into out, rejecting unknown keys.
func DecodeParams(params map[string]any, out any) error {
	if len(params) == 0 {
		return nil
	}
	data, err := yaml.Marshal(params)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "failed to encode params", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "failed to decode params", err)
	}
	return nil
}
