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
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/item"
)

// KindItems is the registry kind of FileProducer.
const KindItems = "items"

// FileConfig is the params of an items component.
type FileConfig struct {
	// Path is a YAML file holding a list of item records.
	Path string `yaml:"path"`
	// Items are inline records, produced after the ones in Path.
	Items []item.Record `yaml:"items"`
}

// FileProducer yields raw item records.
type FileProducer struct {
	name string
	cfg  FileConfig
}

// NewFileProducer returns a producer for raw item records.
func NewFileProducer(name string, cfg FileConfig) (*FileProducer, error) {
	if cfg.Path == "" && len(cfg.Items) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "items component needs path or items")
	}
	return &FileProducer{name: name, cfg: cfg}, nil
}

func (p *FileProducer) Name() string { return p.name }

// Produce reads the file, if any, and decodes every record in order.
func (p *FileProducer) Produce(ctx context.Context, _ Context) ([]item.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []item.Record
	if p.cfg.Path != "" {
		data, err := os.ReadFile(p.cfg.Path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNotFound, fmt.Sprintf("failed to read items file %s", p.cfg.Path), err)
		}
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRequest, fmt.Sprintf("failed to parse items file %s", p.cfg.Path), err)
		}
	}
	records = append(records, p.cfg.Items...)

	items := make([]item.Item, 0, len(records))
	for i, rec := range records {
		it, err := rec.Decode()
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid item %d of %s", i, p.name), err,
				map[string]any{"index": i})
		}
		items = append(items, it)
	}
	return items, nil
}

func init() {
	MustRegister(KindItems, func(name string, params map[string]any) (Producer, error) {
		var cfg FileConfig
		if err := DecodeParams(params, &cfg); err != nil {
			return nil, err
		}
		return NewFileProducer(name, cfg)
	})
}
