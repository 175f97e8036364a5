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

package deployer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/checksum"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/item"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/producer"
)

const resourcesDir = "resources"

// Materialize regenerates the output tree from every registered producer and
// queues one command per item. It stops at the first producer error or
// invalid item.
func (d *Deployer) Materialize(ctx context.Context) (*Plan, error) {
	start := time.Now()

	if err := checkOutputDir(d.outputDir); err != nil {
		return nil, err
	}

	plan := &Plan{
		RunID:     uuid.NewString(),
		OutputDir: d.outputDir,
		Namespace: d.namespace,
	}
	log := slog.With("run_id", plan.RunID)

	// The tree is about to be replaced; the previous plan no longer matches it.
	d.mu.Lock()
	d.plan = nil
	d.mu.Unlock()

	if err := resetOutputDir(d.outputDir); err != nil {
		return nil, err
	}

	producers := d.Producers()
	log.Info("materializing deployment items",
		"producers", len(producers),
		"output_dir", d.outputDir,
		"namespace", d.namespace,
	)

	batches, err := d.produce(ctx, producers)
	if err != nil {
		materializeTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	w := &writer{
		root:      d.outputDir,
		namespace: d.namespace,
		counters:  make(map[item.Pool]int, len(item.Pools)),
		seen:      make(map[item.Pool]map[string]string, len(item.Pools)),
		files:     make(map[item.Pool][]string, len(item.Pools)),
		log:       log,
	}

	for i, batch := range batches {
		for _, it := range batch {
			if err := ctx.Err(); err != nil {
				materializeTotal.WithLabelValues("error").Inc()
				return nil, errors.Wrap(errors.ErrCodeTimeout, "materialize interrupted", err)
			}
			cmd, err := w.write(it, producers[i].Name())
			if err != nil {
				materializeTotal.WithLabelValues("error").Inc()
				return nil, err
			}
			plan.add(cmd)
			itemsMaterialized.WithLabelValues(string(cmd.Pool), string(cmd.Kind)).Inc()
		}
	}

	for _, pool := range item.Pools {
		plan.Files = append(plan.Files, w.files[pool]...)
	}

	if d.checksums {
		for _, pool := range item.Pools {
			dir := filepath.Join(d.outputDir, pool.Dir())
			if err := checksum.Generate(ctx, dir, w.files[pool]); err != nil {
				materializeTotal.WithLabelValues("error").Inc()
				return nil, errors.Wrap(errors.ErrCodeInternal, "failed to write checksums", err)
			}
		}
	}

	d.mu.Lock()
	d.plan = plan
	d.mu.Unlock()

	materializeTotal.WithLabelValues("success").Inc()
	log.Info("materialize complete",
		"services", len(plan.Services),
		"microservices", len(plan.Microservices),
		"files", len(plan.Files),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return plan, nil
}

// checkOutputDir refuses roots that would wipe something the user did not
// ask for.
func checkOutputDir(dir string) error {
	clean := filepath.Clean(dir)
	if dir == "" || clean == "." || clean == string(filepath.Separator) {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("refusing to use %q as output directory", dir),
			map[string]any{"output_dir": dir})
	}
	if home, err := os.UserHomeDir(); err == nil && clean == filepath.Clean(home) {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"refusing to use the home directory as output directory",
			map[string]any{"output_dir": dir})
	}
	return nil
}

func resetOutputDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to clean %s", dir), err)
	}
	for _, pool := range item.Pools {
		p := filepath.Join(dir, pool.Dir(), resourcesDir)
		if err := os.MkdirAll(p, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to create %s", p), err)
		}
	}
	return nil
}

// produce invokes producers and returns their items in registration order.
func (d *Deployer) produce(ctx context.Context, producers []producer.Producer) ([][]item.Item, error) {
	pctx := producer.Context{Namespace: d.namespace, Provider: d.provider}
	batches := make([][]item.Item, len(producers))

	run := func(ctx context.Context, i int) error {
		p := producers[i]
		start := time.Now()
		items, err := p.Produce(ctx, pctx)
		produceDuration.WithLabelValues(p.Name()).Observe(time.Since(start).Seconds())
		if err != nil {
			return fmt.Errorf("producer %s: %w", p.Name(), err)
		}
		slog.Debug("producer finished", "producer", p.Name(), "items", len(items))
		batches[i] = items
		return nil
	}

	if d.concurrency <= 1 {
		for i := range producers {
			if err := run(ctx, i); err != nil {
				return nil, err
			}
		}
		return batches, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)
	for i := range producers {
		g.Go(func() error {
			return run(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return batches, nil
}

// writer writes items and assigns per-pool sequence numbers.
type writer struct {
	root      string
	namespace string
	counters  map[item.Pool]int
	seen      map[item.Pool]map[string]string
	files     map[item.Pool][]string
	log       *slog.Logger
}

func (w *writer) write(it item.Item, source string) (Command, error) {
	if it == nil {
		return Command{}, errors.NewWithContext(errors.ErrCodeInvalidRequest, "nil deployment item",
			map[string]any{"producer": source})
	}
	kind := it.Kind()
	if !kind.IsKnown() {
		return Command{}, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown deployment item type %q", kind),
			map[string]any{"producer": source, "name": it.ItemName()})
	}
	if err := item.Validate(it); err != nil {
		return Command{}, fmt.Errorf("producer %s: %w", source, err)
	}

	pool := kind.Pool()
	seq := w.counters[pool]
	w.counters[pool]++
	w.checkDuplicate(pool, it.ItemName(), source)

	poolDir := filepath.Join(w.root, pool.Dir())
	stem := fileStem(seq, it.ItemName())
	ns := it.TargetNamespace(w.namespace)

	cmd := Command{
		Pool:      pool,
		Seq:       seq,
		Name:      it.ItemName(),
		Kind:      kind,
		Namespace: ns,
		Script:    filepath.Join(poolDir, stem+".sh"),
		Sleep:     it.SleepSeconds(),
	}

	var script string
	switch v := it.(type) {
	case *item.Manifest:
		cmd.Manifest = filepath.Join(poolDir, resourcesDir, stem+".yml")
		if err := w.writeFile(pool, cmd.Manifest, []byte(v.Content), 0o644); err != nil {
			return Command{}, err
		}
		script = applyScript(cmd.Manifest, ns)
	case *item.SecretFile:
		script = secretScript(v.Name, v.Paths, ns)
	case *item.ConfigMapFile:
		cmd.Manifest = filepath.Join(poolDir, resourcesDir, v.PayloadName())
		if err := w.writePayload(pool, cmd.Manifest, v); err != nil {
			return Command{}, err
		}
		script = configMapScript(v.Name, v.KeyName, cmd.Manifest, ns)
	default:
		return Command{}, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported deployment item %T for type %q", it, kind),
			map[string]any{"producer": source, "name": it.ItemName()})
	}

	if err := w.writeFile(pool, cmd.Script, []byte(script), 0o644); err != nil {
		return Command{}, err
	}

	w.log.Debug("item materialized",
		"pool", pool,
		"seq", seq,
		"name", cmd.Name,
		"kind", kind,
		"script", cmd.Script,
	)
	return cmd, nil
}

func (w *writer) checkDuplicate(pool item.Pool, name, source string) {
	if w.seen[pool] == nil {
		w.seen[pool] = make(map[string]string)
	}
	if prev, ok := w.seen[pool][name]; ok {
		w.log.Warn("duplicate item name in pool",
			"pool", pool,
			"name", name,
			"producer", source,
			"previous_producer", prev,
		)
		return
	}
	w.seen[pool][name] = source
}

func (w *writer) writeFile(pool item.Pool, path string, data []byte, perm os.FileMode) error {
	if err := os.WriteFile(path, data, perm); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to write %s", path), err)
	}
	w.files[pool] = append(w.files[pool], path)
	return nil
}

// writePayload writes inline content, or copies file_path byte for byte.
func (w *writer) writePayload(pool item.Pool, dst string, c *item.ConfigMapFile) error {
	if c.FilePath == "" {
		return w.writeFile(pool, dst, []byte(c.Content), 0o644)
	}

	src, err := os.Open(c.FilePath)
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeNotFound,
			fmt.Sprintf("failed to open configmap source %s", c.FilePath), err,
			map[string]any{"name": c.Name})
	}
	defer src.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to create %s", dst), err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to copy %s", c.FilePath), err)
	}
	if err := out.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to close %s", dst), err)
	}
	w.files[pool] = append(w.files[pool], dst)
	return nil
}
