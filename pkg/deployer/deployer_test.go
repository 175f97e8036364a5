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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/item"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/producer"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/runner"
)

func newTestDeployer(t *testing.T, opts ...Option) (*Deployer, *runner.Recorder, string) {
	t.Helper()
	out := filepath.Join(t.TempDir(), "outputs")
	rec := runner.NewRecorder()
	base := []Option{
		WithOutputDir(out),
		WithRunner(rec),
		WithNamespace("pumpwood"),
	}
	return New(append(base, opts...)...), rec, out
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// snapshot returns every file under root keyed by relative path.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files[rel] = readFile(t, path)
		return nil
	})
	require.NoError(t, err)
	return files
}

func names(cmds []Command) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.ID()
	}
	return out
}

func TestMaterializeExampleScenario(t *testing.T) {
	d, _, out := newTestDeployer(t)
	d.Register(producer.Static("example",
		item.NewManifest(item.KindSecrets, "a", "X", ptr.To(5)),
		item.NewManifest(item.KindDeploy, "b", "Y", nil),
	))

	plan, err := d.Materialize(context.Background())
	require.NoError(t, err)

	res := filepath.Join(out, "deploy_output", "resources")
	assert.Equal(t, "X", readFile(t, filepath.Join(res, "000__a.yml")))
	assert.Equal(t, "Y", readFile(t, filepath.Join(res, "001__b.yml")))

	require.Len(t, plan.Microservices, 2)
	assert.Empty(t, plan.Services)
	assert.Equal(t, 5, plan.Microservices[0].Sleep)
	assert.Equal(t, 10, plan.Microservices[1].Sleep)

	_, err = d.Apply(context.Background())
	require.NoError(t, err)

	script := readFile(t, filepath.Join(out, "deploy_output", "001__b.sh"))
	assert.True(t, strings.HasPrefix(script, "#!/bin/bash\n"))
	assert.True(t, strings.HasSuffix(script, "\nsleep 10\n"))
	assert.Contains(t, script, "kubectl apply -f "+filepath.Join(res, "001__b.yml")+" -n pumpwood")

	first := readFile(t, filepath.Join(out, "deploy_output", "000__a.sh"))
	assert.True(t, strings.HasSuffix(first, "\nsleep 5\n"))

	info, err := os.Stat(filepath.Join(out, "deploy_output", "001__b.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestMaterializeIndependentPoolCounters(t *testing.T) {
	d, _, out := newTestDeployer(t)
	d.Register(producer.Static("p",
		item.NewManifest(item.KindServices, "lb", "svc", nil),
		item.NewManifest(item.KindDeploy, "app", "deploy", nil),
	))

	plan, err := d.Materialize(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"000__lb"}, names(plan.Services))
	assert.Equal(t, []string{"000__app"}, names(plan.Microservices))
	assert.FileExists(t, filepath.Join(out, "services_output", "resources", "000__lb.yml"))
	assert.FileExists(t, filepath.Join(out, "services_output", "000__lb.sh"))
	assert.FileExists(t, filepath.Join(out, "deploy_output", "resources", "000__app.yml"))
}

func TestMaterializePreservesOrder(t *testing.T) {
	d, rec, out := newTestDeployer(t)
	d.Register(producer.Static("first",
		item.NewManifest(item.KindServices, "s1", "", nil),
		item.NewManifest(item.KindDeploy, "d1", "", nil),
		item.NewManifest(item.KindServices, "s2", "", nil),
	))
	d.Register(producer.Static("second",
		item.NewManifest(item.KindServices, "s3", "", nil),
		item.NewManifest(item.KindVolume, "d2", "", nil),
	))

	plan, err := d.Materialize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"000__s1", "001__s2", "002__s3"}, names(plan.Services))
	assert.Equal(t, []string{"000__d1", "001__d2"}, names(plan.Microservices))

	_, err = d.Apply(context.Background())
	require.NoError(t, err)

	var ran []string
	for _, c := range rec.Calls() {
		rel, err := filepath.Rel(out, c[0])
		require.NoError(t, err)
		ran = append(ran, rel)
	}
	assert.Equal(t, []string{
		filepath.Join("services_output", "000__s1.sh"),
		filepath.Join("services_output", "001__s2.sh"),
		filepath.Join("services_output", "002__s3.sh"),
		filepath.Join("deploy_output", "000__d1.sh"),
		filepath.Join("deploy_output", "001__d2.sh"),
	}, ran)
}

func TestMaterializeSequenceNumbers(t *testing.T) {
	const n = 120
	items := make([]item.Item, 0, n)
	kinds := []item.Kind{item.KindSecrets, item.KindDeploy, item.KindVolume, item.KindConfigMap}
	for i := 0; i < n; i++ {
		items = append(items, item.NewManifest(kinds[i%len(kinds)], fmt.Sprintf("item%d", i), "x", nil))
	}

	d, _, _ := newTestDeployer(t)
	d.Register(producer.Static("many", items...))

	plan, err := d.Materialize(context.Background())
	require.NoError(t, err)
	require.Len(t, plan.Microservices, n)
	for i, c := range plan.Microservices {
		assert.Equal(t, i, c.Seq)
		assert.Equal(t, fmt.Sprintf("%03d__item%d", i, i), c.ID())
	}
}

func TestMaterializeContentRoundTrip(t *testing.T) {
	content := "apiVersion: v1\nkind: Secret\ndata:\n  key: \"\\u00e9\"\n\ttabs and trailing spaces   \r\nno newline at end"
	d, _, _ := newTestDeployer(t)
	d.Register(producer.Static("raw", item.NewManifest(item.KindSecrets, "raw", content, nil)))

	plan, err := d.Materialize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, content, readFile(t, plan.Microservices[0].Manifest))
}

func TestMaterializeIsIdempotent(t *testing.T) {
	payload := filepath.Join(t.TempDir(), "nginx.conf")
	require.NoError(t, os.WriteFile(payload, []byte{0x00, 0xff, 'n', 'g', 'x'}, 0o600))

	cm := item.NewConfigMapFile("nginx", "", "default.conf", "", nil)
	cm.FilePath = payload

	d, _, out := newTestDeployer(t)
	d.Register(producer.Static("p",
		item.NewManifest(item.KindServices, "lb", "svc", nil),
		item.NewManifest(item.KindDeploy, "app", "deploy", nil),
		item.NewSecretFile("tls", []string{"tls.crt=/etc/tls/crt"}, nil),
		cm,
	))

	_, err := d.Materialize(context.Background())
	require.NoError(t, err)
	first := snapshot(t, out)

	require.NoError(t, os.WriteFile(filepath.Join(out, "deploy_output", "stale.sh"), []byte("old"), 0o600))

	_, err = d.Materialize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, snapshot(t, out))
	assert.Contains(t, first, filepath.Join("deploy_output", "checksums.txt"))
}

func TestMaterializeUnknownTypeFailsFast(t *testing.T) {
	d, _, out := newTestDeployer(t)
	d.Register(producer.Static("p",
		item.NewManifest(item.KindDeploy, "before", "x", nil),
		&item.Manifest{ItemKind: "ingress", Content: "x"},
		item.NewManifest(item.KindDeploy, "after", "y", nil),
	))

	plan, err := d.Materialize(context.Background())
	require.Error(t, err)
	assert.Nil(t, plan)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "ingress")

	assert.FileExists(t, filepath.Join(out, "deploy_output", "resources", "000__before.yml"))
	assert.NoFileExists(t, filepath.Join(out, "deploy_output", "resources", "002__after.yml"))
	assert.NoFileExists(t, filepath.Join(out, "deploy_output", "resources", "001__after.yml"))
	assert.Nil(t, d.Plan())
}

func TestFailedMaterializeDropsPreviousPlan(t *testing.T) {
	d, rec, _ := newTestDeployer(t)
	d.Register(producer.Static("p",
		item.NewManifest(item.KindDeploy, "a", "x", nil),
		item.NewManifest(item.KindDeploy, "b", "y", nil),
	))

	_, err := d.Materialize(context.Background())
	require.NoError(t, err)
	require.NotNil(t, d.Plan())

	d.Register(producer.Static("broken",
		&item.Manifest{ItemKind: "ingress", Content: "x"},
	))
	_, err = d.Materialize(context.Background())
	require.Error(t, err)
	assert.Nil(t, d.Plan())

	report, err := d.Apply(context.Background())
	require.Error(t, err)
	assert.Nil(t, report)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
	assert.Empty(t, rec.Calls())
}

func TestMaterializePayloadCannotReplaceManifest(t *testing.T) {
	d, _, out := newTestDeployer(t)
	d.Register(producer.Static("p",
		item.NewManifest(item.KindDeploy, "a", "MANIFEST", nil),
		item.NewConfigMapFile("nginx", "000__a.yml", "", "PAYLOAD", nil),
	))

	_, err := d.Materialize(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
	assert.Equal(t, "MANIFEST", readFile(t, filepath.Join(out, "deploy_output", "resources", "000__a.yml")))
}

func TestMaterializeSecretFile(t *testing.T) {
	d, _, out := newTestDeployer(t)
	d.Register(producer.Static("p",
		item.NewSecretFile("gateway-tls", []string{"tls.crt=/certs/crt.pem", "/certs/key.pem"}, nil),
		item.NewSecretFile("keys", []string{"a=/tmp/a"}, nil).InNamespace("infra"),
	))

	plan, err := d.Materialize(context.Background())
	require.NoError(t, err)

	assert.Empty(t, plan.Microservices[0].Manifest)
	assert.Equal(t,
		"kubectl create secret generic gateway-tls --from-file=tls.crt=/certs/crt.pem --from-file=/certs/key.pem -n pumpwood\n",
		readFile(t, filepath.Join(out, "deploy_output", "000__gateway-tls.sh")))
	assert.Equal(t,
		"kubectl create secret generic keys --from-file=a=/tmp/a -n infra\n",
		readFile(t, filepath.Join(out, "deploy_output", "001__keys.sh")))

	entries, err := os.ReadDir(filepath.Join(out, "deploy_output", "resources"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMaterializeConfigMapFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "logo.png")
	binary := []byte{0x89, 'P', 'N', 'G', 0x00, 0x01}
	require.NoError(t, os.WriteFile(src, binary, 0o600))

	copied := item.NewConfigMapFile("static", "", "", "", nil)
	copied.FilePath = src

	d, _, out := newTestDeployer(t)
	d.Register(producer.Static("p",
		item.NewConfigMapFile("nginx", "nginx.conf", "default.conf", "server {}", nil),
		copied,
	))

	plan, err := d.Materialize(context.Background())
	require.NoError(t, err)

	res := filepath.Join(out, "deploy_output", "resources")
	assert.Equal(t, "server {}", readFile(t, filepath.Join(res, "nginx.conf")))
	assert.Equal(t, string(binary), readFile(t, filepath.Join(res, "logo.png")))
	assert.Equal(t, filepath.Join(res, "logo.png"), plan.Microservices[1].Manifest)

	assert.Equal(t,
		"kubectl create configmap nginx --from-file=default.conf="+filepath.Join(res, "nginx.conf")+" -n pumpwood\n",
		readFile(t, filepath.Join(out, "deploy_output", "000__nginx.sh")))
	assert.Equal(t,
		"kubectl create configmap static --from-file="+filepath.Join(res, "logo.png")+" -n pumpwood\n",
		readFile(t, filepath.Join(out, "deploy_output", "001__static.sh")))
}

func TestMaterializeConfigMapFileMissingSource(t *testing.T) {
	cm := item.NewConfigMapFile("static", "", "", "", nil)
	cm.FilePath = filepath.Join(t.TempDir(), "missing")

	d, _, _ := newTestDeployer(t)
	d.Register(producer.Static("p", cm))

	_, err := d.Materialize(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
}

func TestMaterializeNamespaceOverride(t *testing.T) {
	d, _, _ := newTestDeployer(t)
	d.Register(producer.Static("p",
		item.NewManifest(item.KindDeploy, "a", "", nil).InNamespace("monitoring"),
		item.NewManifest(item.KindDeploy, "b", "", nil),
	))

	plan, err := d.Materialize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "monitoring", plan.Microservices[0].Namespace)
	assert.Equal(t, "pumpwood", plan.Microservices[1].Namespace)
	assert.Contains(t, readFile(t, plan.Microservices[0].Script), "-n monitoring")
}

func TestMaterializeQuotesUnsafeArguments(t *testing.T) {
	d, _, _ := newTestDeployer(t)
	d.Register(producer.Static("p", item.NewSecretFile("s", []string{"key=/path with space/it's"}, nil)))

	plan, err := d.Materialize(context.Background())
	require.NoError(t, err)
	assert.Contains(t, readFile(t, plan.Microservices[0].Script), `'--from-file=key=/path with space/it'\''s'`)
}

func TestMaterializeRejectsDangerousOutputDir(t *testing.T) {
	for _, dir := range []string{"", ".", "/", "./"} {
		t.Run(dir, func(t *testing.T) {
			d := New(WithOutputDir(dir), WithRunner(runner.NewRecorder()))
			_, err := d.Materialize(context.Background())
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
		})
	}
}

func TestMaterializeProducerError(t *testing.T) {
	d, _, _ := newTestDeployer(t)
	d.Register(producer.Func{ID: "broken", Fn: func(context.Context, producer.Context) ([]item.Item, error) {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "disk name is required")
	}})

	_, err := d.Materialize(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "producer broken")
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
}

func TestMaterializeConcurrentProducersKeepOrder(t *testing.T) {
	d, _, _ := newTestDeployer(t, WithProduceConcurrency(4))
	for i := 0; i < 6; i++ {
		delay := time.Duration(6-i) * 5 * time.Millisecond
		name := fmt.Sprintf("p%d", i)
		d.Register(producer.Func{ID: name, Fn: func(ctx context.Context, _ producer.Context) ([]item.Item, error) {
			time.Sleep(delay)
			return []item.Item{item.NewManifest(item.KindDeploy, name, "", nil)}, nil
		}})
	}

	plan, err := d.Materialize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"000__p0", "001__p1", "002__p2", "003__p3", "004__p4", "005__p5"}, names(plan.Microservices))
}

func TestMaterializeProducerContext(t *testing.T) {
	var got producer.Context
	d, _, _ := newTestDeployer(t)
	d.Register(producer.Func{ID: "ctx", Fn: func(_ context.Context, pctx producer.Context) ([]item.Item, error) {
		got = pctx
		return nil, nil
	}})

	_, err := d.Materialize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pumpwood", got.Namespace)
	assert.Nil(t, got.Provider)
}
