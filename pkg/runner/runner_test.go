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

package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.sh")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o755))
	return path
}

func TestExecRunnerSuccess(t *testing.T) {
	var stream bytes.Buffer
	r := NewExecRunner(WithOutput(&stream))

	res := r.Run(context.Background(), "/bin/sh", writeScript(t, "echo applied\n"))

	require.NoError(t, res.Err)
	assert.False(t, res.Failed())
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "applied\n", res.Output)
	assert.Equal(t, "applied\n", stream.String())
}

func TestExecRunnerExitCode(t *testing.T) {
	r := NewExecRunner()

	res := r.Run(context.Background(), "/bin/sh", writeScript(t, "echo boom >&2\nexit 3\n"))

	assert.True(t, res.Failed())
	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, res.Output, "boom")
	assert.Equal(t, errors.ErrCodeExecFailed, errors.CodeOf(res.Err))
}

func TestExecRunnerMissingBinary(t *testing.T) {
	res := NewExecRunner().Run(context.Background(), "/nonexistent/binary")

	assert.True(t, res.Failed())
	assert.Equal(t, -1, res.ExitCode)
	assert.Equal(t, errors.ErrCodeExecFailed, errors.CodeOf(res.Err))
}

func TestExecRunnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	res := NewExecRunner().Run(ctx, "/bin/sh", writeScript(t, "exec sleep 5\n"))

	assert.True(t, res.Failed())
	assert.Equal(t, errors.ErrCodeTimeout, errors.CodeOf(res.Err))
}

func TestExecRunnerEnvAndDir(t *testing.T) {
	dir := t.TempDir()
	r := NewExecRunner(WithDir(dir), WithEnv("PUMPWOOD_NS=prod"))

	res := r.Run(context.Background(), "/bin/sh", "-c", `echo "$PUMPWOOD_NS $(pwd)"`)

	require.NoError(t, res.Err)
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Contains(t, res.Output, "prod")
	assert.Contains(t, res.Output, filepath.Base(resolved))
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	rec.Fail(1, "kubectl", "create", "namespace", "prod")

	ok := rec.Run(context.Background(), "kubectl", "apply", "-f", "x.yml")
	bad := rec.Run(context.Background(), "kubectl", "create", "namespace", "prod")

	assert.False(t, ok.Failed())
	assert.True(t, bad.Failed())
	assert.Equal(t, 1, bad.ExitCode)
	assert.Equal(t, [][]string{
		{"kubectl", "apply", "-f", "x.yml"},
		{"kubectl", "create", "namespace", "prod"},
	}, rec.Calls())
	assert.Equal(t, "kubectl apply -f x.yml", ok.String())
}

func TestRecorderFailWithoutCommand(t *testing.T) {
	rec := NewRecorder()
	require.NotPanics(t, func() { rec.Fail(3) })

	res := rec.Run(context.Background(), "kubectl", "version")
	assert.False(t, res.Failed())
}
