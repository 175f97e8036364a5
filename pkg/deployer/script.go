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
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var shellSafe = regexp.MustCompile(`^[A-Za-z0-9_./=:,@%+-]+$`)

// shellQuote quotes s for a POSIX shell when it contains unsafe characters.
func shellQuote(s string) string {
	if s != "" && shellSafe.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func commandLine(args ...string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = shellQuote(a)
	}
	return strings.Join(quoted, " ")
}

func applyScript(manifest, ns string) string {
	return commandLine("kubectl", "apply", "-f", manifest, "-n", ns) + "\n"
}

func secretScript(name string, paths []string, ns string) string {
	args := []string{"kubectl", "create", "secret", "generic", name}
	for _, p := range paths {
		args = append(args, "--from-file="+p)
	}
	args = append(args, "-n", ns)
	return commandLine(args...) + "\n"
}

func configMapScript(name, keyName, payload, ns string) string {
	from := "--from-file=" + payload
	if keyName != "" {
		from = "--from-file=" + keyName + "=" + payload
	}
	return commandLine("kubectl", "create", "configmap", name, from, "-n", ns) + "\n"
}

// finalizeScript prepends the shebang and, when sleep is not negative,
// appends the sleep line. A script that already starts with a shebang is
// left alone so Apply can be repeated on the same tree.
func finalizeScript(path, shell string, sleep int) error {
	body, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read script %s: %w", path, err)
	}
	if !bytes.HasPrefix(body, []byte("#!")) {
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "#!%s\n", shell)
		buf.Write(body)
		if len(body) > 0 && body[len(body)-1] != '\n' {
			buf.WriteByte('\n')
		}
		if sleep >= 0 {
			fmt.Fprintf(&buf, "sleep %d\n", sleep)
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o755); err != nil {
			return fmt.Errorf("failed to write script %s: %w", path, err)
		}
	}
	if err := os.Chmod(path, 0o755); err != nil {
		return fmt.Errorf("failed to mark script %s executable: %w", path, err)
	}
	return nil
}
