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

package checksum

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileName is the name of checksum files.
const FileName = "checksums.txt"

// Sum returns the hex SHA256 of the file at path.
func Sum(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s for checksum: %w", path, err)
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

// Generate writes dir/checksums.txt for files. Entries are sorted by relative
// path so the output does not depend on the order files were written.
func Generate(ctx context.Context, dir string, files []string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}

	lines := make([]string, 0, len(files))
	for _, file := range files {
		sum, err := Sum(file)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, file)
		if err != nil {
			rel = file
		}
		lines = append(lines, fmt.Sprintf("%s  %s", sum, filepath.ToSlash(rel)))
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i][66:] < lines[j][66:]
	})

	path := Path(dir)
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write checksums: %w", err)
	}

	slog.Debug("checksums generated", "file_count", len(lines), "path", path)
	return nil
}

// Verify re-hashes every entry of dir/checksums.txt and returns the relative
// paths whose content no longer matches or that are missing.
func Verify(dir string) ([]string, error) {
	f, err := os.Open(Path(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to open checksums: %w", err)
	}
	defer f.Close()

	var mismatched []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		want, rel, ok := strings.Cut(line, "  ")
		if !ok {
			return nil, fmt.Errorf("malformed checksum line %q", line)
		}
		got, err := Sum(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil || got != want {
			mismatched = append(mismatched, rel)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read checksums: %w", err)
	}
	return mismatched, nil
}

// Path returns the checksum file path for dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}
