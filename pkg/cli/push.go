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

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/urfave/cli/v3"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/checksum"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/defaults"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/item"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/oci"
)

// pushArtifact is replaced in tests.
var pushArtifact = oci.Push

func pushCmd() *cli.Command {
	return &cli.Command{
		Name:  "push",
		Usage: "Publish the generated outputs tree to an OCI registry",
		Description: `Packs the outputs directory as an OCI artifact and pushes it, e.g.:

  pumpwood-deploy push --reference oci://ghcr.io/murabei/pumpwood-deploy:prod

Manifests are checked against each pool's checksums.txt before pushing.
Credentials are read from the Docker config.`,
		Flags: []cli.Flag{
			outputDirFlag(),
			&cli.StringFlag{
				Name:  "reference",
				Usage: "Full target, e.g. oci://ghcr.io/murabei/pumpwood-deploy:v1",
			},
			&cli.StringFlag{
				Name:  "registry",
				Usage: "Registry host, used with --repository when --reference is not set",
			},
			&cli.StringFlag{
				Name:  "repository",
				Usage: "Repository path, e.g. murabei/pumpwood-deploy",
			},
			&cli.StringFlag{
				Name:  "tag",
				Usage: "Artifact tag (default: latest)",
			},
			&cli.StringFlag{
				Name:  "pool",
				Usage: fmt.Sprintf("Push a single pool (%s or %s)", item.PoolServices, item.PoolMicroservices),
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for the registry",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: defaults.CLIPushTimeout,
				Usage: "Timeout for the push",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ref, err := pushReference(cmd)
			if err != nil {
				return err
			}

			sourceDir := cmd.String("output-dir")
			if sourceDir == "" {
				cfg, cfgErr := loadConfig(cmd)
				if cfgErr != nil {
					return cfgErr
				}
				sourceDir = cfg.OutputDir
			}

			var subDir string
			if p := cmd.String("pool"); p != "" {
				pool := item.Pool(strings.ToLower(p))
				if pool != item.PoolServices && pool != item.PoolMicroservices {
					return fmt.Errorf("invalid --pool %q (want %s or %s)", p, item.PoolServices, item.PoolMicroservices)
				}
				subDir = pool.Dir()
			}

			if err := verifyOutputs(sourceDir, subDir); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
			defer cancel()

			res, err := pushArtifact(ctx, oci.PushOptions{
				SourceDir:   sourceDir,
				SubDir:      subDir,
				Reference:   ref,
				PlainHTTP:   cmd.Bool("plain-http"),
				InsecureTLS: cmd.Bool("insecure-tls"),
				Annotations: map[string]string{
					ociv1.AnnotationTitle:   "Pumpwood deployment",
					ociv1.AnnotationVersion: ref.Tag,
					ociv1.AnnotationCreated: time.Now().UTC().Format(time.RFC3339),
					ociv1.AnnotationVendor:  "Murabei",
					ociv1.AnnotationSource:  "https://github.com/Murabei-OpenSource-Codes/pumpwood-deploy",
				},
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.Root().Writer, "%s@%s\n", res.Reference, res.Digest)
			return nil
		},
	}
}

func pushReference(cmd *cli.Command) (*oci.Reference, error) {
	if r := cmd.String("reference"); r != "" {
		ref, err := oci.ParseReference(r)
		if err != nil {
			return nil, err
		}
		if t := cmd.String("tag"); t != "" {
			ref = ref.WithTag(t)
		}
		return ref, nil
	}
	if cmd.String("registry") == "" || cmd.String("repository") == "" {
		return nil, fmt.Errorf("--reference, or --registry with --repository, is required")
	}
	return oci.NewReference(cmd.String("registry"), cmd.String("repository"), cmd.String("tag"))
}

// verifyOutputs checks the manifests of each pool against its checksums.
// Scripts are skipped since apply rewrites them in place.
func verifyOutputs(root, subDir string) error {
	for _, pool := range item.Pools {
		if subDir != "" && pool.Dir() != subDir {
			continue
		}
		dir := filepath.Join(root, pool.Dir())
		if _, err := os.Stat(checksum.Path(dir)); err != nil {
			slog.Debug("no checksums to verify", "dir", dir)
			continue
		}
		mismatched, err := checksum.Verify(dir)
		if err != nil {
			return fmt.Errorf("failed to verify %s: %w", dir, err)
		}
		var changed []string
		for _, rel := range mismatched {
			if strings.HasPrefix(rel, "resources/") {
				changed = append(changed, rel)
			}
		}
		if len(changed) > 0 {
			return fmt.Errorf("%s was modified after generate: %s", dir, strings.Join(changed, ", "))
		}
	}
	return nil
}
