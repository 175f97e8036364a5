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

package oci

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
)

// ArtifactType identifies pumpwood-deploy outputs artifacts.
const ArtifactType = "application/vnd.pumpwood.deploy.artifact"

// PushOptions configures Push.
type PushOptions struct {
	// SourceDir is the outputs directory to publish.
	SourceDir string
	// SubDir optionally limits the push to one directory under SourceDir,
	// e.g. a single pool. Its path is kept inside the artifact.
	SubDir string
	// Reference is the target.
	Reference *Reference
	// PlainHTTP uses HTTP instead of HTTPS for the registry connection.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
	// Annotations are added to the manifest.
	Annotations map[string]string
}

// PushResult describes a pushed artifact.
type PushResult struct {
	// Digest is the manifest digest.
	Digest string
	// Reference is registry/repository:tag.
	Reference string
}

// Push packs opts.SourceDir and copies it to the remote registry.
func Push(ctx context.Context, opts PushOptions) (*PushResult, error) {
	if opts.Reference == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "OCI reference is required")
	}

	repo, err := remote.NewRepository(opts.Reference.Repo())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to initialize remote repository", err)
	}
	repo.PlainHTTP = opts.PlainHTTP
	repo.Client = createAuthClient(opts.PlainHTTP, opts.InsecureTLS)

	return PushTo(ctx, opts, repo)
}

// PushTo packs opts.SourceDir and copies the artifact into dst, tagged with
// opts.Reference.Tag.
func PushTo(ctx context.Context, opts PushOptions, dst oras.Target) (*PushResult, error) {
	if opts.Reference == nil || opts.Reference.Tag == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "tag is required to push OCI artifact")
	}

	pushFromDir, cleanup, err := preparePushDir(opts.SourceDir, opts.SubDir)
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	absPushDir, err := filepath.Abs(pushFromDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to get absolute path for push dir", err)
	}
	if info, statErr := os.Stat(absPushDir); statErr != nil || !info.IsDir() {
		return nil, errors.New(errors.ErrCodeNotFound, fmt.Sprintf("outputs directory %s does not exist, run generate first", absPushDir))
	}

	fs, err := file.New(absPushDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to create file store", err)
	}
	defer func() { _ = fs.Close() }()
	fs.TarReproducible = true

	layerDesc, err := fs.Add(ctx, filepath.Base(filepath.Clean(opts.SourceDir)), ociv1.MediaTypeImageLayerGzip, absPushDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to add outputs to store", err)
	}

	manifestDesc, err := oras.PackManifest(ctx, fs, oras.PackManifestVersion1_1, ArtifactType, oras.PackManifestOptions{
		Layers:              []ociv1.Descriptor{layerDesc},
		ManifestAnnotations: opts.Annotations,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to pack manifest", err)
	}

	tag := opts.Reference.Tag
	if err := fs.Tag(ctx, manifestDesc, tag); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to tag manifest in local store", err)
	}

	slog.Info("pushing outputs artifact",
		"reference", opts.Reference.ImageReference(),
		"source", absPushDir,
	)

	desc, err := oras.Copy(ctx, fs, tag, dst, tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to push artifact to registry", err)
	}

	slog.Info("outputs artifact pushed",
		"reference", opts.Reference.ImageReference(),
		"digest", desc.Digest.String(),
	)

	return &PushResult{
		Digest:    desc.Digest.String(),
		Reference: opts.Reference.ImageReference(),
	}, nil
}

func preparePushDir(sourceDir, subDir string) (string, func(), error) {
	if subDir == "" {
		return sourceDir, nil, nil
	}

	tempDir, err := os.MkdirTemp("", "pumpwood-push-*")
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeInternal, "failed to create temp directory", err)
	}

	if err := hardLinkDir(filepath.Join(sourceDir, subDir), filepath.Join(tempDir, subDir)); err != nil {
		os.RemoveAll(tempDir)
		return "", nil, errors.Wrap(errors.ErrCodeNotFound, fmt.Sprintf("failed to stage %s", subDir), err)
	}

	return tempDir, func() { os.RemoveAll(tempDir) }, nil
}

func createAuthClient(plainHTTP, insecureTLS bool) *auth.Client {
	credStore, err := credentials.NewStoreFromDocker(credentials.StoreOptions{})
	if err != nil {
		slog.Debug("docker credentials unavailable", "error", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !plainHTTP && insecureTLS {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{} //nolint:gosec
		}
		transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec
	}

	client := &auth.Client{
		Client: &http.Client{Transport: transport},
		Cache:  auth.NewCache(),
	}
	if credStore != nil {
		client.Credential = credentials.Credential(credStore)
	}
	return client
}

func hardLinkDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source directory: %w", err)
	}

	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("failed to read source directory: %w", err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := hardLinkDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := os.Link(srcPath, dstPath); err != nil {
			return fmt.Errorf("failed to create hard link: %w", err)
		}
	}
	return nil
}
