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
	"fmt"
	"strings"

	"github.com/distribution/reference"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
)

// URIScheme optionally prefixes a registry reference.
const URIScheme = "oci://"

// DefaultTag is used when a reference carries no tag.
const DefaultTag = "latest"

// Reference is a parsed registry/repository:tag target.
type Reference struct {
	// Registry is the registry host, e.g. "ghcr.io" or "localhost:5000".
	Registry string
	// Repository is the repository path, e.g. "murabei/pumpwood-deploy".
	Repository string
	// Tag is the artifact tag. Never empty after ParseReference.
	Tag string
}

// ParseReference parses target with or without the oci:// prefix.
// Digest references are rejected since a push needs a tag.
func ParseReference(target string) (*Reference, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(target), URIScheme)
	if trimmed == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "OCI reference is required")
	}

	ref, err := reference.ParseNormalizedNamed(trimmed)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, fmt.Sprintf("invalid OCI reference %q", target), err)
	}
	if _, ok := ref.(reference.Digested); ok {
		return nil, errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("OCI reference %q must use a tag, not a digest", target))
	}

	tag := DefaultTag
	if tagged, ok := ref.(reference.Tagged); ok {
		tag = tagged.Tag()
	}

	return &Reference{
		Registry:   reference.Domain(ref),
		Repository: reference.Path(ref),
		Tag:        tag,
	}, nil
}

// NewReference builds and validates a reference from its parts.
func NewReference(registry, repository, tag string) (*Reference, error) {
	if registry == "" || repository == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "registry and repository are required")
	}
	if tag == "" {
		tag = DefaultTag
	}
	return ParseReference(fmt.Sprintf("%s/%s:%s", stripProtocol(registry), repository, tag))
}

// String returns the oci:// form.
func (r *Reference) String() string {
	return URIScheme + r.ImageReference()
}

// ImageReference returns registry/repository:tag.
func (r *Reference) ImageReference() string {
	return fmt.Sprintf("%s/%s:%s", r.Registry, r.Repository, r.Tag)
}

// Repo returns registry/repository.
func (r *Reference) Repo() string {
	return r.Registry + "/" + r.Repository
}

// WithTag returns a copy with tag replaced.
func (r *Reference) WithTag(tag string) *Reference {
	out := *r
	out.Tag = tag
	return &out
}

func stripProtocol(registry string) string {
	registry = strings.TrimPrefix(registry, "https://")
	registry = strings.TrimPrefix(registry, "http://")
	return strings.TrimSuffix(registry, "/")
}
