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

// Package oci publishes a materialized outputs tree as an OCI artifact.
//
// The tree is packed as one reproducible gzip tar layer under an OCI 1.1
// manifest whose artifact type is ArtifactType, then copied to a remote
// registry with oras. Registry credentials come from the Docker config
// (~/.docker/config.json) and its credential helpers.
//
//	ref, err := oci.ParseReference("oci://ghcr.io/murabei/pumpwood-deploy:v1")
//	if err != nil {
//	    return err
//	}
//	res, err := oci.Push(ctx, oci.PushOptions{SourceDir: "outputs", Reference: ref})
//
// Pulling the artifact with "oras pull" recreates the outputs directory, so
// the scripts can be applied from another machine.
package oci
