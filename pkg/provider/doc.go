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

// Package provider abstracts the managed Kubernetes offering the platform runs
// on.
//
// A Client knows two things about its cloud: the commands that fetch cluster
// credentials for kubectl, and how to describe a pre-provisioned disk as a
// PersistentVolume and matching PersistentVolumeClaim.
//
// Supported kinds:
//
//   - gcp: gcloud container clusters get-credentials, GCE persistent disks
//   - azure: az account set and az aks get-credentials, Azure managed disks
//   - aws: aws eks update-kubeconfig, EBS volumes
//
// Usage:
//
//	p, err := provider.New(provider.Config{Kind: "gcp", Project: "p", Cluster: "c", Zone: "us-east1-b"})
//	manifest, err := p.VolumeManifest(provider.VolumeSpec{Name: "postgres", DiskName: "pg-disk", DiskSize: "50Gi"})
package provider
