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

// Package postgres produces the Pumpwood PostgreSQL database.
//
// Items, in apply order:
//
//   - secrets  <name>-secrets  user, password and database name
//   - volume   <name>-volume   PersistentVolume and claim for a pre-provisioned disk
//   - deploy   <name>          single replica Deployment with the claim mounted
//   - deploy   <name>-service  ClusterIP Service on 5432
//
// The disk name and size are required when the component is built, and the
// volume manifest comes from the cloud provider, so a provider must be
// configured for the run.
//
// Example deployment file entry:
//
//	components:
//	  - kind: postgres
//	    name: postgres
//	    params:
//	      password: s3cret
//	      diskName: pumpwood-postgres
//	      diskSize: 50Gi
package postgres
