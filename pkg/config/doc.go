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

// Package config loads the deployment file that drives a pumpwood-deploy run.
//
// A deployment file is YAML, decoded strictly so that misspelled keys fail:
//
//	namespace: pumpwood
//	outputDir: outputs
//	provider:
//	  kind: gcp
//	  project: my-project
//	  cluster: pumpwood
//	  zone: us-central1-a
//	apply:
//	  policy: abort
//	  readiness:
//	    mode: wait
//	    timeout: 5m
//	components:
//	  - kind: postgres
//	    name: pumpwood-db
//	    params:
//	      password: secret
//	      diskName: pumpwood-db
//	      diskSize: 100Gi
//
// Components are registered with the deployer in file order, which fixes the
// sequence numbers of their items.
package config
