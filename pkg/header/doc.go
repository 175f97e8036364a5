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

// Package header provides the Kubernetes-style envelope written around
// pumpwood-deploy documents (plans and apply reports):
//
//	apiVersion: pumpwood.deploy/v1
//	kind: DeploymentPlan
//	metadata:
//	  timestamp: "2026-01-12T10:30:00Z"
//	  version: v1.0.0
//	  run_id: 6f1c...
//
// Consumers check Kind before decoding the rest of the document.
package header
