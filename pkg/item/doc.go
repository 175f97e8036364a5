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

// Package item defines deployment items, the unit of work handed from
// producers to the deployer.
//
// An item is one of three variants:
//
//   - Manifest: a rendered manifest body applied with kubectl apply. Used for
//     the secrets, deploy, volume, configmap and services kinds.
//   - SecretFile: a secret created imperatively from local files.
//   - ConfigMapFile: a config map created from a payload written to disk.
//
// Every kind belongs to exactly one pool. Services items form their own pool
// and are applied first; everything else is in the microservices pool.
//
// Record is the untyped form read from YAML. Decode converts it to a typed
// variant and rejects unknown kinds:
//
//	var rec item.Record
//	if err := yaml.Unmarshal(data, &rec); err != nil {
//	    return err
//	}
//	it, err := rec.Decode()
package item
