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

package item

// Kind identifies how a deployment item is materialized.
type Kind string

const (
	KindSecrets       Kind = "secrets"
	KindDeploy        Kind = "deploy"
	KindVolume        Kind = "volume"
	KindConfigMap     Kind = "configmap"
	KindServices      Kind = "services"
	KindSecretsFile   Kind = "secrets_file"
	KindConfigMapFile Kind = "configmap_file"
)

// Kinds lists every supported kind.
var Kinds = []Kind{
	KindSecrets,
	KindDeploy,
	KindVolume,
	KindConfigMap,
	KindServices,
	KindSecretsFile,
	KindConfigMapFile,
}

// IsKnown reports whether k is a supported kind.
func (k Kind) IsKnown() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// IsManifest reports whether items of this kind carry a manifest body that is
// written verbatim and applied with kubectl apply.
func (k Kind) IsManifest() bool {
	switch k {
	case KindSecrets, KindDeploy, KindVolume, KindConfigMap, KindServices:
		return true
	default:
		return false
	}
}

// Pool returns the execution pool for the kind.
func (k Kind) Pool() Pool {
	if k == KindServices {
		return PoolServices
	}
	return PoolMicroservices
}

// Pool is an independent sequencing and execution group.
type Pool string

const (
	PoolServices      Pool = "services"
	PoolMicroservices Pool = "microservices"
)

// Pools lists the pools in execution order.
var Pools = []Pool{PoolServices, PoolMicroservices}

// Dir returns the directory name used for the pool under the output root.
func (p Pool) Dir() string {
	if p == PoolServices {
		return "services_output"
	}
	return "deploy_output"
}
