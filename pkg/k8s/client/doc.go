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

// Package client builds Kubernetes clients for readiness polling.
//
// Kubeconfig discovery follows kubectl: an explicit path, then KUBECONFIG,
// then ~/.kube/config, then in-cluster service account configuration.
//
//	cs, err := client.New(client.Options{Kubeconfig: path, Timeout: 30 * time.Second})
//	if err != nil {
//	    return fmt.Errorf("failed to build kubernetes client: %w", err)
//	}
package client
