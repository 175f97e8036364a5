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

// Package readiness decides when an applied deployment item is ready so the
// next command can run.
//
// Two waiters are provided:
//
//   - SleepWaiter keeps the fixed-delay behavior. By default the delay is
//     already part of the generated script and the waiter returns at once;
//     with InProcess set it sleeps itself.
//   - KubeWaiter reads the applied manifest and polls the API server with
//     bounded exponential backoff until every object it understands is ready.
//     Deployments and StatefulSets must report their replicas available for the
//     observed generation, PersistentVolumeClaims must be Bound, and Services,
//     Secrets and ConfigMaps must exist. Items it cannot check fall back to the
//     fixed delay.
package readiness
