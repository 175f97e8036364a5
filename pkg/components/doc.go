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

// Package components holds the Pumpwood infrastructure producers.
//
// Each sub-package owns a typed configuration, embedded manifest templates
// and a factory registered with the producer registry from init():
//
//   - postgres: database secret, provider-backed volume, deployment and service
//   - rabbitmq: broker secret, deployment and service, optional load balancer
//   - gateway: TLS secret from files, nginx configuration, deployment and load balancer
//
// Importing a sub-package for side effects makes its kind available to the
// deployment file:
//
//	import _ "github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/components/postgres"
package components
