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

// Package cli implements the pumpwood-deploy command-line interface.
//
// # Commands
//
// generate - Write the outputs tree without touching the cluster:
//
//	pumpwood-deploy --config deploy.yaml generate [--format table|json|yaml]
//
// apply - Generate, bootstrap the cluster and run every script:
//
//	pumpwood-deploy apply [--policy continue|abort] [--readiness sleep|wait]
//	                      [--kubeconfig PATH] [--skip-bootstrap]
//
// push - Publish the outputs tree as an OCI artifact:
//
//	pumpwood-deploy push --reference oci://ghcr.io/murabei/pumpwood-deploy:prod
//
// components - List the component and provider kinds:
//
//	pumpwood-deploy components
//
// # Global Flags
//
//	--config, -c     Deployment file (default: deploy.yaml)
//	--log-level      debug, info, warn or error (default: info)
//	--metrics-file   Write Prometheus metrics to a textfile on exit
//
// # Environment Variables
//
//	PUMPWOOD_DEPLOY_CONFIG  Deployment file path
//	LOG_LEVEL               Logging verbosity
//	KUBECONFIG              Kubeconfig used by --readiness wait
//
// # Exit Codes
//
//	0  Success
//	1  Invalid input or failed commands
//	2  Interrupted
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/cli.version=1.0.0'"
package cli
