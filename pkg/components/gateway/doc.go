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

// Package gateway produces the Pumpwood nginx gateway.
//
// Items, in apply order:
//
//   - secrets_file    <name>-tls    certificate and key read from local files (when TLS is set)
//   - configmap_file  <name>-nginx  nginx server block, rendered or copied from configFile
//   - deploy          <name>        nginx Deployment mounting both
//   - services        <name>-lb     LoadBalancer Service, applied in the services pool
//
// Upstreams map URL path prefixes to cluster services:
//
//	params:
//	  serverName: pumpwood.example.com
//	  tlsCertFile: certs/fullchain.pem
//	  tlsKeyFile: certs/privkey.pem
//	  upstreams:
//	    - {path: /rest/, service: pumpwood-auth-app, port: 5000}
package gateway
