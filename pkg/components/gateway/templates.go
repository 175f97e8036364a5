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

package gateway

import (
	_ "embed"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/components/internal"
)

var (
	//go:embed templates/nginx.conf.tmpl
	nginxTemplate string

	//go:embed templates/deployment.yaml.tmpl
	deploymentTemplate string

	//go:embed templates/loadbalancer.yaml.tmpl
	loadBalancerTemplate string
)

// GetTemplate returns the named template content.
var GetTemplate = internal.NewTemplateGetter(map[string]string{
	"nginx.conf":   nginxTemplate,
	"deployment":   deploymentTemplate,
	"loadbalancer": loadBalancerTemplate,
})
