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

// Package producer defines deployment item producers and the registry that
// builds them from configuration.
//
// A producer turns typed configuration into an ordered list of deployment
// items. The order it returns is the order the items are applied.
//
// # Registration
//
// Component packages register a factory from init():
//
//	func init() {
//	    producer.MustRegister("postgres", New)
//	}
//
// The CLI then builds producers from the components listed in the deployment
// file:
//
//	p, err := producer.New(c.Kind, c.Name, c.Params)
//
// Factories decode their params into a typed config with DecodeParams, which
// rejects unknown keys.
//
// # Built-in kinds
//
//   - items: a YAML list of raw deployment item records, inline or from a file
//   - template: items rendered from templates with a validated value set
package producer
