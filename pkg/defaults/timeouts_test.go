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

package defaults

import "testing"

func TestReadinessBackoffBounds(t *testing.T) {
	if ReadinessInitialInterval <= 0 {
		t.Fatal("initial interval must be positive")
	}
	if ReadinessMaxInterval < ReadinessInitialInterval {
		t.Errorf("max interval %v below initial interval %v", ReadinessMaxInterval, ReadinessInitialInterval)
	}
	if ReadinessSteps < 1 {
		t.Errorf("readiness steps must be at least 1, got %d", ReadinessSteps)
	}
	if SleepSeconds != 10 {
		t.Errorf("default sleep changed: got %d", SleepSeconds)
	}
}
