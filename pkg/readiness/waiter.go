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

package readiness

import (
	"context"
	"time"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/item"
)

// Target identifies what was just applied.
type Target struct {
	Kind      item.Kind
	Name      string
	Namespace string
	// Manifest is the applied manifest file. Empty for imperative items.
	Manifest string
	// Delay is the fixed delay configured for the item.
	Delay time.Duration
}

// Waiter blocks until a target is ready, ctx is done, or it gives up.
type Waiter interface {
	Wait(ctx context.Context, target Target) error
}

// SleepWaiter waits a fixed delay.
type SleepWaiter struct {
	// InProcess makes the waiter sleep itself. When false the delay is
	// expected to be part of the generated script.
	InProcess bool
}

// Wait implements Waiter.
func (w SleepWaiter) Wait(ctx context.Context, target Target) error {
	if !w.InProcess {
		return nil
	}
	return sleep(ctx, target.Delay)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
