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

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidRequest, "unknown item type")

	if err.Code != ErrCodeInvalidRequest {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidRequest, err.Code)
	}
	if err.Message != "unknown item type" {
		t.Errorf("expected message 'unknown item type', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(ErrCodeInternal, "failed to write manifest", cause)

	if err.Code != ErrCodeInternal {
		t.Errorf("expected code %s, got %s", ErrCodeInternal, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("exit status 1")
	ctx := map[string]any{
		"script":    "000__postgres.sh",
		"exit_code": 1,
	}

	err := WrapWithContext(ErrCodeExecFailed, "script failed", cause, ctx)

	if err.Code != ErrCodeExecFailed {
		t.Errorf("expected code %s, got %s", ErrCodeExecFailed, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["script"] != "000__postgres.sh" {
		t.Errorf("expected script to be 000__postgres.sh")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeNotFound, "not found"),
			expected: "[NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	inner := New(ErrCodeNotReady, "deployment not available")
	wrapped := fmt.Errorf("apply: %w", Wrap(ErrCodeExecFailed, "command failed", inner))

	if got := CodeOf(wrapped); got != ErrCodeExecFailed {
		t.Errorf("CodeOf() = %s, want %s", got, ErrCodeExecFailed)
	}
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("CodeOf(plain) = %s, want empty", got)
	}
	if !HasCode(wrapped, ErrCodeNotReady) {
		t.Error("HasCode should find nested NOT_READY")
	}
	if HasCode(wrapped, ErrCodeTimeout) {
		t.Error("HasCode should not find TIMEOUT")
	}
	if HasCode(nil, ErrCodeInternal) {
		t.Error("HasCode(nil) should be false")
	}
}
