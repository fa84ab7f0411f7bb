// Copyright (c) 2025 Gabi CLI contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"errors"
	"testing"
)

func TestMask(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Bearer header",
			input:    "request failed: Authorization: Bearer abc123.def-456",
			expected: "request failed: Authorization: Bearer ***",
		},
		{
			name:     "Bearer case-insensitive",
			input:    "bearer xyz789",
			expected: "bearer ***",
		},
		{
			name:     "token pair",
			input:    "calling /query?token=supersecret&x=1",
			expected: "calling /query?token=***&x=1",
		},
		{
			name:     "OpenShift console token",
			input:    "token sha256~AbCdEf-123_456 rejected",
			expected: "token sha256~*** rejected",
		},
		{
			name:     "no secrets",
			input:    "healthcheck returned 503 Service Unavailable",
			expected: "healthcheck returned 503 Service Unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Mask(tt.input)
			if result != tt.expected {
				t.Errorf("Mask() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestPresentError(t *testing.T) {
	got := PresentError("Error", errors.New("denied for Bearer sha256~secret"))
	want := "Error: denied for Bearer ***"
	if got != want {
		t.Errorf("PresentError() = %q, want %q", got, want)
	}
	if PresentError("Error", nil) != "" {
		t.Error("PresentError(nil) should be empty")
	}
}
