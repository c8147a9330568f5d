// Copyright 2025 The Rivaas Authors
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

package treeenc

import "testing"

// TestEncoder creates a TreeEncoder configured for testing.
// It uses sensible defaults that are appropriate for test scenarios.
//
// Example:
//
//	func TestMyFeature(t *testing.T) {
//	    enc := treeenc.TestEncoder(t)
//	    // use enc in test
//	}
func TestEncoder(t *testing.T, opts ...Option) *TreeEncoder {
	t.Helper()

	defaultOpts := []Option{
		WithMaxDepth(DefaultMaxDepth),
	}

	allOpts := append(defaultOpts, opts...)

	enc, err := New(allOpts...)
	if err != nil {
		t.Fatalf("TestEncoder: failed to create encoder: %v", err)
	}

	return enc
}

// TestMapping encodes v with a fresh encoder and fails the test on any
// error, returning the resulting mapping. It keeps happy-path test bodies
// focused on assertions.
//
// Example:
//
//	m := treeenc.TestMapping(t, Point{1, 2})
//	// assert against m
func TestMapping(t *testing.T, v any, opts ...Option) Mapping {
	t.Helper()

	m, err := Encode(v, opts...)
	if err != nil {
		t.Fatalf("TestMapping: encode failed: %v", err)
	}

	return m
}
