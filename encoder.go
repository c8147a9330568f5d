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

import "fmt"

// TreeEncoder encodes values with configuration fixed up front.
//
// Use [New] or [MustNew] to create a configured TreeEncoder, or use the
// package-level [Encode] and [EncodeValue] for per-call configuration.
//
// TreeEncoder is safe for concurrent use by multiple goroutines: every
// Encode call runs a fresh engine over a copy of the configuration, so
// per-call state (stack, path, stats) is never shared.
//
// Example:
//
//	enc := treeenc.MustNew(
//	    treeenc.WithMaxDepth(16),
//	    treeenc.WithLeafPolicy(keepBlobsOpaque),
//	)
//
//	m, err := enc.Encode(order)
type TreeEncoder struct {
	cfg config
}

// New creates a [TreeEncoder] with the given options.
// Returns an error if the configuration is invalid.
func New(opts ...Option) (*TreeEncoder, error) {
	cfg := applyOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &TreeEncoder{cfg: *cfg}, nil
}

// MustNew creates a [TreeEncoder] with the given options.
// Panics if the configuration is invalid.
//
// Use in main() or init() where panic on startup is acceptable.
func MustNew(opts ...Option) *TreeEncoder {
	e, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("treeenc.MustNew: %v", err))
	}

	return e
}

// Encode converts v into a [Mapping] using the encoder's configuration.
// See the package-level [Encode] for the error contract.
func (e *TreeEncoder) Encode(v any) (Mapping, error) {
	cfg := e.cfg // per-call copy: stats and engine state stay private
	defer cfg.finish()

	return encodeMapping(v, &cfg)
}

// EncodeValue converts v into a [Value] of whatever shape its routine
// produces, using the encoder's configuration.
func (e *TreeEncoder) EncodeValue(v any) (Value, error) {
	cfg := e.cfg
	defer cfg.finish()

	return encodeValue(v, &cfg)
}
