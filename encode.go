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

// Encode converts v into a [Mapping]. The root value's routine must request
// a keyed container; a root resolving to a scalar or a sequence fails with
// [NotKeyedContainerError] carrying the attempted value.
//
// Example:
//
//	m, err := treeenc.Encode(order)
//
// Errors:
//   - [NotKeyedContainerError]: the root did not encode as a mapping
//   - [StateError]: a value's routine violated the container protocol
//   - [ErrMaxDepthExceeded]: value graph nesting exceeds the maximum
//   - any error returned by a value's own EncodeTree routine, unchanged
func Encode(v any, opts ...Option) (Mapping, error) {
	cfg := applyOptions(opts)
	defer cfg.finish()

	return encodeMapping(v, cfg)
}

// EncodeValue converts v into a [Value] of whatever shape its routine
// produces. This is the low-level entry point; values that do not implement
// [TreeEncodable], or that the leaf policy vetoes, come back as opaque
// scalars.
//
// Example:
//
//	val, err := treeenc.EncodeValue([]string{"a", "b"})
func EncodeValue(v any, opts ...Option) (Value, error) {
	cfg := applyOptions(opts)
	defer cfg.finish()

	return encodeValue(v, cfg)
}

// encodeMapping runs one engine over v and requires a mapping result.
func encodeMapping(v any, cfg *config) (Mapping, error) {
	n, err := encodeRoot(v, cfg)
	if err != nil {
		return nil, err
	}
	if n.kind() != KindMapping {
		cfg.trackError()

		return nil, &NotKeyedContainerError{Value: v, Kind: n.kind()}
	}
	m, _ := n.resolve().Mapping()

	return m, nil
}

// encodeValue runs one engine over v and resolves whatever shape came back.
func encodeValue(v any, cfg *config) (Value, error) {
	n, err := encodeRoot(v, cfg)
	if err != nil {
		return Value{}, err
	}

	return n.resolve(), nil
}

// encodeRoot is one nested encode at the empty path: a fresh engine per
// call, discarded afterwards. Frames never survive a top-level encode and
// nothing is cached between calls.
func encodeRoot(v any, cfg *config) (node, error) {
	return newEngine(cfg).box(v)
}
