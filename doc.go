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

// Package treeenc converts typed value graphs into dynamic value trees.
//
// The treeenc package turns structs, enums, and nested collections into a
// generic tree of scalars, ordered sequences, and unique-key mappings: an
// in-memory analogue of a JSON document, with no byte format involved.
// Application code gets a structured, introspectable representation of a
// value (for request payloads, diagnostic dumps, format bridges) without
// maintaining a hand-written mapping in sync with the value's definition.
//
// # Quick Start
//
// A value describes its own structure by implementing [TreeEncodable]:
//
//	type Point struct{ X, Y float64 }
//
//	func (p Point) EncodeTree(enc treeenc.Encoder) error {
//	    kc, err := enc.KeyedContainer()
//	    if err != nil {
//	        return err
//	    }
//	    if err := kc.Encode("x", p.X); err != nil {
//	        return err
//	    }
//	    return kc.Encode("y", p.Y)
//	}
//
//	m, err := treeenc.Encode(Point{1, 2})
//	// m is treeenc.Mapping{"x": ..., "y": ...}
//
// [Encode] requires the root to encode as a mapping and fails with
// [NotKeyedContainerError] otherwise; [EncodeValue] accepts any root shape.
//
// # Containers
//
// An encoding routine requests exactly one container for its value: keyed
// ([KeyedContainer]), unkeyed ([UnkeyedContainer]), or scalar
// ([ScalarContainer]). Containers spawn nested containers for sub-structure
// and delegating encoders for base-type encoding:
//
//	func (d Derived) EncodeTree(enc treeenc.Encoder) error {
//	    kc, err := enc.KeyedContainer()
//	    if err != nil {
//	        return err
//	    }
//	    if err := kc.Encode("name", d.Name); err != nil {
//	        return err
//	    }
//	    // Base encodes with its own container shape, spliced back
//	    // under the "super" key.
//	    return kc.EncodeSuper(d.Base)
//	}
//
// # Configuration
//
// Use functional options to customize encoding behavior:
//
//	m, err := treeenc.Encode(v,
//	    treeenc.WithMaxDepth(16),
//	    treeenc.WithLeafPolicy(keepBlobsOpaque),
//	    treeenc.WithEvents(treeenc.Events{Done: record}),
//	)
//
// A reusable [TreeEncoder] fixes options up front and is safe for
// concurrent use.
//
// # Format Bridges
//
// The engine never produces bytes. The subpackages treeenc/yaml,
// treeenc/toml, treeenc/msgpack, and treeenc/proto render an
// already-encoded [Value] tree for downstream consumers.
//
// Decoding (reconstructing typed values from a tree) is out of scope.
package treeenc
