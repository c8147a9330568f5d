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

// node is an in-progress value during encoding. Container nodes are shared
// mutable boxes: every container handle and slot reference along one
// delegation chain aliases the same box, so a write made through any handle
// is visible everywhere without write-back copying. resolve converts the
// finished box graph into the immutable output tree; after resolve nothing
// references encoder state.
type node interface {
	kind() Kind
	resolve() Value
}

// scalarNode holds one primitive or opaque leaf.
type scalarNode struct {
	v any
}

func (n *scalarNode) kind() Kind { return KindScalar }

func (n *scalarNode) resolve() Value { return ScalarOf(n.v) }

// mapNode is the mutable box behind a keyed container or a
// mapping-in-progress frame.
type mapNode struct {
	entries map[string]node
}

func newMapNode() *mapNode {
	return &mapNode{entries: make(map[string]node)}
}

func (n *mapNode) kind() Kind { return KindMapping }

func (n *mapNode) resolve() Value {
	m := make(Mapping, len(n.entries))
	for k, e := range n.entries {
		m[k] = e.resolve()
	}

	return MappingOf(m)
}

// seqNode is the mutable box behind an unkeyed container or a
// sequence-in-progress frame.
type seqNode struct {
	elems []node
}

func (n *seqNode) kind() Kind { return KindSequence }

func (n *seqNode) resolve() Value {
	s := make(Sequence, len(n.elems))
	for i, e := range n.elems {
		s[i] = e.resolve()
	}

	return Value{kind: KindSequence, seq: s}
}
