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

// slotRef is a write-back handle bound at creation to one slot of an owning
// container: a string key inside a mapping box, or an integer index inside
// a sequence box. Container handles and delegating encoders mutate their
// parent exclusively through slot references; they never hold the parent
// container itself.
//
// A slot reference is shared between the owning frame and every nested
// handle built under it, and outlives those handles. It is invoked at most
// once per structural mutation and never concurrently (the encode call tree
// has a single active writer at any point).
type slotRef struct {
	m   *mapNode // exactly one of m, s is non-nil
	s   *seqNode
	key string
	idx int
}

// mapSlot binds a slot to entry key of m.
func mapSlot(m *mapNode, key string) slotRef {
	return slotRef{m: m, key: key}
}

// seqSlot binds a slot to position idx of s. idx may be one past the
// current end, meaning the next appended position.
func seqSlot(s *seqNode, idx int) slotRef {
	return slotRef{s: s, idx: idx}
}

// write places n in the bound slot, replacing any previous occupant. For a
// sequence slot bound at the current end, write appends.
func (r slotRef) write(n node) {
	if r.m != nil {
		r.m.entries[r.key] = n

		return
	}
	if r.idx < len(r.s.elems) {
		r.s.elems[r.idx] = n

		return
	}
	r.s.elems = append(r.s.elems, n)
}

// append adds n at the end of the bound sequence, ignoring the bound index.
// Sequence slots only.
func (r slotRef) append(n node) {
	r.s.elems = append(r.s.elems, n)
}

// insert places n at position at, shifting later elements. Positions past
// the end clamp to an append. Sequence slots only; used by delegating
// encoder finalization, where elements appended after the delegate was
// created must stay behind it.
func (r slotRef) insert(n node, at int) {
	if at >= len(r.s.elems) {
		r.s.elems = append(r.s.elems, n)

		return
	}
	r.s.elems = append(r.s.elems[:at], append([]node{n}, r.s.elems[at:]...)...)
}
