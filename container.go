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

// KeyedContainer writes key/value entries into a mapping under
// construction. It is handed to a value's encoding routine by
// [Encoder.KeyedContainer] or by a parent container's [KeyedContainer.NestedKeyed].
//
// Leaf values are written directly through the container's slot reference;
// structured values recurse through the engine at a path extended by their
// key.
type KeyedContainer struct {
	eng    *engine
	prefix Path
	target *mapNode
}

// Path returns the container's position in the value graph.
func (c *KeyedContainer) Path() Path {
	return c.prefix.clone()
}

// Encode writes v under key. Writing the same key twice replaces the
// earlier entry; a mapping never holds two entries with one key.
func (c *KeyedContainer) Encode(key string, v any) error {
	slot := mapSlot(c.target, key)
	if _, ok := v.(TreeEncodable); !ok && isLeafScalar(v) {
		slot.write(&scalarNode{v: v})
		c.eng.cfg.trackValue(c.prefix, NameKey(key), KindScalar)

		return nil
	}

	n, err := c.eng.encodeNested(c.prefix, NameKey(key), v)
	if err != nil {
		return err
	}
	slot.write(n)
	c.eng.cfg.trackValue(c.prefix, NameKey(key), n.kind())

	return nil
}

// NestedKeyed reserves key and returns a keyed container for the mapping
// stored there. The entry exists immediately: a nested container that is
// never written to still leaves an empty mapping under key.
func (c *KeyedContainer) NestedKeyed(key string) *KeyedContainer {
	child := newMapNode()
	mapSlot(c.target, key).write(child)

	return &KeyedContainer{eng: c.eng, prefix: c.prefix.child(NameKey(key)), target: child}
}

// NestedUnkeyed reserves key and returns an unkeyed container for the
// sequence stored there.
func (c *KeyedContainer) NestedUnkeyed(key string) *UnkeyedContainer {
	child := &seqNode{}
	mapSlot(c.target, key).write(child)

	return &UnkeyedContainer{eng: c.eng, prefix: c.prefix.child(NameKey(key)), target: child}
}

// SuperEncoder returns a delegating encoder bound to the configured super
// key (default "super"). See [SuperEncoder] for the finalization contract.
func (c *KeyedContainer) SuperEncoder() *SuperEncoder {
	return c.SuperEncoderForKey(c.eng.cfg.superKey)
}

// SuperEncoderForKey returns a delegating encoder bound to key.
func (c *KeyedContainer) SuperEncoderForKey(key string) *SuperEncoder {
	return newSuperEncoder(c.eng, c.prefix.child(NameKey(key)), mapSlot(c.target, key), -1)
}

// EncodeSuper runs base against a delegating encoder under the configured
// super key and finalizes it, in one call. Prefer this over managing a
// [SuperEncoder] by hand.
func (c *KeyedContainer) EncodeSuper(base TreeEncodable) error {
	return c.SuperEncoder().Run(base)
}

// EncodeSuperForKey runs base against a delegating encoder under key and
// finalizes it.
func (c *KeyedContainer) EncodeSuperForKey(key string, base TreeEncodable) error {
	return c.SuperEncoderForKey(key).Run(base)
}

// UnkeyedContainer appends values to a sequence under construction.
type UnkeyedContainer struct {
	eng    *engine
	prefix Path
	target *seqNode
}

// Path returns the container's position in the value graph.
func (c *UnkeyedContainer) Path() Path {
	return c.prefix.clone()
}

// Len returns the number of elements written so far. Two handles over the
// same underlying sequence observe the same length.
func (c *UnkeyedContainer) Len() int {
	return len(c.target.elems)
}

// Encode appends v to the sequence.
func (c *UnkeyedContainer) Encode(v any) error {
	key := IndexKey(len(c.target.elems))
	slot := seqSlot(c.target, len(c.target.elems))
	if _, ok := v.(TreeEncodable); !ok && isLeafScalar(v) {
		slot.append(&scalarNode{v: v})
		c.eng.cfg.trackValue(c.prefix, key, KindScalar)

		return nil
	}

	n, err := c.eng.encodeNested(c.prefix, key, v)
	if err != nil {
		return err
	}
	slot.append(n)
	c.eng.cfg.trackValue(c.prefix, key, n.kind())

	return nil
}

// NestedKeyed appends an empty mapping and returns a keyed container for
// it.
func (c *UnkeyedContainer) NestedKeyed() *KeyedContainer {
	key := IndexKey(len(c.target.elems))
	child := newMapNode()
	seqSlot(c.target, len(c.target.elems)).append(child)

	return &KeyedContainer{eng: c.eng, prefix: c.prefix.child(key), target: child}
}

// NestedUnkeyed appends an empty sequence and returns an unkeyed container
// for it.
func (c *UnkeyedContainer) NestedUnkeyed() *UnkeyedContainer {
	key := IndexKey(len(c.target.elems))
	child := &seqNode{}
	seqSlot(c.target, len(c.target.elems)).append(child)

	return &UnkeyedContainer{eng: c.eng, prefix: c.prefix.child(key), target: child}
}

// SuperEncoder returns a delegating encoder bound to the current end of the
// sequence. The position is captured now: elements appended afterwards end
// up after the delegate's result, regardless of when finalization runs.
func (c *UnkeyedContainer) SuperEncoder() *SuperEncoder {
	idx := len(c.target.elems)

	return newSuperEncoder(c.eng, c.prefix.child(IndexKey(idx)), seqSlot(c.target, idx), idx)
}

// EncodeSuper runs base against a delegating encoder bound to the current
// end of the sequence and finalizes it.
func (c *UnkeyedContainer) EncodeSuper(base TreeEncodable) error {
	return c.SuperEncoder().Run(base)
}

// ScalarContainer holds the single value of a scalar frame. It accepts
// primitive and opaque leaf values; structured values belong in keyed or
// unkeyed containers.
type ScalarContainer struct {
	eng *engine
	fr  *frame
}

// Encode writes the scalar. Writing twice is a state fault.
func (c *ScalarContainer) Encode(v any) error {
	if c.fr.n != nil {
		return c.eng.fault("scalar container already holds a value")
	}
	c.fr.n = &scalarNode{v: v}

	return nil
}
