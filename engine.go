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

import (
	"fmt"
	"time"
)

// TreeEncodable is the capability every structurally encodable value
// implements: given an active encoder handle, request exactly one container
// (scalar, keyed, or unkeyed) and perform zero or more writes into it.
//
// The engine never inspects a value beyond invoking this one method. Values
// that do not implement TreeEncodable are stored as opaque scalar leaves.
type TreeEncodable interface {
	EncodeTree(enc Encoder) error
}

// EncodableFunc adapts a plain function to [TreeEncodable].
type EncodableFunc func(enc Encoder) error

// EncodeTree calls f.
func (f EncodableFunc) EncodeTree(enc Encoder) error {
	return f(enc)
}

// Encoder is the engine handle a value's [TreeEncodable.EncodeTree] routine
// receives. A routine requests exactly one container for itself; requesting
// a second container of a different shape at the same position is a state
// fault. Requesting the same shape again returns a handle over the same
// underlying container.
//
// Both the root engine and delegating (super) encoders implement Encoder.
type Encoder interface {
	// KeyedContainer returns a keyed container for this value.
	KeyedContainer() (*KeyedContainer, error)

	// UnkeyedContainer returns an unkeyed container for this value.
	UnkeyedContainer() (*UnkeyedContainer, error)

	// ScalarContainer returns a scalar container for this value.
	ScalarContainer() (*ScalarContainer, error)

	// Path returns the current nesting position. The result is a copy.
	Path() Path
}

// frame is one entry in the engine's container stack: the shape requested
// at that nesting level plus the box accumulated so far. A scalar frame's
// node stays nil until its value is written.
type frame struct {
	shape Kind
	n     node
}

// engine owns the frame stack and path for one top-level encode call. A
// delegating encoder runs a fresh engine whose path is inherited from the
// parent plus the one synthetic super key.
//
// Invariant: the engine is ready to accept a brand-new container request
// exactly when len(stack) == depth. Every nested encode increments depth
// and the nested routine's single container request pushes one frame, so
// the two stay in lockstep. The path runs ahead of depth when values are
// written through nested container handles: those containers contribute
// path segments but no frames of their own.
type engine struct {
	cfg    *config
	path   Path
	depth  int
	stack  []*frame
	failed bool
}

func newEngine(cfg *config) *engine {
	return &engine{cfg: cfg}
}

// Path implements [Encoder].
func (e *engine) Path() Path {
	return e.path.clone()
}

// ready reports whether a new container may be requested at the current
// position.
func (e *engine) ready() bool {
	return len(e.stack) == e.depth
}

// top returns the frame requested at the current position, or nil when
// none was requested yet.
func (e *engine) top() *frame {
	if len(e.stack) == e.depth+1 {
		return e.stack[len(e.stack)-1]
	}

	return nil
}

func (e *engine) push(f *frame) *frame {
	e.stack = append(e.stack, f)

	return f
}

// pop removes and resolves the top frame. An unwritten scalar frame is a
// state fault: the value requested a scalar container and never wrote into
// it.
func (e *engine) pop() (node, error) {
	f := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	if f.n == nil {
		return nil, e.fault("scalar container was requested but no value was written")
	}

	return f.n, nil
}

// truncate discards frames above n during error unwinding, keeping the
// stack consistent for the enclosing caller.
func (e *engine) truncate(n int) {
	e.stack = e.stack[:n]
}

// fault marks the engine unusable and returns a state error at the current
// path. State faults are programming errors in the encoded value's own
// routine; they abort the encode and are never retried.
func (e *engine) fault(format string, args ...any) error {
	e.failed = true
	e.cfg.trackError()

	return &StateError{Path: e.path.clone(), Reason: fmt.Sprintf(format, args...)}
}

// KeyedContainer implements [Encoder].
func (e *engine) KeyedContainer() (*KeyedContainer, error) {
	if e.failed {
		return nil, e.fault("encoder is no longer usable after a failure")
	}
	if f := e.top(); f != nil {
		if f.shape != KindMapping {
			return nil, e.fault("keyed container requested where a %s container is already in progress", f.shape)
		}

		return &KeyedContainer{eng: e, prefix: e.path.clone(), target: f.n.(*mapNode)}, nil
	}
	if !e.ready() {
		return nil, e.fault("keyed container requested in an inconsistent encoder state")
	}
	m := newMapNode()
	e.push(&frame{shape: KindMapping, n: m})

	return &KeyedContainer{eng: e, prefix: e.path.clone(), target: m}, nil
}

// UnkeyedContainer implements [Encoder].
func (e *engine) UnkeyedContainer() (*UnkeyedContainer, error) {
	if e.failed {
		return nil, e.fault("encoder is no longer usable after a failure")
	}
	if f := e.top(); f != nil {
		if f.shape != KindSequence {
			return nil, e.fault("unkeyed container requested where a %s container is already in progress", f.shape)
		}

		return &UnkeyedContainer{eng: e, prefix: e.path.clone(), target: f.n.(*seqNode)}, nil
	}
	if !e.ready() {
		return nil, e.fault("unkeyed container requested in an inconsistent encoder state")
	}
	s := &seqNode{}
	e.push(&frame{shape: KindSequence, n: s})

	return &UnkeyedContainer{eng: e, prefix: e.path.clone(), target: s}, nil
}

// ScalarContainer implements [Encoder].
func (e *engine) ScalarContainer() (*ScalarContainer, error) {
	if e.failed {
		return nil, e.fault("encoder is no longer usable after a failure")
	}
	if f := e.top(); f != nil {
		if f.shape != KindScalar {
			return nil, e.fault("scalar container requested where a %s container is already in progress", f.shape)
		}

		return &ScalarContainer{eng: e, fr: f}, nil
	}
	if !e.ready() {
		return nil, e.fault("scalar container requested in an inconsistent encoder state")
	}
	f := e.push(&frame{shape: KindScalar})

	return &ScalarContainer{eng: e, fr: f}, nil
}

// encodeNested is the recursive entry point: align the path with the
// writing container's prefix, push the key, encode v at the deeper path,
// restore the path on every exit. Nested container handles sit below the
// engine's own position, so the prefix may carry segments the path does
// not have yet; faults and the depth limit must see them.
func (e *engine) encodeNested(prefix Path, key Key, v any) (node, error) {
	restore := len(e.path)
	for i := restore; i < len(prefix); i++ {
		e.path.push(prefix[i])
	}
	e.path.push(key)
	e.depth++
	defer func() {
		e.depth--
		e.path = e.path[:restore]
	}()

	// The limit counts the absolute path, so neither delegation chains nor
	// nested containers can reset it.
	if d := len(e.path); e.cfg.maxDepth > 0 && d > e.cfg.maxDepth {
		e.failed = true
		e.cfg.trackError()

		return nil, fmt.Errorf("%w of %d at %s", ErrMaxDepthExceeded, e.cfg.maxDepth, e.path.String())
	}

	return e.box(v)
}

// box encodes one value at the current path and returns its node.
//
// The leaf policy is consulted first: a veto stores v as an opaque scalar
// and its own routine is never invoked. Otherwise a TreeEncodable value
// runs its routine against this engine; a routine that requests no
// container encodes as the value itself, one that built a frame yields
// that frame, and anything it leaves behind on error is unwound so the
// caller sees a consistent stack.
func (e *engine) box(v any) (node, error) {
	e.cfg.observeDepth(len(e.path))

	if !e.cfg.decompose(v) {
		return &scalarNode{v: v}, nil
	}

	te, ok := v.(TreeEncodable)
	if !ok {
		return &scalarNode{v: v}, nil
	}

	mark := len(e.stack)
	if err := te.EncodeTree(e); err != nil {
		e.truncate(mark)
		e.failed = true

		return nil, err
	}

	switch len(e.stack) {
	case mark:
		// The routine requested no container: the value itself is the
		// encoded form.
		return &scalarNode{v: v}, nil
	case mark + 1:
		return e.pop()
	default:
		residual := len(e.stack) - mark
		e.truncate(mark)

		return nil, e.fault("value produced %d residual containers, expected one", residual)
	}
}

// isLeafScalar reports whether v is a primitive leaf kind that containers
// write directly through their slot reference, without recursing.
func isLeafScalar(v any) bool {
	switch v.(type) {
	case nil,
		bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		[]byte, time.Time:
		return true
	default:
		return false
	}
}
