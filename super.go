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

// SuperEncoder lets a base type's encoding routine run against a container
// shape of its own choosing, with the result spliced back into one slot of
// the derived type's container when delegation finishes. The base routine
// sees an ordinary [Encoder] with a fresh stack and a path inherited from
// the parent plus one synthetic key.
//
// Finalization happens in [SuperEncoder.Close], which must run exactly once
// on every exit path; Close is idempotent, so `defer se.Close()` combined
// with an explicit error-checked Close is safe. [SuperEncoder.Run] wraps
// the delegate-then-close sequence and is the preferred way to use one:
//
//	kc, err := enc.KeyedContainer()
//	...
//	if err := kc.EncodeSuper(d.Base); err != nil {
//	    return err
//	}
//
// A delegate whose routine requested no container at all finalizes by
// writing an empty mapping into its slot; an absent encode is
// indistinguishable from an empty map. Callers that want "write nothing"
// must not create the delegate.
type SuperEncoder struct {
	eng    *engine
	parent *engine
	slot   slotRef
	seqIdx int // insert position for a sequence slot; -1 for a mapping slot
	closed bool
}

// newSuperEncoder builds a delegate over a fresh engine carrying the full
// inherited path including the synthetic key. The fresh stack means the
// base routine may request exactly one container of any shape no matter
// how deep the parent already is.
func newSuperEncoder(parent *engine, path Path, slot slotRef, seqIdx int) *SuperEncoder {
	eng := &engine{cfg: parent.cfg, path: path}

	return &SuperEncoder{eng: eng, parent: parent, slot: slot, seqIdx: seqIdx}
}

// KeyedContainer implements [Encoder].
func (s *SuperEncoder) KeyedContainer() (*KeyedContainer, error) {
	if s.closed {
		return nil, s.eng.fault("delegating encoder used after Close")
	}

	return s.eng.KeyedContainer()
}

// UnkeyedContainer implements [Encoder].
func (s *SuperEncoder) UnkeyedContainer() (*UnkeyedContainer, error) {
	if s.closed {
		return nil, s.eng.fault("delegating encoder used after Close")
	}

	return s.eng.UnkeyedContainer()
}

// ScalarContainer implements [Encoder].
func (s *SuperEncoder) ScalarContainer() (*ScalarContainer, error) {
	if s.closed {
		return nil, s.eng.fault("delegating encoder used after Close")
	}

	return s.eng.ScalarContainer()
}

// Path implements [Encoder].
func (s *SuperEncoder) Path() Path {
	return s.eng.Path()
}

// Run delegates to base and finalizes. The base routine's error, if any,
// wins over a finalization fault; the splice-back still runs so the parent
// container stays structurally consistent.
func (s *SuperEncoder) Run(base TreeEncodable) error {
	err := base.EncodeTree(s)
	cerr := s.Close()
	if err != nil {
		return err
	}

	return cerr
}

// Close finalizes the delegation: resolves the single residual frame (or
// an empty mapping when the base routine encoded nothing) and writes it
// through the bound slot reference: an insert at the captured position for
// a sequence parent, a keyed write for a mapping parent. The write happens
// exactly once per SuperEncoder; subsequent Close calls are no-ops.
//
// More than one residual frame is a fatal consistency fault: nothing is
// written and the fault propagates.
func (s *SuperEncoder) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var n node
	switch len(s.eng.stack) {
	case 0:
		n = newMapNode()
	case 1:
		var err error
		if n, err = s.eng.pop(); err != nil {
			return err
		}
	default:
		residual := len(s.eng.stack)
		s.eng.truncate(0)

		return s.eng.fault("delegating encoder finalized with %d residual containers, expected at most one", residual)
	}

	if s.seqIdx >= 0 {
		s.slot.insert(n, s.seqIdx)
	} else {
		s.slot.write(n)
	}

	return nil
}
