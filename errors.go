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
	"errors"
	"fmt"
)

// Static errors for encoding operations.
var (
	ErrNotKeyedContainer = errors.New("top-level value did not encode as a mapping")
	ErrInvalidState      = errors.New("invalid encoder state")
	ErrMaxDepthExceeded  = errors.New("exceeded maximum nesting depth")
	ErrInvalidOption     = errors.New("invalid encoder option")
)

// NotKeyedContainerError is the one domain error [Encode] propagates: the
// root value's routine resolved to a scalar or a sequence instead of a
// mapping. It carries the attempted value for diagnostic display.
//
// Use [errors.Is] with [ErrNotKeyedContainer], or [errors.As]:
//
//	var nk *treeenc.NotKeyedContainerError
//	if errors.As(err, &nk) {
//	    fmt.Printf("got %s from %v\n", nk.Kind, nk.Value)
//	}
type NotKeyedContainerError struct {
	Value any  // The top-level value that was encoded
	Kind  Kind // The shape its routine actually produced
}

// Error returns a formatted message with a contextual hint.
func (e *NotKeyedContainerError) Error() string {
	return fmt.Sprintf("top-level value %v encoded as a %s, not a mapping (hint: %s)",
		e.Value, e.Kind, e.hint())
}

// hint suggests a fix for the common root-shape mistakes.
func (e *NotKeyedContainerError) hint() string {
	switch e.Kind {
	case KindScalar:
		return "request a keyed container in EncodeTree, or use EncodeValue for scalar roots"
	case KindSequence:
		return "wrap the value under a key in an enclosing mapping, or use EncodeValue for sequence roots"
	default:
		return "the root routine must request a keyed container"
	}
}

// Unwrap anchors the error to [ErrNotKeyedContainer].
func (e *NotKeyedContainerError) Unwrap() error {
	return ErrNotKeyedContainer
}

// StateError reports a usage or consistency fault: a value's own encoding
// routine requested an incompatible container shape at a path that already
// has one, wrote a scalar container twice, or a delegating encoder
// finalized with more than one residual container. These are programming
// errors in the encoded value's routine, not recoverable conditions; an
// encoder that raised one must be discarded.
type StateError struct {
	Path   Path   // Position of the offending value in the graph
	Reason string // What the routine did wrong
}

// Error returns the fault with the path needed to locate the offending
// value type.
func (e *StateError) Error() string {
	return fmt.Sprintf("encoder state fault at %s: %s", e.Path.String(), e.Reason)
}

// Unwrap anchors the error to [ErrInvalidState].
func (e *StateError) Unwrap() error {
	return ErrInvalidState
}
