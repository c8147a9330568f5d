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
	"reflect"
	"sort"
	"strings"
)

// Kind identifies the shape of a [Value].
type Kind uint8

const (
	// KindInvalid is the zero Kind; no valid Value has it.
	KindInvalid Kind = iota

	// KindScalar is a single primitive or opaque leaf value.
	KindScalar

	// KindSequence is an ordered list of values.
	KindSequence

	// KindMapping is a unique-key map from string to value.
	KindMapping
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "invalid"
	}
}

// Value is the dynamic tree produced by encoding: a scalar, an ordered
// sequence of values, or a unique-key mapping from string to value.
//
// A Value returned by [Encode] or [EncodeValue] is fully resolved: it holds
// no references back into encoder state and is safe to retain after the
// encoder is gone. Values are immutable by convention; the accessor methods
// return the backing containers directly, so callers that mutate them do so
// at their own risk.
type Value struct {
	kind    Kind
	scalar  any
	seq     Sequence
	mapping Mapping
}

// Sequence is an ordered list of values.
type Sequence []Value

// Mapping is a unique-key map from string to value. Insertion order is not
// preserved; a mapping never holds two entries with the same key.
type Mapping map[string]Value

// ScalarOf returns a scalar Value holding v as-is.
func ScalarOf(v any) Value {
	return Value{kind: KindScalar, scalar: v}
}

// SequenceOf returns a sequence Value over the given elements.
func SequenceOf(elems ...Value) Value {
	return Value{kind: KindSequence, seq: Sequence(elems)}
}

// MappingOf returns a mapping Value over m. The map is used directly, not
// copied.
func MappingOf(m Mapping) Value {
	if m == nil {
		m = Mapping{}
	}

	return Value{kind: KindMapping, mapping: m}
}

// Kind returns the shape of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// Scalar returns the scalar payload. The second result is false when the
// value is not a scalar.
func (v Value) Scalar() (any, bool) {
	return v.scalar, v.kind == KindScalar
}

// Sequence returns the sequence payload. The second result is false when
// the value is not a sequence.
func (v Value) Sequence() (Sequence, bool) {
	if v.kind != KindSequence {
		return nil, false
	}

	return v.seq, true
}

// Mapping returns the mapping payload. The second result is false when the
// value is not a mapping.
func (v Value) Mapping() (Mapping, bool) {
	if v.kind != KindMapping {
		return nil, false
	}

	return v.mapping, true
}

// Equal reports structural equality: same kind, and element-wise equal
// payloads. Scalars compare by dynamic type and value (an int 1 and an
// int64 1 are not equal).
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case KindScalar:
		return scalarEqual(v.scalar, o.scalar)
	case KindSequence:
		if len(v.seq) != len(o.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(o.seq[i]) {
				return false
			}
		}

		return true
	case KindMapping:
		if len(v.mapping) != len(o.mapping) {
			return false
		}
		for k, ve := range v.mapping {
			oe, ok := o.mapping[k]
			if !ok || !ve.Equal(oe) {
				return false
			}
		}

		return true
	default:
		return true
	}
}

// scalarEqual compares scalar payloads. Comparable values use ==; the rest
// (byte slices, opaque leaves) fall back to deep equality.
func scalarEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a).Comparable() && reflect.TypeOf(b).Comparable() {
		return a == b
	}

	return reflect.DeepEqual(a, b)
}

// Interface lowers the tree to plain Go containers: scalars as-is,
// sequences as []any, mappings as map[string]any. This is the form the
// format bridges (treeenc/yaml, treeenc/toml, ...) consume.
func (v Value) Interface() any {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, e := range v.seq {
			out[i] = e.Interface()
		}

		return out
	case KindMapping:
		out := make(map[string]any, len(v.mapping))
		for k, e := range v.mapping {
			out[k] = e.Interface()
		}

		return out
	default:
		return nil
	}
}

// Interface lowers the mapping to map[string]any, recursively.
func (m Mapping) Interface() map[string]any {
	out := make(map[string]any, len(m))
	for k, e := range m {
		out[k] = e.Interface()
	}

	return out
}

// String renders a compact, JSON-ish dump for diagnostics. Mapping keys are
// sorted so the output is stable.
func (v Value) String() string {
	var sb strings.Builder
	v.writeTo(&sb)

	return sb.String()
}

func (v Value) writeTo(sb *strings.Builder) {
	switch v.kind {
	case KindScalar:
		fmt.Fprintf(sb, "%#v", v.scalar)
	case KindSequence:
		sb.WriteByte('[')
		for i, e := range v.seq {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.writeTo(sb)
		}
		sb.WriteByte(']')
	case KindMapping:
		keys := make([]string, 0, len(v.mapping))
		for k := range v.mapping {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%q: ", k)
			e := v.mapping[k]
			e.writeTo(sb)
		}
		sb.WriteByte('}')
	default:
		sb.WriteString("<invalid>")
	}
}
