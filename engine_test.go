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

//go:build !integration

package treeenc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainerReuse_SameShape(t *testing.T) {
	t.Parallel()

	t.Run("unkeyed", func(t *testing.T) {
		t.Parallel()

		// Two requests for the same shape at one path must alias one
		// underlying sequence: appends interleave in call order.
		v, err := EncodeValue(EncodableFunc(func(e Encoder) error {
			first, err := e.UnkeyedContainer()
			if err != nil {
				return err
			}
			second, err := e.UnkeyedContainer()
			if err != nil {
				return err
			}
			if err := first.Encode("a"); err != nil {
				return err
			}
			if err := second.Encode("b"); err != nil {
				return err
			}
			assert.Equal(t, 2, first.Len())
			assert.Equal(t, 2, second.Len())

			return first.Encode("c")
		}))
		require.NoError(t, err)
		assert.True(t, v.Equal(SequenceOf(ScalarOf("a"), ScalarOf("b"), ScalarOf("c"))), "got %s", v)
	})

	t.Run("keyed", func(t *testing.T) {
		t.Parallel()

		m, err := Encode(EncodableFunc(func(e Encoder) error {
			first, err := e.KeyedContainer()
			if err != nil {
				return err
			}
			second, err := e.KeyedContainer()
			if err != nil {
				return err
			}
			if err := first.Encode("a", 1); err != nil {
				return err
			}

			return second.Encode("b", 2)
		}))
		require.NoError(t, err)
		assert.Len(t, m, 2)
	})
}

func TestContainerConflict_DifferentShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		routine EncodableFunc
	}{
		{
			name: "keyed then unkeyed",
			routine: func(e Encoder) error {
				if _, err := e.KeyedContainer(); err != nil {
					return err
				}
				_, err := e.UnkeyedContainer()

				return err
			},
		},
		{
			name: "unkeyed then scalar",
			routine: func(e Encoder) error {
				if _, err := e.UnkeyedContainer(); err != nil {
					return err
				}
				_, err := e.ScalarContainer()

				return err
			},
		},
		{
			name: "scalar then keyed",
			routine: func(e Encoder) error {
				if _, err := e.ScalarContainer(); err != nil {
					return err
				}
				_, err := e.KeyedContainer()

				return err
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := EncodeValue(tt.routine)
			require.ErrorIs(t, err, ErrInvalidState)

			var se *StateError
			require.ErrorAs(t, err, &se)
			assert.Contains(t, se.Reason, "already in progress")
		})
	}
}

func TestStateError_CarriesPath(t *testing.T) {
	t.Parallel()

	// The fault happens two levels down; the error must say where.
	conflicted := EncodableFunc(func(e Encoder) error {
		if _, err := e.KeyedContainer(); err != nil {
			return err
		}
		_, err := e.UnkeyedContainer()

		return err
	})

	t.Run("through recursion", func(t *testing.T) {
		t.Parallel()

		_, err := Encode(shapeOver("outer", shapeOver("inner", conflicted)))
		var se *StateError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "outer.inner", se.Path.String())
	})

	t.Run("through nested containers", func(t *testing.T) {
		t.Parallel()

		// Nested container handles contribute no frames, but the fault
		// must still carry their segments.
		_, err := Encode(EncodableFunc(func(e Encoder) error {
			kc, err := e.KeyedContainer()
			if err != nil {
				return err
			}

			return kc.NestedKeyed("outer").Encode("inner", conflicted)
		}))
		var se *StateError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "outer.inner", se.Path.String())
	})

	t.Run("through a nested sequence", func(t *testing.T) {
		t.Parallel()

		_, err := Encode(EncodableFunc(func(e Encoder) error {
			kc, err := e.KeyedContainer()
			if err != nil {
				return err
			}

			return kc.NestedUnkeyed("items").Encode(conflicted)
		}))
		var se *StateError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "items[0]", se.Path.String())
	})
}

func TestNestedContainers(t *testing.T) {
	t.Parallel()

	m, err := Encode(EncodableFunc(func(e Encoder) error {
		kc, err := e.KeyedContainer()
		if err != nil {
			return err
		}

		inner := kc.NestedKeyed("meta")
		if err := inner.Encode("version", 2); err != nil {
			return err
		}

		tags := kc.NestedUnkeyed("tags")
		if err := tags.Encode("a"); err != nil {
			return err
		}
		row := tags.NestedUnkeyed()
		if err := row.Encode(1); err != nil {
			return err
		}

		// Reserved but never written: still present, empty.
		kc.NestedKeyed("empty")
		tags.NestedUnkeyed()

		return nil
	}))
	require.NoError(t, err)

	want := MappingOf(Mapping{
		"meta":  MappingOf(Mapping{"version": ScalarOf(2)}),
		"tags":  SequenceOf(ScalarOf("a"), SequenceOf(ScalarOf(1)), SequenceOf()),
		"empty": MappingOf(Mapping{}),
	})
	assert.True(t, MappingOf(m).Equal(want), "got %s, want %s", MappingOf(m), want)
}

func TestScalarContainer(t *testing.T) {
	t.Parallel()

	t.Run("single write", func(t *testing.T) {
		t.Parallel()

		v, err := EncodeValue(label{Text: "hello"})
		require.NoError(t, err)
		assert.True(t, v.Equal(ScalarOf("hello")))
	})

	t.Run("double write faults", func(t *testing.T) {
		t.Parallel()

		_, err := EncodeValue(EncodableFunc(func(e Encoder) error {
			sc, err := e.ScalarContainer()
			if err != nil {
				return err
			}
			if err := sc.Encode("first"); err != nil {
				return err
			}

			return sc.Encode("second")
		}))
		require.ErrorIs(t, err, ErrInvalidState)
		assert.ErrorContains(t, err, "already holds a value")
	})

	t.Run("unwritten scalar faults", func(t *testing.T) {
		t.Parallel()

		_, err := EncodeValue(EncodableFunc(func(e Encoder) error {
			_, err := e.ScalarContainer()

			return err
		}))
		require.ErrorIs(t, err, ErrInvalidState)
		assert.ErrorContains(t, err, "no value was written")
	})

	t.Run("same-shape re-request shares the frame", func(t *testing.T) {
		t.Parallel()

		v, err := EncodeValue(EncodableFunc(func(e Encoder) error {
			first, err := e.ScalarContainer()
			if err != nil {
				return err
			}
			if _, err := e.ScalarContainer(); err != nil {
				return err
			}

			return first.Encode(7)
		}))
		require.NoError(t, err)
		assert.True(t, v.Equal(ScalarOf(7)))
	})
}

func TestUnkeyedContainer_AppendOrder(t *testing.T) {
	t.Parallel()

	const n = 25
	v, err := EncodeValue(EncodableFunc(func(e Encoder) error {
		uc, err := e.UnkeyedContainer()
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := uc.Encode(i); err != nil {
				return err
			}
		}

		return nil
	}))
	require.NoError(t, err)

	seq, ok := v.Sequence()
	require.True(t, ok)
	require.Len(t, seq, n)
	for i, e := range seq {
		assert.True(t, e.Equal(ScalarOf(i)), "index %d out of order", i)
	}
}

func TestEngine_ResidualFrames(t *testing.T) {
	t.Parallel()

	// No public API can leave two frames behind; force the state through
	// the engine directly to cover the consistency check.
	_, err := EncodeValue(EncodableFunc(func(e Encoder) error {
		eng := e.(*engine)
		eng.push(&frame{shape: KindMapping, n: newMapNode()})
		eng.push(&frame{shape: KindMapping, n: newMapNode()})

		return nil
	}))
	require.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorContains(t, err, "residual containers")
}

func TestEngine_UnusableAfterFault(t *testing.T) {
	t.Parallel()

	_, err := EncodeValue(EncodableFunc(func(e Encoder) error {
		if _, err := e.KeyedContainer(); err != nil {
			return err
		}
		if _, err := e.UnkeyedContainer(); err == nil {
			t.Fatal("expected shape conflict")
		}
		// A failed encoder refuses further container requests.
		_, err := e.KeyedContainer()
		assert.ErrorIs(t, err, ErrInvalidState)

		return err
	}))
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestIsLeafScalar(t *testing.T) {
	t.Parallel()

	leaves := []any{
		nil, true, "s", int(1), int8(1), int16(1), int32(1), int64(1),
		uint(1), uint8(1), uint16(1), uint32(1), uint64(1),
		float32(1), float64(1), []byte("b"), time.Unix(0, 0),
	}
	for _, v := range leaves {
		assert.True(t, isLeafScalar(v), "%T must be a leaf", v)
	}

	notLeaves := []any{blob{}, point{}, []int{1}, map[string]int{}}
	for _, v := range notLeaves {
		assert.False(t, isLeafScalar(v), "%T must not be a leaf", v)
	}
}

func TestEncode_OpaqueLeafKinds(t *testing.T) {
	t.Parallel()

	// Values that neither implement TreeEncodable nor are primitive
	// leaves are stored opaque.
	m, err := Encode(shapeOver("blob", blob{Data: "x"}))
	require.NoError(t, err)
	assert.True(t, m["blob"].Equal(ScalarOf(blob{Data: "x"})))
}
