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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotKeyedContainerError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *NotKeyedContainerError
		wantHint string
	}{
		{
			name:     "scalar root",
			err:      &NotKeyedContainerError{Value: 42, Kind: KindScalar},
			wantHint: "request a keyed container",
		},
		{
			name:     "sequence root",
			err:      &NotKeyedContainerError{Value: pair{}, Kind: KindSequence},
			wantHint: "wrap the value under a key",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.ErrorIs(t, tt.err, ErrNotKeyedContainer)
			assert.Contains(t, tt.err.Error(), tt.wantHint)
			assert.Contains(t, tt.err.Error(), tt.err.Kind.String())
		})
	}
}

func TestStateError(t *testing.T) {
	t.Parallel()

	err := &StateError{
		Path:   Path{NameKey("user"), NameKey("address")},
		Reason: "keyed container requested where a sequence container is already in progress",
	}

	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Contains(t, err.Error(), "user.address")
	assert.Contains(t, err.Error(), "already in progress")
}

func TestErrors_AsFromEncode(t *testing.T) {
	t.Parallel()

	_, err := Encode(label{Text: "x"})
	require.Error(t, err)

	var nk *NotKeyedContainerError
	require.True(t, errors.As(err, &nk))
	assert.Equal(t, label{Text: "x"}, nk.Value)
	assert.Equal(t, KindScalar, nk.Kind)
}
