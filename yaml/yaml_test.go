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

package yaml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	goyaml "gopkg.in/yaml.v3"

	"rivaas.dev/treeenc"
)

type server struct {
	Host string
	Port int
	Tags []string
}

func (s server) EncodeTree(enc treeenc.Encoder) error {
	kc, err := enc.KeyedContainer()
	if err != nil {
		return err
	}
	if err := kc.Encode("host", s.Host); err != nil {
		return err
	}
	if err := kc.Encode("port", s.Port); err != nil {
		return err
	}
	tags := kc.NestedUnkeyed("tags")
	for _, tag := range s.Tags {
		if err := tags.Encode(tag); err != nil {
			return err
		}
	}

	return nil
}

func TestMarshal_Mapping(t *testing.T) {
	t.Parallel()

	m, err := treeenc.Encode(server{Host: "localhost", Port: 8080, Tags: []string{"edge", "canary"}})
	require.NoError(t, err)

	out, err := MarshalMapping(m)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, goyaml.Unmarshal(out, &got))
	assert.Equal(t, "localhost", got["host"])
	assert.Equal(t, 8080, got["port"])
	assert.Equal(t, []any{"edge", "canary"}, got["tags"])
}

func TestMarshal_SequenceRoot(t *testing.T) {
	t.Parallel()

	v := treeenc.SequenceOf(treeenc.ScalarOf("a"), treeenc.ScalarOf(2))

	out, err := Marshal(v)
	require.NoError(t, err)

	var got []any
	require.NoError(t, goyaml.Unmarshal(out, &got))
	assert.Equal(t, []any{"a", 2}, got)
}

func TestMarshal_WithIndent(t *testing.T) {
	t.Parallel()

	v := treeenc.MappingOf(treeenc.Mapping{
		"outer": treeenc.MappingOf(treeenc.Mapping{
			"inner": treeenc.ScalarOf(1),
		}),
	})

	out, err := Marshal(v, WithIndent(2))
	require.NoError(t, err)
	assert.Contains(t, string(out), "\n  inner: 1")
}

func TestEncode_Writer(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	err := Encode(&sb, treeenc.ScalarOf("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", sb.String())
}
