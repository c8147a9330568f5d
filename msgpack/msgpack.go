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

// Package msgpack renders encoded value trees as MessagePack.
//
// This package extends rivaas.dev/treeenc with MessagePack output support,
// using github.com/vmihailenco/msgpack/v5 for serialization.
//
// Example:
//
//	m, err := treeenc.Encode(msg)
//	if err != nil {
//	    // handle error
//	}
//	out, err := msgpack.Marshal(treeenc.MappingOf(m))
package msgpack

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"rivaas.dev/treeenc"
)

// Option configures MessagePack rendering behavior.
type Option func(*config)

// config holds MessagePack-specific rendering configuration.
type config struct {
	sortKeys bool
}

// WithSortedKeys makes mapping keys render in sorted order, producing
// deterministic output for content hashing and golden files.
func WithSortedKeys() Option {
	return func(c *config) {
		c.sortKeys = true
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// Marshal renders v as MessagePack bytes.
//
// Example:
//
//	out, err := msgpack.Marshal(val, msgpack.WithSortedKeys())
func Marshal(v treeenc.Value, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, v, opts...); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Encode renders v as MessagePack to w.
func Encode(w io.Writer, v treeenc.Value, opts ...Option) error {
	cfg := applyOptions(opts)

	enc := msgpack.NewEncoder(w)
	if cfg.sortKeys {
		enc.SetSortMapKeys(true)
	}
	if err := enc.Encode(v.Interface()); err != nil {
		return fmt.Errorf("msgpack: failed to render value tree: %w", err)
	}

	return nil
}
