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

// Package yaml renders encoded value trees as YAML.
//
// This package extends rivaas.dev/treeenc with YAML output support, using
// gopkg.in/yaml.v3 for serialization. The encoding engine itself never
// produces bytes; this bridge consumes an already-built [treeenc.Value].
//
// Example:
//
//	m, err := treeenc.Encode(order)
//	if err != nil {
//	    // handle error
//	}
//	out, err := yaml.Marshal(treeenc.MappingOf(m))
package yaml

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"rivaas.dev/treeenc"
)

// Option configures YAML rendering behavior.
type Option func(*config)

// config holds YAML-specific rendering configuration.
type config struct {
	indent int
}

// WithIndent sets the number of spaces used for indentation.
// The default is the yaml.v3 default (4).
func WithIndent(spaces int) Option {
	return func(c *config) {
		c.indent = spaces
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// Marshal renders v as a YAML document.
//
// Example:
//
//	out, err := yaml.Marshal(val, yaml.WithIndent(2))
func Marshal(v treeenc.Value, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, v, opts...); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// MarshalMapping renders m as a YAML document.
func MarshalMapping(m treeenc.Mapping, opts ...Option) ([]byte, error) {
	return Marshal(treeenc.MappingOf(m), opts...)
}

// Encode renders v as YAML to w.
func Encode(w io.Writer, v treeenc.Value, opts ...Option) error {
	cfg := applyOptions(opts)

	enc := yaml.NewEncoder(w)
	if cfg.indent > 0 {
		enc.SetIndent(cfg.indent)
	}
	if err := enc.Encode(v.Interface()); err != nil {
		return fmt.Errorf("yaml: failed to render value tree: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("yaml: failed to finish document: %w", err)
	}

	return nil
}
