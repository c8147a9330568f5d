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

// Package toml renders encoded value trees as TOML.
//
// This package extends rivaas.dev/treeenc with TOML output support, using
// github.com/BurntSushi/toml for serialization. TOML documents are keyed
// at the root, so this bridge takes a [treeenc.Mapping], the same shape
// [treeenc.Encode] guarantees.
//
// Example:
//
//	m, err := treeenc.Encode(cfg)
//	if err != nil {
//	    // handle error
//	}
//	out, err := toml.Marshal(m)
package toml

import (
	"bytes"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"rivaas.dev/treeenc"
)

// Option configures TOML rendering behavior.
type Option func(*config)

// config holds TOML-specific rendering configuration.
type config struct {
	indent string
}

// WithIndent sets the string used for one level of indentation.
// The default is two spaces.
func WithIndent(indent string) Option {
	return func(c *config) {
		c.indent = indent
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// Marshal renders m as a TOML document. TOML has no null literal, so trees
// holding nil scalars fail with an error naming the offending key rather
// than silently dropping the entry.
func Marshal(m treeenc.Mapping, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m, opts...); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Encode renders m as TOML to w.
func Encode(w io.Writer, m treeenc.Mapping, opts ...Option) error {
	cfg := applyOptions(opts)

	if err := checkNils(treeenc.MappingOf(m), ""); err != nil {
		return err
	}

	enc := toml.NewEncoder(w)
	if cfg.indent != "" {
		enc.Indent = cfg.indent
	}
	if err := enc.Encode(m.Interface()); err != nil {
		return fmt.Errorf("toml: failed to render value tree: %w", err)
	}

	return nil
}

// checkNils rejects nil scalars up front. The underlying encoder drops nil
// entries without an error, which would lose a mapping key.
func checkNils(v treeenc.Value, at string) error {
	switch v.Kind() {
	case treeenc.KindScalar:
		if s, _ := v.Scalar(); s == nil {
			return fmt.Errorf("toml: nil value at %q has no TOML representation", at)
		}
	case treeenc.KindSequence:
		seq, _ := v.Sequence()
		for i, e := range seq {
			if err := checkNils(e, fmt.Sprintf("%s[%d]", at, i)); err != nil {
				return err
			}
		}
	case treeenc.KindMapping:
		m, _ := v.Mapping()
		for k, e := range m {
			child := k
			if at != "" {
				child = at + "." + k
			}
			if err := checkNils(e, child); err != nil {
				return err
			}
		}
	}

	return nil
}
