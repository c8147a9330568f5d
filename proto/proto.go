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

// Package proto converts encoded value trees to protobuf well-known types.
//
// This package extends rivaas.dev/treeenc with Protocol Buffers support,
// using google.golang.org/protobuf's structpb well-known types. A
// [treeenc.Value] maps onto *structpb.Value and a [treeenc.Mapping] onto
// *structpb.Struct, ready to embed in any message with a
// google.protobuf.Struct field.
//
// Example:
//
//	m, err := treeenc.Encode(payload)
//	if err != nil {
//	    // handle error
//	}
//	st, err := proto.Struct(m)
package proto

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"rivaas.dev/treeenc"
)

// Option configures the conversion.
type Option func(*config)

// config holds proto-specific conversion configuration.
type config struct {
	timeLayout string
}

// WithTimeLayout sets the layout used to render time.Time scalars, which
// have no structpb representation of their own. The default is RFC3339
// with nanoseconds.
func WithTimeLayout(layout string) Option {
	return func(c *config) {
		c.timeLayout = layout
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		timeLayout: time.RFC3339Nano,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// Struct converts m to a *structpb.Struct.
//
// Errors name the offending key when a scalar has no structpb
// representation.
func Struct(m treeenc.Mapping, opts ...Option) (*structpb.Struct, error) {
	cfg := applyOptions(opts)

	return structValue(m, cfg)
}

// Value converts v to a *structpb.Value.
func Value(v treeenc.Value, opts ...Option) (*structpb.Value, error) {
	cfg := applyOptions(opts)

	return protoValue(v, cfg)
}

func structValue(m treeenc.Mapping, cfg *config) (*structpb.Struct, error) {
	fields := make(map[string]*structpb.Value, len(m))
	for k, e := range m {
		pv, err := protoValue(e, cfg)
		if err != nil {
			return nil, fmt.Errorf("proto: key %q: %w", k, err)
		}
		fields[k] = pv
	}

	return &structpb.Struct{Fields: fields}, nil
}

func protoValue(v treeenc.Value, cfg *config) (*structpb.Value, error) {
	switch v.Kind() {
	case treeenc.KindScalar:
		s, _ := v.Scalar()

		return scalarValue(s, cfg)
	case treeenc.KindSequence:
		seq, _ := v.Sequence()
		vals := make([]*structpb.Value, len(seq))
		for i, e := range seq {
			pv, err := protoValue(e, cfg)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			vals[i] = pv
		}

		return structpb.NewListValue(&structpb.ListValue{Values: vals}), nil
	case treeenc.KindMapping:
		m, _ := v.Mapping()
		st, err := structValue(m, cfg)
		if err != nil {
			return nil, err
		}

		return structpb.NewStructValue(st), nil
	default:
		return nil, fmt.Errorf("proto: cannot convert %s value", v.Kind())
	}
}

func scalarValue(s any, cfg *config) (*structpb.Value, error) {
	// structpb has no time kind; render as a string.
	if t, ok := s.(time.Time); ok {
		return structpb.NewStringValue(t.Format(cfg.timeLayout)), nil
	}

	pv, err := structpb.NewValue(s)
	if err != nil {
		return nil, fmt.Errorf("proto: unsupported scalar %T: %w", s, err)
	}

	return pv, nil
}
