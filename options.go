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

import "fmt"

// Default limits and conventions for encoding operations.
const (
	// DefaultMaxDepth is the default maximum nesting depth of the value
	// graph. It prevents stack exhaustion from cyclic or degenerate
	// EncodeTree implementations.
	DefaultMaxDepth = 64

	// DefaultSuperKey is the synthetic mapping key a delegating encoder
	// writes under when no explicit key is supplied.
	DefaultSuperKey = "super"
)

// LeafPolicy decides, once per value before recursion, whether a value is
// structurally decomposed. Returning false stores the value as an opaque
// scalar leaf and its own EncodeTree routine is never invoked.
//
// The default policy always decomposes.
type LeafPolicy func(v any) bool

// Events provides hooks for observability without coupling.
type Events struct {
	// ValueEncoded is called after a container write completes.
	// path: dot-and-bracket position (e.g., "user.tags[2]"), kind: the
	// shape written there.
	ValueEncoded func(path string, kind Kind)

	// Done is called once per top-level encode with final statistics.
	// Always called, even on error.
	Done func(stats Stats)
}

// Stats tracks encoding metrics for one top-level encode.
type Stats struct {
	ValuesEncoded     int // Container writes performed
	MaxDepth          int // Deepest nesting position reached
	ErrorsEncountered int // State faults and limit violations hit
}

// Option configures encoding behavior. Options are applied per call; the
// same Option values may be reused across goroutines.
type Option func(*config)

// config holds resolved options plus per-call state. One config instance
// belongs to exactly one top-level encode (or one [TreeEncoder], which
// copies it per call).
type config struct {
	leafPolicy LeafPolicy
	maxDepth   int
	superKey   string
	events     Events
	stats      Stats
}

// WithLeafPolicy sets the decomposition policy.
//
// Example:
//
//	// Keep raw payload types opaque for a downstream consumer.
//	treeenc.Encode(v, treeenc.WithLeafPolicy(func(v any) bool {
//		_, raw := v.(RawPayload)
//		return !raw
//	}))
func WithLeafPolicy(p LeafPolicy) Option {
	return func(c *config) {
		c.leafPolicy = p
	}
}

// WithMaxDepth sets the maximum nesting depth of the value graph.
// When exceeded, encoding returns ErrMaxDepthExceeded.
// The default is DefaultMaxDepth (64). Set to 0 to disable the limit.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

// WithSuperKey overrides the synthetic key delegating encoders write under.
// The default is DefaultSuperKey ("super").
func WithSuperKey(key string) Option {
	return func(c *config) {
		c.superKey = key
	}
}

// WithEvents sets observability hooks.
//
// Example:
//
//	WithEvents(treeenc.Events{
//		ValueEncoded: func(path string, kind treeenc.Kind) {
//			log.Printf("encoded %s at %s", kind, path)
//		},
//		Done: func(stats treeenc.Stats) {
//			log.Printf("encode complete: %d values", stats.ValuesEncoded)
//		},
//	})
func WithEvents(events Events) Option {
	return func(c *config) {
		c.events = events
	}
}

// defaultConfig returns default encoding configuration.
func defaultConfig() *config {
	return &config{
		maxDepth: DefaultMaxDepth,
		superKey: DefaultSuperKey,
	}
}

// applyOptions applies options to a fresh default config.
func applyOptions(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// validate rejects configurations that cannot work.
func (c *config) validate() error {
	if c.maxDepth < 0 {
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidOption, c.maxDepth)
	}
	if c.superKey == "" {
		return fmt.Errorf("%w: super key must not be empty", ErrInvalidOption)
	}

	return nil
}

// decompose consults the leaf policy for v.
func (c *config) decompose(v any) bool {
	return c.leafPolicy == nil || c.leafPolicy(v)
}

// trackValue records a completed container write at prefix+key.
// The path string is only rendered when a hook is installed.
func (c *config) trackValue(prefix Path, key Key, kind Kind) {
	c.stats.ValuesEncoded++
	c.observeDepth(len(prefix) + 1)
	if c.events.ValueEncoded != nil {
		c.events.ValueEncoded(prefix.child(key).String(), kind)
	}
}

// trackError records a fault during encoding.
func (c *config) trackError() {
	c.stats.ErrorsEncountered++
}

// observeDepth records the deepest position reached.
func (c *config) observeDepth(d int) {
	if d > c.stats.MaxDepth {
		c.stats.MaxDepth = d
	}
}

// finish emits the Done event with final statistics.
// Always called via defer in Encode/EncodeValue, even on error.
func (c *config) finish() {
	if c.events.Done != nil {
		c.events.Done(c.stats)
	}
}
