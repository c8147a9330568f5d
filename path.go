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
	"strconv"
	"strings"
)

// Key is one step in a [Path]: a mapping key name or a sequence index.
// Synthetic keys, such as the super key, are ordinary name keys.
type Key struct {
	name    string
	index   int
	named   bool
	indexed bool
}

// NameKey returns a key addressing a mapping entry.
func NameKey(name string) Key {
	return Key{name: name, named: true}
}

// IndexKey returns a key addressing a sequence position.
func IndexKey(i int) Key {
	return Key{index: i, indexed: true}
}

// Name returns the key name; ok is false for pure index keys.
func (k Key) Name() (string, bool) {
	return k.name, k.named
}

// Index returns the sequence index; ok is false for pure name keys.
func (k Key) Index() (int, bool) {
	return k.index, k.indexed
}

// String renders the key as a path segment: "name" or "[3]".
func (k Key) String() string {
	if k.named {
		return k.name
	}

	return "[" + strconv.Itoa(k.index) + "]"
}

// Path is the ordered list of keys identifying the current nesting position
// during an encode. Push and pop follow strict LIFO discipline; the engine
// pairs every push with exactly one pop on every exit path, including
// failure.
type Path []Key

// String renders the path in "a.b[3].c" form. An empty path renders as
// "(root)".
func (p Path) String() string {
	if len(p) == 0 {
		return "(root)"
	}

	var sb strings.Builder
	for i, k := range p {
		if i > 0 && k.named {
			sb.WriteByte('.')
		}
		sb.WriteString(k.String())
	}

	return sb.String()
}

// clone returns an independent copy; exposed paths must not alias the
// engine's mutable slice.
func (p Path) clone() Path {
	if len(p) == 0 {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)

	return out
}

func (p *Path) push(k Key) {
	*p = append(*p, k)
}

func (p *Path) pop() {
	*p = (*p)[:len(*p)-1]
}

// child returns a cloned path extended by one key. Used for container
// position snapshots and diagnostics.
func (p Path) child(k Key) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)

	return append(out, k)
}
