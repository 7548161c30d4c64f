// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package dialect

// CompiledPattern is the result of adapting one macro's expansion to a target
// dialect: the final, engine-ready pattern text together with the mapping
// from capture names to group ordinals.  Compiled patterns are immutable and
// safe to cache and share.
type CompiledPattern struct {
	// Name of the macro from which this pattern was adapted.
	name string
	// Final pattern text, ready for the target engine.
	text string
	// Mapping from capture names to the 1-based, left-to-right ordinal of
	// their group among the capturing groups of the final text.  Names whose
	// groups were rewritten to plain capturing groups remain addressable
	// here; under dialects permitting duplicate names, a name maps to its
	// first occurrence.
	groups map[string]uint
}

// Name returns the name of the macro from which this pattern was adapted.
func (p *CompiledPattern) Name() string {
	return p.name
}

// Text returns the final pattern text.
func (p *CompiledPattern) Text() string {
	return p.text
}

// Groups returns the mapping from capture names to group ordinals.  The
// returned map is owned by the pattern and must not be mutated.
func (p *CompiledPattern) Groups() map[string]uint {
	return p.groups
}

// GroupIndex returns the 1-based ordinal of the capturing group holding the
// content named by a given capture name, if any.
func (p *CompiledPattern) GroupIndex(name string) (uint, bool) {
	index, ok := p.groups[name]
	return index, ok
}
