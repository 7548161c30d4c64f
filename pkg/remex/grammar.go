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
package remex

import (
	"fmt"
	"sync"

	"github.com/consensys/go-remex/pkg/dialect"
	"github.com/consensys/go-remex/pkg/remex/ast"
	"github.com/consensys/go-remex/pkg/util/source"
)

// CompiledMacro describes a single macro of a compiled grammar, along with
// its fully expanded body.
type CompiledMacro struct {
	// Name of the macro.
	Name string
	// Body of the macro after expansion, with every reference substituted.
	Body string
	// Public indicates whether the macro forms part of the grammar's
	// consumer-facing surface.
	Public bool
}

// CompiledGrammar represents a successfully compiled grammar, namely the set
// of macro definitions along with their dialect-agnostic expansions.
// Dialect-specific patterns are produced on demand via Pattern, with results
// cached per (macro, profile, options) combination.  A compiled grammar is
// immutable and safe for concurrent use.
type CompiledGrammar struct {
	// Macro definitions, in definition order.
	table *ast.MacroTable
	// Expanded text for each macro, indexed by macro identifier.
	arena []string
	// Dependency edges recorded during resolution.
	edges []ast.DependencyEdge
	// Warnings accumulated during compilation.
	warnings []*source.SyntaxError
	// Guards access to the pattern cache.
	mu sync.Mutex
	// Cache of adapted patterns.
	cache map[patternKey]*patternEntry
}

// patternKey identifies a single adaptation request.  Profiles and options
// are plain value types, hence the composite key is comparable.
type patternKey struct {
	name    string
	profile dialect.Profile
	opts    dialect.Options
}

// patternEntry holds the (eventual) result of one adaptation.  The once gate
// ensures concurrent requests for the same key perform the work exactly once,
// with all callers observing the same outcome.
type patternEntry struct {
	once    sync.Once
	pattern *dialect.CompiledPattern
	err     error
}

// newCompiledGrammar wraps the outputs of the compilation passes.
func newCompiledGrammar(table *ast.MacroTable, arena []string,
	edges []ast.DependencyEdge, warnings []*source.SyntaxError) *CompiledGrammar {
	//
	return &CompiledGrammar{
		table:    table,
		arena:    arena,
		edges:    edges,
		warnings: warnings,
		cache:    make(map[patternKey]*patternEntry),
	}
}

// Macros returns every macro of this grammar, in definition order.
func (p *CompiledGrammar) Macros() []CompiledMacro {
	macros := make([]CompiledMacro, len(p.arena))
	//
	for i := range p.arena {
		def := p.table.Get(uint(i))
		macros[i] = CompiledMacro{
			Name:   def.Name(),
			Body:   p.arena[i],
			Public: def.IsPublic(),
		}
	}
	//
	return macros
}

// Macro returns the named macro, or false if no such macro exists.
func (p *CompiledGrammar) Macro(name string) (CompiledMacro, bool) {
	id, ok := p.table.Lookup(name)
	//
	if !ok {
		return CompiledMacro{}, false
	}
	//
	def := p.table.Get(id)
	//
	return CompiledMacro{
		Name:   def.Name(),
		Body:   p.arena[id],
		Public: def.IsPublic(),
	}, true
}

// Expansion returns the fully expanded (dialect-agnostic) body of the named
// macro, or false if no such macro exists.
func (p *CompiledGrammar) Expansion(name string) (string, bool) {
	id, ok := p.table.Lookup(name)
	//
	if !ok {
		return "", false
	}
	//
	return p.arena[id], true
}

// Dependencies returns the macro dependency edges recorded during
// compilation.  Each edge runs from a referencing macro to the macro it
// references.  The returned slice must not be mutated.
func (p *CompiledGrammar) Dependencies() []ast.DependencyEdge {
	return p.edges
}

// Warnings returns any (non-fatal) warnings raised during compilation.  The
// returned slice must not be mutated.
func (p *CompiledGrammar) Warnings() []*source.SyntaxError {
	return p.warnings
}

// Pattern adapts the named macro to the given dialect profile, producing a
// pattern suitable for handing to the target engine.  Results are cached,
// with concurrent requests for the same pattern deduplicated.  Adaptation
// failures (such as an unrepresentable construct) are cached as well, since
// they are deterministic for a given grammar.
func (p *CompiledGrammar) Pattern(name string, profile dialect.Profile,
	opts dialect.Options) (*dialect.CompiledPattern, error) {
	//
	if _, ok := p.table.Lookup(name); !ok {
		return nil, fmt.Errorf("unknown macro %q", name)
	}
	//
	entry := p.entryFor(patternKey{name, profile, opts})
	//
	entry.once.Do(func() {
		entry.pattern, entry.err = p.adapt(name, profile, opts)
	})
	//
	return entry.pattern, entry.err
}

// entryFor returns the cache entry for the given key, creating it if
// necessary.  The critical section covers only the map access; adaptation
// itself runs outside the lock under the entry's once gate.
func (p *CompiledGrammar) entryFor(key patternKey) *patternEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	entry, ok := p.cache[key]
	//
	if !ok {
		entry = &patternEntry{}
		p.cache[key] = entry
	}
	//
	return entry
}

// adapt runs the dialect adapter followed by the validator over the named
// macro's expansion.
func (p *CompiledGrammar) adapt(name string, profile dialect.Profile,
	opts dialect.Options) (*dialect.CompiledPattern, error) {
	//
	id, _ := p.table.Lookup(name)
	// Adapt expansion to target dialect.
	pattern, errs := dialect.Adapt(name, p.arena[id], profile, opts)
	//
	if len(errs) > 0 {
		return nil, errs[0]
	}
	// Check the adapted pattern is well formed.
	if _, errs := dialect.Validate(pattern); len(errs) > 0 {
		return nil, errs[0]
	}
	//
	return pattern, nil
}
