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
package compiler

import (
	"strings"

	"github.com/consensys/go-remex/pkg/remex/ast"
)

// ExpandMacros substitutes every reference within every macro body with the
// referenced macro's own expansion.  Macros are processed strictly in
// definition order, which resolution has already established as topological,
// and each expansion is memoized in an arena indexed by macro id before the
// next macro is processed.  Substitution is verbatim: no implicit grouping or
// wrapping is added, so parenthesization is preserved exactly as authored.
// Total work is linear in the sum of body sizes plus substitution cost, since
// no expansion is ever recomputed.
//
// The maxBytes argument bounds the size of any single expansion (zero means
// unbounded).  Since the size of an expansion is known from the arena before
// it is built, the bound is enforced before any allocation happens.
func ExpandMacros(table *ast.MacroTable, refs [][]ast.Reference, maxBytes uint64) ([]string, []ast.Error) {
	e := expander{table, make([]string, table.Size()), maxBytes}
	//
	for id, def := range table.Definitions() {
		expansion, errs := e.expandMacro(&def, refs[id])
		//
		if len(errs) > 0 {
			return nil, errs
		}
		// Memoize before moving on.
		e.arena[id] = expansion
	}
	//
	return e.arena, nil
}

type expander struct {
	table *ast.MacroTable
	// Memoized expansions, indexed by macro id.
	arena []string
	// Bound on the size of any single expansion (zero means unbounded).
	maxBytes uint64
}

// Expand a single macro by splicing the memoized expansions of its references
// into its body.
func (p *expander) expandMacro(def *ast.MacroDefinition, refs []ast.Reference) (string, []ast.Error) {
	// Fast path: nothing to substitute.
	if len(refs) == 0 {
		if err := p.checkSize(def, uint64(len(def.Body()))); err != nil {
			return "", []ast.Error{*err}
		}
		//
		return def.Body(), nil
	}
	//
	size := uint64(len(def.Body()))
	// Determine the exact size of the expansion up front.  Reference tokens
	// consist solely of ASCII runes, so a token's rune count is its byte
	// count.
	for _, ref := range refs {
		refID, ok := p.table.Lookup(ref.Name())
		// Resolution guarantees every reference is defined.
		if !ok {
			err := ast.Errorf(ast.ErrInternal, def.SourceFile(), def.MapBodySpan(ref.Span()),
				"unresolved reference \"%s\" reached expansion", ref.Name())
			//
			return "", []ast.Error{err}
		}
		//
		size += uint64(len(p.arena[refID])) - uint64(ref.Span().Length())
	}
	//
	if err := p.checkSize(def, size); err != nil {
		return "", []ast.Error{*err}
	}
	//
	var (
		builder strings.Builder
		body    = []rune(def.Body())
		last    = 0
	)
	//
	builder.Grow(int(size))
	//
	for _, ref := range refs {
		refID, _ := p.table.Lookup(ref.Name())
		//
		builder.WriteString(string(body[last:ref.Span().Start()]))
		builder.WriteString(p.arena[refID])
		//
		last = ref.Span().End()
	}
	//
	builder.WriteString(string(body[last:]))
	//
	expansion := builder.String()
	// Substitution must consume every reference token.  A token surviving
	// into the expansion contradicts resolution, hence is fatal.
	if residue := ast.ScanReferences(expansion); len(residue) > 0 {
		err := ast.Errorf(ast.ErrInternal, def.SourceFile(), def.BodySpan(),
			"unexpanded reference \"%s\" in expansion of macro \"%s\"",
			residue[0].Name(), def.Name())
		//
		return "", []ast.Error{err}
	}
	//
	return expansion, nil
}

// Check a prospective expansion size against the configured bound.
func (p *expander) checkSize(def *ast.MacroDefinition, size uint64) *ast.Error {
	if p.maxBytes != 0 && size > p.maxBytes {
		err := ast.Errorf(ast.ErrResourceLimit, def.SourceFile(), def.NameSpan(),
			"expansion of macro \"%s\" exceeds %d bytes", def.Name(), p.maxBytes)
		//
		return &err
	}
	//
	return nil
}
