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
	"fmt"

	"github.com/consensys/go-remex/pkg/remex/ast"
	"github.com/consensys/go-remex/pkg/util/source"
)

// Resolution captures the outcome of reference resolution over a macro table:
// the dependency edges of the grammar, the scanned references per macro
// (reused by the expander), and any lint warnings raised along the way.
type Resolution struct {
	// Edges of the dependency graph, in scan order.
	Edges []ast.DependencyEdge
	// References per macro id, in textual order.
	References [][]ast.Reference
	// Lint warnings (e.g. a visibility marker at a reference site).
	Warnings []*source.SyntaxError
}

// ResolveReferences scans every macro body for reference tokens, checking each
// against the table as it stood at that point in the grammar: a reference only
// resolves to a macro defined strictly earlier, so self- and forward
// references fail.  This rule makes the dependency graph acyclic by
// construction.  Resolution stops at the first error.
func ResolveReferences(table *ast.MacroTable) (Resolution, []ast.Error) {
	r := resolver{table, Resolution{References: make([][]ast.Reference, table.Size())}}
	//
	for id, def := range table.Definitions() {
		if errs := r.resolveBody(uint(id), &def); len(errs) > 0 {
			return r.resolution, errs
		}
	}
	// References are acyclic by construction.  Check anyway.
	r.assertAcyclic()
	//
	return r.resolution, nil
}

type resolver struct {
	table      *ast.MacroTable
	resolution Resolution
}

// Resolve all references within the body of a given macro.
func (p *resolver) resolveBody(id uint, def *ast.MacroDefinition) []ast.Error {
	refs := ast.ScanReferences(def.Body())
	//
	for _, ref := range refs {
		span := def.MapBodySpan(ref.Span())
		//
		if ref.Malformed() {
			return []ast.Error{ast.NewError(ast.ErrParse, def.SourceFile(), span,
				"malformed macro reference")}
		}
		// Markers are only meaningful at definition sites; tolerated here.
		if ref.Marked() {
			p.resolution.Warnings = append(p.resolution.Warnings,
				def.SourceFile().SyntaxError(span, "visibility marker ignored at reference site"))
		}
		//
		if err := p.resolveReference(id, def, ref.Name(), span); err != nil {
			return []ast.Error{*err}
		}
	}
	//
	p.resolution.References[id] = refs
	//
	return nil
}

// Resolve a single reference against the definitions preceding a given macro,
// recording the dependency edge on success.
func (p *resolver) resolveReference(id uint, def *ast.MacroDefinition, name string,
	span source.Span) *ast.Error {
	refID, ok := p.table.Lookup(name)
	//
	var msg string
	//
	switch {
	case !ok:
		msg = fmt.Sprintf("reference to undefined macro \"%s\" in macro \"%s\"", name, def.Name())
	case refID == id:
		msg = fmt.Sprintf("macro \"%s\" cannot reference itself", name)
	case refID > id:
		msg = fmt.Sprintf("reference to macro \"%s\" before its definition (line %d)",
			name, p.table.Get(refID).Line())
	default:
		// Resolved against an earlier definition.
		p.resolution.Edges = append(p.resolution.Edges,
			ast.DependencyEdge{From: def.Name(), To: name})
		//
		return nil
	}
	//
	err := ast.NewError(ast.ErrUndefinedReference, def.SourceFile(), span, msg)
	//
	return &err
}

// Check that every recorded edge points strictly backwards in definition
// order.  This holds by construction; a violation signals a bug in the
// resolver itself, not a problem with the input.
func (p *resolver) assertAcyclic() {
	for _, edge := range p.resolution.Edges {
		from, ok1 := p.table.Lookup(edge.From)
		to, ok2 := p.table.Lookup(edge.To)
		//
		if !ok1 || !ok2 || to >= from {
			panic(fmt.Sprintf("dependency edge %s -> %s violates definition order", edge.From, edge.To))
		}
	}
}
