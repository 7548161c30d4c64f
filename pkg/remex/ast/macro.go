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

// Package ast defines the data model for remex grammars: macro definitions,
// the table which owns them, references between them and the errors arising
// from them.
package ast

import (
	"github.com/consensys/go-remex/pkg/util/source"
)

// Visibility distinguishes macros intended purely for composition (internal)
// from those intended for consumption by callers (public).  In the source
// this is conveyed by a naming marker; here it is an explicit field,
// decoupling naming convention from compiler semantics.
type Visibility uint8

const (
	// Public macros are consumer-facing and eligible for dialect adaptation
	// by default.
	Public Visibility = iota
	// Internal macros exist purely to be referenced by later definitions.
	Internal
)

// String returns a human-readable name for this visibility.
func (v Visibility) String() string {
	if v == Internal {
		return "internal"
	}
	//
	return "public"
}

// ============================================================================
// MacroDefinition
// ============================================================================

// MacroDefinition represents a single definition within a grammar: a named,
// reusable regex fragment along with its visibility and the location at which
// it was defined.  Definitions are owned exclusively by the enclosing
// MacroTable.
type MacroDefinition struct {
	// Name of the macro being defined.
	name string
	// Visibility of the macro being defined.
	visibility Visibility
	// Raw body of the definition, with references unexpanded.
	body string
	// Source file in which the definition occurs.
	srcfile *source.File
	// Line number (counting from 1) of the definition.
	line int
	// Span of the name token within the source file.
	nameSpan source.Span
	// Segments of the source file making up the body.  Comment removal can
	// stitch a body together from several disjoint runs of the original text.
	bodySegs source.Segments
}

// NewMacroDefinition constructs a new macro definition from its constituent
// parts.
func NewMacroDefinition(name string, visibility Visibility, body string,
	srcfile *source.File, line int, nameSpan source.Span, bodySegs source.Segments) MacroDefinition {
	return MacroDefinition{name, visibility, body, srcfile, line, nameSpan, bodySegs}
}

// Name returns the name of the macro being defined.
func (p *MacroDefinition) Name() string {
	return p.name
}

// Visibility returns the visibility of the macro being defined.
func (p *MacroDefinition) Visibility() Visibility {
	return p.visibility
}

// IsPublic determines whether this macro is consumer-facing.
func (p *MacroDefinition) IsPublic() bool {
	return p.visibility == Public
}

// Body returns the raw (unexpanded) body of this definition.
func (p *MacroDefinition) Body() string {
	return p.body
}

// SourceFile returns the source file in which this definition occurs.
func (p *MacroDefinition) SourceFile() *source.File {
	return p.srcfile
}

// Line returns the line number (counting from 1) on which this definition
// occurs.
func (p *MacroDefinition) Line() int {
	return p.line
}

// NameSpan returns the span of the name token within the source file.
func (p *MacroDefinition) NameSpan() source.Span {
	return p.nameSpan
}

// BodySpan returns the enclosing span of the raw body within the source file.
func (p *MacroDefinition) BodySpan() source.Span {
	return p.bodySegs.Span()
}

// MapBodySpan translates a span given in offsets relative to the raw body
// into a span within the source file.
func (p *MacroDefinition) MapBodySpan(rel source.Span) source.Span {
	return p.bodySegs.Map(rel)
}

// ============================================================================
// MacroTable
// ============================================================================

// MacroTable is the ordered collection of macro definitions making up a
// grammar.  Insertion order equals textual order, and each definition is
// identified by its (dense) index into that order, its macro id.  Names are
// unique.
type MacroTable struct {
	// Definitions in textual order.
	defs []MacroDefinition
	// Mapping from names to macro ids.
	index map[string]uint
}

// NewMacroTable constructs an empty macro table.
func NewMacroTable() *MacroTable {
	return &MacroTable{nil, make(map[string]uint)}
}

// Register appends a definition to this table, assigning it the next macro
// id.  If the name is already taken, the table is left unchanged and false is
// returned (the original definition stays authoritative).
func (p *MacroTable) Register(def MacroDefinition) bool {
	if _, ok := p.index[def.name]; ok {
		return false
	}
	//
	p.index[def.name] = uint(len(p.defs))
	p.defs = append(p.defs, def)
	//
	return true
}

// Lookup returns the macro id associated with a given name, if any.
func (p *MacroTable) Lookup(name string) (uint, bool) {
	id, ok := p.index[name]
	return id, ok
}

// Has determines whether a given name is defined in this table.
func (p *MacroTable) Has(name string) bool {
	_, ok := p.index[name]
	return ok
}

// Get returns the definition associated with a given macro id.
func (p *MacroTable) Get(id uint) *MacroDefinition {
	return &p.defs[id]
}

// Size returns the number of definitions in this table.
func (p *MacroTable) Size() uint {
	return uint(len(p.defs))
}

// Definitions returns the definitions of this table in textual order.  The
// returned slice is owned by the table and must not be mutated.
func (p *MacroTable) Definitions() []MacroDefinition {
	return p.defs
}

// ============================================================================
// DependencyEdge
// ============================================================================

// DependencyEdge records that the macro From references the macro To within
// its body.  Edges are derived data, recomputed from body scans rather than
// stored on definitions.
type DependencyEdge struct {
	// Name of the referencing macro.
	From string
	// Name of the referenced macro.
	To string
}

// ============================================================================
// Identifiers
// ============================================================================

// IsIdentifier determines whether a given string satisfies identifier syntax:
// a letter or underscore, followed by any number of letters, digits or
// underscores.
func IsIdentifier(name string) bool {
	if name == "" {
		return false
	}
	//
	for i, c := range name {
		if !isIdentifierChar(c, i == 0) {
			return false
		}
	}
	//
	return true
}

func isIdentifierChar(c rune, first bool) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c == '_':
		return true
	case c >= '0' && c <= '9':
		return !first
	default:
		return false
	}
}
