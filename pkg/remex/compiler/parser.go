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
	"github.com/consensys/go-remex/pkg/remex/ast"
	"github.com/consensys/go-remex/pkg/util/source"
)

// ParseDefinitions parses a given sequence of stripped lines into macro
// definitions, registering them with a given table in file order.  Every line
// must match the definition shape "$(name)=body" (with an optional "!"
// visibility marker directly before the name), and the body occupies exactly
// the remainder of the line, verbatim.  Parsing stops at the first error.
func ParseDefinitions(srcfile *source.File, lines []StrippedLine, table *ast.MacroTable) []ast.Error {
	p := parser{srcfile, table}
	//
	for _, line := range lines {
		if errs := p.parseLine(line); len(errs) > 0 {
			return errs
		}
	}
	//
	return nil
}

type parser struct {
	srcfile *source.File
	table   *ast.MacroTable
}

// Parse a single stripped line into a macro definition, registering it with
// the table.
func (p *parser) parseLine(line StrippedLine) []ast.Error {
	var (
		runes = []rune(line.Text())
		i     int
	)
	// Skip leading whitespace
	for i < len(runes) && isWhitespace(runes[i]) {
		i++
	}
	// Match opening "$("
	if i+1 >= len(runes) || runes[i] != '$' || runes[i+1] != '(' {
		return p.errLine(line, "malformed macro definition")
	}
	//
	i += 2
	// Match optional visibility marker
	visibility := ast.Public
	//
	if i < len(runes) && runes[i] == '!' {
		visibility = ast.Internal
		i++
	}
	// Scan the name candidate: everything up to the closing bracket, an
	// equals sign or whitespace.  Scanning the candidate first (rather than
	// just an identifier) allows malformed names to be distinguished from
	// malformed definitions.
	nameStart := i
	//
	for i < len(runes) && runes[i] != ')' && runes[i] != '=' && !isWhitespace(runes[i]) {
		i++
	}
	//
	var (
		name     = string(runes[nameStart:i])
		nameSpan = line.FileSpan(source.NewSpan(nameStart, i))
	)
	//
	if name == "" {
		return p.errAt(line, nameStart, "empty macro name")
	} else if !ast.IsIdentifier(name) {
		return []ast.Error{ast.Errorf(ast.ErrInvalidIdentifier, p.srcfile, nameSpan,
			"invalid macro name \"%s\"", name)}
	}
	// Match closing bracket
	if i >= len(runes) || runes[i] != ')' {
		return p.errAt(line, i, "expected ')' after macro name")
	}
	//
	i++
	// Match equals sign
	if i >= len(runes) || runes[i] != '=' {
		return p.errAt(line, i, "expected '=' after macro name")
	}
	//
	i++
	// Remainder of the line is the body, verbatim.
	var (
		body     = string(runes[i:])
		bodySegs = bodySegments(line, i)
		def      = ast.NewMacroDefinition(name, visibility, body, p.srcfile,
			line.Number(), nameSpan, bodySegs)
	)
	// Register, checking for duplicates.  The error is reported against the
	// second occurrence, keeping the first definition authoritative.
	if !p.table.Register(def) {
		id, _ := p.table.Lookup(name)
		first := p.table.Get(id)
		//
		return []ast.Error{ast.Errorf(ast.ErrDuplicateName, p.srcfile, nameSpan,
			"macro \"%s\" already defined at %s:%d", name,
			first.SourceFile().Filename(), first.Line())}
	}
	//
	return nil
}

// Report an error covering the entire line.
func (p *parser) errLine(line StrippedLine, msg string) []ast.Error {
	span := line.FileSpan(source.NewSpan(0, len([]rune(line.Text()))))
	return []ast.Error{ast.NewError(ast.ErrParse, p.srcfile, span, msg)}
}

// Report an error at a given offset within the line.
func (p *parser) errAt(line StrippedLine, offset int, msg string) []ast.Error {
	var (
		n    = len([]rune(line.Text()))
		span = line.FileSpan(source.NewSpan(offset, min(offset+1, n)))
	)
	//
	return []ast.Error{ast.NewError(ast.ErrParse, p.srcfile, span, msg)}
}

// Determine the segments of the original file making up the body of a
// definition (i.e. the retained runes from a given offset onwards).
func bodySegments(line StrippedLine, start int) source.Segments {
	var segs source.Segments
	// Walk the line's segments, discarding the first start runes.
	for _, s := range line.Segments() {
		switch {
		case start >= s.Length():
			start -= s.Length()
		case start > 0:
			segs = append(segs, source.NewSpan(s.Start()+start, s.End()))
			start = 0
		default:
			segs = append(segs, s)
		}
	}
	//
	return segs
}
