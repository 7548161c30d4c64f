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

// Package remex provides the top-level interface for compiling macro
// grammars.  A grammar is a set of named regular expression fragments
// (macros) which may reference each other; compilation strips comments,
// parses definitions, resolves references and expands every macro into a
// self-contained pattern fragment.  The resulting grammar can then be adapted
// to a specific regex dialect on demand.
package remex

import (
	"github.com/consensys/go-remex/pkg/remex/ast"
	"github.com/consensys/go-remex/pkg/remex/compiler"
	"github.com/consensys/go-remex/pkg/util"
	"github.com/consensys/go-remex/pkg/util/source"
)

// Limits places bounds on the resources a compilation may consume, so that a
// hostile or malformed grammar cannot exhaust memory.  A zero value for any
// field means that particular bound is not enforced.
type Limits struct {
	// MaxMacros bounds the total number of macro definitions across all
	// source files.
	MaxMacros uint
	// MaxSourceBytes bounds the combined size (in bytes) of all source files.
	MaxSourceBytes uint64
	// MaxExpandedBytes bounds the size (in bytes) of any single macro
	// expansion.
	MaxExpandedBytes uint64
}

// DefaultLimits returns the limits applied by the command-line tools.  These
// are generous enough for any handwritten grammar, whilst still bounding
// runaway compositions.
func DefaultLimits() Limits {
	return Limits{
		MaxMacros:        65536,
		MaxSourceBytes:   16 << 20,
		MaxExpandedBytes: 4 << 20,
	}
}

// Compile a macro grammar from one or more source files.  Files are
// processed in the order given, with later files able to reference macros
// defined in earlier ones.  Compilation halts on the first structural error
// encountered; hence, on failure, the returned errors describe the earliest
// problem rather than every problem.
func Compile(limits Limits, srcfiles ...*source.File) (*CompiledGrammar, []ast.Error) {
	table := ast.NewMacroTable()
	// Enforce source ceiling before any parsing begins.
	if errs := checkSourceLimit(limits, srcfiles); len(errs) > 0 {
		return nil, errs
	}
	//
	perf := util.NewPerfStats()
	// Strip comments and parse definitions, file by file.
	for _, srcfile := range srcfiles {
		lines, errs := compiler.StripComments(srcfile)
		//
		if len(errs) > 0 {
			return nil, errs
		}
		//
		if errs := compiler.ParseDefinitions(srcfile, lines, table); len(errs) > 0 {
			return nil, errs
		}
		//
		if limits.MaxMacros != 0 && table.Size() > limits.MaxMacros {
			def := table.Get(limits.MaxMacros)
			err := ast.Errorf(ast.ErrResourceLimit, def.SourceFile(), def.NameSpan(),
				"grammar exceeds %d macro definitions", limits.MaxMacros)
			//
			return nil, []ast.Error{err}
		}
	}
	//
	perf.Log("parsing grammar")
	perf = util.NewPerfStats()
	// Resolve references against the completed table.
	resolution, errs := compiler.ResolveReferences(table)
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	perf.Log("resolving references")
	perf = util.NewPerfStats()
	// Expand macros bottom up.
	arena, errs := compiler.ExpandMacros(table, resolution.References, limits.MaxExpandedBytes)
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	perf.Log("expanding macros")
	//
	return newCompiledGrammar(table, arena, resolution.Edges, resolution.Warnings), nil
}

// CompileFiles reads and compiles the given grammar files from disk.  This is
// a convenience wrapper around source.ReadFiles and Compile.
func CompileFiles(limits Limits, filenames ...string) (*CompiledGrammar, []ast.Error, error) {
	srcfiles, err := source.ReadFiles(filenames...)
	//
	if err != nil {
		return nil, nil, err
	}
	//
	grammar, errs := Compile(limits, srcfiles...)
	//
	return grammar, errs, nil
}

// checkSourceLimit ensures the combined source size is within bounds.
func checkSourceLimit(limits Limits, srcfiles []*source.File) []ast.Error {
	var total uint64
	//
	if limits.MaxSourceBytes == 0 {
		return nil
	}
	//
	for _, srcfile := range srcfiles {
		total += uint64(srcfile.Size())
		//
		if total > limits.MaxSourceBytes {
			err := ast.Errorf(ast.ErrResourceLimit, srcfile, source.NewSpan(0, 0),
				"combined grammar source exceeds %d bytes", limits.MaxSourceBytes)
			//
			return []ast.Error{err}
		}
	}
	//
	return nil
}
