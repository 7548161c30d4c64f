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

import (
	"github.com/consensys/go-remex/pkg/remex/ast"
	"github.com/consensys/go-remex/pkg/util/source"
)

// Census summarizes the capturing structure of a validated pattern, for
// caller inspection.
type Census struct {
	// Number of capturing groups in the final text.
	Groups uint
	// Names of named groups, in textual order.
	Names []string
}

// Validate performs the final structural checks over an adapted pattern:
// parentheses and brackets balance, no residual macro-reference syntax
// remains, and every entry of the group-name index addresses an existing
// capturing group.  Every user-triggerable error has been raised earlier in
// the pipeline, so any violation here signals a bug in the compiler itself.
func Validate(pattern *CompiledPattern) (Census, []ast.Error) {
	var (
		census  Census
		srcfile = source.NewSourceFile("<"+pattern.Name()+">", []byte(pattern.Text()))
	)
	// Check structure (balance, group syntax).
	sc, errs := scanPattern(srcfile, pattern.Text())
	if len(errs) > 0 {
		return census, internalize(errs)
	}
	// Check no reference tokens survive.
	if residue := ast.ScanReferences(pattern.Text()); len(residue) > 0 {
		err := ast.Errorf(ast.ErrInternal, srcfile, residue[0].Span(),
			"residual macro reference in adapted pattern \"%s\"", pattern.Name())
		//
		return census, []ast.Error{err}
	}
	// Take the census of capturing groups.
	for _, g := range sc.groups {
		switch g.kind {
		case groupPlain:
			census.Groups++
		case groupNamed:
			census.Groups++
			census.Names = append(census.Names, g.name)
		}
	}
	// Check the group-name index addresses real ordinals.
	for name, index := range pattern.Groups() {
		if index == 0 || index > census.Groups {
			err := ast.Errorf(ast.ErrInternal, srcfile, source.NewSpan(0, 0),
				"group \"%s\" mapped to ordinal %d of %d capturing groups",
				name, index, census.Groups)
			//
			return census, []ast.Error{err}
		}
	}
	//
	return census, nil
}

// Re-code errors raised during validation as internal faults: user errors
// were already raised by earlier stages of the pipeline.
func internalize(errs []ast.Error) []ast.Error {
	internal := make([]ast.Error, len(errs))
	//
	for i, err := range errs {
		internal[i] = ast.NewError(ast.ErrInternal, err.SourceFile(), err.Span(), err.Message())
	}
	//
	return internal
}
