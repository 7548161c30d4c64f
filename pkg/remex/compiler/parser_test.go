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
	"testing"

	"github.com/consensys/go-remex/pkg/remex/ast"
	"github.com/consensys/go-remex/pkg/util/source"
)

// ===================================================================
// Definition Parsing Tests
// ===================================================================

func Test_Parse_01(t *testing.T) {
	table := parseString(t, "$(Digit)=[0-9]")
	def := table.Get(0)
	//
	if def.Name() != "Digit" || def.Body() != "[0-9]" || !def.IsPublic() || def.Line() != 1 {
		t.Errorf("unexpected definition %s=%s", def.Name(), def.Body())
	}
	//
	if def.NameSpan() != source.NewSpan(2, 7) {
		t.Errorf("got name span %d-%d, expected 2-7", def.NameSpan().Start(), def.NameSpan().End())
	}
}

func Test_Parse_02(t *testing.T) {
	table := parseString(t, `$(!helper)=\d+`)
	def := table.Get(0)
	//
	if def.Name() != "helper" || def.Body() != `\d+` || def.IsPublic() {
		t.Errorf("unexpected definition %s=%s", def.Name(), def.Body())
	}
}

func Test_Parse_03(t *testing.T) {
	// Leading whitespace before the definition is permitted.
	table := parseString(t, "  $(A)=x")
	//
	if def := table.Get(0); def.Name() != "A" || def.Body() != "x" {
		t.Errorf("unexpected definition %s=%s", def.Name(), def.Body())
	}
}

func Test_Parse_04(t *testing.T) {
	// The body is everything after "=", verbatim.
	table := parseString(t, `$(KV)=\w+ = \w+`)
	//
	if def := table.Get(0); def.Body() != `\w+ = \w+` {
		t.Errorf("unexpected body \"%s\"", def.Body())
	}
}

func Test_Parse_05(t *testing.T) {
	// Empty bodies are permitted.
	table := parseString(t, "$(Empty)=")
	//
	if def := table.Get(0); def.Body() != "" {
		t.Errorf("unexpected body \"%s\"", def.Body())
	}
}

func Test_Parse_06(t *testing.T) {
	// Definitions register in file order.
	table := parseString(t, "$(A)=x\n$(B)=y")
	//
	checkLookupOrder(t, table, "A", "B")
}

func Test_Parse_07(t *testing.T) {
	err := checkParseError(t, "Foo=[0-9]", ast.ErrParse, "malformed macro definition")
	//
	if err.Span() != source.NewSpan(0, 9) {
		t.Errorf("got span %d-%d, expected 0-9", err.Span().Start(), err.Span().End())
	}
}

func Test_Parse_08(t *testing.T) {
	checkParseError(t, "$()=x", ast.ErrParse, "empty macro name")
	checkParseError(t, "$(!)=x", ast.ErrParse, "empty macro name")
}

func Test_Parse_09(t *testing.T) {
	err := checkParseError(t, "$(9Foo)=x", ast.ErrInvalidIdentifier, "invalid macro name \"9Foo\"")
	//
	if err.Span() != source.NewSpan(2, 6) {
		t.Errorf("got span %d-%d, expected 2-6", err.Span().Start(), err.Span().End())
	}
}

func Test_Parse_10(t *testing.T) {
	checkParseError(t, "$(Foo=x", ast.ErrParse, "expected ')' after macro name")
	// A name broken by whitespace fails the same way.
	checkParseError(t, "$(Foo Bar)=x", ast.ErrParse, "expected ')' after macro name")
}

func Test_Parse_11(t *testing.T) {
	checkParseError(t, "$(Foo)x", ast.ErrParse, "expected '=' after macro name")
	checkParseError(t, "$(Foo)", ast.ErrParse, "expected '=' after macro name")
}

func Test_Parse_12(t *testing.T) {
	err := checkParseError(t, "$(A)=x\n$(A)=y", ast.ErrDuplicateName,
		"macro \"A\" already defined at test.remex:1")
	// Error is reported against the second occurrence.
	if err.Span() != source.NewSpan(9, 10) {
		t.Errorf("got span %d-%d, expected 9-10", err.Span().Start(), err.Span().End())
	}
}

func Test_Parse_13(t *testing.T) {
	// The first definition stays authoritative after a duplicate.
	srcfile := source.NewSourceFile("test.remex", []byte("$(A)=x\n$(A)=y"))
	lines, _ := StripComments(srcfile)
	table := ast.NewMacroTable()
	//
	if errs := ParseDefinitions(srcfile, lines, table); len(errs) != 1 {
		t.Fatalf("got %d errors, expected 1", len(errs))
	}
	//
	if table.Size() != 1 || table.Get(0).Body() != "x" {
		t.Errorf("duplicate displaced the original definition")
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func parseString(t *testing.T, text string) *ast.MacroTable {
	srcfile := source.NewSourceFile("test.remex", []byte(text))
	//
	lines, errs := StripComments(srcfile)
	if len(errs) > 0 {
		t.Fatalf("stripping failed: %s", errs[0].Message())
	}
	//
	table := ast.NewMacroTable()
	//
	if errs := ParseDefinitions(srcfile, lines, table); len(errs) > 0 {
		t.Fatalf("parsing failed: %s", errs[0].Message())
	}
	//
	return table
}

func checkParseError(t *testing.T, text string, code ast.Code, msg string) ast.Error {
	srcfile := source.NewSourceFile("test.remex", []byte(text))
	//
	lines, errs := StripComments(srcfile)
	if len(errs) > 0 {
		t.Fatalf("stripping failed: %s", errs[0].Message())
	}
	//
	errs = ParseDefinitions(srcfile, lines, ast.NewMacroTable())
	//
	if len(errs) != 1 {
		t.Fatalf("parsing \"%s\": got %d errors, expected 1", text, len(errs))
	}
	//
	err := errs[0]
	//
	if err.Code() != code {
		t.Errorf("parsing \"%s\": got code %s, expected %s", text, err.Code(), code)
	}
	//
	if err.Message() != msg {
		t.Errorf("parsing \"%s\": got message \"%s\", expected \"%s\"", text, err.Message(), msg)
	}
	//
	return err
}

func checkLookupOrder(t *testing.T, table *ast.MacroTable, names ...string) {
	if table.Size() != uint(len(names)) {
		t.Fatalf("got %d definitions, expected %d", table.Size(), len(names))
	}
	//
	for i, name := range names {
		if id, ok := table.Lookup(name); !ok || id != uint(i) {
			t.Errorf("macro \"%s\" has id %d, expected %d", name, id, i)
		}
	}
}
