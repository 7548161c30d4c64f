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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/consensys/go-remex/pkg/dialect"
	"github.com/consensys/go-remex/pkg/remex/ast"
	"github.com/consensys/go-remex/pkg/util/source"
)

// ===================================================================
// Compilation Tests
// ===================================================================

func Test_Compile_01(t *testing.T) {
	grammar := compileStrings(t, "$(!Digit)=[0-9]\n$(Number)=$(Digit)+")
	//
	macros := grammar.Macros()
	//
	if len(macros) != 2 {
		t.Fatalf("got %d macros, expected 2", len(macros))
	}
	//
	if macros[0].Name != "Digit" || macros[0].Body != "[0-9]" || macros[0].Public {
		t.Errorf("unexpected macro %s=%s", macros[0].Name, macros[0].Body)
	}
	//
	if macros[1].Name != "Number" || macros[1].Body != "[0-9]+" || !macros[1].Public {
		t.Errorf("unexpected macro %s=%s", macros[1].Name, macros[1].Body)
	}
}

func Test_Compile_02(t *testing.T) {
	// Later files reference macros defined in earlier ones.
	grammar := compileStrings(t, "$(!Digit)=[0-9]", "$(Number)=$(Digit)+")
	//
	checkExpansion(t, grammar, "Number", "[0-9]+")
}

func Test_Compile_03(t *testing.T) {
	// File order is definition order, so references never run forwards.
	err := checkCompileError(t, DefaultLimits(), ast.ErrUndefinedReference,
		"reference to macro \"Late\" before its definition (line 1)",
		"$(Early)=$(Late)", "$(Late)=x")
	//
	if err.SourceFile().Filename() != "a.remex" {
		t.Errorf("error reported against %s, expected a.remex", err.SourceFile().Filename())
	}
}

func Test_Compile_04(t *testing.T) {
	// Names are unique across the whole grammar, not per file.
	checkCompileError(t, DefaultLimits(), ast.ErrDuplicateName,
		"macro \"A\" already defined at a.remex:1",
		"$(A)=x", "$(A)=y")
}

func Test_Compile_05(t *testing.T) {
	grammar := compileStrings(t, "$(A)=x")
	//
	if _, ok := grammar.Macro("Nope"); ok {
		t.Errorf("lookup of unknown macro succeeded")
	}
	//
	if _, ok := grammar.Expansion("Nope"); ok {
		t.Errorf("expansion of unknown macro succeeded")
	}
	//
	if macro, ok := grammar.Macro("A"); !ok || macro.Body != "x" {
		t.Errorf("lookup of macro \"A\" failed")
	}
}

func Test_Compile_06(t *testing.T) {
	grammar := compileStrings(t, "$(!A)=x\n$(!B)=$(A)\n$(C)=$(A)$(B)")
	//
	expected := []ast.DependencyEdge{
		{From: "B", To: "A"},
		{From: "C", To: "A"},
		{From: "C", To: "B"},
	}
	//
	edges := grammar.Dependencies()
	//
	if len(edges) != len(expected) {
		t.Fatalf("got %d edges, expected %d", len(edges), len(expected))
	}
	//
	for i, edge := range edges {
		if edge != expected[i] {
			t.Errorf("edge %d is %s -> %s, expected %s -> %s", i,
				edge.From, edge.To, expected[i].From, expected[i].To)
		}
	}
}

func Test_Compile_07(t *testing.T) {
	// Markers at reference sites warn without failing the compilation.
	grammar := compileStrings(t, "$(!A)=x\n$(B)=$(!A)")
	//
	warnings := grammar.Warnings()
	//
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, expected 1", len(warnings))
	}
	//
	if warnings[0].Message() != "visibility marker ignored at reference site" {
		t.Errorf("unexpected warning \"%s\"", warnings[0].Message())
	}
	//
	checkExpansion(t, grammar, "B", "x")
}

func Test_CompileFiles_01(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib.remex")
	main := filepath.Join(dir, "main.remex")
	//
	if err := os.WriteFile(lib, []byte("$(!Hex)=[0-9a-f]"), 0644); err != nil {
		t.Fatal(err)
	}
	//
	if err := os.WriteFile(main, []byte("$(Byte)=$(Hex){2}"), 0644); err != nil {
		t.Fatal(err)
	}
	//
	grammar, errs, err := CompileFiles(DefaultLimits(), lib, main)
	//
	if err != nil || len(errs) > 0 {
		t.Fatalf("compilation failed: %v %v", err, errs)
	}
	//
	checkExpansion(t, grammar, "Byte", "[0-9a-f]{2}")
}

func Test_CompileFiles_02(t *testing.T) {
	grammar, errs, err := CompileFiles(DefaultLimits(), filepath.Join(t.TempDir(), "nope.remex"))
	//
	if err == nil || grammar != nil || errs != nil {
		t.Fatalf("expected read failure, got %v %v", grammar, errs)
	}
}

// ===================================================================
// Resource Limit Tests
// ===================================================================

func Test_Limits_01(t *testing.T) {
	limits := Limits{MaxMacros: 2}
	//
	err := checkCompileError(t, limits, ast.ErrResourceLimit,
		"grammar exceeds 2 macro definitions",
		"$(A)=x\n$(B)=y\n$(C)=z")
	// Error is reported against the first definition over the ceiling.
	if err.Span() != source.NewSpan(16, 17) {
		t.Errorf("got span %d-%d, expected 16-17", err.Span().Start(), err.Span().End())
	}
}

func Test_Limits_02(t *testing.T) {
	limits := Limits{MaxSourceBytes: 10}
	//
	err := checkCompileError(t, limits, ast.ErrResourceLimit,
		"combined grammar source exceeds 10 bytes",
		"$(A)=xxxx", "$(B)=y")
	// Ceiling is breached by the second file.
	if err.SourceFile().Filename() != "b.remex" {
		t.Errorf("error reported against %s, expected b.remex", err.SourceFile().Filename())
	}
}

func Test_Limits_03(t *testing.T) {
	limits := Limits{MaxExpandedBytes: 8}
	//
	checkCompileError(t, limits, ast.ErrResourceLimit,
		"expansion of macro \"B\" exceeds 8 bytes",
		"$(!A)=abcde\n$(B)=$(A)$(A)")
}

func Test_Limits_04(t *testing.T) {
	// Zero disables each bound individually.
	grammar, errs := compileWithLimits(Limits{}, "$(!A)=abcde\n$(B)=$(A)$(A)$(A)$(A)")
	//
	if len(errs) > 0 {
		t.Fatalf("compilation failed: %s", errs[0].Message())
	}
	//
	checkExpansion(t, grammar, "B", "abcdeabcdeabcdeabcde")
}

// ===================================================================
// Pattern Adaptation Tests
// ===================================================================

func Test_Pattern_01(t *testing.T) {
	grammar := compileStrings(t, `$(!Y)=\d{4}`+"\n"+`$(Date)=(?<y>$(Y))-\d{2}`)
	profile, _ := dialect.Builtin("re2")
	//
	pattern, err := grammar.Pattern("Date", profile, dialect.Options{})
	if err != nil {
		t.Fatalf("adaptation failed: %s", err)
	}
	//
	if pattern.Text() != `(?<y>\d{4})-\d{2}` {
		t.Errorf("unexpected pattern \"%s\"", pattern.Text())
	}
	//
	if index, ok := pattern.GroupIndex("y"); !ok || index != 1 {
		t.Errorf("group \"y\" has ordinal %d, expected 1", index)
	}
}

func Test_Pattern_02(t *testing.T) {
	grammar := compileStrings(t, "$(A)=x")
	profile, _ := dialect.Builtin("re2")
	//
	_, err := grammar.Pattern("Nope", profile, dialect.Options{})
	//
	if err == nil || err.Error() != "unknown macro \"Nope\"" {
		t.Errorf("unexpected error %v", err)
	}
}

func Test_Pattern_03(t *testing.T) {
	// Demotion to plain capturing groups keeps names addressable by ordinal.
	grammar := compileStrings(t, `$(D)=(?<y>\d{4})-(\d{2})`)
	profile, _ := dialect.Builtin("posix")
	//
	pattern, err := grammar.Pattern("D", profile, dialect.Options{})
	if err != nil {
		t.Fatalf("adaptation failed: %s", err)
	}
	//
	if pattern.Text() != `(\d{4})-(\d{2})` {
		t.Errorf("unexpected pattern \"%s\"", pattern.Text())
	}
	//
	if index, ok := pattern.GroupIndex("y"); !ok || index != 1 {
		t.Errorf("group \"y\" has ordinal %d, expected 1", index)
	}
}

func Test_Pattern_04(t *testing.T) {
	// Composition can duplicate a group name; the adapter reports it against
	// the target dialect.
	grammar := compileStrings(t, `$(!C)=(?<G>\d+)`+"\n"+`$(D)=$(C)-$(C)`)
	//
	checkExpansion(t, grammar, "D", `(?<G>\d+)-(?<G>\d+)`)
	//
	profile, _ := dialect.Builtin("re2")
	//
	_, err := grammar.Pattern("D", profile, dialect.Options{})
	//
	var ferr ast.Error
	//
	if !errors.As(err, &ferr) || ferr.Code() != ast.ErrDuplicateGroupName {
		t.Fatalf("unexpected error %v", err)
	}
	//
	if ferr.Message() != "group name \"G\" occurs 2 times (positions 0, 10)" {
		t.Errorf("unexpected message \"%s\"", ferr.Message())
	}
	// Opting in to renaming resolves the collision instead.
	pattern, err := grammar.Pattern("D", profile, dialect.Options{RenameDuplicates: true})
	if err != nil {
		t.Fatalf("adaptation failed: %s", err)
	}
	//
	if pattern.Text() != `(?<G>\d+)-(?<G_2>\d+)` {
		t.Errorf("unexpected pattern \"%s\"", pattern.Text())
	}
}

func Test_Pattern_05(t *testing.T) {
	// Patterns are cached per (macro, profile, options) combination.
	grammar := compileStrings(t, `$(D)=(?<y>\d{4})`)
	re2, _ := dialect.Builtin("re2")
	posix, _ := dialect.Builtin("posix")
	//
	p1, _ := grammar.Pattern("D", re2, dialect.Options{})
	p2, _ := grammar.Pattern("D", re2, dialect.Options{})
	p3, _ := grammar.Pattern("D", posix, dialect.Options{})
	//
	if p1 != p2 {
		t.Errorf("identical requests produced distinct patterns")
	}
	//
	if p1 == p3 || p3.Text() != `(\d{4})` {
		t.Errorf("distinct profiles produced the same pattern")
	}
}

func Test_Pattern_06(t *testing.T) {
	// Adaptation failures are cached like successes.
	grammar := compileStrings(t, `$(L)=(?<=a+)b`)
	profile, _ := dialect.Builtin("re2")
	//
	_, err1 := grammar.Pattern("L", profile, dialect.Options{})
	_, err2 := grammar.Pattern("L", profile, dialect.Options{})
	//
	if err1 == nil || err1 != err2 {
		t.Errorf("errors not cached: %v vs %v", err1, err2)
	}
	//
	var ferr ast.Error
	//
	if !errors.As(err1, &ferr) || ferr.Code() != ast.ErrUnsupportedConstruct {
		t.Errorf("unexpected error %v", err1)
	}
}

func Test_Pattern_07(t *testing.T) {
	// Concurrent requests for the same pattern are deduplicated.
	grammar := compileStrings(t, `$(D)=(?<y>\d{4})-\d{2}`)
	profile, _ := dialect.Builtin("re2")
	//
	var (
		wg       sync.WaitGroup
		patterns = make([]*dialect.CompiledPattern, 8)
	)
	//
	for i := range patterns {
		wg.Add(1)
		//
		go func(i int) {
			defer wg.Done()
			patterns[i], _ = grammar.Pattern("D", profile, dialect.Options{})
		}(i)
	}
	//
	wg.Wait()
	//
	for i := 1; i < len(patterns); i++ {
		if patterns[i] != patterns[0] {
			t.Fatalf("request %d produced a distinct pattern", i)
		}
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func compileStrings(t *testing.T, texts ...string) *CompiledGrammar {
	grammar, errs := compileWithLimits(DefaultLimits(), texts...)
	//
	if len(errs) > 0 {
		t.Fatalf("compilation failed: %s", errs[0].Message())
	}
	//
	return grammar
}

// Compile a sequence of grammar texts as files "a.remex", "b.remex", etc.
func compileWithLimits(limits Limits, texts ...string) (*CompiledGrammar, []ast.Error) {
	srcfiles := make([]*source.File, len(texts))
	//
	for i, text := range texts {
		name := fmt.Sprintf("%c.remex", rune('a'+i))
		srcfiles[i] = source.NewSourceFile(name, []byte(text))
	}
	//
	return Compile(limits, srcfiles...)
}

func checkCompileError(t *testing.T, limits Limits, code ast.Code, msg string, texts ...string) ast.Error {
	_, errs := compileWithLimits(limits, texts...)
	//
	if len(errs) != 1 {
		t.Fatalf("got %d errors, expected 1", len(errs))
	}
	//
	err := errs[0]
	//
	if err.Code() != code {
		t.Errorf("got code %s, expected %s", err.Code(), code)
	}
	//
	if err.Message() != msg {
		t.Errorf("got message \"%s\", expected \"%s\"", err.Message(), msg)
	}
	//
	return err
}

func checkExpansion(t *testing.T, grammar *CompiledGrammar, name string, expected string) {
	expansion, ok := grammar.Expansion(name)
	//
	if !ok {
		t.Fatalf("macro \"%s\" not found", name)
	}
	//
	if expansion != expected {
		t.Errorf("macro \"%s\" expands to \"%s\", expected \"%s\"", name, expansion, expected)
	}
}
