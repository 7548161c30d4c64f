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
package ast

import (
	"testing"
)

// ===================================================================
// Reference Scanning Tests
// ===================================================================

func Test_References_01(t *testing.T) {
	checkReferences(t, "a$(foo)b", refExpectation{"foo", 1, 7, false, false})
}

func Test_References_02(t *testing.T) {
	checkReferences(t, "$(a)-$(b)",
		refExpectation{"a", 0, 4, false, false},
		refExpectation{"b", 5, 9, false, false})
}

func Test_References_03(t *testing.T) {
	// Escaped occurrences are literal text.
	checkReferences(t, `\$(foo)`)
	checkReferences(t, `a\$(foo)b`)
}

func Test_References_04(t *testing.T) {
	// Double escape does not escape the token.
	checkReferences(t, `\\$(foo)`, refExpectation{"foo", 2, 8, false, false})
}

func Test_References_05(t *testing.T) {
	// Visibility marker at reference site is scanned, not rejected.
	checkReferences(t, "$(!foo)", refExpectation{"foo", 0, 7, true, false})
}

func Test_References_06(t *testing.T) {
	// References are recognized inside character classes.
	checkReferences(t, "[$(x)]", refExpectation{"x", 1, 5, false, false})
}

func Test_References_07(t *testing.T) {
	// A lone "$" is not a candidate.
	checkReferences(t, "a$b")
	checkReferences(t, "cost$")
	// Nor is "$" before anything other than "(".
	checkReferences(t, "$$")
}

func Test_References_08(t *testing.T) {
	// Only the adjacent "$(" pair triggers a candidate.
	checkReferences(t, "$$(x)", refExpectation{"x", 1, 5, false, false})
}

func Test_References_09(t *testing.T) {
	// Unclosed reference is malformed, covering the offending prefix.
	checkReferences(t, "$(foo", refExpectation{"foo", 0, 5, false, true})
	checkReferences(t, "abc$(def", refExpectation{"def", 3, 8, false, true})
}

func Test_References_10(t *testing.T) {
	// Empty and non-identifier names are malformed.
	checkReferences(t, "$()", refExpectation{"", 0, 3, false, true})
	checkReferences(t, "$(9a)", refExpectation{"", 0, 3, false, true})
}

func Test_References_11(t *testing.T) {
	// Scanning resumes inside a malformed candidate, finding enclosed tokens.
	checkReferences(t, "$($(x))",
		refExpectation{"", 0, 3, false, true},
		refExpectation{"x", 2, 6, false, false})
}

func Test_References_12(t *testing.T) {
	// A name broken by whitespace is malformed up to the offending rune.
	checkReferences(t, "$(fo o)", refExpectation{"fo", 0, 5, false, true})
}

// ===================================================================
// Test Helpers
// ===================================================================

// refExpectation captures the expected shape of one scanned reference.
type refExpectation struct {
	name      string
	start     int
	end       int
	marked    bool
	malformed bool
}

func checkReferences(t *testing.T, text string, expected ...refExpectation) {
	refs := ScanReferences(text)
	//
	if len(refs) != len(expected) {
		t.Fatalf("scanning \"%s\": got %d references, expected %d", text, len(refs), len(expected))
	}
	//
	for i, ref := range refs {
		e := expected[i]
		//
		if ref.Name() != e.name {
			t.Errorf("scanning \"%s\": reference %d named \"%s\", expected \"%s\"", text, i, ref.Name(), e.name)
		}
		//
		if ref.Span().Start() != e.start || ref.Span().End() != e.end {
			t.Errorf("scanning \"%s\": reference %d spans %d-%d, expected %d-%d", text, i,
				ref.Span().Start(), ref.Span().End(), e.start, e.end)
		}
		//
		if ref.Marked() != e.marked {
			t.Errorf("scanning \"%s\": reference %d marked=%v, expected %v", text, i, ref.Marked(), e.marked)
		}
		//
		if ref.Malformed() != e.malformed {
			t.Errorf("scanning \"%s\": reference %d malformed=%v, expected %v", text, i,
				ref.Malformed(), e.malformed)
		}
	}
}
