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
	"unicode/utf8"

	"github.com/coregx/ahocorasick"

	"github.com/consensys/go-remex/pkg/util/source"
)

// Finding reports one occurrence of a construct lying outside the common
// dialect subset.  Findings are advisory: such constructs are passed through
// adaptation untouched, but they will not work on every target engine.
type Finding struct {
	// Construct found (its literal spelling).
	Construct string
	// Description of the construct.
	Message string
	// Span of the occurrence within the pattern text, in rune offsets.
	Span source.Span
}

// Constructs outside the common dialect subset, recognized by their literal
// prefixes.  Occurrences which are escaped or inside a character class are
// literal text, not constructs.
var lintConstructs = []struct {
	prefix  string
	message string
}{
	{"(?>", "atomic group"},
	{"(?|", "branch reset group"},
	{"(?(", "conditional group"},
	{"(?R", "recursive pattern call"},
	{"(?&", "subroutine call"},
	{"(?C", "callout"},
	{"(?#", "inline comment"},
	{"\\g<", "subroutine reference"},
	{"\\k<", "named backreference"},
	{"\\K", "match start reset"},
	{"*+", "possessive quantifier"},
	{"++", "possessive quantifier"},
	{"?+", "possessive quantifier"},
}

// lintAutomaton matches every construct prefix simultaneously.
var lintAutomaton = buildLintAutomaton()

func buildLintAutomaton() *ahocorasick.Automaton {
	builder := ahocorasick.NewBuilder()
	//
	for _, c := range lintConstructs {
		builder.AddPattern([]byte(c.prefix))
	}
	//
	auto, err := builder.Build()
	if err != nil {
		panic(err)
	}
	//
	return auto
}

// Lint scans a pattern for constructs outside the common dialect subset,
// returning advisory findings in textual order.  Unlike adaptation errors,
// findings never fail a pattern: the grammar author may well know exactly
// which engine the pattern is destined for.
func Lint(text string) []Finding {
	var (
		findings []Finding
		haystack = []byte(text)
		messages = make(map[string]string, len(lintConstructs))
	)
	//
	for _, c := range lintConstructs {
		messages[c.prefix] = c.message
	}
	// Positions which are escaped or inside a character class are literal
	// text; matches starting there are discarded.
	sc, _ := scanPattern(source.NewSourceFile("<lint>", haystack), text)
	//
	for at := 0; at < len(haystack); {
		m := lintAutomaton.Find(haystack, at)
		//
		if m == nil {
			break
		}
		//
		var (
			construct = string(haystack[m.Start:m.End])
			start     = utf8.RuneCountInString(text[:m.Start])
			end       = start + utf8.RuneCountInString(construct)
		)
		//
		if start < len(sc.literal) && !sc.literal[start] {
			findings = append(findings, Finding{
				Construct: construct,
				Message:   messages[construct],
				Span:      source.NewSpan(start, end),
			})
		}
		//
		at = m.Start + 1
	}
	//
	return findings
}
