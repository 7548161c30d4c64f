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
	"github.com/consensys/go-remex/pkg/util/source"
)

// Reference represents one occurrence of the reference token syntax "$(name)"
// within a macro body.  A reference preceded by an (unescaped) backslash is
// literal text, not a reference.  References are recognized everywhere else
// in a body, including within character classes, since macro substitution is
// text preprocessing rather than regex rewriting.
type Reference struct {
	// Name of the macro being referenced (possibly empty when malformed).
	name string
	// Span of the entire token, in rune offsets relative to the scanned text.
	span source.Span
	// Indicates a visibility marker was present at the reference site.  The
	// marker is only meaningful at definition sites; here it is tolerated and
	// reported as a lint warning.
	marked bool
	// Indicates the token opened with "$(" but did not match the required
	// shape of a reference.
	malformed bool
}

// Name returns the name of the macro being referenced.  For malformed
// references this is the (possibly empty) identifier prefix scanned before
// the token shape broke down.
func (p *Reference) Name() string {
	return p.name
}

// Span returns the span of this token within the scanned text, in rune
// offsets.
func (p *Reference) Span() source.Span {
	return p.span
}

// Marked indicates whether a visibility marker was present at the reference
// site.
func (p *Reference) Marked() bool {
	return p.marked
}

// Malformed indicates whether this token opened with "$(" but failed to match
// the required shape "$(name)".
func (p *Reference) Malformed() bool {
	return p.malformed
}

// ScanReferences scans a given text for occurrences of the reference token
// syntax, returning them in textual order.  Escaped occurrences (i.e. "\$(")
// are skipped.  Tokens which open with "$(" but do not match the required
// shape are returned with their malformed flag set, covering the offending
// prefix.
func ScanReferences(text string) []Reference {
	var (
		refs  []Reference
		runes = []rune(text)
		i     int
	)
	//
	for i < len(runes) {
		c := runes[i]
		//
		switch {
		case c == '\\':
			// Escape consumes the next rune, whatever it is.
			i += 2
		case c == '$' && i+1 < len(runes) && runes[i+1] == '(':
			ref, next := scanReference(runes, i)
			refs = append(refs, ref)
			i = next
		default:
			i++
		}
	}
	//
	return refs
}

// Scan a single reference token starting at a given "$(" occurrence,
// returning the token along with the position at which scanning should
// resume.  For malformed tokens, scanning resumes immediately after the
// opening "$(" so that any enclosed candidates are still found.
func scanReference(runes []rune, start int) (Reference, int) {
	i := start + 2
	marked := false
	// Check for visibility marker
	if i < len(runes) && runes[i] == '!' {
		marked = true
		i++
	}
	// Scan identifier
	j := i
	for j < len(runes) && isIdentifierChar(runes[j], j == i) {
		j++
	}
	//
	name := string(runes[i:j])
	// Check for closing bracket
	if name != "" && j < len(runes) && runes[j] == ')' {
		return Reference{name, source.NewSpan(start, j+1), marked, false}, j + 1
	}
	// Malformed.  Cover the token up to (and including) the offending rune.
	end := min(j+1, len(runes))
	//
	return Reference{name, source.NewSpan(start, end), marked, true}, start + 2
}
