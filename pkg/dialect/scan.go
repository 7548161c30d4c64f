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

// groupKind classifies the opening syntax of a group within a pattern.
type groupKind uint8

const (
	// groupPlain is a bare capturing group "(".
	groupPlain groupKind = iota
	// groupNonCapturing is "(?:".
	groupNonCapturing
	// groupNamed is a named capturing group "(?<n>", "(?P<n>" or "(?'n'".
	groupNamed
	// groupLookahead is "(?=" or "(?!".
	groupLookahead
	// groupLookbehind is "(?<=" or "(?<!".
	groupLookbehind
	// groupOther is any other "(?..." construct (inline flags, atomic
	// groups, conditionals and so on).  These are never rewritten.
	groupOther
)

// namedForm records the delimiter style of a named group, so that renames
// preserve the authored syntax.
type namedForm uint8

const (
	// formAngle is "(?<name>".
	formAngle namedForm = iota
	// formP is "(?P<name>".
	formP
	// formQuote is "(?'name'".
	formQuote
)

// group records one group of a scanned pattern, in particular the span of its
// opening sequence (which is all adaptation ever rewrites).
type group struct {
	// Kind of this group.
	kind groupKind
	// Span of the opening sequence, e.g. all of "(?<name>".
	open source.Span
	// Position of the matching closing parenthesis.
	close int
	// Name of a named group (empty otherwise).
	name string
	// Delimiter style of a named group.
	form namedForm
	// Negated indicates "(?!" / "(?<!" rather than "(?=" / "(?<=".
	negated bool
}

// scan is the structural analysis of a pattern: its groups in textual order,
// along with a map of which positions are literal (escaped, or inside a
// character class) and hence never operator syntax.
type scan struct {
	runes   []rune
	groups  []group
	literal []bool
}

// scanPattern analyses the structure of a pattern, reporting unbalanced
// groups, unclosed character classes and malformed group names.  The
// returned scan is valid as far as the analysis got, even under errors.
func scanPattern(srcfile *source.File, text string) (*scan, []ast.Error) {
	var (
		p       = &scan{runes: []rune(text)}
		stack   []int
		inClass bool
		classAt int
		i       int
		n       = len(p.runes)
	)
	//
	p.literal = make([]bool, n)
	//
	for i < n {
		c := p.runes[i]
		//
		switch {
		case c == '\\':
			// Escape: the next rune is literal.
			if i+1 < n {
				p.literal[i+1] = true
			}
			//
			i += 2
		case inClass:
			if c == ']' {
				inClass = false
			} else {
				p.literal[i] = true
			}
			//
			i++
		case c == '[':
			inClass = true
			classAt = i
			i++
		case c == '(':
			g, next, errs := p.scanGroupOpen(srcfile, i)
			//
			if len(errs) > 0 {
				return p, errs
			}
			//
			stack = append(stack, len(p.groups))
			p.groups = append(p.groups, g)
			i = next
		case c == ')':
			if len(stack) == 0 {
				return p, []ast.Error{ast.NewError(ast.ErrParse, srcfile,
					source.NewSpan(i, i+1), "unbalanced ')'")}
			}
			//
			p.groups[stack[len(stack)-1]].close = i
			stack = stack[:len(stack)-1]
			i++
		default:
			i++
		}
	}
	//
	if inClass {
		return p, []ast.Error{ast.NewError(ast.ErrParse, srcfile,
			source.NewSpan(classAt, classAt+1), "unclosed character class")}
	}
	//
	if len(stack) > 0 {
		open := p.groups[stack[len(stack)-1]].open
		return p, []ast.Error{ast.NewError(ast.ErrParse, srcfile, open, "unclosed group")}
	}
	//
	return p, nil
}

// Classify the group opening at a given unescaped '(' and determine where
// scanning resumes.
func (p *scan) scanGroupOpen(srcfile *source.File, i int) (group, int, []ast.Error) {
	var (
		r = p.runes
		n = len(r)
	)
	// Bare capturing group
	if i+1 >= n || r[i+1] != '?' {
		return group{kind: groupPlain, open: source.NewSpan(i, i+1), close: -1}, i + 1, nil
	}
	// "(?" forms
	if i+2 < n {
		switch r[i+2] {
		case ':':
			return group{kind: groupNonCapturing, open: source.NewSpan(i, i+3), close: -1}, i + 3, nil
		case '=', '!':
			g := group{kind: groupLookahead, open: source.NewSpan(i, i+3), close: -1,
				negated: r[i+2] == '!'}
			return g, i + 3, nil
		case '<':
			// Lookbehind, or an angle-named group
			if i+3 < n && (r[i+3] == '=' || r[i+3] == '!') {
				g := group{kind: groupLookbehind, open: source.NewSpan(i, i+4), close: -1,
					negated: r[i+3] == '!'}
				return g, i + 4, nil
			}
			//
			return p.scanGroupName(srcfile, i, i+3, formAngle, '>')
		case 'P':
			if i+3 < n && r[i+3] == '<' {
				return p.scanGroupName(srcfile, i, i+4, formP, '>')
			}
		case '\'':
			return p.scanGroupName(srcfile, i, i+3, formQuote, '\'')
		}
	}
	// Anything else: inline flags, atomic groups, conditionals, ...
	return group{kind: groupOther, open: source.NewSpan(i, min(i+2, n)), close: -1}, i + 2, nil
}

// Scan the name of a named group, given the position of its opening '(' and
// the position at which the name starts.  Group names satisfy identifier
// syntax and must be terminated by the closing delimiter of their form.
func (p *scan) scanGroupName(srcfile *source.File, start int, nameStart int,
	form namedForm, delim rune) (group, int, []ast.Error) {
	var (
		r = p.runes
		n = len(r)
		j = nameStart
	)
	//
	for j < n && isNameChar(r[j], j == nameStart) {
		j++
	}
	//
	name := string(r[nameStart:j])
	//
	if name == "" || j >= n || r[j] != delim {
		err := ast.NewError(ast.ErrParse, srcfile,
			source.NewSpan(start, min(j+1, n)), "malformed named group")
		//
		return group{}, 0, []ast.Error{err}
	}
	//
	g := group{kind: groupNamed, open: source.NewSpan(start, j+1), close: -1,
		name: name, form: form}
	//
	return g, j + 1, nil
}

// Rebuild the opening sequence of a named group under a (possibly new) name,
// preserving the authored delimiter style.
func (g *group) opening(name string) string {
	switch g.form {
	case formP:
		return "(?P<" + name + ">"
	case formQuote:
		return "(?'" + name + "'"
	default:
		return "(?<" + name + ">"
	}
}

func isNameChar(c rune, first bool) bool {
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
