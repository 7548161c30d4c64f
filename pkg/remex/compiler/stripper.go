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

// StripComments removes comments from a given grammar source file, yielding
// the sequence of remaining (non-blank) lines in file order.  Two comment
// forms are recognized: "//" to the end of the line, and "/* ... */" which is
// non-greedy and may span lines.  Neither form is comment-eligible inside an
// open-but-unclosed character class on the current line, since macro bodies
// may legitimately contain these characters as literals.  An unterminated
// block comment is a parse error, reported at its opening position.
func StripComments(srcfile *source.File) ([]StrippedLine, []ast.Error) {
	s := stripper{srcfile: srcfile, contents: srcfile.Contents(), line: 1, segStart: -1}
	return s.strip()
}

// StrippedLine is a single line of grammar text after comment removal.  It
// retains its original line number along with the segments of the original
// file which make it up, allowing error spans against the stripped text to be
// mapped back to the file.
type StrippedLine struct {
	// Retained text, with comments removed and unescaped trailing whitespace
	// trimmed.
	text string
	// Line number within the original file (counting from 1).
	number int
	// Segments of the original file making up the retained text.
	segments source.Segments
}

// Text returns the retained text of this line.
func (p *StrippedLine) Text() string {
	return p.text
}

// Number returns the line number (counting from 1) of this line within the
// original file.
func (p *StrippedLine) Number() int {
	return p.number
}

// Segments returns the segments of the original file making up the retained
// text of this line.
func (p *StrippedLine) Segments() source.Segments {
	return p.segments
}

// FileSpan translates a span given in rune offsets relative to this line's
// retained text into a span within the original file.
func (p *StrippedLine) FileSpan(rel source.Span) source.Span {
	return p.segments.Map(rel)
}

// ============================================================================
// Implementation
// ============================================================================

type stripper struct {
	srcfile  *source.File
	contents []rune
	// Line number of the line under construction (counting from 1).
	line int
	// Retained text of the line under construction.
	text []rune
	// Completed segments of the line under construction.
	segments source.Segments
	// Start of the currently open segment, or -1 if none open.
	segStart int
	// One past the last rune of the currently open segment.
	segEnd int
	// Completed lines.
	lines []StrippedLine
}

func (p *stripper) strip() ([]StrippedLine, []ast.Error) {
	var (
		inClass bool
		i       int
		n       = len(p.contents)
	)
	//
	for i < n {
		c := p.contents[i]
		//
		switch {
		case c == '\n':
			p.endLine()
			//
			inClass = false
			i++
		case c == '\\':
			// Escape consumes the next rune (unless at end of line).
			p.retain(i)
			//
			if i+1 < n && p.contents[i+1] != '\n' {
				p.retain(i + 1)
				i += 2
			} else {
				i++
			}
		case inClass:
			if c == ']' {
				inClass = false
			}
			//
			p.retain(i)
			i++
		case c == '[':
			inClass = true
			//
			p.retain(i)
			i++
		case c == '/' && i+1 < n && p.contents[i+1] == '/':
			// Line comment: discard everything up to the end of line.
			p.breakSegment()
			//
			for i < n && p.contents[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < n && p.contents[i+1] == '*':
			open := i
			closed := false
			//
			p.breakSegment()
			i += 2
			// Discard everything up to (and including) the first "*/".
			for i < n {
				if p.contents[i] == '\n' {
					p.endLine()
					i++
				} else if p.contents[i] == '*' && i+1 < n && p.contents[i+1] == '/' {
					closed = true
					i += 2
					//
					break
				} else {
					i++
				}
			}
			//
			if !closed {
				err := ast.NewError(ast.ErrParse, p.srcfile,
					source.NewSpan(open, open+2), "unterminated block comment")
				return nil, []ast.Error{err}
			}
		default:
			p.retain(i)
			i++
		}
	}
	// Close out the final line (no trailing newline).
	p.endLine()
	//
	return p.lines, nil
}

// Retain the rune at a given position of the original file, extending the
// current segment (or opening a new one).
func (p *stripper) retain(pos int) {
	if p.segStart < 0 {
		p.segStart = pos
	}
	//
	p.text = append(p.text, p.contents[pos])
	p.segEnd = pos + 1
}

// Close the currently open segment, if any.
func (p *stripper) breakSegment() {
	if p.segStart >= 0 {
		p.segments = append(p.segments, source.NewSpan(p.segStart, p.segEnd))
		p.segStart = -1
	}
}

// Complete the line under construction, emitting it unless blank, and advance
// the line counter.
func (p *stripper) endLine() {
	p.breakSegment()
	p.trimTrailingWhitespace()
	//
	if len(p.text) > 0 {
		p.lines = append(p.lines, StrippedLine{string(p.text), p.line, p.segments})
	}
	//
	p.text = nil
	p.segments = nil
	p.line++
}

// Trim unescaped trailing whitespace from the line under construction,
// shrinking its segments to match.  Whitespace preceded by an odd number of
// backslashes is escaped, hence significant.
func (p *stripper) trimTrailingWhitespace() {
	end := len(p.text)
	//
	for end > 0 && isWhitespace(p.text[end-1]) && !isEscaped(p.text, end-1) {
		end--
	}
	//
	drop := len(p.text) - end
	p.text = p.text[:end]
	// Shrink segments from the back to match.
	for drop > 0 {
		last := len(p.segments) - 1
		s := p.segments[last]
		//
		if s.Length() <= drop {
			drop -= s.Length()
			p.segments = p.segments[:last]
		} else {
			p.segments[last] = source.NewSpan(s.Start(), s.End()-drop)
			drop = 0
		}
	}
}

func isWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

// Check whether the rune at a given position is escaped, i.e. preceded by an
// odd number of backslashes.
func isEscaped(text []rune, pos int) bool {
	count := 0
	//
	for i := pos - 1; i >= 0 && text[i] == '\\'; i-- {
		count++
	}
	//
	return count%2 == 1
}
