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
package source

// Segments represents an ordered sequence of disjoint spans within an
// original string which together make up one logical text (e.g. a line after
// comment removal).  Offsets within the logical text can be mapped back to
// offsets within the original string, which is needed when reporting errors
// against text that has been stitched together around removed regions.
type Segments []Span

// Span returns the enclosing span of these segments within the original
// string (i.e. from the start of the first segment to the end of the last).
func (p Segments) Span() Span {
	if len(p) == 0 {
		return NewSpan(0, 0)
	}
	//
	return NewSpan(p[0].Start(), p[len(p)-1].End())
}

// Length returns the total number of characters covered by these segments.
func (p Segments) Length() int {
	length := 0
	for _, s := range p {
		length += s.Length()
	}
	//
	return length
}

// Map translates a span given in offsets relative to the logical text into a
// span within the original string.  A span which crosses a gap between
// segments maps to the enclosing original span (i.e. including the gap).
func (p Segments) Map(rel Span) Span {
	if rel.Length() == 0 {
		offset := p.offset(rel.Start())
		return NewSpan(offset, offset)
	}
	//
	start := p.offset(rel.Start())
	end := p.offset(rel.End()-1) + 1
	//
	return NewSpan(start, end)
}

// Translate a single offset relative to the logical text into an offset
// within the original string.  Offsets beyond the logical text map to the end
// of the final segment.
func (p Segments) offset(rel int) int {
	for _, s := range p {
		if rel < s.Length() {
			return s.Start() + rel
		}
		//
		rel -= s.Length()
	}
	//
	if len(p) > 0 {
		return p[len(p)-1].End()
	}
	//
	return 0
}
