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
	"fmt"
	"strings"

	"github.com/consensys/go-remex/pkg/remex/ast"
	"github.com/consensys/go-remex/pkg/util/source"
)

// Options configures adaptation behaviours which are not capabilities of the
// target engine, but choices belonging to the caller.
type Options struct {
	// DemoteToNonCapturing rewrites named groups to non-capturing (rather
	// than plain capturing) groups when the target lacks named-capture
	// support, signalling that the caller has no interest in their content.
	// Demoted groups are then absent from the group-name index.
	DemoteToNonCapturing bool
	// RenameDuplicates opts in to auto-disambiguation of duplicate group
	// names under dialects which forbid them: the first occurrence keeps the
	// authored name, while later occurrences gain an incrementing suffix
	// ("name_2", "name_3", ...).  This is never a silent default, since
	// renaming changes the caller's addressing contract.
	RenameDuplicates bool
}

// Adapt rewrites the expansion of a given macro for a target dialect,
// producing an engine-ready pattern along with its group-name index.  This is
// a pure function of its inputs; errors are scoped to this single (macro,
// profile) pair.  Error spans refer to the expansion text itself, which is
// carried as a synthetic source file named after the macro.
func Adapt(name string, expansion string, profile Profile, opts Options) (*CompiledPattern, []ast.Error) {
	srcfile := source.NewSourceFile("<"+name+">", []byte(expansion))
	//
	sc, errs := scanPattern(srcfile, expansion)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	a := adapter{
		srcfile: srcfile,
		scan:    sc,
		profile: profile,
		opts:    opts,
		headers: make([]string, len(sc.groups)),
		names:   make([]string, len(sc.groups)),
	}
	//
	return a.run(name)
}

type adapter struct {
	srcfile *source.File
	scan    *scan
	profile Profile
	opts    Options
	// Replacement opening sequences, indexed by group (empty means the
	// opening is unchanged).
	headers []string
	// Final capture names, indexed by group (empty means the group is
	// unnamed in the final text).
	names []string
}

func (p *adapter) run(name string) (*CompiledPattern, []ast.Error) {
	if errs := p.checkLookbehinds(); len(errs) > 0 {
		return nil, errs
	}
	//
	p.planRewrites()
	//
	if errs := p.resolveNames(); len(errs) > 0 {
		return nil, errs
	}
	//
	return &CompiledPattern{name, p.rebuild(), p.census()}, nil
}

// Check every lookbehind for evidence of variable-length content when the
// target cannot support it.  Such lookbehinds are reported, never rewritten,
// since a general fixed-length conversion is not always possible.
func (p *adapter) checkLookbehinds() []ast.Error {
	if p.profile.VariableLookbehind {
		return nil
	}
	//
	for _, g := range p.scan.groups {
		if g.kind != groupLookbehind {
			continue
		}
		//
		if p.scan.variableLength(g.open.End(), g.close) {
			span := source.NewSpan(g.open.Start(), g.close+1)
			//
			return []ast.Error{ast.NewError(ast.ErrUnsupportedConstruct, p.srcfile, span,
				"variable-length lookbehind not supported by target dialect")}
		}
	}
	//
	return nil
}

// Plan the capability-driven rewrites of group openings: named groups are
// demoted when the target lacks named-capture support, and plain groups
// become non-capturing under explicit-capture semantics.
func (p *adapter) planRewrites() {
	for i, g := range p.scan.groups {
		switch {
		case g.kind == groupNamed && !p.profile.NamedCaptures:
			if p.opts.DemoteToNonCapturing {
				p.headers[i] = "(?:"
			} else {
				p.headers[i] = "("
			}
		case g.kind == groupPlain && p.profile.ExplicitCaptureOnly:
			p.headers[i] = "(?:"
		}
	}
}

// Determine the final capture names, detecting (or, when opted in, renaming)
// duplicates under dialects which forbid them.
func (p *adapter) resolveNames() []ast.Error {
	// Names only survive when the target supports them.
	if !p.profile.NamedCaptures {
		return nil
	}
	//
	var (
		order       []string
		occurrences = make(map[string][]int)
	)
	//
	for i, g := range p.scan.groups {
		if g.kind != groupNamed {
			continue
		}
		//
		p.names[i] = g.name
		//
		if _, seen := occurrences[g.name]; !seen {
			order = append(order, g.name)
		}
		//
		occurrences[g.name] = append(occurrences[g.name], i)
	}
	//
	if p.profile.DuplicateNames {
		return nil
	}
	//
	for _, name := range order {
		occ := occurrences[name]
		//
		if len(occ) < 2 {
			continue
		}
		//
		if !p.opts.RenameDuplicates {
			return p.duplicateNameError(name, occ)
		}
		//
		p.renameDuplicates(name, occ)
	}
	//
	return nil
}

// Report a duplicated group name, listing every occurrence by its position in
// the adapted text.
func (p *adapter) duplicateNameError(name string, occ []int) []ast.Error {
	var (
		positions = make([]string, len(occ))
		offsets   = p.finalOffsets()
	)
	//
	for i, g := range occ {
		positions[i] = fmt.Sprintf("%d", offsets[g])
	}
	//
	err := ast.Errorf(ast.ErrDuplicateGroupName, p.srcfile, p.scan.groups[occ[1]].open,
		"group name \"%s\" occurs %d times (positions %s)",
		name, len(occ), strings.Join(positions, ", "))
	//
	return []ast.Error{err}
}

// Rename the second and subsequent occurrences of a duplicated name, avoiding
// collisions with every other name in the pattern.
func (p *adapter) renameDuplicates(name string, occ []int) {
	taken := make(map[string]bool)
	//
	for _, n := range p.names {
		if n != "" {
			taken[n] = true
		}
	}
	//
	suffix := 2
	//
	for _, g := range occ[1:] {
		candidate := fmt.Sprintf("%s_%d", name, suffix)
		//
		for taken[candidate] {
			suffix++
			candidate = fmt.Sprintf("%s_%d", name, suffix)
		}
		//
		taken[candidate] = true
		p.names[g] = candidate
		p.headers[g] = p.scan.groups[g].opening(candidate)
		suffix++
	}
}

// Compute the position of each group's opening within the adapted text, by
// accumulating the size difference of every rewritten opening before it.
func (p *adapter) finalOffsets() []int {
	var (
		offsets = make([]int, len(p.scan.groups))
		delta   = 0
	)
	//
	for i, g := range p.scan.groups {
		offsets[i] = g.open.Start() + delta
		//
		if p.headers[i] != "" {
			delta += len([]rune(p.headers[i])) - g.open.Length()
		}
	}
	//
	return offsets
}

// Rebuild the pattern text, splicing in the rewritten group openings.
func (p *adapter) rebuild() string {
	var (
		builder strings.Builder
		runes   = p.scan.runes
		last    = 0
	)
	//
	for i, g := range p.scan.groups {
		if p.headers[i] == "" {
			continue
		}
		//
		builder.WriteString(string(runes[last:g.open.Start()]))
		builder.WriteString(p.headers[i])
		//
		last = g.open.End()
	}
	//
	builder.WriteString(string(runes[last:]))
	//
	return builder.String()
}

// Compute the group-name index: each capture name maps to the 1-based,
// left-to-right ordinal of its group among the capturing groups of the final
// text.  Names demoted to plain capturing groups stay addressable by ordinal;
// names demoted to non-capturing groups do not capture, hence are dropped.
func (p *adapter) census() map[string]uint {
	var (
		groups  = make(map[string]uint)
		ordinal uint
	)
	//
	for i, g := range p.scan.groups {
		var name string
		//
		switch {
		case g.kind == groupPlain && p.headers[i] == "":
			// still capturing
		case g.kind == groupNamed && p.profile.NamedCaptures:
			name = p.names[i]
		case g.kind == groupNamed && p.headers[i] == "(":
			// demoted to a plain capturing group
			name = g.name
		default:
			continue
		}
		//
		ordinal++
		//
		if name != "" {
			if _, exists := groups[name]; !exists {
				groups[name] = ordinal
			}
		}
	}
	//
	return groups
}
