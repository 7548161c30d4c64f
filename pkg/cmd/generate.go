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
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/consensys/go-remex/pkg/dialect"
	"github.com/consensys/go-remex/pkg/remex"
	"github.com/spf13/cobra"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [flags] grammar_file(s)",
	Short: "generate a Go source file embedding adapted patterns.",
	Long: `Compile a given set of grammar files, adapt every public macro to the
	target dialect profile, and generate a Go source file which embeds the
	adapted patterns (along with their capture-group indices) as constants.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		configureLogging(cmd)
		//
		profileName, profile := resolveProfile(cmd)
		opts := getAdaptOptions(cmd)
		filename := GetString(cmd, "output")
		pkgname := GetString(cmd, "pkg")
		// Parse grammar
		grammar := compileGrammar(getLimits(cmd), args)
		//
		reportWarnings(grammar)
		// Adapt all public macros
		patterns := adaptPublicMacros(grammar, profile, opts)
		// Generate appropriate Go source
		source, err := generateGoIntegration(filename, pkgname, profileName, patterns)
		// check for errors / write out file.
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		} else if err := os.WriteFile(filename, []byte(source), 0644); err != nil {
			fmt.Println(err.Error())
			os.Exit(4)
		}
	},
}

// namedPattern pairs a macro name with its adapted pattern, retaining
// definition order for deterministic generation.
type namedPattern struct {
	name    string
	pattern *dialect.CompiledPattern
}

// adaptPublicMacros adapts every public macro of the given grammar,
// terminating if any cannot be represented under the target dialect.
func adaptPublicMacros(grammar *remex.CompiledGrammar, profile dialect.Profile,
	opts dialect.Options) []namedPattern {
	//
	var (
		patterns []namedPattern
		failed   uint
	)
	//
	for _, macro := range grammar.Macros() {
		if !macro.Public {
			continue
		}
		//
		pattern, err := grammar.Pattern(macro.Name, profile, opts)
		//
		if err != nil {
			printPatternError(macro.Name, err)
			//
			failed++
			//
			continue
		}
		//
		patterns = append(patterns, namedPattern{macro.Name, pattern})
	}
	//
	if failed > 0 {
		os.Exit(2)
	}
	//
	return patterns
}

// Generate a suitable pattern integration.
func generateGoIntegration(filename string, pkgname string, profileName string,
	patterns []namedPattern) (string, error) {
	//
	var builder strings.Builder
	// Extract base of filename
	basename := filepath.Base(filename)
	// Sanity check a request is made to generate a Go source file.
	if !strings.HasSuffix(basename, ".go") {
		return "", errors.New("invalid Go filename")
	}
	// begin generation
	generateGoHeader(pkgname, &builder)
	//
	for _, p := range patterns {
		generateGoPattern(p, profileName, &builder)
	}
	//
	return builder.String(), nil
}

func generateGoHeader(pkgname string, builder *strings.Builder) {
	builder.WriteString(license)
	builder.WriteString(goWarning)
	// Write package line
	builder.WriteString(fmt.Sprintf("\npackage %s\n", pkgname))
}

func generateGoPattern(p namedPattern, profileName string, builder *strings.Builder) {
	groups := p.pattern.Groups()
	// Write pattern constant
	builder.WriteString(fmt.Sprintf("\n// Pattern%s gives %s adapted for the %s dialect.\n",
		p.name, p.name, profileName))
	builder.WriteString(fmt.Sprintf("const Pattern%s = %s\n", p.name, strconv.Quote(p.pattern.Text())))
	// Write group indices (if any)
	if len(groups) == 0 {
		return
	}
	//
	names := make([]string, 0, len(groups))
	//
	for name := range groups {
		names = append(names, name)
	}
	//
	sort.Strings(names)
	//
	builder.WriteString(fmt.Sprintf("\n// Pattern%sGroups maps the capture-group names of Pattern%s"+
		" to their group indices.\n", p.name, p.name))
	builder.WriteString(fmt.Sprintf("var Pattern%sGroups = map[string]uint{\n", p.name))
	//
	for _, name := range names {
		builder.WriteString(fmt.Sprintf("\t%q: %d,\n", name, groups[name]))
	}
	//
	builder.WriteString("}\n")
}

const license string = `// Copyright Consensys Software Inc.
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
`

const goWarning string = `
// Code generated by remex DO NOT EDIT.
//
// Any modifications to this code may be overwritten and could lead to
// unexpected behavior.  Please DO NOT ATTEMPT TO MODIFY this code directly.
`

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringP("output", "o", "patterns.go", "specify output file.")
	generateCmd.Flags().String("pkg", "patterns", "specify Go package name.")
	registerAdaptFlags(generateCmd)
}
