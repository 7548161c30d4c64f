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
	"encoding/json"
	"fmt"
	"os"

	"github.com/consensys/go-remex/pkg/dialect"
	"github.com/consensys/go-remex/pkg/remex"
	"github.com/spf13/cobra"
)

// compileCmd represents the compile command
var compileCmd = &cobra.Command{
	Use:   "compile [flags] grammar_file(s)",
	Short: "Compile a grammar into a JSON pattern artifact.",
	Long: `Compile a given set of grammar files, adapt every public macro to the
	target dialect profile, and emit the adapted patterns as a JSON artifact
	which can be subsequently used without requiring a full compilation step.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		configureLogging(cmd)
		//
		_, profile := resolveProfile(cmd)
		opts := getAdaptOptions(cmd)
		output := GetString(cmd, "output")
		// Parse grammar
		grammar := compileGrammar(getLimits(cmd), args)
		//
		reportWarnings(grammar)
		// Adapt all public macros
		artifact := buildArtifact(grammar, profile, opts)
		// Serialise as JSON
		bytes, err := json.MarshalIndent(artifact, "", "  ")
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		if output == "" {
			fmt.Println(string(bytes))
		} else if err := os.WriteFile(output, bytes, 0644); err != nil {
			fmt.Println(err)
			os.Exit(4)
		}
	},
}

// patternArtifact gives the JSON shape of a single adapted pattern.
type patternArtifact struct {
	// Final pattern text, as accepted by the target engine.
	Pattern string `json:"pattern"`
	// Capture-group names mapped to their (1-based) group indices.
	Groups map[string]uint `json:"groups,omitempty"`
}

// buildArtifact adapts every public macro of the given grammar, terminating
// if any cannot be represented under the target dialect.
func buildArtifact(grammar *remex.CompiledGrammar, profile dialect.Profile,
	opts dialect.Options) map[string]patternArtifact {
	//
	var failed uint
	//
	artifact := make(map[string]patternArtifact)
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
		artifact[macro.Name] = patternArtifact{pattern.Text(), pattern.Groups()}
	}
	//
	if failed > 0 {
		os.Exit(2)
	}
	//
	return artifact
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringP("output", "o", "", "specify output file (defaults to stdout)")
	registerAdaptFlags(compileCmd)
}
