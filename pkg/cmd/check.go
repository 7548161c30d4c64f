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
	"fmt"
	"os"

	"github.com/consensys/go-remex/pkg/dialect"
	"github.com/consensys/go-remex/pkg/remex"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [flags] grammar_file(s)",
	Short: "Check a grammar against a given dialect profile.",
	Long: `Check that a given set of grammar files compiles, and that every public
	macro can be adapted to the target dialect profile.  Optionally, lint
	expansions for constructs which fall outside the common dialect subset.`,
	Run: func(cmd *cobra.Command, args []string) {
		var cfg checkConfig
		//
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		configureLogging(cmd)
		//
		cfg.lint = GetFlag(cmd, "lint")
		cfg.profileName, cfg.profile = resolveProfile(cmd)
		cfg.opts = getAdaptOptions(cmd)
		// Parse grammar
		grammar := compileGrammar(getLimits(cmd), args)
		// Go!
		checkGrammar(grammar, cfg)
	},
}

// check config encapsulates certain parameters to be used when checking
// grammars.
type checkConfig struct {
	// Name of the target dialect profile.
	profileName string
	// Capabilities of the target dialect.
	profile dialect.Profile
	// Options determining how unrepresentable constructs are handled.
	opts dialect.Options
	// Enables portability linting of macro expansions.
	lint bool
}

// checkGrammar adapts every public macro of the given grammar against the
// target dialect, reporting all failures encountered (rather than stopping at
// the first).
func checkGrammar(grammar *remex.CompiledGrammar, cfg checkConfig) {
	var checked, failed uint
	// Report any compilation warnings
	reportWarnings(grammar)
	//
	for _, macro := range grammar.Macros() {
		if !macro.Public {
			continue
		}
		//
		checked++
		//
		if _, err := grammar.Pattern(macro.Name, cfg.profile, cfg.opts); err != nil {
			printPatternError(macro.Name, err)
			//
			failed++
		} else if cfg.lint {
			lintMacro(macro)
		}
	}
	//
	if failed > 0 {
		fmt.Printf("%d of %d macros failed against profile %q\n", failed, checked, cfg.profileName)
		os.Exit(2)
	}
	//
	fmt.Printf("checked %d macros against profile %q\n", checked, cfg.profileName)
}

// lintMacro reports any constructs within the given macro's expansion which
// fall outside the common dialect subset.
func lintMacro(macro remex.CompiledMacro) {
	for _, finding := range dialect.Lint(macro.Body) {
		fmt.Printf("lint: %s: %s (%s)\n", macro.Name, finding.Message, finding.Construct)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("lint", false, "lint expansions for non-portable constructs")
	registerAdaptFlags(checkCmd)
}
