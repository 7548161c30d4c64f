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

	"github.com/consensys/go-remex/pkg/remex"
	"github.com/consensys/go-remex/pkg/util/termio"
	"github.com/spf13/cobra"
)

// macrosCmd represents the macros command
var macrosCmd = &cobra.Command{
	Use:   "macros [flags] grammar_file(s)",
	Short: "Summarise the macros defined in a grammar.",
	Long: `Compile a given set of grammar files and print a summary table of every
	macro, giving its visibility, the number of macros it references and the
	size of its expansion.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		configureLogging(cmd)
		// Parse grammar
		grammar := compileGrammar(getLimits(cmd), args)
		//
		reportWarnings(grammar)
		// Go!
		listMacros(grammar)
	},
}

// listMacros prints a summary table of every macro in the given grammar.
func listMacros(grammar *remex.CompiledGrammar) {
	macros := grammar.Macros()
	// Count outgoing references per macro
	refs := make(map[string]uint)
	//
	for _, edge := range grammar.Dependencies() {
		refs[edge.From]++
	}
	// Construct summary table
	tbl := termio.NewTablePrinter(4, uint(len(macros))+1)
	//
	tbl.SetRow(0, "NAME", "VISIBILITY", "REFS", "SIZE")
	tbl.SetRowEscape(0, termio.BoldAnsiEscape())
	//
	for i, macro := range macros {
		row := uint(i) + 1
		visibility := "public"
		//
		if !macro.Public {
			visibility = "internal"
		}
		//
		tbl.SetRow(row, macro.Name, visibility,
			fmt.Sprintf("%d", refs[macro.Name]), fmt.Sprintf("%d", len(macro.Body)))
		//
		if !macro.Public {
			tbl.SetRowEscape(row, termio.FaintAnsiEscape())
		}
	}
	//
	tbl.SetMaxWidths(termio.Width() / 4)
	tbl.AnsiEscapes(termio.IsTerminal())
	tbl.Print()
}

func init() {
	rootCmd.AddCommand(macrosCmd)
}
