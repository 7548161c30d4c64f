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

	"github.com/spf13/cobra"
)

// expandCmd represents the expand command
var expandCmd = &cobra.Command{
	Use:   "expand [flags] grammar_file(s)",
	Short: "Print macro expansions for a given grammar.",
	Long: `Compile a given set of grammar files and print the fully expanded
	(dialect-agnostic) body of each public macro, one per line in the form
	name=body.  With --macro, print the raw body of that macro only.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		configureLogging(cmd)
		//
		name := GetString(cmd, "macro")
		internal := GetFlag(cmd, "internal")
		// Parse grammar
		grammar := compileGrammar(getLimits(cmd), args)
		//
		reportWarnings(grammar)
		// Handle single macro request
		if name != "" {
			macro, ok := grammar.Macro(name)
			//
			if !ok {
				fmt.Printf("unknown macro %q\n", name)
				os.Exit(1)
			}
			//
			fmt.Println(macro.Body)
			//
			return
		}
		//
		for _, macro := range grammar.Macros() {
			if macro.Public || internal {
				fmt.Printf("%s=%s\n", macro.Name, macro.Body)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(expandCmd)
	expandCmd.Flags().StringP("macro", "m", "", "print the expansion of this macro only")
	expandCmd.Flags().BoolP("internal", "i", false, "include internal macros")
}
