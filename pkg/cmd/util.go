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
	"strings"

	"github.com/consensys/go-remex/pkg/dialect"
	"github.com/consensys/go-remex/pkg/remex"
	"github.com/consensys/go-remex/pkg/remex/ast"
	"github.com/consensys/go-remex/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	//
	return r
}

// GetString gets an expected string, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	//
	return r
}

// GetStringArray gets an expected string array, or panic if an error arises.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	//
	return r
}

// GetUint gets an expected uint, or panic if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	//
	return r
}

// GetUint64 gets an expected uint64, or panic if an error arises.
func GetUint64(cmd *cobra.Command, flag string) uint64 {
	r, err := cmd.Flags().GetUint64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	//
	return r
}

// configureLogging sets the logging verbosity from the given command's flags.
func configureLogging(cmd *cobra.Command) {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
}

// getLimits constructs resource limits from the (persistent) limit flags.
func getLimits(cmd *cobra.Command) remex.Limits {
	return remex.Limits{
		MaxMacros:        GetUint(cmd, "max-macros"),
		MaxSourceBytes:   GetUint64(cmd, "max-source-bytes"),
		MaxExpandedBytes: GetUint64(cmd, "max-expansion-bytes"),
	}
}

// readGrammarFiles reads a given set of grammar files, terminating with a
// suitable message if any cannot be read.
func readGrammarFiles(filenames []string) []*source.File {
	srcfiles, err := source.ReadFiles(filenames...)
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(4)
	}
	//
	return srcfiles
}

// compileGrammar reads and compiles a given set of grammar files, reporting
// any errors which arise and terminating on failure.
func compileGrammar(limits remex.Limits, filenames []string) *remex.CompiledGrammar {
	srcfiles := readGrammarFiles(filenames)
	//
	grammar, errs := remex.Compile(limits, srcfiles...)
	//
	if len(errs) > 0 {
		for _, err := range errs {
			printSyntaxError(err.SyntaxError)
		}
		// Fail
		os.Exit(2)
	}
	//
	return grammar
}

// reportWarnings prints any warnings accumulated during compilation.
func reportWarnings(grammar *remex.CompiledGrammar) {
	for _, warning := range grammar.Warnings() {
		fmt.Printf("warning: %s\n", warning.Error())
	}
}

// resolveProfile determines the target dialect profile from the --profile and
// --profile-file flags, with the latter taking precedence.
func resolveProfile(cmd *cobra.Command) (string, dialect.Profile) {
	var (
		name     = GetString(cmd, "profile")
		filename = GetString(cmd, "profile-file")
	)
	//
	if filename != "" {
		name, profile, err := dialect.LoadProfile(filename)
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(4)
		}
		//
		return name, profile
	}
	//
	profile, ok := dialect.Builtin(name)
	//
	if !ok {
		fmt.Printf("unknown dialect profile %q (available: %s)\n",
			name, strings.Join(dialect.Builtins(), ", "))
		os.Exit(1)
	}
	//
	return name, profile
}

// getAdaptOptions constructs adaptation options from the relevant flags.
func getAdaptOptions(cmd *cobra.Command) dialect.Options {
	return dialect.Options{
		DemoteToNonCapturing: GetFlag(cmd, "demote"),
		RenameDuplicates:     GetFlag(cmd, "rename-duplicates"),
	}
}

// registerAdaptFlags registers the flags shared by every command which adapts
// macros to a target dialect.
func registerAdaptFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("profile", "p", "re2", "specify target dialect profile")
	cmd.Flags().String("profile-file", "", "specify YAML file describing target dialect")
	cmd.Flags().Bool("demote", false, "demote unsupported named groups to non-capturing groups")
	cmd.Flags().Bool("rename-duplicates", false, "rename duplicate group names rather than failing")
}

// printSyntaxError prints a syntax error with appropriate highlighting.
func printSyntaxError(err *source.SyntaxError) {
	span := err.Span()
	line := err.FirstEnclosingLine()
	lineOffset := span.Start() - line.Start()
	// Calculate length (ensures don't overflow line)
	length := min(line.Length()-lineOffset, span.Length())
	// Print error + line number
	fmt.Printf("%s:%d:%d-%d %s\n", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, err.Message())
	// Print separator line
	fmt.Println()
	// Print line
	fmt.Println(line.String())
	// Print indent (todo: account for tabs)
	fmt.Print(strings.Repeat(" ", lineOffset))
	// Print highlight
	fmt.Println(strings.Repeat("^", length))
}

// printPatternError reports a failure to adapt a given macro, using syntax
// highlighting when the underlying error carries a source span.
func printPatternError(name string, err error) {
	if e, ok := err.(ast.Error); ok {
		printSyntaxError(e.SyntaxError)
	} else {
		fmt.Printf("%s: %s\n", name, err)
	}
}
