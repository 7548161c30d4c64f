package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/consensys/bavard"
)

const copyrightHolder = "Consensys Software Inc."

//go:generate go run main.go
func main() {
	bgen := bavard.NewBatchGenerator(copyrightHolder, 2025, "go-remex")

	cfg := builtinConfig{Engines: engines}

	assertNoError(bgen.Generate(cfg, "dialect", "templates",
		bavard.Entry{
			File:      "../../pkg/dialect/builtin_gen.go",
			Templates: []string{"builtins.go.tmpl"},
			BuildTag:  "",
		},
	), "for builtin profiles")

	// run gofmt on whole directory
	runCmd("gofmt", "-w", "../../pkg/dialect")
}

func runCmd(name string, arg ...string) {
	fmt.Println(name, strings.Join(arg, " "))
	cmd := exec.Command(name, arg...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	assertNoError(cmd.Run(), "")
}

type builtinConfig struct {
	Engines []engineSpec
}

// engineSpec describes the capability profile of one well-known regex engine.
type engineSpec struct {
	// Name under which the profile is published.
	Name string
	// Comment describing the engine (and any capability caveats).
	Comment string
	// The four capability options.
	NamedCaptures       bool
	DuplicateNames      bool
	VariableLookbehind  bool
	ExplicitCaptureOnly bool
}

var engines = []engineSpec{
	{
		Name:          "re2",
		Comment:       "RE2 and the Go regexp package; no lookbehind of any kind.",
		NamedCaptures: true,
	},
	{
		Name:          "pcre2",
		Comment:       "PCRE2 with default options; lookbehind branches must be fixed-length.",
		NamedCaptures: true,
	},
	{
		Name:               "dotnet",
		Comment:            ".NET System.Text.RegularExpressions with default options.",
		NamedCaptures:      true,
		DuplicateNames:     true,
		VariableLookbehind: true,
	},
	{
		Name:                "dotnet-explicit",
		Comment:             ".NET with RegexOptions.ExplicitCapture.",
		NamedCaptures:       true,
		DuplicateNames:      true,
		VariableLookbehind:  true,
		ExplicitCaptureOnly: true,
	},
	{
		Name:               "ecmascript",
		Comment:            "ECMAScript 2018 and later.",
		NamedCaptures:      true,
		VariableLookbehind: true,
	},
	{
		Name:          "python",
		Comment:       "Python re module; lookbehind must be fixed-width.",
		NamedCaptures: true,
	},
	{
		Name:          "java",
		Comment:       "java.util.regex; lookbehind must have an obvious maximum length.",
		NamedCaptures: true,
	},
	{
		Name:    "posix",
		Comment: "POSIX extended regular expressions; no named groups, no lookaround.",
	},
}

func assertNoError(err error, format string, args ...any) {
	if err != nil {
		msg := fmt.Sprintf(format, args...)
		fmt.Printf("%s: %s\n", msg, err.Error())
		os.Exit(1)
	}
}
