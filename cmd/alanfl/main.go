// Command alanfl is the AlanFL interpreter's CLI driver: resolve a source
// file (local path or git clone), parse it, report diagnostics, and execute
// its entry function.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"alanfl/pkg/config"
	"alanfl/pkg/interpreter"
	"alanfl/pkg/parser"
	"alanfl/pkg/source"
)

const version = "alanfl 0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		return runEntry(nil)
	}

	switch args[0] {
	case "-version", "--version":
		fmt.Println(version)
		return 0
	case "-help", "--help":
		printUsage()
		return 0
	case "run":
		return runEntry(args[1:])
	case "check":
		return runCheck(args[1:])
	default:
		return runEntry(args)
	}
}

func printUsage() {
	fmt.Println(`usage:
  alanfl run <path>            parse + execute <path> (default verb)
  alanfl run -git <url> <ref>  clone <url>, check out <ref>, run its entry
  alanfl check <path>          parse only; print diagnostics; exit 0 iff none
  alanfl -version              print the CLI version string
  alanfl -help                 print this message`)
}

// resolveSource reads the program text named by args, either a local path
// or a `-git <url> <ref>` triple. It loads an alanfl.yml (next to a local
// path, or from the working directory for -git) when one is present and
// valid; only its `entry` field is used, as the default source file. The
// cache and precision fields are not applied.
func resolveSource(args []string) (text string, cfg *config.Config, exitCode int, ok bool) {
	cfg = config.Default()

	if len(args) >= 1 && args[0] == "-git" {
		if len(args) < 3 {
			fmt.Fprintln(os.Stderr, "alanfl: -git requires a <url> and a <ref>")
			return "", nil, 2, false
		}
		url, ref := args[1], args[2]
		cfgPath := "alanfl.yml"
		if loaded, err := config.Load(cfgPath); err == nil {
			cfg = loaded
		}
		entry := cfg.Entry
		if entry == "" {
			entry = "main.alan"
		}
		text, err := source.Git(url, ref, entry)
		if err != nil {
			fmt.Fprintf(os.Stderr, "alanfl: %v\n", err)
			return "", nil, 1, false
		}
		return text, cfg, 0, true
	}

	var path string
	if len(args) >= 1 {
		path = args[0]
	}

	dir := "."
	if path != "" {
		dir = filepath.Dir(path)
	}
	if loaded, err := config.Load(filepath.Join(dir, "alanfl.yml")); err == nil {
		cfg = loaded
	}
	if path == "" {
		path = cfg.Entry
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "alanfl: no source path given and no entry configured")
		return "", nil, 2, false
	}

	text, err := source.Local(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "alanfl: %v\n", err)
		return "", nil, 1, false
	}
	return text, cfg, 0, true
}

func runEntry(args []string) int {
	text, _, code, ok := resolveSource(args)
	if !ok {
		return code
	}

	module, diags := parser.Parse(text)
	if !diags.Empty() {
		diags.Dump(os.Stdout)
		return 1
	}

	vm := interpreter.New(os.Stdin, os.Stdout, os.Stderr)
	if err := vm.Exec(module); err != nil {
		fmt.Fprintf(os.Stderr, "alanfl: %v\n", err)
		return 1
	}
	return 0
}

func runCheck(args []string) int {
	text, _, code, ok := resolveSource(args)
	if !ok {
		return code
	}

	_, diags := parser.Parse(text)
	if diags.Empty() {
		return 0
	}
	diags.Dump(os.Stdout)
	return 1
}
