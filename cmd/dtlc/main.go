// Command dtlc parses and type-checks dtlc source code.
//
// Usage:
//
//	dtlc [options] <input.dtlc>
//	cat input.dtlc | dtlc [options]
//
// Options:
//
//	-o <file>         Write the pretty-printed translation unit to file (default: stdout)
//	--no-typecheck    Parse and pretty-print only, skip type checking
//	--version         Print version and exit
//	--help            Print help and exit
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"codeberg.org/saruga/dtlc/pkg/api"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		outputFile  string
		noTypeCheck bool
		showVersion bool
		showHelp    bool
	)

	flag.StringVar(&outputFile, "o", "", "Write output to `file`")
	flag.BoolVar(&noTypeCheck, "no-typecheck", false, "Parse and pretty-print only, skip type checking")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.BoolVar(&showHelp, "help", false, "Print help and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "dtlc v%s\n\n", version)
		fmt.Fprintf(os.Stderr, "Usage: dtlc [options] <input.dtlc>\n")
		fmt.Fprintf(os.Stderr, "       cat input.dtlc | dtlc [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  dtlc prog.dtlc\n")
		fmt.Fprintf(os.Stderr, "  cat prog.dtlc | dtlc -o prog.out.dtlc\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		return nil
	}

	if showVersion {
		fmt.Printf("dtlc v%s (%s)\n", version, commit)
		return nil
	}

	filename := "<stdin>"
	var source []byte
	var err error

	if flag.NArg() > 0 {
		filename = flag.Arg(0)
		source, err = os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			flag.Usage()
			return fmt.Errorf("no input file specified")
		}
		source, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	result := api.CheckWithOptions(filename, string(source), api.CheckOptions{SkipTypeCheck: noTypeCheck})
	if result.Err != nil {
		return fmt.Errorf("%w", result.Err)
	}

	for _, d := range result.Diagnostics {
		fmt.Fprintln(os.Stderr, d.Error())
	}
	if !result.Ok() {
		return fmt.Errorf("type checking failed with errors")
	}

	var output io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	_, err = io.WriteString(output, result.Pretty)
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}
