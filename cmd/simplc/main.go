// Command simplc compiles a single SIMPL-2021 source file to Jasmin
// assembly and, unless -S is given, assembles it into a JVM class file.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/compiler"
	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/diag"
	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/lexer"
)

var (
	flagSkip   bool
	flagOutDir string
	flagIDLen  int
)

func init() {
	flag.BoolVar(&flagSkip, "S", false, "emit the .j file but skip invoking the external assembler")
	flag.StringVar(&flagOutDir, "o", "", "directory to write the generated .j file into (default: alongside the source file)")
	flag.IntVar(&flagIDLen, "idlen", lexer.DefaultMaxIDLength, "override MAX_ID_LENGTH")
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: simplc [-S] [-o dir] [-idlen n] <source-file>")
	flag.PrintDefaults()
}

func main() {
	os.Exit(run())
}

// run does the actual work and returns a process exit code; main only
// translates that into os.Exit so deferred cleanup here always runs.
func run() int {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		usage()
		return 2
	}
	srcPath := args[0]

	src, err := os.ReadFile(srcPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "simplc: reading source"))
		return 1
	}

	outDir := flagOutDir
	if outDir == "" {
		outDir = filepath.Dir(srcPath)
	}

	opts := []compiler.Option{
		compiler.WithOutDir(outDir),
		compiler.WithMaxIDLength(flagIDLen),
	}
	if flagSkip {
		opts = append(opts, compiler.SkipAssembler())
	}

	res, err := compiler.Compile(src, opts...)
	if err != nil {
		if d, ok := err.(*diag.Diagnostic); ok {
			fmt.Fprintln(os.Stderr, d.WithSource(srcPath))
		} else {
			fmt.Fprintln(os.Stderr, errors.Wrap(err, "simplc"))
		}
		return 1
	}

	if res.Assembled {
		fmt.Printf("simplc: wrote and assembled %s\n", res.JPath)
	} else {
		fmt.Printf("simplc: wrote %s (assembler skipped)\n", res.JPath)
	}
	return 0
}
