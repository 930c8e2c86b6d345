// Package compiler wires the lexer, parser, and emitter into a single
// source-to-assembly pass and, unless told otherwise, hands the result
// off to an external Jasmin-compatible assembler.
package compiler

import (
	"bytes"
	"log"
	"os"
	"os/exec"
	"time"

	"github.com/pkg/errors"

	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/diag"
	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/lexer"
	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/parser"
)

// Config holds the knobs an Option can set.
type Config struct {
	MaxIDLength  int
	OutDir       string
	SkipAssemble bool
	JasminJar    string // path to the assembler jar; required unless SkipAssemble
}

// Option configures a Config; grounded on the teacher's vm.Option shape
// (func(*Instance) error), generalized here to a compile-time config.
type Option func(*Config) error

// WithMaxIDLength overrides MAX_ID_LENGTH (spec.md §4.1).
func WithMaxIDLength(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return errors.Errorf("compiler: invalid -idlen %d", n)
		}
		c.MaxIDLength = n
		return nil
	}
}

// WithOutDir sets the directory the generated ".j" file is written to.
func WithOutDir(dir string) Option {
	return func(c *Config) error {
		c.OutDir = dir
		return nil
	}
}

// SkipAssembler disables invoking the external assembler; only the
// ".j" file is produced.
func SkipAssembler() Option {
	return func(c *Config) error {
		c.SkipAssemble = true
		return nil
	}
}

// Result describes what a successful Compile produced.
type Result struct {
	JPath     string // the generated ".j" file
	Assembled bool   // whether the external assembler ran
}

// Compile reads SIMPL-2021 source from src, type-checks and lowers it,
// writes the resulting assembly, and (unless SkipAssembler was given)
// invokes the assembler named by the JASMIN_JAR environment variable.
// Any *diag.Diagnostic returned is either a fault in the program or the
// missing JASMIN_JAR environment variable; any other error is an invalid
// option, an I/O failure, or an assembler failure.
func Compile(src []byte, opts ...Option) (Result, error) {
	cfg := Config{MaxIDLength: lexer.DefaultMaxIDLength}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return Result{}, err
		}
	}
	if !cfg.SkipAssemble {
		jar, ok := os.LookupEnv("JASMIN_JAR")
		if !ok {
			return Result{}, diag.MissingJasminJar()
		}
		cfg.JasminJar = jar
	}

	lx, err := lexer.New(bytes.NewReader(src), cfg.MaxIDLength)
	if err != nil {
		return Result{}, err
	}
	em, err := parser.Parse(lx)
	if err != nil {
		return Result{}, err
	}

	path, err := em.Serialize(cfg.OutDir)
	if err != nil {
		return Result{}, err
	}
	res := Result{JPath: path}

	if cfg.SkipAssemble {
		return res, nil
	}

	cmd := exec.Command("java", "-jar", cfg.JasminJar, path, "-d", cfg.OutDir)
	if cfg.OutDir == "" {
		cmd = exec.Command("java", "-jar", cfg.JasminJar, path)
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	log.Printf("simplc: invoking assembler %s on %s", cfg.JasminJar, path)
	start := time.Now()
	err = cmd.Run()
	elapsed := time.Since(start)
	if err != nil {
		return res, errors.Wrap(err, "compiler: running assembler")
	}
	log.Printf("simplc: assembled %s in %s", path, elapsed)
	res.Assembled = true
	return res, nil
}
