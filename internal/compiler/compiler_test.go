package compiler_test

import (
	"os"
	"strings"
	"testing"

	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/compiler"
	"github.com/chrislangeveldt/2nd-year-Compiler-simpl/internal/diag"
)

func TestCompileSkipAssembler(t *testing.T) {
	dir := t.TempDir()
	res, err := compiler.Compile([]byte(`program Hi begin write "hello" end`),
		compiler.WithOutDir(dir), compiler.SkipAssembler())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if res.Assembled {
		t.Error("Assembled = true, want false with SkipAssembler")
	}
	data, err := os.ReadFile(res.JPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("generated assembly missing source string literal:\n%s", data)
	}
}

func TestCompileMissingJasminJar(t *testing.T) {
	os.Unsetenv("JASMIN_JAR")
	dir := t.TempDir()
	_, err := compiler.Compile([]byte(`program Hi begin write "hello" end`), compiler.WithOutDir(dir))
	if err == nil {
		t.Fatal("expected an error when JASMIN_JAR is unset")
	}
	if _, ok := err.(*diag.Diagnostic); !ok {
		t.Errorf("error is %T, want *diag.Diagnostic", err)
	}
}

func TestCompilePropagatesDiagnostic(t *testing.T) {
	dir := t.TempDir()
	_, err := compiler.Compile([]byte(`program D begin integer x, x; end`),
		compiler.WithOutDir(dir), compiler.SkipAssembler())
	if err == nil {
		t.Fatal("expected a diagnostic for duplicate variable")
	}
	if !strings.Contains(err.Error(), "multiple definition of 'x'") {
		t.Errorf("error = %v, want multiple-definition message", err)
	}
}

func TestWithMaxIDLengthRejectsNonPositive(t *testing.T) {
	_, err := compiler.Compile([]byte(`program Hi begin write "hi" end`), compiler.WithMaxIDLength(0))
	if err == nil {
		t.Fatal("expected an error for -idlen 0")
	}
}
