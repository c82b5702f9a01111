package compiler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arnavsurve/wcc/internal/compiler/ast"
	"github.com/arnavsurve/wcc/internal/compiler/diag"
	"github.com/arnavsurve/wcc/internal/compiler/emitter"
	"github.com/arnavsurve/wcc/internal/compiler/lexer"
	"github.com/arnavsurve/wcc/internal/compiler/parser"
	"github.com/arnavsurve/wcc/internal/compiler/scope"
)

// Result is everything one compilation produced.
type Result struct {
	C        string
	Function *ast.Function
	Scope    *scope.Scope
}

// SourceError is a compile error together with the source it refers to, so
// callers can render the offending line.
type SourceError struct {
	Path   string
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	var de *diag.Error
	if errors.As(e.Err, &de) && de.Line > 0 {
		return fmt.Sprintf("%s:%v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Compile translates src into C.
func Compile(src string) (*Result, error) {
	fn, sc, err := parseFunction(src)
	if err != nil {
		return nil, err
	}

	c, err := emitC(fn, sc)
	if err != nil {
		return nil, err
	}

	return &Result{C: c, Function: fn, Scope: sc}, nil
}

// CompileAndWrite compiles the file at srcPath and writes the C output to
// outPath. The output only appears once compilation has succeeded; on any
// error outPath is left as it was.
func CompileAndWrite(srcPath, outPath string) (*Result, error) {
	content, err := readSource(srcPath)
	if err != nil {
		return nil, fmt.Errorf("opening input file %q: %w", srcPath, err)
	}

	tmp, err := createOutput(outPath)
	if err != nil {
		return nil, fmt.Errorf("opening output file %q: %w", outPath, err)
	}

	res, err := Compile(content)
	if err != nil {
		discard(tmp)
		return nil, &SourceError{Path: srcPath, Source: content, Err: err}
	}

	if err := writeOutput(tmp, res.C, outPath); err != nil {
		return nil, fmt.Errorf("writing output file %q: %w", outPath, err)
	}
	return res, nil
}

func readSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	return string(b), err
}

func parseFunction(src string) (*ast.Function, *scope.Scope, error) {
	lex := lexer.NewLexer(src)
	p := parser.NewParser(lex)
	fn, err := p.ParseFunction()
	if err != nil {
		return nil, nil, err
	}
	return fn, p.Scope(), nil
}

func emitC(fn *ast.Function, sc *scope.Scope) (string, error) {
	em := emitter.NewEmitter(sc)
	return em.Emit(fn)
}

// createOutput opens a temporary file next to outPath so the final rename
// stays on one filesystem.
func createOutput(outPath string) (*os.File, error) {
	return os.CreateTemp(filepath.Dir(outPath), "."+filepath.Base(outPath)+".*.tmp")
}

func discard(tmp *os.File) {
	tmp.Close()
	os.Remove(tmp.Name())
}

func writeOutput(tmp *os.File, c, outPath string) error {
	if _, err := tmp.WriteString(c); err != nil {
		discard(tmp)
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		discard(tmp)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
