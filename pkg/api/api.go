// Package api provides the public API for dtlc: parsing, type checking,
// and pretty-printing a translation unit from a single entry point.
//
// This package is intended for programmatic use of the front end. For
// CLI usage, see cmd/dtlc.
package api

import (
	"codeberg.org/saruga/dtlc/internal/ast"
	"codeberg.org/saruga/dtlc/internal/diagnostic"
	"codeberg.org/saruga/dtlc/internal/parser"
	"codeberg.org/saruga/dtlc/internal/printer"
	"codeberg.org/saruga/dtlc/internal/symbol"
	"codeberg.org/saruga/dtlc/internal/typecheck"
)

// CheckOptions controls how Check processes source text.
type CheckOptions struct {
	// SkipTypeCheck parses only, without running the type checker over
	// the resulting translation unit. Useful for tools that just want
	// to round-trip source text through the pretty-printer.
	SkipTypeCheck bool
}

// CheckResult contains the outcome of processing one translation unit.
type CheckResult struct {
	// Unit is the parsed (and, unless skipped, type-checked)
	// translation unit. Nil if parsing itself failed.
	Unit *ast.TranslationUnit

	// Pretty is Unit pretty-printed back to source text, empty if
	// parsing failed.
	Pretty string

	// Diagnostics holds every diagnostic produced while type checking.
	// Empty when SkipTypeCheck is set or parsing failed before type
	// checking ran.
	Diagnostics []diagnostic.Diagnostic

	// Err is the parse error, if parsing itself failed. A failed type
	// check is reported through Diagnostics instead, not Err.
	Err error
}

// Ok reports whether source parsed and (unless skipped) type-checked
// without error.
func (r CheckResult) Ok() bool {
	if r.Err != nil {
		return false
	}
	for _, d := range r.Diagnostics {
		if d.Severity == diagnostic.Error {
			return false
		}
	}
	return true
}

// Check parses, optionally type-checks, and pretty-prints filename's
// source text using default options (type checking enabled).
func Check(filename, source string) CheckResult {
	return CheckWithOptions(filename, source, CheckOptions{})
}

// CheckWithOptions parses filename's source text and, unless
// opts.SkipTypeCheck is set, type-checks the resulting translation unit
// in dependency order before pretty-printing it.
func CheckWithOptions(filename, source string, opts CheckOptions) CheckResult {
	cst, err := parser.ParseString(filename, source)
	if err != nil {
		return CheckResult{Err: err}
	}

	reg := symbol.NewRegistry()
	unit, err := parser.Convert(reg, cst)
	if err != nil {
		return CheckResult{Err: err}
	}

	result := CheckResult{Unit: unit, Pretty: printer.Print(unit)}

	if !opts.SkipTypeCheck {
		diags := diagnostic.NewList()
		checker := typecheck.NewChecker(reg, diags)
		checker.CheckTranslationUnit(unit)
		result.Diagnostics = diags.Diagnostics()
	}

	return result
}

// PrettyPrint parses and pretty-prints source without type checking,
// for callers that only want a normalized rendering of valid syntax.
func PrettyPrint(filename, source string) (string, error) {
	cst, err := parser.ParseString(filename, source)
	if err != nil {
		return "", err
	}
	unit, err := parser.Convert(symbol.NewRegistry(), cst)
	if err != nil {
		return "", err
	}
	return printer.Print(unit), nil
}
