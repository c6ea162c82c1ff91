// Package diagnostic provides error reporting and diagnostic messages for
// the dtlc front end: parsing, name resolution, and type checking.
package diagnostic

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a diagnostic.
type Severity uint8

const (
	// Error prevents compilation from succeeding.
	Error Severity = iota
	// Warning is a non-blocking issue.
	Warning
	// Note provides additional context for another diagnostic.
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// Position is a source position. There is no byte-offset field: the
// front end never needs anything finer than line and column, and a node
// built without source text (a renamed binder, an inferred type) has no
// source text to offset into anyway.
type Position struct {
	Line   int // 1-based
	Column int // 1-based
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// RelatedInfo provides additional location information for a diagnostic,
// e.g. pointing back at the declaration a conflicting name shadows.
type RelatedInfo struct {
	Pos     Position
	Message string
}

// Diagnostic is a single diagnostic message.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Pos      Position
	Related  []RelatedInfo
}

// Error implements the error interface so a Diagnostic can be returned
// directly from a function that reports a single failure.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Severity, d.Message)
}

// Code identifies the class of a diagnostic, independent of its message
// text.
type Code string

const (
	// Lexing and parsing (E00xx).
	CodeUnexpectedToken    Code = "E0001"
	CodeUnterminatedString Code = "E0002"
	CodeInvalidNumber      Code = "E0003"

	// Name resolution (E01xx).
	CodeUndefinedSymbol Code = "E0100"
	CodeDuplicateSymbol Code = "E0101"
	CodeUseBeforeDecl   Code = "E0102"
	CodeCyclicTopLevels Code = "E0103"

	// Type checking (E02xx).
	CodeTypeMismatch      Code = "E0200"
	CodeInvalidOperand    Code = "E0201"
	CodeInvalidArgCount   Code = "E0202"
	CodeInvalidArgType    Code = "E0203"
	CodeNotCallable       Code = "E0204"
	CodeNoSuchMember      Code = "E0205"
	CodeMissingReturn     Code = "E0206"
	CodeNotAStructValue   Code = "E0207"
	CodeMissingField      Code = "E0208"
	CodeUnexpectedField   Code = "E0209"
	CodeNotAPointer       Code = "E0210"

	// Substitution (E03xx). CodeCaptureRefused is reported whenever
	// ast.Subst returns false: a Struct or Pack field name would have had
	// to be renamed to avoid capture, and field names are part of a
	// record type's public interface, so the rewrite is refused instead.
	CodeCaptureRefused Code = "E0300"
)

// List collects diagnostics produced over the course of processing one
// translation unit.
type List struct {
	diagnostics []Diagnostic
	hasErrors   bool
}

// NewList creates an empty diagnostic list.
func NewList() *List {
	return &List{}
}

// Add appends a diagnostic to the list.
func (l *List) Add(d Diagnostic) {
	l.diagnostics = append(l.diagnostics, d)
	if d.Severity == Error {
		l.hasErrors = true
	}
}

// AddError appends an error-severity diagnostic at pos.
func (l *List) AddError(pos Position, code Code, format string, args ...any) {
	l.Add(Diagnostic{
		Severity: Error,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
	})
}

// AddWarning appends a warning-severity diagnostic at pos.
func (l *List) AddWarning(pos Position, code Code, format string, args ...any) {
	l.Add(Diagnostic{
		Severity: Warning,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
	})
}

// HasErrors reports whether any error-severity diagnostic was added.
func (l *List) HasErrors() bool {
	return l.hasErrors
}

// Diagnostics returns every diagnostic added so far, in order.
func (l *List) Diagnostics() []Diagnostic {
	return l.diagnostics
}

// Errors returns only the error-severity diagnostics.
func (l *List) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range l.diagnostics {
		if d.Severity == Error {
			out = append(out, d)
		}
	}
	return out
}

// Count returns the total number of diagnostics.
func (l *List) Count() int {
	return len(l.diagnostics)
}

// Format renders every diagnostic as one line per message, related
// notes indented beneath it.
func (l *List) Format() string {
	if len(l.diagnostics) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, d := range l.diagnostics {
		sb.WriteString(formatOne(&d))
	}
	return sb.String()
}

func formatOne(d *Diagnostic) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s[%s]: %s\n", d.Pos, d.Severity, d.Code, d.Message))
	for _, rel := range d.Related {
		sb.WriteString(fmt.Sprintf("  %s: note: %s\n", rel.Pos, rel.Message))
	}
	return sb.String()
}

// Clear removes all diagnostics, leaving the list empty.
func (l *List) Clear() {
	l.diagnostics = l.diagnostics[:0]
	l.hasErrors = false
}
