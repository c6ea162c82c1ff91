// Package test collects small assertion helpers shared by dtlc's test
// files, in place of a third-party assertion library (see DESIGN.md):
// an equality check for comparable values, a diffing variant for the
// multi-line source text the printer and parser tests compare, and a
// Suite wrapper for grouping related subtests.
package test

import (
	"fmt"
	"strings"
	"testing"
)

// AssertEqual fails t, without stopping the calling test, when actual
// and expected differ.
func AssertEqual[T comparable](t *testing.T, actual, expected T) {
	t.Helper()
	if actual == expected {
		return
	}
	t.Errorf("\nexpected: %v\nactual:   %v", expected, actual)
}

// AssertEqualWithDiff is AssertEqual specialized to multi-line strings:
// on mismatch it reports a line-by-line diff instead of the two values
// in full, which is far more readable for the printer's output.
func AssertEqualWithDiff(t *testing.T, actual, expected string) {
	t.Helper()
	if actual == expected {
		return
	}
	t.Errorf("\n%s", Diff(expected, actual))
}

// Diff renders a unified-style line-by-line comparison of expected
// against actual. It is intentionally not an LCS-based diff: source
// text under test rarely has lines inserted or removed mid-stream, so a
// position-by-position comparison reads just as clearly and is far
// simpler.
func Diff(expected, actual string) string {
	expLines := strings.Split(expected, "\n")
	actLines := strings.Split(actual, "\n")

	n := len(expLines)
	if len(actLines) > n {
		n = len(actLines)
	}

	var out strings.Builder
	out.WriteString("--- expected\n+++ actual\n")
	for i := 0; i < n; i++ {
		var exp, act string
		haveExp := i < len(expLines)
		haveAct := i < len(actLines)
		if haveExp {
			exp = expLines[i]
		}
		if haveAct {
			act = actLines[i]
		}
		if exp == act {
			fmt.Fprintf(&out, " %s\n", exp)
			continue
		}
		if haveExp {
			fmt.Fprintf(&out, "-%s\n", exp)
		}
		if haveAct {
			fmt.Fprintf(&out, "+%s\n", act)
		}
	}
	return out.String()
}

// MarkFailure fails t with a formatted message, attributing the
// failure to the caller rather than to this helper.
func MarkFailure(t *testing.T, format string, args ...any) {
	t.Helper()
	t.Errorf(format, args...)
}

// Suite groups a set of related subtests under a shared *testing.T.
type Suite struct {
	t *testing.T
}

// NewSuite creates a Suite that runs its subtests under t.
func NewSuite(t *testing.T) *Suite {
	return &Suite{t: t}
}

// Run runs fn as a subtest named name.
func (s *Suite) Run(name string, fn func(t *testing.T)) {
	s.t.Run(name, fn)
}
