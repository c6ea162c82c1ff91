package api

import "testing"

func TestCheckAcceptsValidSource(t *testing.T) {
	result := Check("ok.dtlc", "u32 double(u32 n) { return n + n; }")
	if result.Err != nil {
		t.Fatalf("unexpected parse error: %v", result.Err)
	}
	if !result.Ok() {
		t.Fatalf("expected a well-typed program to report Ok, diagnostics: %v", result.Diagnostics)
	}
	if result.Pretty == "" {
		t.Fatalf("expected a non-empty pretty-printed rendering")
	}
}

func TestCheckReportsParseError(t *testing.T) {
	result := Check("bad.dtlc", "not a valid top level $$$")
	if result.Err == nil {
		t.Fatalf("expected a parse error")
	}
	if result.Ok() {
		t.Fatalf("expected a parse failure to report not-Ok")
	}
}

func TestCheckReportsTypeMismatch(t *testing.T) {
	result := Check("mismatch.dtlc", "u32 bad() { return true; }")
	if result.Err != nil {
		t.Fatalf("unexpected parse error: %v", result.Err)
	}
	if result.Ok() {
		t.Fatalf("expected a type mismatch to report not-Ok")
	}
	if len(result.Diagnostics) == 0 {
		t.Fatalf("expected at least one diagnostic for the type mismatch")
	}
}

func TestCheckWithOptionsSkipsTypeCheck(t *testing.T) {
	result := CheckWithOptions("mismatch.dtlc", "u32 bad() { return true; }", CheckOptions{SkipTypeCheck: true})
	if result.Err != nil {
		t.Fatalf("unexpected parse error: %v", result.Err)
	}
	if len(result.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics when type checking is skipped, got %v", result.Diagnostics)
	}
	if !result.Ok() {
		t.Fatalf("expected Ok to hold when type checking was skipped regardless of the underlying type error")
	}
}

func TestPrettyPrintRoundTripsValidSource(t *testing.T) {
	pretty, err := PrettyPrint("ok.dtlc", "u32 double(u32 n) { return n + n; }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pretty == "" {
		t.Fatalf("expected non-empty pretty-printed output")
	}
}

func TestPrettyPrintPropagatesParseError(t *testing.T) {
	if _, err := PrettyPrint("bad.dtlc", "not a valid top level $$$"); err == nil {
		t.Fatalf("expected a parse error to be propagated")
	}
}
