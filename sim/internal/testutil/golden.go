// Package testutil provides shared test infrastructure for the gatesim
// packages: golden test cases under testdata/cases and trace assertions.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gatesim/gatesim/sim/trace"
)

// Golden trace file names inside a golden case directory.
const (
	ExpectedZeroDelay = "expected_saida0.csv"
	ExpectedUnitDelay = "expected_saida1.csv"
)

// GoldenCasesDir returns the absolute path of testdata/cases.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func GoldenCasesDir(t *testing.T) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "cases")
}

// GoldenCaseNames lists the golden cases.
func GoldenCaseNames(t *testing.T) []string {
	t.Helper()

	entries, err := os.ReadDir(GoldenCasesDir(t))
	if err != nil {
		t.Fatalf("Failed to list golden cases: %v", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}

// CopyCase copies the golden case name into dst/name and returns that
// directory, so simulations can write their traces without touching testdata.
func CopyCase(t *testing.T, dst, name string) string {
	t.Helper()

	src := filepath.Join(GoldenCasesDir(t), name)
	dir := filepath.Join(dst, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("Failed to create %s: %v", dir, err)
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		t.Fatalf("Failed to read golden case %s: %v", name, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(src, e.Name()))
		if err != nil {
			t.Fatalf("Failed to read %s: %v", e.Name(), err)
		}
		if err := os.WriteFile(filepath.Join(dir, e.Name()), data, 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", e.Name(), err)
		}
	}
	return dir
}

// LoadTrace reads a CSV trace or fails the test.
func LoadTrace(t *testing.T, path string) *trace.SimulationTrace {
	t.Helper()

	st, err := trace.LoadCSV(path)
	if err != nil {
		t.Fatalf("Failed to load trace %s: %v", path, err)
	}
	return st
}

// AssertTraceEqual compares header and rows of two traces, reporting the
// first differing row.
func AssertTraceEqual(t *testing.T, name string, want, got *trace.SimulationTrace) {
	t.Helper()

	if len(want.Nets) != len(got.Nets) {
		t.Errorf("%s: got nets %v, want %v", name, got.Nets, want.Nets)
		return
	}
	for i := range want.Nets {
		if want.Nets[i] != got.Nets[i] {
			t.Errorf("%s: got nets %v, want %v", name, got.Nets, want.Nets)
			return
		}
	}
	if len(want.Rows) != len(got.Rows) {
		t.Errorf("%s: got %d rows, want %d", name, len(got.Rows), len(want.Rows))
	}
	for i := 0; i < len(want.Rows) && i < len(got.Rows); i++ {
		w, g := want.Rows[i], got.Rows[i]
		if w.Time != g.Time || string(w.Values) != string(g.Values) {
			t.Errorf("%s: row %d: got t=%d %v, want t=%d %v", name, i, g.Time, g.Values, w.Time, w.Values)
			return
		}
	}
}
