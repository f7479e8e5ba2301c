// Package testutil provides shared test infrastructure for the keepaway engine.
// It consolidates golden dataset types used across sim/ and cmd/ tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one notes file run under one policy for a fixed round count.
type GoldenTestCase struct {
	Name           string   `json:"name"`
	Notes          string   `json:"notes"` // file name under testdata/
	Policy         string   `json:"policy"`
	Rounds         int      `json:"rounds"`
	Inspections    []uint64 `json:"inspections"`
	MonkeyBusiness uint64   `json:"monkey_business"`
}

// TestdataDir returns the repo-root testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func TestdataDir(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata")
}

// NotesPath returns the path of a notes fixture under testdata/.
func NotesPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(TestdataDir(t), name)
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	path := filepath.Join(TestdataDir(t), "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}
