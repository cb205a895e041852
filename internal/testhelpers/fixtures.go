package testhelpers

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

var (
	_, b, _, _   = runtime.Caller(0)
	testDataPath = filepath.Join(filepath.Dir(b), "..", "..", "testdata")
)

// TestDataPath returns the absolute path of a file in the repository testdata directory.
func TestDataPath(parts ...string) string {
	return filepath.Join(append([]string{testDataPath}, parts...)...)
}

// ReadFixture returns the contents of a testdata file and fails the test if it cannot be read.
func ReadFixture(t *testing.T, parts ...string) string {
	t.Helper()

	data, err := os.ReadFile(TestDataPath(parts...))
	if err != nil {
		t.Fatalf("Error reading fixture %v: %v", parts, err)
	}
	return string(data)
}
