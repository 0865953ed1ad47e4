package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// getBinaryPath returns the path to the resume_checker binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "resume_checker"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/resume_checker ./cmd/resume_checker'", binaryPath)
	}

	return binaryPath
}

// runCLI runs the binary with a clean RESUME_CHECKER environment
func runCLI(t *testing.T, args ...string) (string, error) {
	cmd := exec.Command(getBinaryPath(t), args...)
	cmd.Env = append(os.Environ(), "DATABASE_URL=", "RESUME_CHECKER_DATABASE_URL=", "RESUME_CHECKER_JOBS_FILE=")
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// assertExitCode checks the exit code of a failed command
func assertExitCode(t *testing.T, err error, code int) {
	t.Helper()
	if exitError, ok := err.(*exec.ExitError); ok {
		assert.Equal(t, code, exitError.ExitCode())
	}
}
