//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// e2eVersion is stamped into the binary so tests can tell it apart
const e2eVersion = "e2e"

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "lookout-e2e-")
	if err != nil {
		fmt.Printf("Failed to create build directory: %v\n", err)
		os.Exit(1)
	}
	binPath = filepath.Join(dir, "lookout_e2e")

	fmt.Println("Building lookout for e2e tests...")
	cmd := exec.Command("go", "build",
		"-ldflags", "-X lookout/cmd.Version="+e2eVersion,
		"-o", binPath, ".")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Printf("Failed to build test binary: %v\n", err)
		os.RemoveAll(dir)
		os.Exit(1)
	}

	code := m.Run()

	os.RemoveAll(dir)
	os.Exit(code)
}
