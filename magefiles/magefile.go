//go:build mage

// Package main provides build targets for the frontdesk project using Mage.
//
// Usage:
//
//	mage build        Compile the frontdesk binary to bin/
//	mage test:all     Run every package test
//	mage test:race    Run every package test with the race detector
//	mage test:cover   Write a coverage profile to bin/coverage.out
//	mage lint         Run gofmt and golangci-lint
//	mage clean        Remove build artifacts
//	mage install      Install frontdesk to GOPATH/bin
//	mage seed         Initialize a local data directory under bin/
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binLint    = "golangci-lint"
	binaryName = "frontdesk"
	binaryDir  = "bin"
	cmdDir     = "./cmd/frontdesk"
)

// Build compiles the frontdesk binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test groups the test targets.
type Test mg.Namespace

// All runs every package test.
func (Test) All() error {
	return sh.RunV(binGo, "test", "./...")
}

// Race runs every package test with the race detector.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Cover writes a coverage profile and prints the per-function summary.
func (Test) Cover() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	profile := filepath.Join(binaryDir, "coverage.out")
	if err := sh.RunV(binGo, "test", "-coverprofile", profile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func", profile)
}

// Lint fails on unformatted files, then runs golangci-lint.
func Lint() error {
	out, err := sh.Output("gofmt", "-l", "cmd", "internal", "pkg", "magefiles")
	if err != nil {
		return err
	}
	if out = strings.TrimSpace(out); out != "" {
		return fmt.Errorf("unformatted files:\n%s", out)
	}
	return sh.RunV(binLint, "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	if gopath == "" {
		return errors.New("GOPATH is empty")
	}
	return sh.Copy(filepath.Join(gopath, "bin", binaryName), filepath.Join(binaryDir, binaryName))
}

// Seed initializes a throwaway config and data directory under bin/ for
// trying the CLI by hand.
func Seed() error {
	mg.Deps(Build)
	bin := filepath.Join(binaryDir, binaryName)
	return sh.RunV(bin,
		"--config-dir", filepath.Join(binaryDir, "config"),
		"--data-dir", filepath.Join(binaryDir, "data"),
		"init")
}
