//go:build mage

// Package main provides build targets for plainfit using Mage.
//
// Usage:
//
//	mage build      Compile the plainfit binary to bin/
//	mage test       Run all tests
//	mage cover      Run tests with a coverage profile
//	mage lint       Run golangci-lint
//	mage clean      Remove build artifacts
//	mage install    Install plainfit to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binLint    = "golangci-lint"
	binaryName = "plainfit"
	binaryDir  = "bin"
	cmdDir     = "./cmd/plainfit"
	coverFile  = "coverage.out"
)

// Build compiles the plainfit binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || version == "" {
		version = "dev"
	}
	return sh.RunV(binGo, "build", "-v",
		"-ldflags", "-X main.version="+version,
		"-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// Cover runs all tests and writes a coverage profile.
func Cover() error {
	return sh.RunV(binGo, "test", "-coverprofile="+coverFile, "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV(binLint, "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	if err := sh.Rm(coverFile); err != nil {
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
	return sh.Copy(filepath.Join(gopath, "bin", binaryName), filepath.Join(binaryDir, binaryName))
}
