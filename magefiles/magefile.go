//go:build mage

// Package main contains Mage build targets for pdf2pptx.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir     = "bin"
	fixtureDir = "testdata"
)

var commands = map[string]string{
	"pdf2pptx":     "./cmd/pdf2pptx",
	"pdf2pptx-mcp": "./cmd/pdf2pptx-mcp",
}

// Build compiles the CLI and the MCP server into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	for name, pkg := range commands {
		out := filepath.Join(binDir, name)
		if err := sh.RunV("go", "build", "-o", out, pkg); err != nil {
			return fmt.Errorf("go build %s: %w", pkg, err)
		}
		fmt.Printf("Built %s\n", out)
	}
	return nil
}

// Test runs every ginkgo suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Fixture writes sample PDFs into testdata/.
func Fixture() error {
	mg.Deps(Build)

	if err := os.MkdirAll(fixtureDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", fixtureDir, err)
	}
	bin := filepath.Join(binDir, "pdf2pptx")
	if err := sh.RunV(bin, "fixture", filepath.Join(fixtureDir, "hello.pdf")); err != nil {
		return err
	}
	return sh.RunV(bin, "fixture", "--image", filepath.Join(fixtureDir, "hello-image.pdf"))
}

// Clean removes build output and generated fixtures.
func Clean() error {
	for _, dir := range []string{binDir, fixtureDir} {
		if err := sh.Rm(dir); err != nil {
			return err
		}
	}
	return nil
}
