//go:build mage

// emmet-ls mage targets: build, dev, test, lint, install, etc.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target: build both binaries.
var Default = Build

// Build builds the language server and CLI binaries.
func Build() error {
	mg.Deps(BuildLSP, BuildCLI)
	return nil
}

// BuildLSP builds the LSP server binary.
func BuildLSP() error {
	return sh.RunV("go", "build", "-o", "emmet-ls", "./cmd/emmet-ls")
}

// BuildCLI builds the CLI binary.
func BuildCLI() error {
	return sh.RunV("go", "build", "-o", "emmet", "./cmd/emmet")
}

// Dev runs tests, vet, lint, then builds with race for both binaries.
func Dev() error {
	mg.Deps(Test, Vet, Lint)
	if err := sh.RunV("go", "build", "-race", "-o", "emmet-ls", "./cmd/emmet-ls"); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-race", "-o", "emmet", "./cmd/emmet")
}

// Run launches the LSP server via go run (useful during development).
func Run() error {
	mg.Deps(Dev)
	return sh.RunV("go", "run", "./cmd/emmet-ls", "--log", "")
}

// RunCLI expands a small sample through the CLI.
func RunCLI() error {
	mg.Deps(Dev)
	cmd := "printf 'ul>li.item$*3\\n' | go run ./cmd/emmet"
	return sh.RunV("bash", "-lc", cmd)
}

// Install copies built binaries to GOPATH/bin (defaults to ~/go/bin when GOPATH is unset).
func Install() error {
	mg.Deps(Build)
	gopath := os.Getenv("GOPATH")
	if gopath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home: %w", err)
		}
		gopath = filepath.Join(home, "go")
	}
	bin := filepath.Join(gopath, "bin")
	if err := os.MkdirAll(bin, 0o755); err != nil {
		return err
	}
	if err := sh.RunV("cp", "-v", "./emmet-ls", bin+"/"); err != nil {
		return err
	}
	return sh.RunV("cp", "-v", "./emmet", bin+"/")
}

// Test runs the test suite.
func Test() error {
	if err := sh.RunV("go", "clean", "-testcache"); err != nil {
		return err
	}
	return sh.RunV("go", "test", "-race", "./...")
}

// Vet runs go vet.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run")
}

// DevInstall installs helpful developer tools.
func DevInstall() error {
	if err := sh.RunV("go", "install", "golang.org/x/tools/gopls@latest"); err != nil {
		return err
	}
	return sh.RunV("go", "install", "github.com/golangci/golangci-lint/cmd/golangci-lint@latest")
}
