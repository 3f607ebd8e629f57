// Package arch_test checks neo's package structure: which internal packages
// may import which, where the database contracts live, and that the core
// packages document their exported API.
package arch_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

const internalPrefix = "github.com/papapumpkin/neo/internal/"

// internalDir returns the absolute path of internal/, located relative to
// this file.
func internalDir(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	return filepath.Dir(filepath.Dir(thisFile))
}

// parsePackage parses the non-test Go files of internal/<pkg>.
func parsePackage(t *testing.T, pkg string) []*ast.File {
	t.Helper()
	dir := filepath.Join(internalDir(t), pkg)
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading %s: %v", dir, err)
	}

	fset := token.NewFileSet()
	var files []*ast.File
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			t.Fatalf("parsing %s: %v", name, err)
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		t.Fatalf("internal/%s has no Go files", pkg)
	}
	return files
}

// imports returns the import paths of a package, split into neo internal
// package names and everything else.
func imports(t *testing.T, pkg string) (internal, external []string) {
	t.Helper()
	seen := make(map[string]bool)
	for _, f := range parsePackage(t, pkg) {
		for _, spec := range f.Imports {
			path, err := strconv.Unquote(spec.Path.Value)
			if err != nil || seen[path] {
				continue
			}
			seen[path] = true
			if name, ok := strings.CutPrefix(path, internalPrefix); ok {
				internal = append(internal, name)
			} else {
				external = append(external, path)
			}
		}
	}
	return internal, external
}

// packages lists the directories under internal/ other than this one.
func packages(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(internalDir(t))
	if err != nil {
		t.Fatalf("reading internal/: %v", err)
	}
	var pkgs []string
	for _, e := range entries {
		if e.IsDir() && e.Name() != "arch_test" {
			pkgs = append(pkgs, e.Name())
		}
	}
	return pkgs
}
