package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"reed/interpreter-go/pkg/ast"
	"reed/interpreter-go/pkg/driver"
	"reed/interpreter-go/pkg/interpreter"
	"reed/interpreter-go/pkg/resolver"
)

const cliToolVersion = "reed-cli 0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(args[1:])
	case "deps":
		return runDeps(args[1:])
	default:
		return runEntry(args)
	}
}

func runEntry(args []string) int {
	var path string
	switch len(args) {
	case 0:
		manifestPath, err := driver.FindManifest(".")
		if err != nil {
			fmt.Fprintf(os.Stderr, "reed run requires a program file or a %s with an entry\n", driver.ManifestFileName)
			return 1
		}
		manifest, err := driver.LoadManifest(manifestPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
			return 1
		}
		path, err = manifest.EntryPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
	case 1:
		path = args[0]
	default:
		fmt.Fprintln(os.Stderr, "reed run accepts at most one program file")
		return 1
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", path, err)
		return 1
	}
	module, err := ast.DecodeModule(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	diagnostics := resolver.New().ResolveModule(module)
	if len(diagnostics) > 0 {
		for _, diag := range diagnostics {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, diag.Message())
		}
		return 1
	}

	interp := interpreter.New()
	_, status, err := interp.EvaluateModule(module)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return 1
	}
	return status
}

func runDeps(args []string) int {
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "reed deps takes no arguments")
		return 1
	}
	manifestPath, err := driver.FindManifest(".")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "reed deps requires a %s\n", driver.ManifestFileName)
			return 1
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
		return 1
	}

	cacheDir, err := dependencyCacheDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	fetcher := newGitFetcher(cacheDir)

	lock := &driver.Lockfile{}
	for name, spec := range manifest.Dependencies {
		locked, err := fetchDependency(fetcher, manifestPath, name, spec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dependency %q: %v\n", name, err)
			return 1
		}
		lock.Packages = append(lock.Packages, *locked)
	}
	if err := lock.Save(manifestPath); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "locked %d package(s)\n", len(lock.Packages))
	return 0
}

func dependencyCacheDir() (string, error) {
	if dir := os.Getenv("REED_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate a dependency cache: %w", err)
	}
	return filepath.Join(home, ".reed"), nil
}
