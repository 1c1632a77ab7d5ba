package loader

import (
	"bytes"
	"fmt"
	"go/build"
	"os/exec"
	"path/filepath"
	"strings"
)

// getPkgName resolves the import path of the package in dir.
func getPkgName(dir string) (string, error) {
	cmd := exec.Command("go", "list", "-f={{.ImportPath}}")
	cmd.Dir = dir

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err == nil {
		importPath, _, _ := strings.Cut(strings.TrimSpace(stdout.String()), "\n")
		// GOPATH mode reports local directories as _/abs/path
		if strings.HasPrefix(importPath, "_") {
			importPath = strings.TrimPrefix(importPath, "_"+build.Default.GOPATH+"/src/")
		}
		if importPath != "" {
			return importPath, nil
		}
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	pkg, err := build.ImportDir(abs, build.ImportComment)
	if err != nil {
		return "", fmt.Errorf("resolve package name of %s: %w", dir, err)
	}
	return pkg.ImportPath, nil
}
