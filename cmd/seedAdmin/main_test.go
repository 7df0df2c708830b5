package main

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestResolveMigrationsDir(t *testing.T) {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	cmdDir := filepath.Dir(file)
	repoRoot := filepath.Clean(filepath.Join(cmdDir, "..", ".."))

	cases := map[string]string{
		"from repo root":     repoRoot,
		"from cmd/seedAdmin": cmdDir,
	}
	for name, workDir := range cases {
		t.Run(name, func(t *testing.T) {
			restoreWorkingDir(t)
			if err := os.Chdir(workDir); err != nil {
				t.Fatalf("chdir to %s: %v", workDir, err)
			}

			dir, err := resolveMigrationsDir()
			if err != nil {
				t.Fatalf("resolve migrations dir: %v", err)
			}
			info, err := os.Stat(dir)
			if err != nil {
				t.Fatalf("stat migrations dir: %v", err)
			}
			if !info.IsDir() {
				t.Fatalf("expected directory, got file: %s", dir)
			}
			if !strings.HasSuffix(filepath.ToSlash(dir), "infrastructure/sqlite/migrations") {
				t.Fatalf("unexpected migrations path: %s", dir)
			}
		})
	}
}

func restoreWorkingDir(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
}
