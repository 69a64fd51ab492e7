package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ana-coahuila/META-FIT-PROJECT/internal/app"
)

func TestEnsureDBDirCreatesParents(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "dir", "metafit.db")
	if err := app.EnsureDBDir(path); err != nil {
		t.Fatalf("ensure db dir: %v", err)
	}
	info, err := os.Stat(filepath.Dir(path))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory to exist: %v", err)
	}
}

func TestDefaultDBPathUsesAppDir(t *testing.T) {
	path, err := app.DefaultDBPath()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	if filepath.Base(path) != "metafit.db" || filepath.Base(filepath.Dir(path)) != "metafit" {
		t.Fatalf("unexpected default path %q", path)
	}
}
