package metafit

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// execute runs the root command in-process with fresh flag values.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestRootHelp(t *testing.T) {
	out, _, err := execute(t, "", "--help")
	if err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	for _, want := range []string{"login", "profile", "plan", "meals", "exercises"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in help output:\n%s", want, out)
		}
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metafit.db")
	for i := 0; i < 2; i++ {
		out, _, err := execute(t, "", "--db", path, "init")
		if err != nil {
			t.Fatalf("init run %d failed: %v", i+1, err)
		}
		if !strings.Contains(out, path) {
			t.Fatalf("expected db path in output, got %q", out)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "metafit dev") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestConfigSetGetUnset(t *testing.T) {
	db := filepath.Join(t.TempDir(), "metafit.db")

	if _, _, err := execute(t, "", "--db", db, "config", "set", "locale", "es-MX"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, _, err := execute(t, "", "--db", db, "config", "get", "locale")
	if err != nil || strings.TrimSpace(out) != "es-MX" {
		t.Fatalf("config get: %q %v", out, err)
	}
	out, _, err = execute(t, "", "--db", db, "config", "get")
	if err != nil || !strings.Contains(out, "locale\tes-MX") {
		t.Fatalf("config list: %q %v", out, err)
	}
	if _, _, err := execute(t, "", "--db", db, "config", "set", "barcode_provider", "usda"); err == nil {
		t.Fatalf("expected unknown key to be rejected")
	}
	if _, _, err := execute(t, "", "--db", db, "config", "unset", "locale"); err != nil {
		t.Fatalf("config unset: %v", err)
	}
	if _, _, err := execute(t, "", "--db", db, "config", "get", "locale"); err == nil {
		t.Fatalf("expected unset key to report missing")
	}
}

func TestDoctorOnFreshDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "metafit.db")
	out, _, err := execute(t, "", "--db", db, "doctor", "--fix")
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if !strings.Contains(out, "Invalid cache rows: 0") || !strings.Contains(out, "Fixed rows: 0") {
		t.Fatalf("unexpected doctor output %q", out)
	}
}
