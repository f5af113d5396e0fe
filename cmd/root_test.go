package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/projecteru2/uuidkey/document"
)

// execute runs a freshly built root command with args in the current directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	cfgFile = ""
	c := newRootCmd()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func loadValid(t *testing.T, path string, want int) *document.Document {
	t.Helper()
	doc, err := document.Load(path)
	if err != nil {
		t.Fatalf("load %s: %v", path, err)
	}
	if err := doc.Validate(want); err != nil {
		t.Fatalf("validate %s: %v", path, err)
	}
	return doc
}

func TestRoot_DefaultRun(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := execute(t); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loadValid(t, "uuidKey.json", 20)
}

func TestRoot_ZeroCount(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := execute(t, "--count", "0"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile("uuidKey.json")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.TrimSpace(string(data)) != `{"symbols":[]}` {
		t.Fatalf("unexpected document: %q", data)
	}
}

func TestRoot_UnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	out := filepath.Join(dir, "missing", "uuidKey.json")
	_, err := execute(t, "--output", out)
	if err == nil {
		t.Fatal("expected error for missing output directory")
	}
	if !strings.Contains(err.Error(), "uuidKey.json") {
		t.Errorf("error should name the output, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Errorf("output should not exist, stat: %v", statErr)
	}
}

func TestRoot_NegativeCount(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := execute(t, "--count=-1"); err == nil {
		t.Fatal("expected error for negative count")
	}
	if _, err := os.Stat("uuidKey.json"); !os.IsNotExist(err) {
		t.Errorf("no output expected, stat: %v", err)
	}
}

func TestRoot_RejectsArgs(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := execute(t, "extra"); err == nil {
		t.Fatal("expected error for positional argument")
	}
}

func TestRoot_SeedIsReproducible(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := execute(t, "--seed", "geeke", "--output", "a.json"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := execute(t, "--seed", "geeke", "--output", "b.json"); err != nil {
		t.Fatalf("second run: %v", err)
	}
	a, _ := os.ReadFile("a.json")
	b, _ := os.ReadFile("b.json")
	if len(a) == 0 || !bytes.Equal(a, b) {
		t.Fatalf("seeded runs differ:\n%s\n%s", a, b)
	}
}

func TestRoot_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("UUIDKEY_COUNT", "5")
	if _, err := execute(t); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loadValid(t, "uuidKey.json", 5)
}

func TestRoot_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	cfg := filepath.Join(dir, "uuidkey.yaml")
	body := "count: 3\nstrategy: exclude\noutput: keys.json\n"
	if err := os.WriteFile(cfg, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := execute(t, "--config", cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loadValid(t, "keys.json", 3)
	if conf.Strategy != "exclude" {
		t.Errorf("expected strategy from file, got %q", conf.Strategy)
	}
}

func TestRoot_MissingConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := execute(t, "--config", "nope.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestVerify(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := execute(t); err != nil {
		t.Fatalf("generate: %v", err)
	}
	out, err := execute(t, "verify")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !strings.Contains(out, "20 symbols") || !strings.Contains(out, "sha256:") {
		t.Errorf("unexpected verify output: %q", out)
	}

	if err := os.WriteFile("bad.json", []byte(`{"symbols":["0x11"]}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := execute(t, "verify", "bad.json", "--count", "1"); err == nil {
		t.Fatal("expected self-pair symbol to fail verification")
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "Version:") {
		t.Errorf("unexpected version output: %q", out)
	}
}

func TestRoot_IgnoresTempDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	blocker := filepath.Join(dir, "notadir")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("TMPDIR", filepath.Join(blocker, "sub"))
	if _, err := execute(t); err != nil {
		t.Fatalf("run should not depend on TMPDIR: %v", err)
	}
	loadValid(t, "uuidKey.json", 20)
}

func TestRoot_LockDisabled(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := execute(t, "--lock=false"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf.Lock {
		t.Error("expected locking disabled")
	}
	loadValid(t, "uuidKey.json", 20)
}
