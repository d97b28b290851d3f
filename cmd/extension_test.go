package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

// writeExtension writes an executable shell script named pcc-<name> in dir.
func writeExtension(t *testing.T, dir, name, script string) {
	t.Helper()
	path := filepath.Join(dir, "pcc-"+name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatalf("Failed to write pcc-%s: %v", name, err)
	}
}

func TestExtensionMechanism(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extensions are shell scripts in this test")
	}
	tempDir := t.TempDir()
	t.Setenv("PATH", tempDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	// pcc-hello dumps the environment it receives into the file given as first argument.
	writeExtension(t, tempDir, "hello", `
echo "PCC_PORTFOLIO_FILE=$PCC_PORTFOLIO_FILE" > "$1"
echo "PCC_DEFAULT_CURRENCY=$PCC_DEFAULT_CURRENCY" >> "$1"
echo "PCC_VERBOSE=$PCC_VERBOSE" >> "$1"
`)
	writeExtension(t, tempDir, "fail", "exit 3\n")

	expectedPortfolioFile := filepath.Join(tempDir, "random_portfolio.json")
	expectedDefaultCurrency := "USD"
	setFlags(t, expectedPortfolioFile, expectedDefaultCurrency, true)

	out := filepath.Join(tempDir, "env.txt")
	found, code := RunExtension("hello", []string{out})
	if !found || code != 0 {
		t.Fatalf("RunExtension(hello) = %v, %d, want true, 0", found, code)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("pcc-hello did not write its output: %v", err)
	}
	output := string(data)

	expectedEnvVars := []struct {
		Name  string
		Value string
	}{
		{EnvPortfolioFile, expectedPortfolioFile},
		{EnvDefaultCurrency, expectedDefaultCurrency},
		{EnvVerbose, strconv.FormatBool(true)},
	}
	for _, ev := range expectedEnvVars {
		expectedLine := ev.Name + "=" + ev.Value
		if !strings.Contains(output, expectedLine) {
			t.Errorf("Expected output to contain %q, but got:\n%s", expectedLine, output)
		}
	}

	if found, code := RunExtension("fail", nil); !found || code != 3 {
		t.Errorf("RunExtension(fail) = %v, %d, want true, 3", found, code)
	}
	if found, code := RunExtension("does-not-exist", nil); found || code != 0 {
		t.Errorf("RunExtension(does-not-exist) = %v, %d, want false, 0", found, code)
	}
}

func TestExtensionEnv(t *testing.T) {
	setFlags(t, "p.json", "", false)
	got := ExtensionEnv()
	want := []string{
		"PCC_PORTFOLIO_FILE=p.json",
		"PCC_CONFIG=",
		"PCC_DEFAULT_CURRENCY=",
		"PCC_VERBOSE=false",
	}
	if len(got) != len(want) {
		t.Fatalf("ExtensionEnv() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ExtensionEnv()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
