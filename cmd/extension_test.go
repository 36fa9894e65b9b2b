package cmd

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

func TestExtensionMechanism(t *testing.T) {
	tempDir := t.TempDir()

	// pt-hello prints the environment it received.
	helloCmdSource := fmt.Sprintf(`
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("args=%%v\n", os.Args[1:])
}
`, EnvStoreFile, EnvStoreFile, EnvCurrency, EnvCurrency, EnvVerbose, EnvVerbose)

	helloCmdPath := filepath.Join(tempDir, ExtensionPrefix+"hello")
	srcFile := helloCmdPath + ".go"
	if err := os.WriteFile(srcFile, []byte(helloCmdSource), 0644); err != nil {
		t.Fatalf("Failed to write pt-hello source: %v", err)
	}
	cmd := exec.Command("go", "build", "-o", helloCmdPath, srcFile)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile pt-hello: %v", err)
	}
	log.Printf("Compiled pt-hello to %s", helloCmdPath)

	ptBinaryPath := filepath.Join(tempDir, "pt")
	cmd = exec.Command("go", "build", "-o", ptBinaryPath, "../pt")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile pt binary: %v", err)
	}

	expectedStoreFile := filepath.Join(tempDir, "random_prices.csv")
	expectedCurrency := "EUR"

	args := []string{
		"--store-file", expectedStoreFile,
		"--currency", expectedCurrency,
		"-v",
		"hello", "world",
	}
	ptCmd := exec.Command(ptBinaryPath, args...)
	ptCmd.Env = []string{"PATH=" + tempDir + string(os.PathListSeparator) + os.Getenv("PATH")}

	var stdout, stderr bytes.Buffer
	ptCmd.Stdout = &stdout
	ptCmd.Stderr = &stderr
	if err := ptCmd.Run(); err != nil {
		t.Fatalf("pt command failed: %v\nStdout: %s\nStderr: %s", err, stdout.String(), stderr.String())
	}

	output := stdout.String()
	for _, expectedLine := range []string{
		EnvStoreFile + "=" + expectedStoreFile,
		EnvCurrency + "=" + expectedCurrency,
		EnvVerbose + "=" + strconv.FormatBool(true),
		"args=[world]",
	} {
		if !strings.Contains(output, expectedLine) {
			t.Errorf("Expected output to contain %q, but got:\n%s", expectedLine, output)
		}
	}
}

func TestRunExtension_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if found, code := RunExtension("does-not-exist", nil); found || code != 0 {
		t.Errorf("RunExtension(unknown) = (%v, %d), want (false, 0)", found, code)
	}
}

func TestIsRegistered(t *testing.T) {
	c := subcommands.NewCommander(flag.NewFlagSet("pt", flag.ContinueOnError), "pt")
	Register(c)
	for _, name := range []string{"add", "list", "cheapest", "export", "delete", "query", "upgrade", "menu", "topic"} {
		if !IsRegistered(c, name) {
			t.Errorf("IsRegistered(%q) = false, want true", name)
		}
	}
	if IsRegistered(c, "hello") {
		t.Errorf("IsRegistered(%q) = true, want false", "hello")
	}
}

func TestExtensionEnv(t *testing.T) {
	env := ExtensionEnv()
	for _, key := range []string{EnvStoreFile, EnvCurrency, EnvVerbose} {
		if !slices.ContainsFunc(env, func(kv string) bool { return strings.HasPrefix(kv, key+"=") }) {
			t.Errorf("ExtensionEnv() should define %s, got %v", key, env)
		}
	}
}
