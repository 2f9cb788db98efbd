package main_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildBinary builds the boo CLI from the main package into a temp dir.
func buildBinary(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "boo")
	buildCmd := exec.Command("go", "build", "-o", binPath, "./")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build CLI binary: %v; build output: %s", err, out)
	}
	return binPath
}

func TestCLIBinaryIntegration(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not available on system")
	}
	binPath := buildBinary(t)

	// 1. Set up a temporary git repository holding two plugins.
	tmpRepo := t.TempDir()
	runGit := func(args ...string) string {
		cmd := exec.Command("git", args...)
		cmd.Dir = tmpRepo
		out, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("git %v failed: %v\n%s", args, err, out)
		}
		return string(out)
	}
	runGit("init")
	runGit("config", "user.email", "test@example.com")
	runGit("config", "user.name", "Test User")

	files := map[string]string{
		"hello": "<?php\n/**\n * Plugin Name: Hello\n * Version: 1.2.3\n */\n",
		"world": "<?php\n/**\n * Plugin Name: World\n * Version: 0.9.99\n */\n",
	}
	for name, content := range files {
		dir := filepath.Join(tmpRepo, "plugins", name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "index.php"), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	runGit("add", ".")
	runGit("commit", "-m", "initial commit")

	// 2. Bump every plugin, package them and commit.
	dist := filepath.Join(t.TempDir(), "dist")
	cliCmd := exec.Command(binPath, "multi-update", "-p", "plugins", "-i", "0.0.1", "-z", dist, "-c", "-s", "markdown")
	cliCmd.Dir = tmpRepo
	var stdout, stderr bytes.Buffer
	cliCmd.Stdout = &stdout
	cliCmd.Stderr = &stderr
	if err := cliCmd.Run(); err != nil {
		t.Fatalf("CLI command failed: %v; stdout: %s; stderr: %s", err, stdout.String(), stderr.String())
	}

	// 3. Verify the files, the archives and the commit.
	expected := map[string]string{"hello": "1.2.4", "world": "0.10.0"}
	for name, version := range expected {
		data, err := os.ReadFile(filepath.Join(tmpRepo, "plugins", name, "index.php"))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "* Version: "+version+"\n") {
			t.Errorf("%s not updated to %s, got:\n%s", name, version, data)
		}
	}
	for _, archive := range []string{"hello-10204.zip", "world-1000.zip"} {
		if _, err := os.Stat(filepath.Join(dist, archive)); err != nil {
			t.Errorf("expected archive %s: %v", archive, err)
		}
	}

	msg := runGit("log", "-1", "--pretty=%B")
	if !strings.Contains(msg, "world has been updated from 0.9.99 to version 0.10.0") {
		t.Errorf("unexpected commit message:\n%s", msg)
	}
	if count := strings.TrimSpace(runGit("rev-list", "--count", "HEAD")); count != "2" {
		t.Errorf("expected 2 commits, got %s", count)
	}
}
