package boo

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// pluginSource returns a main file declaring title at version.
func pluginSource(title, version string) string {
	return fmt.Sprintf(`<?php
/**
  * Plugin Name: %s
  * Version: %s
*/
`, title, version)
}

// writePlugin creates root/name/mainFile with content and returns the plugin
// directory.
func writePlugin(t *testing.T, root, name, mainFile, content string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}
	if mainFile != "" {
		if err := os.WriteFile(filepath.Join(dir, mainFile), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write main file: %v", err)
		}
	}
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
