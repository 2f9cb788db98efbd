package boo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlugin(t *testing.T) {
	root := t.TempDir()
	dir := writePlugin(t, root, "test_plugin", "init.php", pluginSource("Plugin Name", "1.0.0"))

	p, err := NewPlugin(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "test_plugin", p.Name())
	assert.Equal(t, "init.php", p.MainFile)
	assert.Equal(t, "Plugin Name", p.Title)
	assert.Equal(t, filepath.Join(dir, "init.php"), p.MainFilePath())
}

func TestNewPluginMainFilePriority(t *testing.T) {
	root := t.TempDir()
	dir := writePlugin(t, root, "both", "index.php", pluginSource("Index", "1.0.0"))

	p, err := NewPlugin(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "index.php", p.MainFile)

	writePlugin(t, root, "both", "init.php", pluginSource("Init", "2.0.0"))
	p, err = NewPlugin(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "init.php", p.MainFile)
	assert.Equal(t, "Init", p.Title)

	p, err = NewPlugin(dir, []string{"index.php", "init.php"})
	require.NoError(t, err)
	assert.Equal(t, "index.php", p.MainFile)
}

func TestNewPluginInvalid(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name string
		dir  string
		code ErrorCode
	}{
		{"missing directory", filepath.Join(root, "nope"), CodeInvalidDirectory},
		{"no main file", writePlugin(t, root, "empty", "", ""), CodeSearchNotFound},
		{"no name header", writePlugin(t, root, "anon", "init.php", "<?php\n * Version: 1.0.0\n"), CodeSearchNotFound},
		{"no version", writePlugin(t, root, "unversioned", "init.php", "<?php\n * Plugin Name: X\n"), CodeSearchNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPlugin(tc.dir, nil)
			require.Error(t, err)
			assert.Equal(t, tc.code, CodeOf(err))
			assert.Contains(t, err.Error(), filepath.Base(tc.dir))
		})
	}

	file := filepath.Join(root, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	_, err := NewPlugin(file, nil)
	assert.ErrorIs(t, err, ErrInvalidDirectory)
}

func TestListDirs(t *testing.T) {
	root := t.TempDir()
	b := writePlugin(t, root, "b_plugin", "init.php", pluginSource("B", "1.0.0"))
	a := writePlugin(t, root, "a_plugin", "", "")
	writePlugin(t, root, ".git", "", "")
	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.txt"), nil, 0644))

	dirs, err := ListDirs(root)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, dirs)

	_, err = ListDirs(filepath.Join(root, "readme.txt"))
	assert.ErrorIs(t, err, ErrInvalidDirectory)
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	p1 := writePlugin(t, root, "test_plugin", "init.php", pluginSource("Plugin Name", "1.0.0"))
	p2 := writePlugin(t, root, "another_plugin", "init.php", pluginSource("Another Plugin", "1.0.0"))
	writePlugin(t, root, "invalid_plugin", "", "")

	plugins, err := Discover(root, nil)
	require.NoError(t, err)
	require.Len(t, plugins, 2)
	assert.Equal(t, p2, plugins[0].Dir)
	assert.Equal(t, p1, plugins[1].Dir)

	empty := filepath.Join(root, "invalid_plugin")
	plugins, err = Discover(empty, nil)
	require.NoError(t, err)
	assert.Empty(t, plugins)
}

func TestFilter(t *testing.T) {
	all := []string{"/plugins/test_plugin", "/plugins/another_plugin"}

	tests := []struct {
		name     string
		include  []string
		exclude  []string
		expected []string
	}{
		{"no filters", nil, nil, all},
		{"include", []string{"test_plugin"}, nil, []string{"/plugins/test_plugin"}},
		{"include with slash", []string{"test_plugin/"}, nil, []string{"/plugins/test_plugin"}},
		{"exclude", nil, []string{"another_plugin"}, []string{"/plugins/test_plugin"}},
		{"include and exclude", []string{"test_plugin", "another_plugin"}, []string{"test_plugin"}, []string{"/plugins/another_plugin"}},
		{"include unknown", []string{"missing"}, nil, []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Filter(all, tc.include, tc.exclude))
		})
	}
}
