package boo

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runGit runs git in dir and fails the test on error.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

// initRepo creates a git repository with a configured test user.
func initRepo(t *testing.T, dir string) {
	t.Helper()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")
}

func skipWithoutGit(t *testing.T) {
	t.Helper()
	if err := (Git{}).Check(); err != nil {
		t.Skip("git is not available on system")
	}
}

func TestGitCommit(t *testing.T) {
	skipWithoutGit(t)

	repo := t.TempDir()
	initRepo(t, repo)
	dir := writePlugin(t, repo, "hello", "init.php", pluginSource("Hello", "1.0.0"))
	runGit(t, repo, "add", ".")
	runGit(t, repo, "commit", "-m", "initial commit")

	pv, err := NewPlugin(dir, nil)
	require.NoError(t, err)
	engine := NewEngine(testCodec)
	rec, err := engine.Apply(engine.PluginVersion(pv), "0.0.1", "0.0.0")
	require.NoError(t, err)

	g := Git{Dir: repo}
	require.NoError(t, g.Commit([]string{dir}, CommitMessage([]Record{rec})))

	assert.Equal(t, "hello has been updated from 1.0.0 to version 1.0.1", runGit(t, repo, "log", "-1", "--format=%B"))
	assert.Empty(t, runGit(t, repo, "status", "--porcelain"))
}

func TestGitCommitErrors(t *testing.T) {
	skipWithoutGit(t)

	err := Git{Dir: t.TempDir()}.Commit(nil, "nothing")
	assert.ErrorIs(t, err, ErrCommand)

	// Not a repository.
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644))
	err = Git{Dir: dir}.Commit([]string{"a.txt"}, "msg")
	assert.ErrorIs(t, err, ErrCommand)
	assert.ErrorContains(t, err, "git add failed")
}

func TestGitFetchAndPull(t *testing.T) {
	skipWithoutGit(t)

	tmp := t.TempDir()
	origin := filepath.Join(tmp, "origin.git")
	runGit(t, tmp, "init", "--bare", origin)

	seed := filepath.Join(tmp, "seed")
	require.NoError(t, os.MkdirAll(seed, 0755))
	initRepo(t, seed)
	require.NoError(t, os.WriteFile(filepath.Join(seed, "README"), []byte("boo"), 0644))
	runGit(t, seed, "add", ".")
	runGit(t, seed, "commit", "-m", "initial commit")
	branch := runGit(t, seed, "rev-parse", "--abbrev-ref", "HEAD")
	runGit(t, seed, "remote", "add", "origin", origin)
	runGit(t, seed, "push", "-u", "origin", branch)

	work := filepath.Join(tmp, "work")
	runGit(t, tmp, "clone", origin, work)

	g := Git{Dir: work}
	require.NoError(t, g.Fetch())
	changed, err := g.HasNewCommits()
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, os.WriteFile(filepath.Join(seed, "README"), []byte("boo 2"), 0644))
	runGit(t, seed, "commit", "-am", "second commit")
	runGit(t, seed, "push")

	require.NoError(t, g.Fetch())
	changed, err = g.HasNewCommits()
	require.NoError(t, err)
	assert.True(t, changed)

	require.NoError(t, g.Pull())
	changed, err = g.HasNewCommits()
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "boo 2", readFile(t, filepath.Join(work, "README")))
}

func TestCommitMessage(t *testing.T) {
	msg := CommitMessage([]Record{
		{PluginName: "alpha", OldVersion: "1.0.0", NewVersion: "1.1.0"},
		{PluginName: "beta", OldVersion: "2.0.0", NewVersion: "2.1.0"},
	})
	assert.Equal(t, "alpha has been updated from 1.0.0 to version 1.1.0\nbeta has been updated from 2.0.0 to version 2.1.0", msg)
}
