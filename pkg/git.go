package boo

import (
	"bytes"
	"log/slog"
	"os/exec"
	"strings"
)

// Git runs git commands in Dir. An empty Dir uses the working directory.
type Git struct {
	Dir string
}

func (g Git) run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = g.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("running git", "args", args, "dir", g.Dir)
	if err := cmd.Run(); err != nil {
		return "", wrapError(CodeCommand, err, "git %s failed, detail: %s", args[0], strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Check verifies that git is available on the system.
func (g Git) Check() error {
	if _, err := exec.LookPath("git"); err != nil {
		return wrapError(CodeCommand, err, "git is not available on the system")
	}
	return nil
}

// Commit stages files and commits them with message.
func (g Git) Commit(files []string, message string) error {
	if len(files) == 0 {
		return newError(CodeCommand, "nothing to commit")
	}
	if _, err := g.run(append([]string{"add"}, files...)...); err != nil {
		return err
	}
	if _, err := g.run("commit", "-m", message, "--quiet"); err != nil {
		return err
	}
	return nil
}

// Fetch fetches from the default remote.
func (g Git) Fetch() error {
	_, err := g.run("fetch")
	return err
}

// HasNewCommits reports whether the upstream branch points to a different
// commit than HEAD.
func (g Git) HasNewCommits() (bool, error) {
	local, err := g.run("rev-parse", "@{0}")
	if err != nil {
		return false, err
	}
	remote, err := g.run("rev-parse", "@{u}")
	if err != nil {
		return false, err
	}
	return local != remote, nil
}

// Pull pulls from the upstream branch.
func (g Git) Pull() error {
	_, err := g.run("pull")
	return err
}

// CommitMessage joins the messages of recs, one per line.
func CommitMessage(recs []Record) string {
	lines := make([]string, 0, len(recs))
	for _, r := range recs {
		lines = append(lines, r.Message())
	}
	return strings.Join(lines, "\n")
}
