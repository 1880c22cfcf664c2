package tagrelease

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// DefaultRemote is the remote the release is pushed to.
const DefaultRemote = "origin"

// Git is the subset of git the release needs. Every method runs against
// the project's working directory.
type Git interface {
	// Head returns the commit id HEAD points to.
	Head(ctx context.Context) (string, error)
	Add(ctx context.Context, paths ...string) error
	// Commit records only the given paths.
	Commit(ctx context.Context, message string, paths ...string) error
	Tag(ctx context.Context, name string) error
	DeleteTag(ctx context.Context, name string) error
	ResetHard(ctx context.Context, ref string) error
	// Reset moves HEAD and the index to ref and leaves the working tree alone.
	Reset(ctx context.Context, ref string) error
	// Push pushes the current branch head and the named refs.
	Push(ctx context.Context, remote string, refs ...string) error
}

// ExecGit runs the git binary as a subprocess.
type ExecGit struct {
	Dir    string // working directory for every command
	Binary string // defaults to "git"
	Logger *slog.Logger
}

// NewExecGit returns an ExecGit rooted at dir.
func NewExecGit(dir string) *ExecGit {
	return &ExecGit{Dir: dir, Binary: "git"}
}

func (g *ExecGit) binary() string {
	if g.Binary == "" {
		return "git"
	}
	return g.Binary
}

func (g *ExecGit) logger() *slog.Logger {
	if g.Logger == nil {
		return discardLogger
	}
	return g.Logger
}

// run executes git with args and returns its trimmed stdout.
func (g *ExecGit) run(ctx context.Context, args ...string) (string, error) {
	g.logger().Debug("running git", "dir", g.Dir, "args", args)

	cmd := exec.CommandContext(ctx, g.binary(), args...)
	cmd.Dir = g.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %v, detail: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Check verifies that git is available.
func (g *ExecGit) Check(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, g.binary(), "--version")
	if err := cmd.Run(); err != nil {
		return errors.New("git is not available on the system")
	}
	return nil
}

func (g *ExecGit) Head(ctx context.Context) (string, error) {
	return g.run(ctx, "rev-parse", "HEAD")
}

func (g *ExecGit) Add(ctx context.Context, paths ...string) error {
	_, err := g.run(ctx, append([]string{"add", "--"}, paths...)...)
	return err
}

func (g *ExecGit) Commit(ctx context.Context, message string, paths ...string) error {
	args := append([]string{"commit", "-m", message, "--"}, paths...)
	_, err := g.run(ctx, args...)
	return err
}

func (g *ExecGit) Tag(ctx context.Context, name string) error {
	_, err := g.run(ctx, "tag", name)
	return err
}

func (g *ExecGit) DeleteTag(ctx context.Context, name string) error {
	_, err := g.run(ctx, "tag", "-d", name)
	return err
}

func (g *ExecGit) ResetHard(ctx context.Context, ref string) error {
	_, err := g.run(ctx, "reset", "--hard", ref)
	return err
}

func (g *ExecGit) Reset(ctx context.Context, ref string) error {
	_, err := g.run(ctx, "reset", "--mixed", "--quiet", ref)
	return err
}

func (g *ExecGit) Push(ctx context.Context, remote string, refs ...string) error {
	args := append([]string{"push", remote, "HEAD"}, refs...)
	_, err := g.run(ctx, args...)
	return err
}
