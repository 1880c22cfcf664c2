package tagrelease

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// memFiles is an in-memory Files.
type memFiles struct {
	files    map[string]string
	writes   []string
	writeErr error
}

func newMemFiles(files map[string]string) *memFiles {
	return &memFiles{files: files}
}

func (m *memFiles) ReadFile(name string) ([]byte, error) {
	s, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return []byte(s), nil
}

func (m *memFiles) WriteFile(name string, data []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.files[name] = string(data)
	m.writes = append(m.writes, name)
	return nil
}

// fakeGit records every call and models HEAD and tags well enough to check
// that a revert restores the starting state.
type fakeGit struct {
	calls   []string
	head    string
	commits int
	tags    map[string]string
	failOn  map[string]error // keyed by method name
}

func newFakeGit() *fakeGit {
	return &fakeGit{head: "c0ffee0000000000", tags: map[string]string{}, failOn: map[string]error{}}
}

func (g *fakeGit) record(method string, args ...string) error {
	g.calls = append(g.calls, strings.TrimSpace(method+" "+strings.Join(args, " ")))
	return g.failOn[method]
}

func (g *fakeGit) Head(ctx context.Context) (string, error) {
	if err := g.record("Head"); err != nil {
		return "", err
	}
	return g.head, nil
}

func (g *fakeGit) Add(ctx context.Context, paths ...string) error {
	return g.record("Add", paths...)
}

func (g *fakeGit) Commit(ctx context.Context, message string, paths ...string) error {
	if err := g.record("Commit", append([]string{message}, paths...)...); err != nil {
		return err
	}
	g.commits++
	g.head = fmt.Sprintf("commit%010d", g.commits)
	return nil
}

func (g *fakeGit) Tag(ctx context.Context, name string) error {
	if err := g.record("Tag", name); err != nil {
		return err
	}
	if _, ok := g.tags[name]; ok {
		return errors.New("fatal: tag '" + name + "' already exists")
	}
	g.tags[name] = g.head
	return nil
}

func (g *fakeGit) DeleteTag(ctx context.Context, name string) error {
	if err := g.record("DeleteTag", name); err != nil {
		return err
	}
	delete(g.tags, name)
	return nil
}

func (g *fakeGit) ResetHard(ctx context.Context, ref string) error {
	if err := g.record("ResetHard", ref); err != nil {
		return err
	}
	g.head = ref
	return nil
}

func (g *fakeGit) Reset(ctx context.Context, ref string) error {
	if err := g.record("Reset", ref); err != nil {
		return err
	}
	g.head = ref
	return nil
}

func (g *fakeGit) Push(ctx context.Context, remote string, refs ...string) error {
	return g.record("Push", append([]string{remote}, refs...)...)
}

// fakePrompter answers from fixed lists.
type fakePrompter struct {
	ints       []int
	intErr     error
	confirm    bool
	confirmErr error
	asked      []string
	confirms   int
}

func (p *fakePrompter) AskInt(label string) (int, error) {
	p.asked = append(p.asked, label)
	if p.intErr != nil {
		return 0, p.intErr
	}
	if len(p.ints) == 0 {
		return 0, errors.New("no input")
	}
	n := p.ints[0]
	p.ints = p.ints[1:]
	return n, nil
}

func (p *fakePrompter) Confirm(question string) (bool, error) {
	p.confirms++
	return p.confirm, p.confirmErr
}
