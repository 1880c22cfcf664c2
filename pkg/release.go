package tagrelease

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
)

var discardLogger = slog.New(slog.DiscardHandler)

// Outcome is how a release run ended.
type Outcome string

const (
	OutcomePushed   Outcome = "pushed"
	OutcomeReverted Outcome = "reverted"
	OutcomeDryRun   Outcome = "dry-run"
)

// Options configures a release run.
type Options struct {
	ProjectDir   string   // git working directory of the app
	MetadataPath string   // relative to ProjectDir; defaults to DefaultMetadataPath
	BumpFiles    []string // extra files whose version is rewritten, relative to ProjectDir

	NewVersion string // "X.Y.Z"; when empty the version is asked for
	Platform   string
	PreRelease string
	Remote     string // defaults to DefaultRemote
	AutoPush   bool
	DryRun     bool

	Git      Git
	Prompter Prompter
	Files    Files     // defaults to OSFiles
	Out      io.Writer // step confirmations; defaults to io.Discard
	Logger   *slog.Logger
}

// Result holds metadata about a release run.
type Result struct {
	OldVersion   Version
	NewVersion   Version
	Tag          string
	UpdatedFiles []string // paths relative to ProjectDir
	Outcome      Outcome
}

type releaser struct {
	opts Options
	log  *slog.Logger
	out  io.Writer
}

// Release runs the release sequence. Each step must succeed before the next
// starts; the first failure is returned and nothing already done is undone,
// except that a declined push removes the new tag and commit.
func Release(ctx context.Context, opts Options) (Result, error) {
	r, err := newReleaser(opts)
	if err != nil {
		return Result{}, err
	}
	return r.run(ctx)
}

func newReleaser(opts Options) (*releaser, error) {
	if opts.MetadataPath == "" {
		opts.MetadataPath = DefaultMetadataPath
	}
	if opts.Remote == "" {
		opts.Remote = DefaultRemote
	}
	if opts.Files == nil {
		opts.Files = OSFiles{}
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = discardLogger
	}
	if opts.Git == nil && !opts.DryRun {
		return nil, errors.New("release: no git runner configured")
	}
	if opts.Prompter == nil && (opts.NewVersion == "" || (!opts.AutoPush && !opts.DryRun)) {
		return nil, errors.New("release: a prompter is required unless both the new version and auto-push are given")
	}
	return &releaser{opts: opts, log: opts.Logger, out: opts.Out}, nil
}

func (r *releaser) path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(r.opts.ProjectDir, rel)
}

func (r *releaser) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

func (r *releaser) run(ctx context.Context) (Result, error) {
	var res Result

	// ReadVersion
	r.log.Debug("reading current version", "metadata", r.path(r.opts.MetadataPath))
	current, err := ReadMetadataFile(r.opts.Files, r.path(r.opts.MetadataPath))
	if err != nil {
		return res, err
	}
	res.OldVersion = current
	r.printf("Current version is %s.", current)

	// ObtainCandidate
	candidate, err := r.obtainCandidate()
	if err != nil {
		return res, err
	}
	res.NewVersion = candidate

	// Validate
	if err := ValidateCandidate(candidate, current); err != nil {
		return res, err
	}
	tag := ReleaseTag{Version: candidate, Platform: r.opts.Platform, PreRelease: r.opts.PreRelease}
	res.Tag = tag.String()
	r.log.Debug("new version accepted", "old", current.String(), "new", candidate.String(), "tag", res.Tag)

	if r.opts.DryRun {
		return r.dryRun(res)
	}

	// PersistMetadata
	if err := WriteMetadataFile(r.opts.Files, r.path(r.opts.MetadataPath), candidate); err != nil {
		return res, err
	}
	res.UpdatedFiles = append(res.UpdatedFiles, r.opts.MetadataPath)
	for _, bf := range r.opts.BumpFiles {
		m, err := BumpFile(r.opts.Files, r.path(bf), candidate)
		if err != nil {
			return res, err
		}
		r.log.Debug("bumped file", "path", bf, "pattern", m.Pattern, "old", m.Old)
		res.UpdatedFiles = append(res.UpdatedFiles, bf)
	}
	r.printf("Updated version to %s in %d file(s).", candidate, len(res.UpdatedFiles))

	// CommitAndTag
	previous, err := r.commitAndTag(ctx, tag, res.UpdatedFiles)
	if err != nil {
		return res, err
	}
	r.printf("Committed %q and tagged %s.", tag.CommitMessage(), res.Tag)

	// ConfirmPush
	push := r.opts.AutoPush
	if !push {
		push, err = r.opts.Prompter.Confirm(fmt.Sprintf("Push %s to %s?", res.Tag, r.opts.Remote))
		if err != nil {
			r.log.Warn("no push confirmation, reverting", "tag", res.Tag, "error", err)
			if rerr := r.revert(ctx, res.Tag, previous); rerr != nil {
				return res, rerr
			}
			res.Outcome = OutcomeReverted
			return res, fmt.Errorf("confirm push: %w", err)
		}
	}

	if push {
		r.log.Debug("pushing", "remote", r.opts.Remote, "tag", res.Tag)
		if err := r.opts.Git.Push(ctx, r.opts.Remote, res.Tag); err != nil {
			return res, newError(KindGitPush, "git push "+r.opts.Remote, "", err)
		}
		res.Outcome = OutcomePushed
		r.printf("Pushed %s to %s.", res.Tag, r.opts.Remote)
		return res, nil
	}

	if err := r.revert(ctx, res.Tag, previous); err != nil {
		return res, err
	}
	res.Outcome = OutcomeReverted
	r.printf("Push declined: removed tag %s and reset to %s.", res.Tag, shortRef(previous))
	return res, nil
}

func (r *releaser) obtainCandidate() (Version, error) {
	if r.opts.NewVersion != "" {
		return ParseCandidate(r.opts.NewVersion)
	}

	r.printf("Version is in X.Y.Z form: X is the major, Y the minor and Z the patch number.")
	var nums [3]int
	for i, label := range []string{"Enter version major number", "Enter version minor number", "Enter version patch number"} {
		n, err := r.opts.Prompter.AskInt(label)
		if err != nil {
			return Version{}, newError(KindValidation, "read new version", "", err)
		}
		if n < 0 {
			return Version{}, newError(KindValidation, "read new version", "", errVersionNegative)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// commitAndTag commits the updated files and tags the commit. It returns the
// commit HEAD pointed to before the version bump. When tagging fails the
// commit is undone so no commit or tag is left behind.
func (r *releaser) commitAndTag(ctx context.Context, tag ReleaseTag, paths []string) (string, error) {
	git := r.opts.Git

	previous, err := git.Head(ctx)
	if err != nil {
		return "", newError(KindGitOperation, "git rev-parse HEAD", "", err)
	}
	if err := git.Add(ctx, paths...); err != nil {
		return "", newError(KindGitOperation, "git add", "", err)
	}
	if err := git.Commit(ctx, tag.CommitMessage(), paths...); err != nil {
		return "", newError(KindGitOperation, "git commit", "", err)
	}
	if err := git.Tag(ctx, tag.String()); err != nil {
		// Drop the commit again; the bumped files stay modified on disk.
		r.log.Debug("tag failed, undoing commit", "tag", tag.String(), "reset_to", previous)
		if rerr := git.Reset(ctx, previous); rerr != nil {
			err = fmt.Errorf("%w; undoing the commit also failed: %v", err, rerr)
		}
		return "", newError(KindGitOperation, "git tag "+tag.String(), "", err)
	}
	return previous, nil
}

// revert deletes the tag and resets the branch to the pre-bump commit.
func (r *releaser) revert(ctx context.Context, tag, previous string) error {
	r.log.Debug("reverting release", "tag", tag, "reset_to", previous)
	if err := r.opts.Git.DeleteTag(ctx, tag); err != nil {
		return newError(KindGitRevert, "git tag -d "+tag, "", err)
	}
	if err := r.opts.Git.ResetHard(ctx, previous); err != nil {
		return newError(KindGitRevert, "git reset --hard "+shortRef(previous), "", err)
	}
	return nil
}

func (r *releaser) dryRun(res Result) (Result, error) {
	res.UpdatedFiles = append(res.UpdatedFiles, r.opts.MetadataPath)
	for _, bf := range r.opts.BumpFiles {
		m, err := ScanBumpFile(r.opts.Files, r.path(bf))
		if err != nil {
			return res, err
		}
		r.log.Debug("would bump file", "path", bf, "pattern", m.Pattern, "old", m.Old)
		res.UpdatedFiles = append(res.UpdatedFiles, bf)
	}
	res.Outcome = OutcomeDryRun
	r.printf("Dry run: would tag %s.", res.Tag)
	return res, nil
}

func shortRef(ref string) string {
	if len(ref) > 12 {
		return ref[:12]
	}
	return ref
}
