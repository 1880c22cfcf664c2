// Package main implements a CLI tool to bump the version in an app's
// appinfo/info.xml, commit and tag the change with git, and push the tag.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	tagrelease "github.com/pondersource/dev-stock/pkg"
)

const appName = "tagrelease"

const longUsage = `Tags a new release of an app.

Reads the current version from <directory_name>/appinfo/info.xml, asks for the new
version (or takes it from --new-version), checks that it is greater than the current
one, writes it back, commits the change with the message "version: <tag>" and tags the
commit. The tag is then pushed to the remote, or, if the push is declined, the tag and
the commit are removed again.

The tag is v<version>-<platform_tag>-<pre_release_tag>; pass "none" for either tag to
leave it out.

Examples:
  tagrelease nextcloud none apps/sciencemesh
  tagrelease --new-version 1.2.4 --auto-push linux beta apps/sciencemesh
  tagrelease --dry-run --new-version 2.0.0 nextcloud none apps/sciencemesh`

type cliOptions struct {
	newVersion string
	autoPush   bool
	dryRun     bool
	baseDir    string
	configFile string
	remote     string
	metadata   string
	logLevel   string
	bumpFiles  []string
}

// newRootCmd builds the command. in is where interactive answers are read from.
func newRootCmd(in io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var opts cliOptions

	cmd := &cobra.Command{
		Use:           appName + " [flags] <platform_tag> <pre_release_tag> <directory_name>",
		Short:         "Bump an app's version, then commit, tag and push it",
		Long:          longUsage,
		Version:       Version,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelease(cmd, opts, args, in, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate(appName + " CLI version {{.Version}}\n")

	f := cmd.Flags()
	f.StringVar(&opts.newVersion, "new-version", "", "new version in X.Y.Z form (prompted for when omitted)")
	f.BoolVar(&opts.autoPush, "auto-push", false, "push without asking for confirmation")
	f.BoolVar(&opts.dryRun, "dry-run", false, "show what would be done without changing files or the repository")
	f.StringVar(&opts.baseDir, "base-dir", "", "directory <directory_name> is resolved against (default: current directory)")
	f.StringVar(&opts.configFile, "config", "", "config file (default: <base-dir>/"+configFileName+" if present)")
	f.StringVar(&opts.remote, "remote", "", "remote to push to (default \""+tagrelease.DefaultRemote+"\")")
	f.StringVar(&opts.metadata, "metadata", "", "metadata file relative to the app directory (default \""+tagrelease.DefaultMetadataPath+"\")")
	f.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (default \"warn\")")
	f.StringArrayVar(&opts.bumpFiles, "bump-file", nil, "additional file whose version is updated and committed; may be repeated")

	return cmd
}

func runRelease(cmd *cobra.Command, opts cliOptions, args []string, in io.Reader, stdout, stderr io.Writer) error {
	baseDir := opts.baseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving current directory: %w", err)
		}
		baseDir = wd
	}

	cfg, err := loadConfig(opts.configFile, baseDir, nil)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("remote") {
		cfg.Remote = opts.remote
	}
	if f.Changed("metadata") {
		cfg.Metadata = opts.metadata
	}
	if f.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if f.Changed("bump-file") {
		cfg.BumpFiles = opts.bumpFiles
	}

	logger, err := newLogger(stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	projectDir := args[2]
	if !filepath.IsAbs(projectDir) {
		projectDir = filepath.Join(baseDir, projectDir)
	}

	ctx := cmd.Context()
	git := tagrelease.NewExecGit(projectDir)
	git.Binary = cfg.Git
	git.Logger = logger
	if !opts.dryRun {
		if err := git.Check(ctx); err != nil {
			return err
		}
	}

	logger.Info("starting release", "project", projectDir, "metadata", cfg.Metadata, "remote", cfg.Remote)
	fmt.Fprintf(stdout, "This program will tag a new release of the app and push the new tag to %s.\n", cfg.Remote)

	res, err := tagrelease.Release(ctx, tagrelease.Options{
		ProjectDir:   projectDir,
		MetadataPath: cfg.Metadata,
		BumpFiles:    cfg.BumpFiles,
		NewVersion:   opts.newVersion,
		Platform:     tagrelease.TagArg(args[0]),
		PreRelease:   tagrelease.TagArg(args[1]),
		Remote:       cfg.Remote,
		AutoPush:     opts.autoPush,
		DryRun:       opts.dryRun,
		Git:          git,
		Prompter:     tagrelease.NewLinePrompter(in, stdout),
		Out:          stdout,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	switch res.Outcome {
	case tagrelease.OutcomeDryRun:
		fmt.Fprintln(stdout, "Dry run complete. No files were modified.")
	case tagrelease.OutcomePushed:
		fmt.Fprintln(stdout, "Release successful!")
	case tagrelease.OutcomeReverted:
		fmt.Fprintln(stdout, "Release cancelled; the repository is back at its previous commit.")
	}
	fmt.Fprintf(stdout, "Old Version: %s\n", res.OldVersion)
	fmt.Fprintf(stdout, "New Version: %s\n", res.NewVersion)
	fmt.Fprintf(stdout, "Tag:         %s\n", res.Tag)
	if len(res.UpdatedFiles) > 0 {
		if res.Outcome == tagrelease.OutcomeDryRun {
			fmt.Fprintln(stdout, "Files that would be updated:")
		} else {
			fmt.Fprintln(stdout, "Files updated:")
		}
		for _, f := range res.UpdatedFiles {
			fmt.Fprintf(stdout, "  %s\n", f)
		}
	}
	return nil
}

// errorMessage renders err with the label of its release step.
func errorMessage(err error) string {
	var re *tagrelease.Error
	if errors.As(err, &re) {
		return fmt.Sprintf("Error: %s: %v", re.Kind.Prefix(), err)
	}
	return fmt.Sprintf("Error: %v", err)
}

func execute(ctx context.Context, args []string, in io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd(in, stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, errorMessage(err))
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
