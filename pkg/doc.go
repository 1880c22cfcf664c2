// Package tagrelease implements the release steps behind the tagrelease CLI.
//
// It provides:
//   - Parsing, comparing and validating X.Y.Z versions.
//   - Reading and rewriting the <version> field of an app's appinfo/info.xml
//     without touching any other byte of the document.
//   - Updating the version string of additional manifest files.
//   - The release sequence itself: commit, tag, and push or revert, run
//     against injected Git, Prompter and Files implementations.
//
// Usage Example:
//
//	res, err := tagrelease.Release(ctx, tagrelease.Options{
//	    ProjectDir: "apps/sciencemesh",
//	    NewVersion: "1.2.4",
//	    Platform:   "nextcloud",
//	    AutoPush:   true,
//	    Git:        tagrelease.NewExecGit("apps/sciencemesh"),
//	})
//	if err != nil {
//	    log.Fatalf("release failed: %v", err)
//	}
//	log.Printf("pushed %s", res.Tag)
//
// Errors from the release steps are *Error values whose Kind names the step
// that failed; use errors.Is with ErrValidation, ErrGitPush and so on.
package tagrelease
