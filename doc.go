// Package main implements the tagrelease CLI tool.
//
// The tagrelease tool tags a new release of an app whose version lives in
// appinfo/info.xml. It reads the current version, takes a new version from
// --new-version or asks for it one component at a time, refuses any version
// that is not strictly greater, writes the new version back, commits the file
// with the message "version: <tag>" and creates a lightweight tag. Finally it
// pushes HEAD and the tag to the remote, or, when the push is declined, deletes
// the tag and hard-resets the branch to the commit it started from.
//
// Command Usage:
//
//	tagrelease [flags] <platform_tag> <pre_release_tag> <directory_name>
//
// Arguments:
//
//	platform_tag:    Suffix after the version in the tag, or "none".
//	pre_release_tag: Suffix after the platform tag, or "none".
//	directory_name:  The app directory, relative to -base-dir.
//
// Flags:
//
//	--new-version: The new version in X.Y.Z form. Prompted for when omitted.
//	--auto-push:   Push without asking for confirmation.
//	--dry-run:     Report the tag and the files that would change, then stop.
//	--base-dir:    Directory the app directory is resolved against (default: cwd).
//	--remote:      Remote to push to (default "origin").
//	--metadata:    Metadata file inside the app directory (default "appinfo/info.xml").
//	--bump-file:   Another file whose version is updated in the same commit.
//	               May be repeated.
//	--config:      YAML config file (default: <base-dir>/.tagrelease.yaml if present).
//	--log-level:   debug, info, warn or error (default "warn").
//	--version:     Displays the version of the tagrelease CLI tool and exits.
//
// Settings other than the arguments and --new-version, --auto-push and
// --dry-run can also come from the config file or from TAGRELEASE_REMOTE,
// TAGRELEASE_METADATA, TAGRELEASE_GIT, TAGRELEASE_LOG_LEVEL and
// TAGRELEASE_BUMP_FILES (comma separated). Flags win over the environment,
// which wins over the file.
//
// Examples:
//
//	# Ask for the version, tag v1.2.4-nextcloud and confirm before pushing
//	tagrelease nextcloud none apps/sciencemesh
//
//	# Tag v1.2.4-linux-beta and push without asking
//	tagrelease --new-version 1.2.4 --auto-push linux beta apps/sciencemesh
//
//	# Keep package.json in step with info.xml
//	tagrelease --bump-file package.json nextcloud none apps/sciencemesh
//
// The tool exits with status 1 and an "Error:" line on stderr when any step
// fails. A failed push leaves the commit and tag in place.
package main
