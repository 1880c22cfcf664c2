package tagrelease

// NoneArg is the CLI placeholder for an empty platform or pre-release tag.
const NoneArg = "none"

// ReleaseTag names the git tag for a release.
type ReleaseTag struct {
	Version    Version
	Platform   string
	PreRelease string
}

// String renders v{version}[-{platform}][-{pre-release}].
func (t ReleaseTag) String() string {
	s := "v" + t.Version.String()
	if t.Platform != "" {
		s += "-" + t.Platform
	}
	if t.PreRelease != "" {
		s += "-" + t.PreRelease
	}
	return s
}

// CommitMessage is the message of the version bump commit.
func (t ReleaseTag) CommitMessage() string {
	return "version: " + t.String()
}

// TagArg maps the literal "none" to the empty string.
func TagArg(s string) string {
	if s == NoneArg {
		return ""
	}
	return s
}
