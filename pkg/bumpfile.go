package tagrelease

import (
	"errors"
	"regexp"
)

// versionPattern finds a version string in a file. Group 1 is the text before
// the version, group 2 the version itself.
type versionPattern struct {
	Name    string
	Pattern *regexp.Regexp
}

const semverExpr = `v?\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?`

// bumpPatterns are tried in order; the first pattern with a match wins, so
// the primary version of a manifest is preferred over dependency versions.
var bumpPatterns = []versionPattern{
	{
		Name:    "top-level JSON version field",
		Pattern: regexp.MustCompile(`(?m)^([ \t]{0,2}"version"\s*:\s*")(` + semverExpr + `)"`),
	},
	{
		Name:    "TOML version field",
		Pattern: regexp.MustCompile(`(?m)^([ \t]*version\s*=\s*")(` + semverExpr + `)"`),
	},
	{
		Name:    "XML version tag",
		Pattern: regexp.MustCompile(`(<version>\s*)(` + semverExpr + `)\s*</version>`),
	},
	{
		Name:    "VERSION assignment",
		Pattern: regexp.MustCompile(`(?mi)^([ \t]*(?:export\s+)?version\s*[:=]\s*["']?)(` + semverExpr + `)`),
	},
}

var errNoVersionInFile = errors.New("no version string found")

// BumpMatch describes the version string a bump file carried.
type BumpMatch struct {
	Pattern string
	Old     string
	Offset  int
}

// findBumpVersion returns the main version in content.
func findBumpVersion(content []byte) (BumpMatch, []int, bool) {
	for _, vp := range bumpPatterns {
		loc := vp.Pattern.FindSubmatchIndex(content)
		if loc == nil {
			continue
		}
		return BumpMatch{
			Pattern: vp.Name,
			Old:     string(content[loc[4]:loc[5]]),
			Offset:  loc[4],
		}, loc, true
	}
	return BumpMatch{}, nil, false
}

// ScanBumpFile reports the version a bump file would have replaced, without
// writing anything.
func ScanBumpFile(files Files, path string) (BumpMatch, error) {
	content, err := files.ReadFile(path)
	if err != nil {
		return BumpMatch{}, newError(KindWrite, "read bump file", path, err)
	}
	m, _, ok := findBumpVersion(content)
	if !ok {
		return BumpMatch{}, newError(KindWrite, "scan bump file", path, errNoVersionInFile)
	}
	return m, nil
}

// BumpFile replaces the main version string in path with v. A "v" prefix on
// the old version is kept.
func BumpFile(files Files, path string, v Version) (BumpMatch, error) {
	content, err := files.ReadFile(path)
	if err != nil {
		return BumpMatch{}, newError(KindWrite, "read bump file", path, err)
	}
	m, loc, ok := findBumpVersion(content)
	if !ok {
		return BumpMatch{}, newError(KindWrite, "bump file", path, errNoVersionInFile)
	}

	replacement := v.String()
	if len(m.Old) > 0 && m.Old[0] == 'v' {
		replacement = "v" + replacement
	}

	out := make([]byte, 0, len(content)+len(replacement))
	out = append(out, content[:loc[4]]...)
	out = append(out, replacement...)
	out = append(out, content[loc[5]:]...)
	if err := files.WriteFile(path, out); err != nil {
		return BumpMatch{}, newError(KindWrite, "bump file", path, err)
	}
	return m, nil
}
