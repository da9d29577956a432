package release

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	bareMajorPattern      = regexp.MustCompile(`^v?\d+$`)
	bareMajorMinorPattern = regexp.MustCompile(`^v?\d+\.\d+$`)
)

// InferVersion expands partial version tags so they can be compared as
// semantic versions: a bare integer becomes <n>.0.0 and <major>.<minor>
// becomes <major>.<minor>.0, in both cases keeping any "v" prefix. Any
// other shape, including the empty string, is returned unchanged.
func InferVersion(tag string) string {
	if bareMajorPattern.MatchString(tag) {
		return tag + ".0.0"
	}
	if bareMajorMinorPattern.MatchString(tag) {
		return tag + ".0"
	}
	return tag
}

// parseVersion parses a full semantic version with an optional "v" prefix.
// It is strict on shape: partial versions like "1.2" do not parse, they
// must go through InferVersion first.
func parseVersion(tag string) (*semver.Version, bool) {
	v, err := semver.StrictNewVersion(strings.TrimPrefix(tag, "v"))
	if err != nil {
		return nil, false
	}
	return v, true
}

// majorBump reports whether current and previous are both valid semantic
// versions that differ at the major component.
func majorBump(current, previous string) bool {
	cur, ok := parseVersion(current)
	if !ok {
		return false
	}
	prev, ok := parseVersion(previous)
	if !ok {
		return false
	}
	return cur.Major() != prev.Major()
}
