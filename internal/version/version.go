// Package version resolves semantic versions and rewrites dependency
// specifiers during a workspace bump. Range evaluation is out of scope; the
// only operations are coercion, pre-release inspection, and specifier
// splicing.
package version

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrInvalid indicates a string that cannot be coerced to a semantic version.
var ErrInvalid = errors.New("invalid semantic version")

// Info describes a parsed version for distribution-tag defaulting.
type Info struct {
	Version      *semver.Version
	IsPreRelease bool
	// PreReleaseID is the first pre-release identifier when it is
	// non-numeric (e.g. "beta" for 1.0.0-beta.1), otherwise empty.
	PreReleaseID string
}

// bareVersion matches a version embedded in a range specifier like "^1.2.3".
var bareVersion = regexp.MustCompile(`\d+(?:\.\d+){0,2}(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?`)

// Parse coerces raw into a semantic version and inspects its pre-release
// component. An empty input yields a zero Info without error.
func Parse(raw string) (Info, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Info{}, nil
	}
	v, err := coerce(raw)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %q", ErrInvalid, raw)
	}
	info := Info{Version: v}
	if pre := v.Prerelease(); pre != "" {
		info.IsPreRelease = true
		id, _, _ := strings.Cut(pre, ".")
		if _, err := strconv.Atoi(id); err != nil {
			info.PreReleaseID = id
		}
	}
	return info, nil
}

// coerce accepts strict versions as-is and otherwise falls back to lenient
// parsing, including versions buried in a larger string.
func coerce(raw string) (*semver.Version, error) {
	if v, err := semver.StrictNewVersion(raw); err == nil {
		return v, nil
	}
	if v, err := semver.NewVersion(raw); err == nil {
		return v, nil
	}
	if m := bareVersion.FindString(raw); m != "" {
		return semver.NewVersion(m)
	}
	return nil, ErrInvalid
}

// Rewrite produces the replacement specifier for a workspace dependency once
// its package is bumped to newVersion. An exact version specifier becomes
// newVersion; a range specifier keeps its operator text and has only the
// embedded version spliced out ("^1.2.3" -> "^2.0.0"); anything that carries
// no recognizable version (e.g. "workspace:*") falls back to the bare
// newVersion.
func Rewrite(spec, newVersion string) string {
	if _, err := semver.StrictNewVersion(spec); err == nil {
		return newVersion
	}
	if loc := bareVersion.FindStringIndex(spec); loc != nil {
		if _, err := semver.NewVersion(spec[loc[0]:loc[1]]); err == nil {
			return spec[:loc[0]] + newVersion + spec[loc[1]:]
		}
	}
	return newVersion
}
