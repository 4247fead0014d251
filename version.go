package bump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/blang/semver"
	log "github.com/sirupsen/logrus"
)

// Parse parses a semantic version, ignoring surrounding whitespace
func Parse(s string) (semver.Version, error) {
	trimmed := strings.TrimSpace(s)
	version, err := semver.Parse(trimmed)
	if err != nil {
		return semver.Version{}, &VersionFormatError{Input: trimmed, Err: err}
	}
	return version, nil
}

// ReadVersion reads a single line from r and parses it as a semantic version
func ReadVersion(r io.Reader) (semver.Version, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return semver.Version{}, fmt.Errorf("reading version: %w", err)
	}
	return Parse(line)
}

// Bump returns a new version with the component selected by kind incremented.
// The tag only applies to Prerelease and Build.
func Bump(previous semver.Version, kind Kind, tag string) (semver.Version, error) {
	return defaultIncrementer.Bump(previous, kind, tag)
}

// Bump is like the package level Bump but uses inc for identifier counters
func (inc *Incrementer) Bump(previous semver.Version, kind Kind, tag string) (semver.Version, error) {
	log.WithFields(log.Fields{
		"version": previous.String(),
		"kind":    kind,
	}).Debug("bumping version")

	switch kind {
	case Major:
		return BumpMajor(previous)
	case Minor:
		return BumpMinor(previous)
	case Patch:
		return BumpPatch(previous)
	case Prerelease:
		return inc.BumpIdentifier(previous, tag, PrereleaseField)
	case Build:
		return inc.BumpIdentifier(previous, tag, BuildField)
	default:
		return semver.Version{}, fmt.Errorf("unknown bump kind %v", kind)
	}
}

// BumpMajor increments the major version for a breaking change
func BumpMajor(previous semver.Version) (semver.Version, error) {
	if previous.Major == math.MaxUint64 {
		return semver.Version{}, fmt.Errorf("bumping major version: %w", ErrOverflow)
	}
	return semver.Version{Major: previous.Major + 1}, nil
}

// BumpMinor increments the minor version for a new feature
func BumpMinor(previous semver.Version) (semver.Version, error) {
	if previous.Minor == math.MaxUint64 {
		return semver.Version{}, fmt.Errorf("bumping minor version: %w", ErrOverflow)
	}
	return semver.Version{Major: previous.Major, Minor: previous.Minor + 1}, nil
}

// BumpPatch increments the patch version for a bug fix
func BumpPatch(previous semver.Version) (semver.Version, error) {
	if previous.Patch == math.MaxUint64 {
		return semver.Version{}, fmt.Errorf("bumping patch version: %w", ErrOverflow)
	}
	return semver.Version{Major: previous.Major, Minor: previous.Minor, Patch: previous.Patch + 1}, nil
}

// BumpPrerelease increments the counter at the end of the pre-release
// identifier, or replaces the identifier with tag. Build metadata is dropped.
func BumpPrerelease(previous semver.Version, tag string) (semver.Version, error) {
	return defaultIncrementer.BumpIdentifier(previous, tag, PrereleaseField)
}

// BumpBuild increments the counter at the end of the build identifier, or
// replaces the identifier with tag. The pre-release is kept.
func BumpBuild(previous semver.Version, tag string) (semver.Version, error) {
	return defaultIncrementer.BumpIdentifier(previous, tag, BuildField)
}

// BumpIdentifier returns a copy of previous without build metadata whose
// field id holds the identifier following the current one.
func (inc *Incrementer) BumpIdentifier(previous semver.Version, tag string, id Identifier) (semver.Version, error) {
	next := semver.Version{
		Major: previous.Major,
		Minor: previous.Minor,
		Patch: previous.Patch,
	}
	if len(previous.Pre) > 0 {
		next.Pre = append([]semver.PRVersion(nil), previous.Pre...)
	}

	current := id.Format(previous)
	if current == "" && tag == "" {
		return semver.Version{}, &InputError{Identifier: id.Name()}
	}

	identifier, err := inc.Increment(current, tag)
	if err != nil {
		return semver.Version{}, fmt.Errorf("incrementing %s identifier: %w", id.Name(), err)
	}

	if err := id.Apply(&next, identifier); err != nil {
		return semver.Version{}, err
	}
	return next, nil
}
