package bump

import (
	"strings"

	"github.com/blang/semver"
)

// Identifier is a version field holding a dot separated identifier: the
// pre-release or the build metadata.
type Identifier interface {
	// Name is used in error messages
	Name() string
	// Format returns the field of v as a string, empty when absent
	Format(v semver.Version) string
	// Apply validates value against the field grammar and stores it in v
	Apply(v *semver.Version, value string) error
}

var (
	// PrereleaseField is the identifier after "-" in a version
	PrereleaseField Identifier = prereleaseField{}
	// BuildField is the identifier after "+" in a version
	BuildField Identifier = buildField{}
)

type prereleaseField struct{}

func (prereleaseField) Name() string {
	return "pre-release"
}

func (prereleaseField) Format(v semver.Version) string {
	parts := make([]string, len(v.Pre))
	for i, pre := range v.Pre {
		parts[i] = pre.String()
	}
	return strings.Join(parts, ".")
}

func (f prereleaseField) Apply(v *semver.Version, value string) error {
	if value == "" {
		v.Pre = nil
		return nil
	}

	parts := strings.Split(value, ".")
	pre := make([]semver.PRVersion, 0, len(parts))
	for _, part := range parts {
		prv, err := semver.NewPRVersion(part)
		if err != nil {
			return &FormatError{Identifier: f.Name(), Value: value, Err: err}
		}
		pre = append(pre, prv)
	}
	v.Pre = pre
	return nil
}

type buildField struct{}

func (buildField) Name() string {
	return "build"
}

func (buildField) Format(v semver.Version) string {
	return strings.Join(v.Build, ".")
}

func (f buildField) Apply(v *semver.Version, value string) error {
	if value == "" {
		v.Build = nil
		return nil
	}

	parts := strings.Split(value, ".")
	build := make([]string, 0, len(parts))
	for _, part := range parts {
		b, err := semver.NewBuildVersion(part)
		if err != nil {
			return &FormatError{Identifier: f.Name(), Value: value, Err: err}
		}
		build = append(build, b)
	}
	v.Build = build
	return nil
}
