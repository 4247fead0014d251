// Package bump increments semantic versions: major, minor and patch numbers,
// and the trailing counters of pre-release and build identifiers.
package bump

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Kind selects which component of a version is bumped
type Kind int

const (
	Major Kind = iota
	Minor
	Patch
	Prerelease
	Build
)

var kindNames = map[Kind]string{
	Major:      "major",
	Minor:      "minor",
	Patch:      "patch",
	Prerelease: "prerelease",
	Build:      "build",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the Kind named by s, ignoring case
func ParseKind(s string) (Kind, error) {
	for kind, name := range kindNames {
		if strings.EqualFold(s, name) {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown bump kind %q", s)
}

// TagRelation classifies a user-supplied tag against the identifier it is
// about to replace. Relations are tested in declaration order.
type TagRelation int

const (
	// TagEmpty means no tag was supplied
	TagEmpty TagRelation = iota
	// TagEqualsCurrent means the tag is exactly the current identifier
	TagEqualsCurrent
	// TagIsPrefixOfCurrent means the current identifier starts with the tag
	// followed by a separator
	TagIsPrefixOfCurrent
	// TagUnrelated covers every other tag
	TagUnrelated
)

func (r TagRelation) String() string {
	switch r {
	case TagEmpty:
		return "empty"
	case TagEqualsCurrent:
		return "equals-current"
	case TagIsPrefixOfCurrent:
		return "prefix-of-current"
	case TagUnrelated:
		return "unrelated"
	default:
		return fmt.Sprintf("TagRelation(%d)", int(r))
	}
}

// TagOptions configures discovery of the current version from Git tags
type TagOptions struct {
	// Repository is the Git repository to analyze
	Repository *git.Repository

	// Commitish specifies where the tag search starts (default: "HEAD")
	Commitish plumbing.Revision

	// TagFilter allows filtering which tags to consider
	TagFilter func(string) bool

	// TagPattern is a regex pattern to filter tags (alternative to TagFilter)
	TagPattern string
}
