package bump

import (
	"errors"
	"fmt"
)

var (
	// ErrOverflow is returned when a major, minor or patch bump would wrap
	ErrOverflow = errors.New("version component overflows uint64")

	// ErrNoTags is returned when no semantic version tag is reachable
	ErrNoTags = errors.New("no semantic version tag found")
)

// VersionFormatError reports input that is not a semantic version
type VersionFormatError struct {
	Input string
	Err   error
}

func (e *VersionFormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid semantic version %q", e.Input)
	}
	return fmt.Sprintf("invalid semantic version %q: %v", e.Input, e.Err)
}

func (e *VersionFormatError) Unwrap() error {
	return e.Err
}

// ParseError reports a numeric suffix that could not be incremented
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing numeric suffix %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormatError reports a computed identifier that the target grammar rejects
type FormatError struct {
	Identifier string
	Value      string
	Err        error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s identifier %q: %v", e.Identifier, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// InputError reports a bump with neither an existing identifier nor a tag
type InputError struct {
	Identifier string
}

func (e *InputError) Error() string {
	if e.Identifier == "" {
		return "there is no identifier to increment and you did not provide one"
	}
	return fmt.Sprintf("the current version does not have a %s identifier and you did not provide one", e.Identifier)
}
