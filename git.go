// Package bump increments semantic versions.
//
// This file contains code adapted from pulumictl (https://github.com/pulumi/pulumictl)
// which is licensed under the Apache License 2.0.
package bump

import (
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/blang/semver"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	log "github.com/sirupsen/logrus"
	modsemver "golang.org/x/mod/semver"
)

// OpenRepository opens a Git repository at the specified path
func OpenRepository(path string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
}

// LatestTag returns the version of the semver tag closest to the configured
// commit. When several tags point at that commit the highest one wins.
func LatestTag(opts TagOptions) (semver.Version, error) {
	if opts.Repository == nil {
		return semver.Version{}, fmt.Errorf("repository is required")
	}

	if opts.Commitish == "" {
		opts.Commitish = "HEAD"
	}

	// Apply tag pattern filter if specified
	if opts.TagPattern != "" && opts.TagFilter == nil {
		re, err := regexp.Compile(opts.TagPattern)
		if err != nil {
			return semver.Version{}, fmt.Errorf("invalid tag pattern: %w", err)
		}
		opts.TagFilter = func(tag string) bool {
			return re.MatchString(tag)
		}
	}

	revision, err := opts.Repository.ResolveRevision(opts.Commitish)
	if err != nil {
		return semver.Version{}, fmt.Errorf("resolving commitish: %w", err)
	}

	commit, err := opts.Repository.CommitObject(*revision)
	if err != nil {
		return semver.Version{}, fmt.Errorf("getting commit object: %w", err)
	}

	tagged, err := versionTagsByCommit(opts.Repository, opts.TagFilter)
	if err != nil {
		return semver.Version{}, fmt.Errorf("listing version tags: %w", err)
	}

	var latest string
	walker := object.NewCommitPreorderIter(commit, nil, nil)
	err = walker.ForEach(func(c *object.Commit) error {
		versions, ok := tagged[c.Hash]
		if !ok {
			return nil
		}
		latest = highestVersion(versions)
		return storer.ErrStop
	})
	if err != nil {
		return semver.Version{}, fmt.Errorf("walking history: %w", err)
	}

	if latest == "" {
		return semver.Version{}, ErrNoTags
	}

	log.WithFields(log.Fields{
		"commitish": opts.Commitish,
		"version":   latest,
	}).Debug("found version tag")

	return Parse(latest)
}

// versionTagsByCommit maps each tagged commit to the semantic versions of its
// tags. Tags that are not semantic versions are ignored.
func versionTagsByCommit(repo *git.Repository, tagFilter func(string) bool) (map[plumbing.Hash][]string, error) {
	tags, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	tagged := make(map[plumbing.Hash][]string)
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}

		name := ref.Name().Short()
		if tagFilter != nil && !tagFilter(name) {
			return nil
		}

		version := stripModuleTagPrefixes(name)
		if _, err := semver.Parse(version); err != nil {
			log.WithField("tag", name).Debug("skipping non-semver tag")
			return nil
		}

		obj, err := repo.TagObject(ref.Hash())
		switch err {
		case nil:
			// Annotated tag
			tagged[obj.Target] = append(tagged[obj.Target], version)
		case plumbing.ErrObjectNotFound:
			// Lightweight tag
			tagged[ref.Hash()] = append(tagged[ref.Hash()], version)
		default:
			return err
		}

		return nil
	})

	return tagged, err
}

func stripModuleTagPrefixes(tag string) string {
	_, versionComponent := path.Split(tag)
	return strings.TrimPrefix(versionComponent, "v")
}

func highestVersion(versions []string) string {
	sorted := append([]string(nil), versions...)
	sort.Slice(sorted, func(i, j int) bool {
		if c := modsemver.Compare("v"+sorted[i], "v"+sorted[j]); c != 0 {
			return c > 0
		}
		return sorted[i] > sorted[j]
	})
	return sorted[0]
}
