package bump

import (
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
)

var testSignature = &object.Signature{
	Name:  "test",
	Email: "test@example.com",
	When:  time.Now(),
}

// testRepoCreate creates a new in-memory git repository for testing
func testRepoCreate() (*git.Repository, error) {
	storage := memory.NewStorage()
	fs := memfs.New()
	return git.Init(storage, fs)
}

// testRepoCommit writes a file, adds it and commits it, returning the commit hash
func testRepoCommit(repo *git.Repository, filename, content string) (plumbing.Hash, error) {
	workTree, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, err
	}

	err = writeFile(workTree.Filesystem, filename, content)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	_, err = workTree.Add(filename)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	return workTree.Commit("Commit "+filename, &git.CommitOptions{Author: testSignature})
}

// testRepoWithTags creates one commit per entry, tagging each commit with the
// tags listed for it. It returns the commit hashes in order.
func testRepoWithTags(repo *git.Repository, tagsPerCommit [][]string) ([]plumbing.Hash, error) {
	hashes := make([]plumbing.Hash, 0, len(tagsPerCommit))
	for i, tags := range tagsPerCommit {
		hash, err := testRepoCommit(repo, "file_"+string(rune('a'+i))+".txt", "content")
		if err != nil {
			return nil, err
		}

		for _, tag := range tags {
			_, err = repo.CreateTag(tag, hash, nil)
			if err != nil {
				return nil, err
			}
		}
		hashes = append(hashes, hash)
	}

	return hashes, nil
}

// testRepoAnnotatedTag creates an annotated tag pointing at hash
func testRepoAnnotatedTag(repo *git.Repository, name string, hash plumbing.Hash) error {
	_, err := repo.CreateTag(name, hash, &git.CreateTagOptions{
		Tagger:  testSignature,
		Message: "Release " + name,
	})
	return err
}

// writeFile writes content to a file in the given filesystem
func writeFile(fs billy.Filesystem, filename, content string) error {
	file, err := fs.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.Write([]byte(content))
	return err
}
