// Package gitlog collects commit history from a git repository using the
// go-git library, producing the newest-first commit records the release
// pipeline consumes. No git CLI is required.
package gitlog

import (
	"fmt"
	"regexp"

	"github.com/ariel-frischer/shiplog/internal/model"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Linker builds web links for individual records. A nil Linker leaves all
// href fields empty.
type Linker interface {
	CommitLink(hash string) string
	IssueLink(id string) string
	MergeLink(id string) string
}

// Options controls history collection.
type Options struct {
	// TagPattern restricts which tags close release windows. Tags that
	// don't match are ignored entirely. Nil keeps every tag.
	TagPattern *regexp.Regexp

	// BreakingPattern marks commits whose message matches as breaking
	// changes. Nil marks nothing.
	BreakingPattern *regexp.Regexp

	// Linker attaches remote hrefs to commits, merges, and fixes.
	Linker Linker
}

// Collector reads commit history from one repository.
type Collector struct {
	repo *git.Repository
}

// Open opens the repository containing path, traversing up to find the
// .git directory. An empty path means the current working directory.
func Open(path string) (*Collector, error) {
	if path == "" {
		path = "."
	}
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return &Collector{repo: repo}, nil
}

// OriginURL returns the first URL of the "origin" remote, or an empty
// string when the repository has no origin configured.
func (c *Collector) OriginURL() string {
	rem, err := c.repo.Remote("origin")
	if err != nil {
		return ""
	}
	urls := rem.Config().URLs
	if len(urls) == 0 {
		return ""
	}
	return urls[0]
}

// Root returns the absolute path of the repository worktree.
func (c *Collector) Root() (string, error) {
	worktree, err := c.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	return worktree.Filesystem.Root(), nil
}

// Commits walks history from the given branch head (or HEAD when branch is
// empty) in committer-time order, newest first, and builds one record per
// commit. Local branch names are tried first, then origin-tracking refs.
func (c *Collector) Commits(branch string, opts Options) ([]model.Commit, error) {
	head, err := c.resolveStart(branch)
	if err != nil {
		return nil, err
	}

	tags, err := c.tagIndex(opts.TagPattern)
	if err != nil {
		return nil, err
	}

	iter, err := c.repo.Log(&git.LogOptions{
		From:  head,
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("walking history: %w", err)
	}
	defer iter.Close()

	var commits []model.Commit
	err = iter.ForEach(func(commit *object.Commit) error {
		commits = append(commits, buildRecord(commit, tags, opts))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading commits: %w", err)
	}
	return commits, nil
}

// resolveStart resolves the revision to walk from.
func (c *Collector) resolveStart(branch string) (plumbing.Hash, error) {
	if branch == "" {
		head, err := c.repo.Head()
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("resolving HEAD: %w", err)
		}
		return head.Hash(), nil
	}

	hash, err := c.repo.ResolveRevision(plumbing.Revision(branch))
	if err == nil {
		return *hash, nil
	}

	hash, remoteErr := c.repo.ResolveRevision(plumbing.Revision("origin/" + branch))
	if remoteErr != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving branch %q: %w", branch, err)
	}
	return *hash, nil
}

// tagIndex maps commit hashes to the tag names pointing at them. Annotated
// tags are resolved to their target commit. Tags failing the configured
// pattern are skipped.
func (c *Collector) tagIndex(pattern *regexp.Regexp) (map[plumbing.Hash]string, error) {
	refs, err := c.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	index := make(map[plumbing.Hash]string)
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if pattern != nil && !pattern.MatchString(name) {
			return nil
		}
		target := ref.Hash()
		if tagObj, tagErr := c.repo.TagObject(target); tagErr == nil {
			target = tagObj.Target
		}
		index[target] = name
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("indexing tags: %w", err)
	}
	return index, nil
}

// buildRecord converts one go-git commit into the pipeline's record form.
func buildRecord(commit *object.Commit, tags map[plumbing.Hash]string, opts Options) model.Commit {
	subject, _ := splitSubject(commit.Message)

	record := model.Commit{
		Hash:    commit.Hash.String(),
		Subject: subject,
		Message: commit.Message,
		Date:    commit.Author.When,
		Tag:     tags[commit.Hash],
		Merge:   parseMerge(commit.Message),
		Fixes:   parseFixes(commit.Message),
	}

	if opts.BreakingPattern != nil && opts.BreakingPattern.MatchString(commit.Message) {
		record.Breaking = true
	}

	if stats, err := commit.Stats(); err == nil {
		for _, fs := range stats {
			record.Insertions += fs.Addition
			record.Deletions += fs.Deletion
		}
	}

	if opts.Linker != nil {
		record.Href = opts.Linker.CommitLink(record.Hash)
		if record.Merge != nil {
			record.Merge.Href = opts.Linker.MergeLink(record.Merge.ID)
		}
		for i := range record.Fixes {
			record.Fixes[i].Href = opts.Linker.IssueLink(record.Fixes[i].ID)
		}
	}

	return record
}
