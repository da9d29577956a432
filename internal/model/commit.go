// Package model defines the data records exchanged between the git history
// collector, the release pipeline, and the renderers. Records are plain
// values; the pipeline never mutates a commit it was handed.
package model

import "time"

// Commit is a single commit as collected from the repository, newest first
// in any list the collector produces.
type Commit struct {
	Hash    string    `json:"hash" yaml:"hash"`
	Subject string    `json:"subject" yaml:"subject"`
	Message string    `json:"message,omitempty" yaml:"message,omitempty"`
	Date    time.Time `json:"date" yaml:"date"`

	// Tag is set only on the commit that closes a release window.
	Tag string `json:"tag,omitempty" yaml:"tag,omitempty"`

	// Merge is set when the commit is a recognized merge commit.
	Merge *Merge `json:"merge,omitempty" yaml:"merge,omitempty"`

	// Fixes lists issue references found in the commit message.
	Fixes []Fix `json:"fixes,omitempty" yaml:"fixes,omitempty"`

	// Breaking marks a breaking change. Breaking commits are never
	// filtered or truncated away.
	Breaking bool `json:"breaking,omitempty" yaml:"breaking,omitempty"`

	Insertions int `json:"insertions" yaml:"insertions"`
	Deletions  int `json:"deletions" yaml:"deletions"`

	// Href links to the commit on the remote, when one is configured.
	Href string `json:"href,omitempty" yaml:"href,omitempty"`
}

// ShortHash returns the abbreviated commit hash used in rendered output.
func (c Commit) ShortHash() string {
	if len(c.Hash) < 7 {
		return c.Hash
	}
	return c.Hash[:7]
}

// Delta returns the total line-change volume of the commit. The sorter
// uses it as a relevance proxy.
func (c Commit) Delta() int {
	return c.Insertions + c.Deletions
}

// Merge carries structured information extracted from a merge commit.
type Merge struct {
	ID      string `json:"id" yaml:"id"`
	Message string `json:"message" yaml:"message"`
	Href    string `json:"href,omitempty" yaml:"href,omitempty"`
}

// Fix is a single issue reference found in a commit message.
type Fix struct {
	ID   string `json:"id" yaml:"id"`
	Href string `json:"href,omitempty" yaml:"href,omitempty"`
}

// FixEntry pairs issue references with the commit that introduced them.
type FixEntry struct {
	Fixes  []Fix  `json:"fixes" yaml:"fixes"`
	Commit Commit `json:"commit" yaml:"commit"`
}
