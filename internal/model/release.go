package model

import "time"

// Release is one entry in the generated changelog, newest first in the
// final list. Category lists are nil when empty so encoders omit them.
type Release struct {
	// Tag is the version tag that closed this release window, or empty
	// for the unreleased bucket.
	Tag string `json:"tag,omitempty" yaml:"tag,omitempty"`

	Title    string    `json:"title" yaml:"title"`
	Date     time.Time `json:"date" yaml:"date"`
	ISODate  string    `json:"isoDate" yaml:"isoDate"`
	NiceDate string    `json:"niceDate" yaml:"niceDate"`

	FeatureCommits     []Commit `json:"featureCommits,omitempty" yaml:"featureCommits,omitempty"`
	BugFixCommits      []Commit `json:"bugFixCommits,omitempty" yaml:"bugFixCommits,omitempty"`
	ImprovementCommits []Commit `json:"improvementCommits,omitempty" yaml:"improvementCommits,omitempty"`
	OtherCommits       []Commit `json:"otherCommits,omitempty" yaml:"otherCommits,omitempty"`
	AllCommits         []Commit `json:"allCommits,omitempty" yaml:"allCommits,omitempty"`

	Merges []Merge    `json:"merges,omitempty" yaml:"merges,omitempty"`
	Fixes  []FixEntry `json:"fixes,omitempty" yaml:"fixes,omitempty"`

	// Summary is the body of the tagging commit's message, when summary
	// extraction is enabled and a body exists.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Major is set when this release bumps the semver major component
	// relative to the release before it.
	Major bool `json:"major,omitempty" yaml:"major,omitempty"`

	// CompareHref links to the remote's diff between the previous
	// release and this one. Empty when there is no previous tag or no
	// remote.
	CompareHref string `json:"compareHref,omitempty" yaml:"compareHref,omitempty"`
}

// IsUnreleased reports whether this entry is the untagged bucket that
// collects commits made after the newest tag.
func (r Release) IsUnreleased() bool {
	return r.Tag == ""
}

// IsEmpty reports whether the release surfaced no merges and no fix
// references. The slicer backfills empty releases with plain commits.
func (r Release) IsEmpty() bool {
	return len(r.Merges) == 0 && len(r.Fixes) == 0
}
