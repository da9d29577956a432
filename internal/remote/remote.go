// Package remote turns a git remote URL into the web links rendered in the
// changelog: commit, issue, merge, and release-comparison links for GitHub,
// GitLab, and Bitbucket style hosts.
package remote

import (
	"fmt"
	"strings"
)

// host kinds with differing link shapes.
const (
	kindGitHub = iota
	kindGitLab
	kindBitbucket
)

// Remote builds web links for a parsed remote URL.
type Remote struct {
	// Host, Owner, and Name identify the repository, e.g.
	// "github.com", "ariel-frischer", "shiplog".
	Host  string
	Owner string
	Name  string

	kind int
}

// Parse interprets a remote URL in HTTPS, ssh://, or SCP form. Returns nil
// when the URL is empty or doesn't look like a hosted repository; callers
// treat a nil Remote as "no links".
func Parse(url string) *Remote {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil
	}

	url = strings.TrimSuffix(url, ".git")

	// SCP form: git@host:owner/name
	if !strings.Contains(url, "://") {
		if at := strings.Index(url, "@"); at >= 0 {
			url = url[at+1:]
		}
		url = strings.Replace(url, ":", "/", 1)
	} else {
		url = url[strings.Index(url, "://")+3:]
		if at := strings.Index(url, "@"); at >= 0 {
			url = url[at+1:]
		}
	}

	parts := strings.SplitN(url, "/", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return nil
	}

	r := &Remote{Host: parts[0], Owner: parts[1], Name: parts[2]}
	switch {
	case strings.Contains(r.Host, "gitlab"):
		r.kind = kindGitLab
	case strings.Contains(r.Host, "bitbucket"):
		r.kind = kindBitbucket
	default:
		r.kind = kindGitHub
	}
	return r
}

// URL returns the repository's web base URL.
func (r *Remote) URL() string {
	return fmt.Sprintf("https://%s/%s/%s", r.Host, r.Owner, r.Name)
}

// CompareLink links to the diff between two refs.
func (r *Remote) CompareLink(from, to string) string {
	if from == "" || to == "" {
		return ""
	}
	if r.kind == kindBitbucket {
		return fmt.Sprintf("%s/compare/%s..%s", r.URL(), to, from)
	}
	return fmt.Sprintf("%s/compare/%s...%s", r.URL(), from, to)
}

// CommitLink links to a single commit.
func (r *Remote) CommitLink(hash string) string {
	if r.kind == kindBitbucket {
		return fmt.Sprintf("%s/commits/%s", r.URL(), hash)
	}
	return fmt.Sprintf("%s/commit/%s", r.URL(), hash)
}

// IssueLink links to an issue by number.
func (r *Remote) IssueLink(id string) string {
	return fmt.Sprintf("%s/issues/%s", r.URL(), id)
}

// MergeLink links to a pull/merge request by number.
func (r *Remote) MergeLink(id string) string {
	switch r.kind {
	case kindGitLab:
		return fmt.Sprintf("%s/merge_requests/%s", r.URL(), id)
	case kindBitbucket:
		return fmt.Sprintf("%s/pull-requests/%s", r.URL(), id)
	default:
		return fmt.Sprintf("%s/pull/%s", r.URL(), id)
	}
}
