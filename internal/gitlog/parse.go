package gitlog

import (
	"regexp"
	"strings"

	"github.com/ariel-frischer/shiplog/internal/model"
)

// mergePatterns recognize the merge-commit messages the major hosts write.
// The subject and the pull-request title span the first blank line, so
// patterns match against the full message.
var mergePatterns = []struct {
	re     *regexp.Regexp
	idIdx  int
	msgIdx int
}{
	// GitHub
	{regexp.MustCompile(`Merge pull request #(\d+) from .+\n\n(.+)`), 1, 2},
	// Bitbucket
	{regexp.MustCompile(`Merged in .+ \(pull request #(\d+)\)\n\n(.+)`), 1, 2},
	// GitLab
	{regexp.MustCompile(`Merge branch .+ into .+\n\n(.+)[\S\s]+See merge request [^!]*!(\d+)`), 2, 1},
}

// fixPattern finds issue references in commit messages, either "#123" or a
// full issue/PR URL following a closing keyword.
var fixPattern = regexp.MustCompile(`(?i)(?:close[sd]?|fix(?:e[sd])?|resolve[sd]?)\s(?:#(\d+)|https?://\S+/(?:issues|pull|pull-requests|merge_requests)/(\d+))`)

// splitSubject returns the first line of a commit message and the rest.
func splitSubject(message string) (subject, body string) {
	subject, body, _ = strings.Cut(message, "\n")
	return strings.TrimSpace(subject), body
}

// parseMerge extracts structured merge info from a merge-commit message,
// or nil when the message matches no known host format.
func parseMerge(message string) *model.Merge {
	for _, p := range mergePatterns {
		m := p.re.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		return &model.Merge{
			ID:      m[p.idIdx],
			Message: strings.TrimSpace(m[p.msgIdx]),
		}
	}
	return nil
}

// parseFixes extracts every issue reference from a commit message.
func parseFixes(message string) []model.Fix {
	matches := fixPattern.FindAllStringSubmatch(message, -1)
	if matches == nil {
		return nil
	}
	fixes := make([]model.Fix, 0, len(matches))
	for _, m := range matches {
		id := m[1]
		if id == "" {
			id = m[2]
		}
		fixes = append(fixes, model.Fix{ID: id})
	}
	return fixes
}
