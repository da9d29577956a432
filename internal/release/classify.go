package release

import (
	"regexp"
	"strings"

	"github.com/ariel-frischer/shiplog/internal/model"
)

// Category is the semantic bucket a commit is classified into.
type Category int

const (
	CategoryFeature Category = iota
	CategoryBugFix
	CategoryEnhancement
	CategoryDeprecate
	CategoryRemove
	CategoryOther
)

// markers are checked in priority order; the first substring match wins.
var markers = []struct {
	text     string
	category Category
}{
	{"[feature]", CategoryFeature},
	{"[bug]", CategoryBugFix},
	{"[enhancement]", CategoryEnhancement},
	{"[deprecate]", CategoryDeprecate},
	{"[remove]", CategoryRemove},
}

// markerPattern strips every recognized marker from a subject regardless of
// capitalization, including markers that did not decide the category.
var markerPattern = regexp.MustCompile(`(?i)\[(feature|bug|enhancement|deprecate|remove)\]\s*`)

// Classification partitions a release's commit list. Every input commit
// appears in exactly one category slice and in All. Slices are nil when
// empty so the assembled release omits them.
type Classification struct {
	Features     []model.Commit
	BugFixes     []model.Commit
	Improvements []model.Commit
	Other        []model.Commit
	All          []model.Commit
}

// classifyCommit derives the display subject and category for one commit.
// It returns a copy; the input record is never modified. A commit with no
// subject is returned untouched as CategoryOther.
func classifyCommit(c model.Commit) (model.Commit, Category) {
	if c.Subject == "" {
		return c, CategoryOther
	}

	lowered := strings.ToLower(c.Subject)
	category := CategoryOther
	for _, m := range markers {
		if strings.Contains(lowered, m.text) {
			category = m.category
			break
		}
	}

	c.Subject = strings.TrimSpace(markerPattern.ReplaceAllString(c.Subject, ""))
	return c, category
}

// classifyAll classifies a release's filtered, sliced commits. Enhancement,
// deprecation, and removal commits all land in Improvements.
func classifyAll(commits []model.Commit) Classification {
	var cls Classification
	for _, c := range commits {
		display, category := classifyCommit(c)
		switch category {
		case CategoryFeature:
			cls.Features = append(cls.Features, display)
		case CategoryBugFix:
			cls.BugFixes = append(cls.BugFixes, display)
		case CategoryEnhancement, CategoryDeprecate, CategoryRemove:
			cls.Improvements = append(cls.Improvements, display)
		default:
			cls.Other = append(cls.Other, display)
		}
		cls.All = append(cls.All, display)
	}
	return cls
}
