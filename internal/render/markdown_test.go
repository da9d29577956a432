package render

import (
	"strings"
	"testing"
	"time"

	"github.com/ariel-frischer/shiplog/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownHeader(t *testing.T) {
	out, err := MarkdownString(nil)
	require.NoError(t, err)
	assert.Equal(t, "# Changelog\n", out)
}

func TestMarkdownReleaseHeadings(t *testing.T) {
	date := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		release model.Release
		want    string
	}{
		"tagged with compare link": {
			release: model.Release{
				Tag: "v2.0.0", Title: "v2.0.0", Date: date, ISODate: "2026-05-10",
				CompareHref: "https://example.com/compare/v1.0.0...v2.0.0",
			},
			want: "## [v2.0.0](https://example.com/compare/v1.0.0...v2.0.0) - 2026-05-10",
		},
		"tagged without compare link": {
			release: model.Release{Tag: "v1.0.0", Title: "v1.0.0", ISODate: "2026-05-10"},
			want:    "## v1.0.0 - 2026-05-10",
		},
		"major release marked": {
			release: model.Release{Tag: "v2.0.0", Title: "v2.0.0", ISODate: "2026-05-10", Major: true},
			want:    "## v2.0.0 (major) - 2026-05-10",
		},
		"unreleased with link": {
			release: model.Release{Title: "Unreleased", CompareHref: "https://example.com/compare/v1.0.0...HEAD"},
			want:    "## [Unreleased](https://example.com/compare/v1.0.0...HEAD)",
		},
		"unreleased carries no date": {
			release: model.Release{Title: "Unreleased", ISODate: "2026-05-10"},
			want:    "## Unreleased",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := MarkdownString([]model.Release{tt.release})
			require.NoError(t, err)
			assert.Contains(t, out, tt.want+"\n")
		})
	}
}

func TestMarkdownSections(t *testing.T) {
	release := model.Release{
		Tag: "v1.0.0", Title: "v1.0.0", ISODate: "2026-05-10",
		Summary: "First stable release.",
		Merges: []model.Merge{
			{ID: "12", Message: "add login", Href: "https://example.com/pull/12"},
			{ID: "13", Message: "add logout"},
		},
		Fixes: []model.FixEntry{
			{Fixes: []model.Fix{{ID: "7", Href: "https://example.com/issues/7"}}, Commit: model.Commit{Subject: "fix crash"}},
		},
		FeatureCommits: []model.Commit{
			{Subject: "add X", Hash: "abcdef0123456789", Href: "https://example.com/commit/abcdef0"},
		},
		OtherCommits: []model.Commit{
			{Subject: "tidy docs", Hash: "1234567890abcdef"},
		},
	}

	out, err := MarkdownString([]model.Release{release})
	require.NoError(t, err)

	assert.Contains(t, out, "First stable release.")
	assert.Contains(t, out, "### Merged\n\n- add login [`#12`](https://example.com/pull/12)\n- add logout (#13)\n")
	assert.Contains(t, out, "### Fixed\n\n- fix crash [`#7`](https://example.com/issues/7)\n")
	assert.Contains(t, out, "### New Features\n\n- add X [`abcdef0`](https://example.com/commit/abcdef0)\n")
	assert.Contains(t, out, "### Other Changes\n\n- tidy docs (`1234567`)\n")

	assert.NotContains(t, out, "### Bug Fixes", "empty sections are omitted")
	assert.NotContains(t, out, "### Improvements")
}

func TestMarkdownIsDeterministic(t *testing.T) {
	releases := []model.Release{
		{Tag: "v2.0.0", Title: "v2.0.0", ISODate: "2026-05-10",
			FeatureCommits: []model.Commit{{Subject: "add X", Hash: "aaaaaaaa"}}},
		{Tag: "v1.0.0", Title: "v1.0.0", ISODate: "2026-05-01",
			OtherCommits: []model.Commit{{Subject: "init", Hash: "bbbbbbbb"}}},
	}

	first, err := MarkdownString(releases)
	require.NoError(t, err)
	second, err := MarkdownString(releases)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Less(t, strings.Index(first, "v2.0.0"), strings.Index(first, "v1.0.0"),
		"releases render in input order")
}
