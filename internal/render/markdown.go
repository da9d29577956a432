// Package render turns the assembled release list into output documents:
// a Markdown changelog, YAML/JSON encodings, and a colorized terminal view.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/shiplog/internal/model"
)

// categorySections pairs release category lists with their Markdown
// headings, in rendering order.
func categorySections(r model.Release) []struct {
	Heading string
	Commits []model.Commit
} {
	return []struct {
		Heading string
		Commits []model.Commit
	}{
		{"New Features", r.FeatureCommits},
		{"Bug Fixes", r.BugFixCommits},
		{"Improvements", r.ImprovementCommits},
		{"Other Changes", r.OtherCommits},
	}
}

// Markdown writes the full changelog document. The function is idempotent:
// the same release list always produces identical output.
func Markdown(releases []model.Release, w io.Writer) error {
	if _, err := fmt.Fprint(w, "# Changelog\n"); err != nil {
		return err
	}

	for _, r := range releases {
		if err := renderRelease(r, w); err != nil {
			return fmt.Errorf("rendering release %s: %w", r.Title, err)
		}
	}
	return nil
}

// MarkdownString renders to a string.
func MarkdownString(releases []model.Release) (string, error) {
	var b strings.Builder
	if err := Markdown(releases, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderRelease(r model.Release, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", releaseHeading(r)); err != nil {
		return err
	}

	if r.Summary != "" {
		if _, err := fmt.Fprintf(w, "\n%s\n", r.Summary); err != nil {
			return err
		}
	}

	if err := renderMerges(r.Merges, w); err != nil {
		return err
	}
	if err := renderFixes(r.Fixes, w); err != nil {
		return err
	}

	for _, section := range categorySections(r) {
		if len(section.Commits) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n### %s\n\n", section.Heading); err != nil {
			return err
		}
		for _, c := range section.Commits {
			if _, err := fmt.Fprintf(w, "- %s\n", commitLine(c)); err != nil {
				return err
			}
		}
	}
	return nil
}

// releaseHeading formats the release title line. Tagged releases with a
// compare link become linked headings; the unreleased bucket never carries
// a date.
func releaseHeading(r model.Release) string {
	if r.IsUnreleased() {
		if r.CompareHref != "" {
			return fmt.Sprintf("## [Unreleased](%s)", r.CompareHref)
		}
		return "## Unreleased"
	}

	title := r.Title
	if r.Major {
		title += " (major)"
	}
	if r.CompareHref != "" {
		return fmt.Sprintf("## [%s](%s) - %s", title, r.CompareHref, r.ISODate)
	}
	return fmt.Sprintf("## %s - %s", title, r.ISODate)
}

func renderMerges(merges []model.Merge, w io.Writer) error {
	if len(merges) == 0 {
		return nil
	}
	if _, err := fmt.Fprint(w, "\n### Merged\n\n"); err != nil {
		return err
	}
	for _, m := range merges {
		line := m.Message
		if m.Href != "" {
			line = fmt.Sprintf("%s [`#%s`](%s)", m.Message, m.ID, m.Href)
		} else {
			line = fmt.Sprintf("%s (#%s)", m.Message, m.ID)
		}
		if _, err := fmt.Fprintf(w, "- %s\n", line); err != nil {
			return err
		}
	}
	return nil
}

func renderFixes(fixes []model.FixEntry, w io.Writer) error {
	if len(fixes) == 0 {
		return nil
	}
	if _, err := fmt.Fprint(w, "\n### Fixed\n\n"); err != nil {
		return err
	}
	for _, f := range fixes {
		refs := make([]string, 0, len(f.Fixes))
		for _, fix := range f.Fixes {
			if fix.Href != "" {
				refs = append(refs, fmt.Sprintf("[`#%s`](%s)", fix.ID, fix.Href))
			} else {
				refs = append(refs, "#"+fix.ID)
			}
		}
		if _, err := fmt.Fprintf(w, "- %s %s\n", f.Commit.Subject, strings.Join(refs, " ")); err != nil {
			return err
		}
	}
	return nil
}

// commitLine formats a single commit bullet, linking the short hash when a
// remote href is available.
func commitLine(c model.Commit) string {
	if c.Href != "" {
		return fmt.Sprintf("%s [`%s`](%s)", c.Subject, c.ShortHash(), c.Href)
	}
	return fmt.Sprintf("%s (`%s`)", c.Subject, c.ShortHash())
}
