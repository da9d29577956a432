package render

import (
	"fmt"
	"io"
	"os"

	"github.com/ariel-frischer/shiplog/internal/model"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// sectionStyle defines the color and icon for a release section heading.
type sectionStyle struct {
	color *color.Color
	icon  string
}

var sectionStyles = map[string]sectionStyle{
	"New Features":  {color.New(color.FgGreen), "✓"},
	"Bug Fixes":     {color.New(color.FgYellow), "⚡"},
	"Improvements":  {color.New(color.FgBlue), "~"},
	"Other Changes": {color.New(color.FgWhite), "•"},
	"Merged":        {color.New(color.FgMagenta), "⇄"},
	"Fixed":         {color.New(color.FgCyan), "#"},
}

// TerminalOptions controls the preview formatting.
type TerminalOptions struct {
	Plain    bool // disable colors and icons
	MaxWidth int  // maximum line width, 0 = auto-detect
}

// Terminal writes a colorized preview of the release list, one block per
// release, truncating lines to the terminal width.
func Terminal(releases []model.Release, w io.Writer, opts TerminalOptions) error {
	width := resolveWidth(opts.MaxWidth)

	for i, r := range releases {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := terminalRelease(r, w, opts, width); err != nil {
			return fmt.Errorf("formatting release %s: %w", r.Title, err)
		}
	}
	return nil
}

func terminalRelease(r model.Release, w io.Writer, opts TerminalOptions, width int) error {
	header := r.Title
	if !r.IsUnreleased() {
		header = fmt.Sprintf("%s (%s)", r.Title, r.ISODate)
	}
	if r.Major {
		header += " (major)"
	}
	if !opts.Plain {
		header = color.New(color.Bold).Sprint(header)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	if err := terminalSection("Merged", mergeLines(r.Merges), w, opts, width); err != nil {
		return err
	}
	if err := terminalSection("Fixed", fixLines(r.Fixes), w, opts, width); err != nil {
		return err
	}
	for _, section := range categorySections(r) {
		if err := terminalSection(section.Heading, subjectLines(section.Commits), w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

func terminalSection(heading string, lines []string, w io.Writer, opts TerminalOptions, width int) error {
	if len(lines) == 0 {
		return nil
	}

	label := heading
	if !opts.Plain {
		if style, ok := sectionStyles[heading]; ok {
			label = style.color.Sprintf("%s %s", style.icon, heading)
		}
	}
	if _, err := fmt.Fprintf(w, "  %s\n", label); err != nil {
		return err
	}

	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "    %s\n", truncate(line, width-4)); err != nil {
			return err
		}
	}
	return nil
}

func mergeLines(merges []model.Merge) []string {
	lines := make([]string, 0, len(merges))
	for _, m := range merges {
		lines = append(lines, fmt.Sprintf("%s (#%s)", m.Message, m.ID))
	}
	return lines
}

func fixLines(fixes []model.FixEntry) []string {
	lines := make([]string, 0, len(fixes))
	for _, f := range fixes {
		line := f.Commit.Subject
		for _, fix := range f.Fixes {
			line += " #" + fix.ID
		}
		lines = append(lines, line)
	}
	return lines
}

func subjectLines(commits []model.Commit) []string {
	lines := make([]string, 0, len(commits))
	for _, c := range commits {
		lines = append(lines, c.Subject)
	}
	return lines
}

// resolveWidth picks the effective line width: the explicit option, the
// terminal width when stdout is a TTY, or a conservative default.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

func truncate(s string, width int) string {
	if width <= 3 || len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}
