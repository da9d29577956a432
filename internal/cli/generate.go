package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ariel-frischer/shiplog/internal/config"
	"github.com/ariel-frischer/shiplog/internal/errors"
	"github.com/ariel-frischer/shiplog/internal/gitlog"
	"github.com/ariel-frischer/shiplog/internal/model"
	"github.com/ariel-frischer/shiplog/internal/release"
	"github.com/ariel-frischer/shiplog/internal/remote"
	"github.com/ariel-frischer/shiplog/internal/render"
	"github.com/ariel-frischer/shiplog/internal/watch"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	outputFlag          string
	formatFlag          string
	commitLimitFlag     int
	backfillLimitFlag   int
	ignorePatternFlag   string
	releaseSummaryFlag  bool
	sortCommitsFlag     string
	tagPatternFlag      string
	tagPrefixFlag       string
	unreleasedFlag      bool
	includeBranchFlag   []string
	latestVersionFlag   string
	breakingPatternFlag string
	repoFlag            string
	watchFlag           bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the changelog",
	Long: `Generate the changelog from the repository's commit history.

Flags override values from the config file (.shiplog.yml) and SHIPLOG_*
environment variables.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

func init() {
	generateCmd.GroupID = GroupCore
	rootCmd.AddCommand(generateCmd)

	flags := generateCmd.Flags()
	flags.StringVarP(&outputFlag, "output", "o", "CHANGELOG.md", "Output file, - for stdout")
	flags.StringVar(&formatFlag, "format", "markdown", "Output format: markdown, yaml, json, terminal")
	flags.IntVar(&commitLimitFlag, "commit-limit", 3, "Commits shown per release, negative for no limit")
	flags.IntVar(&backfillLimitFlag, "backfill-limit", 3, "Commits shown for releases without merges or fixes")
	flags.StringVar(&ignorePatternFlag, "ignore-commit-pattern", "", "Drop commits whose subject matches this regex")
	flags.BoolVar(&releaseSummaryFlag, "release-summary", false, "Use tagged commit message bodies as release summaries")
	flags.StringVar(&sortCommitsFlag, "sort-commits", "relevance", "Secondary commit sort: relevance, date, date-desc")
	flags.StringVar(&tagPatternFlag, "tag-pattern", "", "Only tags matching this regex close releases")
	flags.StringVar(&tagPrefixFlag, "tag-prefix", "", "Prefix added to tags in comparison links")
	flags.BoolVar(&unreleasedFlag, "unreleased", false, "Include commits made since the newest tag")
	flags.StringSliceVar(&includeBranchFlag, "include-branch", nil, "Also gather releases from these branches")
	flags.StringVar(&latestVersionFlag, "latest-version", "", "Version label for commits ahead of the newest tag")
	flags.StringVar(&breakingPatternFlag, "breaking-pattern", "", "Mark commits matching this regex as breaking")
	flags.StringVar(&repoFlag, "repo", "", "Path to the repository (default current directory)")
	flags.BoolVar(&watchFlag, "watch", false, "Regenerate whenever the repository's refs change")
}

func runGenerate(cmd *cobra.Command) error {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Configuration, "loading configuration",
			"check the config file syntax and path")
	}
	applyFlags(cmd, cfg)

	compiled, err := cfg.Compile()
	if err != nil {
		return err
	}

	collector, err := gitlog.Open(cfg.RepoPath)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Prerequisite, "opening repository",
			"run shiplog inside a git repository, or pass --repo")
	}

	if err := generateOnce(cfg, compiled, collector); err != nil {
		return err
	}
	if !watchFlag {
		return nil
	}
	return watchAndRegenerate(cfg, compiled, collector)
}

// generateOnce runs one full collect-assemble-render cycle.
func generateOnce(cfg *config.Configuration, compiled *config.Compiled, collector *gitlog.Collector) error {
	gitOpts := gitlog.Options{
		TagPattern:      compiled.TagPattern,
		BreakingPattern: compiled.BreakingPattern,
	}

	var pipelineRemote release.Remote
	if rem := remote.Parse(collector.OriginURL()); rem != nil {
		gitOpts.Linker = rem
		pipelineRemote = rem
	}

	stop := startSpinner("collecting commit history")
	branchLists, err := collectBranches(collector, cfg.IncludeBranch, gitOpts)
	stop()
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "collecting commits")
	}

	pipe := release.New(pipelineRemote, compiled.Pipeline)
	releases := pipe.ReleasesFromBranches(branchLists, cfg.LatestVersion)

	return writeOutput(cfg, releases)
}

// collectBranches gathers HEAD history first, then each included branch in
// flag order. Each branch is fetched independently; the pipeline merges the
// resulting release lists.
func collectBranches(collector *gitlog.Collector, branches []string, opts gitlog.Options) ([][]model.Commit, error) {
	lists := make([][]model.Commit, 0, len(branches)+1)

	head, err := collector.Commits("", opts)
	if err != nil {
		return nil, err
	}
	lists = append(lists, head)

	for _, branch := range branches {
		commits, err := collector.Commits(branch, opts)
		if err != nil {
			return nil, err
		}
		lists = append(lists, commits)
	}
	return lists, nil
}

func writeOutput(cfg *config.Configuration, releases []model.Release) error {
	if cfg.Format == config.FormatTerminal {
		return render.Terminal(releases, os.Stdout, render.TerminalOptions{Plain: plainFlag})
	}

	var w io.Writer = os.Stdout
	if cfg.Output != "-" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return errors.WrapWithMessage(err, errors.Runtime, "creating output file")
		}
		defer f.Close()
		w = f
	}

	var err error
	switch cfg.Format {
	case config.FormatYAML:
		err = render.YAML(releases, w)
	case config.FormatJSON:
		err = render.JSON(releases, w)
	default:
		err = render.Markdown(releases, w)
	}
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "rendering changelog")
	}

	if cfg.Output != "-" {
		fmt.Fprintf(os.Stderr, "%d releases written to %s\n", len(releases), cfg.Output)
	}
	return nil
}

// watchAndRegenerate reruns generation on every debounced ref change until
// interrupted.
func watchAndRegenerate(cfg *config.Configuration, compiled *config.Compiled, collector *gitlog.Collector) error {
	root, err := collector.Root()
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "locating repository root")
	}

	watcher, err := watch.New(filepath.Join(root, ".git"))
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "starting watch mode")
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(os.Stderr, "watching for ref changes (ctrl-c to stop)")
	return watcher.Run(ctx, func() {
		if genErr := generateOnce(cfg, compiled, collector); genErr != nil {
			fmt.Fprintf(os.Stderr, "regeneration failed: %v\n", genErr)
		}
	})
}

// startSpinner shows a spinner on stderr while a slow step runs. It is a
// no-op when stderr is not a terminal or --plain is set.
func startSpinner(message string) func() {
	if plainFlag || !term.IsTerminal(int(os.Stderr.Fd())) {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message + "..."
	s.Start()
	return s.Stop
}

// applyFlags overrides config values with explicitly set flags.
func applyFlags(cmd *cobra.Command, cfg *config.Configuration) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = outputFlag
	}
	if flags.Changed("format") {
		cfg.Format = formatFlag
	}
	if flags.Changed("commit-limit") {
		cfg.CommitLimit = commitLimitFlag
	}
	if flags.Changed("backfill-limit") {
		cfg.BackfillLimit = backfillLimitFlag
	}
	if flags.Changed("ignore-commit-pattern") {
		cfg.IgnoreCommitPattern = ignorePatternFlag
	}
	if flags.Changed("release-summary") {
		cfg.ReleaseSummary = releaseSummaryFlag
	}
	if flags.Changed("sort-commits") {
		cfg.SortCommits = sortCommitsFlag
	}
	if flags.Changed("tag-pattern") {
		cfg.TagPattern = tagPatternFlag
	}
	if flags.Changed("tag-prefix") {
		cfg.TagPrefix = tagPrefixFlag
	}
	if flags.Changed("unreleased") {
		cfg.Unreleased = unreleasedFlag
	}
	if flags.Changed("include-branch") {
		cfg.IncludeBranch = includeBranchFlag
	}
	if flags.Changed("latest-version") {
		cfg.LatestVersion = latestVersionFlag
	}
	if flags.Changed("breaking-pattern") {
		cfg.BreakingPattern = breakingPatternFlag
	}
	if flags.Changed("repo") {
		cfg.RepoPath = repoFlag
	}
}
