package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitfeed/config"
	"github.com/masmgr/gitfeed/internal/git"
	"github.com/masmgr/gitfeed/internal/output"
)

// Version is the generator version reported in feeds. Set at build time.
var Version = "dev"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "gitfeed",
		Usage:   "Generate an Atom feed from the Markdown documents of a Git repository",
		Version: Version,
		Commands: []*cli.Command{
			GenerateCmd(),
			DocumentsCmd(),
		},
		Flags:  generateFlags(),
		Action: generateAction,
	}
}

// Common flags shared across commands
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file (.json, .yaml or .yml)",
		},
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to Git repository",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:  "content",
			Usage: "Content directory, relative to the repository (default: from config or 'content')",
		},
		&cli.StringFlag{
			Name:  "pattern",
			Usage: "Glob selecting documents inside the content directory (default: '*')",
		},
		&cli.StringFlag{
			Name:    "branch",
			Aliases: []string{"b"},
			Usage:   "Branch or revision to read history and blob ids from (default: HEAD); documents and their bodies are still read from the working tree",
		},
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"n"},
			Usage:   "Number of most recently updated documents in the feed (default: 20)",
		},
		&cli.StringFlag{
			Name:  "backend",
			Usage: "History backend (gogit, gitcli)",
		},
		&cli.StringFlag{
			Name:  "rename-detect",
			Usage: "Rename detection mode (off, simple, aggressive)",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns to include (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns to exclude (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
		},
	}
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	switch s {
	case "json":
		return output.FormatJSON
	case "csv":
		return output.FormatCSV
	case "markdown", "md":
		return output.FormatMarkdown
	case "ci", "ndjson":
		return output.FormatCI
	default:
		return output.FormatConsole
	}
}

// parseRenameDetectFlag validates a rename detection mode.
func parseRenameDetectFlag(s string) (git.RenameDetectMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "simple", "off", "none", "aggressive", "auto":
		return git.ParseRenameDetectMode(s), nil
	case "exact":
		return git.RenameDetectSimple, nil
	case "false":
		return git.RenameDetectOff, nil
	case "similarity":
		return git.RenameDetectAggressive, nil
	default:
		return git.RenameDetectSimple, fmt.Errorf("invalid rename detection mode: %s (expected off, simple or aggressive)", s)
	}
}

// parseBackendFlag validates a history backend name.
func parseBackendFlag(s string) (git.Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "gogit", "go-git":
		return git.BackendGoGit, nil
	case "gitcli", "git":
		return git.BackendGitCLI, nil
	default:
		return "", fmt.Errorf("invalid history backend: %s (expected gogit or gitcli)", s)
	}
}

// loadConfig loads configuration from file or defaults, then applies flags
// that were set explicitly.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if c.IsSet("content") {
		cfg.Content.Dir = c.String("content")
	}
	if c.IsSet("pattern") {
		cfg.Content.Pattern = c.String("pattern")
	}
	if c.IsSet("branch") {
		cfg.History.Branch = c.String("branch")
	}
	if c.IsSet("top") {
		cfg.Feed.Top = c.Int("top")
	}
	if c.IsSet("backend") {
		cfg.History.Backend = c.String("backend")
	}
	if c.IsSet("rename-detect") {
		cfg.History.RenameDetect = c.String("rename-detect")
	}
	if c.IsSet("base-url") {
		cfg.Feed.BaseURL = c.String("base-url")
	}
	if c.IsSet("title") {
		cfg.Feed.Title = c.String("title")
	}
	if c.IsSet("template") {
		cfg.Feed.Template = c.String("template")
	}

	// Apply filter overrides from CLI
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}

	return cfg, nil
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
