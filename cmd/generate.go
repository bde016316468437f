package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitfeed/config"
	"github.com/masmgr/gitfeed/internal/document"
	"github.com/masmgr/gitfeed/internal/feed"
	"github.com/masmgr/gitfeed/internal/logging"
	"github.com/masmgr/gitfeed/internal/output"
)

// legacyTemplateName is picked up from the repository root when no template
// is configured.
const legacyTemplateName = "feed.xml.in"

// GenerateCmd creates the generate command.
func GenerateCmd() *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"gen"},
		Usage:   "Write the Atom feed of the most recently updated documents",
		Flags:   generateFlags(),
		Action:  generateAction,
	}
}

func generateFlags() []cli.Flag {
	return append(commonFlags(),
		&cli.StringFlag{
			Name:  "base-url",
			Usage: "Prefix for entry ids and links; the blob hash is appended",
		},
		&cli.StringFlag{
			Name:  "title",
			Usage: "Feed title",
		},
		&cli.StringFlag{
			Name:  "template",
			Usage: "Feed template file (default: feed.xml.in in the repository, else built-in Atom)",
		},
	)
}

func generateAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	log := logging.New(os.Stderr, c.Bool("verbose"))
	return runGenerate(c.Context, c.String("repo"), c.String("output"), cfg, log)
}

func runGenerate(ctx context.Context, repoPath, outputPath string, cfg *config.Config, log *logrus.Logger) error {
	start := time.Now()
	color.New(color.FgGreen).Fprintf(os.Stderr, "Scanning %v repo\n", repoPath)

	reader, reg, err := readDocuments(ctx, repoPath, cfg, log)
	if err != nil {
		return err
	}

	records, err := document.SelectForFeed(reg, cfg.Feed.Top)
	if err != nil {
		return err
	}

	md, err := feed.NewRenderer(cfg.Markdown.Extensions)
	if err != nil {
		return err
	}
	tmpl, err := feed.LoadTemplate(templatePath(repoPath, cfg.Feed.Template))
	if err != nil {
		return err
	}

	asm := feed.NewAssembler(feed.Options{
		BaseURL:  cfg.Feed.BaseURL,
		Title:    cfg.Feed.Title,
		Link:     cfg.Feed.Link,
		Version:  Version,
		RepoPath: repoPath,
	}, reader, md, log)

	f, err := asm.Build(records)
	if err != nil {
		return err
	}
	data, err := feed.Render(tmpl, f)
	if err != nil {
		return err
	}

	if err := writeFeed(outputPath, data); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"entries": len(f.Entries),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("feed written")
	return nil
}

// writeFeed writes data to outputPath, or stdout when it is empty. Close
// errors are returned.
func writeFeed(outputPath string, data []byte) error {
	out, file, err := output.OpenWriter(outputPath)
	if err != nil {
		return fmt.Errorf("open feed output: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		if file != nil {
			file.Close()
		}
		return fmt.Errorf("write feed: %w", err)
	}
	if file != nil {
		if err := file.Close(); err != nil {
			return fmt.Errorf("close feed: %w", err)
		}
	}
	return nil
}

// templatePath returns the configured template, or the legacy template in
// the repository root when it exists. Empty selects the built-in template.
func templatePath(repoPath, configured string) string {
	if configured != "" {
		return configured
	}
	legacy := filepath.Join(repoPath, legacyTemplateName)
	if info, err := os.Stat(legacy); err == nil && !info.IsDir() {
		return legacy
	}
	return ""
}
