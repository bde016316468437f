package cmd

import (
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitfeed/internal/logging"
	"github.com/masmgr/gitfeed/internal/output"
)

// DocumentsCmd creates the documents command.
func DocumentsCmd() *cli.Command {
	return &cli.Command{
		Name:    "documents",
		Aliases: []string{"docs"},
		Usage:   "List every document with its reconstructed history",
		Flags: append(commonFlags(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (console, json, csv, markdown, ci)",
				Value:   "console",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of rows to print (default: all)",
			},
		),
		Action: documentsAction,
	}
}

func documentsAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	log := logging.New(os.Stderr, c.Bool("verbose"))
	repoPath := c.String("repo")
	color.New(color.FgGreen).Fprintf(os.Stderr, "Scanning %v repo\n", repoPath)

	_, reg, err := readDocuments(c.Context, repoPath, cfg, log)
	if err != nil {
		return err
	}

	report := output.NewDocumentReport(repoPath, cfg.Content.Dir, reg, cfg.Feed.Top, time.Now())
	return writeDocumentReport(c, report)
}
