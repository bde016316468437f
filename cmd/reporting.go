package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitfeed/internal/output"
)

func outputOptions(c *cli.Context) output.OutputOptions {
	return output.OutputOptions{
		Format:     getOutputFormat(c.String("format")),
		Top:        c.Int("limit"),
		OutputPath: c.String("output"),
	}
}

func writeDocumentReport(c *cli.Context, report *output.DocumentReport) error {
	opts := outputOptions(c)
	writer := output.NewDocumentReportWriter(opts.Format)
	return writer.Write(report, opts)
}
