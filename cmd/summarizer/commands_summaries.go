package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/jrsteele09/go-summary-client/api"
	"github.com/jrsteele09/go-summary-client/internal/export"
	"github.com/jrsteele09/go-summary-client/routes"
	"github.com/spf13/cobra"
)

func (c *cli) summarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Generate a summary from text or a document",
	}
	cmd.AddCommand(c.summarizeTextCmd(), c.summarizeFileCmd())
	return cmd
}

func (c *cli) summarizeTextCmd() *cobra.Command {
	var length int
	cmd := &cobra.Command{
		Use:   "text [text...]",
		Short: "Summarize the given text, or stdin when no text is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			if err := a.authorize(routes.Home()); err != nil {
				return err
			}
			text := strings.Join(args, " ")
			if len(args) == 0 {
				b, err := io.ReadAll(a.in)
				if err != nil {
					return err
				}
				text = string(b)
			}

			generated, err := a.authed.SummarizeText(cmd.Context(), api.SummarizeTextRequest{Text: text, SummaryLen: length})
			if err != nil {
				return err
			}
			a.printGenerated(generated)
			return nil
		},
	}
	cmd.Flags().IntVarP(&length, "len", "l", api.DefaultSummaryLen, fmt.Sprintf("summary length in sentences (1-%d)", api.MaxSummaryLen))
	return cmd
}

func (c *cli) summarizeFileCmd() *cobra.Command {
	var length int
	cmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Summarize a .pdf, .docx or .txt file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			if err := a.authorize(routes.Home()); err != nil {
				return err
			}
			if !api.IsSupportedDocument(args[0]) {
				return fmt.Errorf("only PDF, Word and text files are supported")
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			generated, err := a.authed.SummarizeDocument(cmd.Context(), api.SummarizeDocumentRequest{
				FileName:   args[0],
				Content:    f,
				SummaryLen: length,
			})
			if err != nil {
				return err
			}
			a.printGenerated(generated)
			return nil
		},
	}
	cmd.Flags().IntVarP(&length, "len", "l", api.DefaultSummaryLen, fmt.Sprintf("summary length in sentences (1-%d)", api.MaxSummaryLen))
	return cmd
}

func (a *app) printGenerated(g api.GeneratedSummary) {
	a.printf("%s\n\n%s\n", g.Title, g.Summary)
}

func (c *cli) summariesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "summaries",
		Aliases: []string{"summary"},
		Short:   "Browse stored summaries",
	}
	cmd.AddCommand(c.summariesListCmd(), c.summaryShowCmd(), c.summaryDeleteCmd(), c.summaryExportCmd())
	return cmd
}

func (c *cli) summariesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your summaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.authorize(routes.Summaries()); err != nil {
				return err
			}
			return c.app.listSummaries(cmd.Context())
		},
	}
}

func (a *app) listSummaries(ctx context.Context) error {
	summaries, err := a.authed.ListSummaries(ctx)
	if err != nil {
		return err
	}
	delete(a.stale, api.ResourceSummaries)

	if len(summaries) == 0 {
		a.printf("No summaries yet.\n")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTITLE\tSOURCE")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Date.Local().Format("02-01-2006"), truncate(s.TitleOrDefault(), 40), truncate(s.Source(), 40))
	}
	return tw.Flush()
}

func (c *cli) summaryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			if err := a.authorize(routes.SummaryDetail(args[0])); err != nil {
				return err
			}
			s, err := a.authed.GetSummary(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.printf("%s\n%s\n\n%s\n", s.TitleOrDefault(), s.Date.Local().Format(export.DateLayout), s.Body())
			if src := s.Source(); src != "" {
				a.printf("\nSource: %s\n", truncate(src, 200))
			}
			return nil
		},
	}
}

func (c *cli) summaryDeleteCmd() *cobra.Command {
	var relist bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			if err := a.authorize(routes.SummaryDetail(args[0])); err != nil {
				return err
			}
			msg, err := a.authed.DeleteSummary(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.printf("%s\n", msg)

			if relist && a.stale[api.ResourceSummaries] {
				return a.listSummaries(cmd.Context())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&relist, "list", false, "list the remaining summaries afterwards")
	return cmd
}

func (c *cli) summaryExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Save a summary as a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			if err := a.authorize(routes.SummaryDetail(args[0])); err != nil {
				return err
			}
			s, err := a.authed.GetSummary(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if out == "" {
				out = s.ID + ".pdf"
			}

			author := ""
			if user := a.session.Snapshot().User; user != nil {
				author = user.FullName()
			}
			err = export.NewPDFExporter().WriteFile(out, export.Summary{
				Title:  s.TitleOrDefault(),
				Date:   s.Date.Local(),
				Source: s.Source(),
				Text:   s.Body(),
				Author: author,
			})
			if err != nil {
				return err
			}
			a.printf("Saved %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default <id>.pdf)")
	return cmd
}
