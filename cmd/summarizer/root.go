package main

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-summary-client/internal/config"
	"github.com/jrsteele09/go-summary-client/internal/logging"
	"github.com/spf13/cobra"
)

// skipSession marks commands that run without loading config or the stored session.
const skipSession = "skip-session"

// cli holds the app shared by every subcommand of one invocation.
type cli struct {
	app *app
}

// newRootCmd builds the command tree. The returned close func releases whatever the command
// opened and must run even when Execute fails, since cobra skips post-run hooks on error.
func newRootCmd() (*cobra.Command, func()) {
	c := &cli{}
	root := &cobra.Command{
		Use:           "summarizer",
		Short:         "Summarize text and documents with the summary API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipSession] == "true" {
				return nil
			}
			cfg := config.New()
			logging.Setup(cfg)
			a, err := newApp(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.InOrStdin())
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
	}

	root.AddCommand(
		c.loginCmd(),
		c.registerCmd(),
		c.logoutCmd(),
		c.summarizeCmd(),
		c.summariesCmd(),
		c.settingsCmd(),
		versionCmd(),
	)
	return root, c.close
}

func (c *cli) close() {
	if c.app != nil {
		c.app.Close()
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the client version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSession: "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			banner := figure.NewFigure("Summarizer", "cybermedium", true)
			fmt.Fprintln(cmd.OutOrStdout(), banner.String())
			fmt.Fprintf(cmd.OutOrStdout(), "summarizer %s\n", version)
		},
	}
}
