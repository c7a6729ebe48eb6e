package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lecternapp/lectern/internal/catalog"
	"github.com/lecternapp/lectern/internal/passages"
	"github.com/lecternapp/lectern/internal/util"
)

func newPassageCommand(ctx *commandContext) *cobra.Command {
	var lang string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "passage <collection> <page>",
		Short: "Fetch and print the source text for a page",
		Long: "Passage asks the remote text service for the text behind one recording\n" +
			"and prints it. Useful for probing connectivity and checking what the\n" +
			"player will overlay.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.Passages.BaseURL == "" {
				return fmt.Errorf("no text service configured; set passages.base_url")
			}

			collection, page := args[0], args[1]
			if _, err := catalog.PageNumber(page); err != nil {
				return fmt.Errorf("invalid page %q: %w", page, err)
			}

			log := ctx.logging()
			client := passages.NewClient(passages.ClientOptions{
				BaseURL:           cfg.Passages.BaseURL,
				Timeout:           time.Duration(cfg.Passages.TimeoutSeconds) * time.Second,
				RequestsPerMinute: cfg.Passages.RequestsPerMinute,
			}, log.Logger)

			svc := passages.NewService(client, nil, passages.ServiceOptions{
				Language:  cfg.Passages.Language,
				Languages: cfg.Passages.Languages,
			}, log.Logger)

			p, err := svc.Get(cmd.Context(), collection, page, lang)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, p)
			}

			out := cmd.OutOrStdout()
			title := p.Title
			if title == "" {
				title = util.DisplayTitle(p.Collection)
			}
			fmt.Fprintf(out, "%s %s (%s)\n\n", title, p.Page, p.Language)
			for _, segment := range p.Segments {
				fmt.Fprintln(out, segment)
			}
			if p.Source != "" {
				fmt.Fprintf(out, "\nSource: %s\n", p.Source)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "Preferred language (defaults to the configured language)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the passage as JSON")
	return cmd
}
