package cli

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/clacklabs/clack/pkg/api"
	"github.com/clacklabs/clack/pkg/output"
)

func (a *app) cmdSearch() *cli.Command {
	var filters api.SearchFilters
	var count, page int
	var kind string

	return &cli.Command{
		Name:      "search",
		Usage:     "Search messages and files",
		ArgsUsage: "<text>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "type",
				Usage:       "What to search (messages, files, all)",
				Value:       "messages",
				Destination: &kind,
			},
			&cli.IntFlag{
				Name:        "count",
				Usage:       "Results per page",
				Value:       20,
				Destination: &count,
			},
			&cli.IntFlag{
				Name:        "page",
				Usage:       "Result page",
				Value:       1,
				Destination: &page,
			},
			&cli.StringFlag{
				Name:        "from",
				Usage:       "Only messages from this user",
				Destination: &filters.FromUser,
			},
			&cli.StringFlag{
				Name:        "to",
				Usage:       "Only messages to this user",
				Destination: &filters.ToUser,
			},
			&cli.StringFlag{
				Name:        "in",
				Usage:       "Only messages in this channel",
				Destination: &filters.InChannel,
			},
			&cli.StringFlag{
				Name:        "has",
				Usage:       "Only messages with this attachment type (link, pin, reaction...)",
				Destination: &filters.Has,
			},
			&cli.StringFlag{
				Name:        "after",
				Usage:       "Only messages after this date (YYYY-MM-DD)",
				Destination: &filters.After,
			},
			&cli.StringFlag{
				Name:        "before",
				Usage:       "Only messages before this date (YYYY-MM-DD)",
				Destination: &filters.Before,
			},
			&cli.StringFlag{
				Name:        "during",
				Usage:       "Only messages during a period (today, yesterday, week, month, year)",
				Destination: &filters.During,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if filters.During != "" {
				if err := api.ValidateDuring(filters.During); err != nil {
					return err
				}
			}

			client, _, cleanup, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			query := api.BuildSearchQuery(c.Args().First(), filters)

			switch kind {
			case "files":
				resp, err := client.SearchFiles(ctx, query, count, page)
				if err != nil {
					return err
				}
				return a.render(resp.Files.Matches, nil)
			case "all":
				resp, err := client.SearchAll(ctx, query, count, page)
				if err != nil {
					return err
				}
				return a.render(resp, nil)
			default:
				resp, err := client.SearchMessages(ctx, query, count, page)
				if err != nil {
					return err
				}
				matches := resp.Messages.Matches
				return a.render(matches, func() { output.SearchMessages(os.Stdout, matches) })
			}
		},
	}
}
