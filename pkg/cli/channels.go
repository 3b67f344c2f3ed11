package cli

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/clacklabs/clack/pkg/output"
)

func (a *app) cmdChannels() *cli.Command {
	var includeArchived bool
	var match string

	return &cli.Command{
		Name:  "channels",
		Usage: "List conversations",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "include-archived",
				Usage:       "Include archived conversations",
				Destination: &includeArchived,
			},
			&cli.StringFlag{
				Name:        "match",
				Usage:       "Filter by case-insensitive name substring",
				Destination: &match,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			client, _, cleanup, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if match != "" {
				found, err := client.SearchConversations(ctx, match, includeArchived)
				if err != nil {
					return err
				}
				return a.render(found, func() { output.Conversations(os.Stdout, found) })
			}

			all, err := client.ListConversations(ctx, includeArchived)
			if err != nil {
				return err
			}
			return a.render(all, func() { output.Conversations(os.Stdout, all) })
		},
	}
}

func (a *app) cmdChannel() *cli.Command {
	return &cli.Command{
		Name:      "channel",
		Usage:     "Show one conversation (by #name, name, or ID)",
		ArgsUsage: "<channel>",
		Action: func(ctx context.Context, c *cli.Command) error {
			client, _, cleanup, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			conversationID, err := client.ResolveConversationID(ctx, c.Args().First())
			if err != nil {
				return err
			}
			conv, err := client.GetConversation(ctx, conversationID.String())
			if err != nil {
				return err
			}
			return a.render(conv, nil)
		},
	}
}
