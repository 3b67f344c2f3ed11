package cli

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/clacklabs/clack/pkg/output"
)

func (a *app) cmdMessages() *cli.Command {
	var limit int
	var latest, oldest string

	return &cli.Command{
		Name:      "messages",
		Usage:     "List a conversation's message history",
		ArgsUsage: "<channel>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "limit",
				Usage:       "Maximum messages to return",
				Value:       50,
				Destination: &limit,
			},
			&cli.StringFlag{
				Name:        "latest",
				Usage:       "Only messages before this timestamp",
				Destination: &latest,
			},
			&cli.StringFlag{
				Name:        "oldest",
				Usage:       "Only messages after this timestamp",
				Destination: &oldest,
			},
		},
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
			msgs, err := client.ListMessages(ctx, conversationID.String(), limit, latest, oldest)
			if err != nil {
				return err
			}
			return a.render(msgs, func() { output.Messages(os.Stdout, msgs) })
		},
	}
}

func (a *app) cmdThread() *cli.Command {
	return &cli.Command{
		Name:      "thread",
		Usage:     "Show a message thread",
		ArgsUsage: "<channel> <thread-ts>",
		Action: func(ctx context.Context, c *cli.Command) error {
			client, _, cleanup, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			conversationID, err := client.ResolveConversationID(ctx, c.Args().Get(0))
			if err != nil {
				return err
			}
			msgs, err := client.GetThread(ctx, conversationID.String(), c.Args().Get(1))
			if err != nil {
				return err
			}
			return a.render(msgs, func() { output.Messages(os.Stdout, msgs) })
		},
	}
}

func (a *app) cmdPost() *cli.Command {
	var threadTS string

	return &cli.Command{
		Name:      "post",
		Usage:     "Post a message",
		ArgsUsage: "<channel> <text>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "thread",
				Usage:       "Reply in the thread rooted at this timestamp",
				Destination: &threadTS,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			client, _, cleanup, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			conversationID, err := client.ResolveConversationID(ctx, c.Args().Get(0))
			if err != nil {
				return err
			}
			ts, err := client.PostMessage(ctx, conversationID.String(), c.Args().Get(1), threadTS)
			if err != nil {
				return err
			}
			return a.render(map[string]string{"ts": ts}, nil)
		},
	}
}
