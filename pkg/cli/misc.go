package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/clacklabs/clack/pkg/api"
	"github.com/clacklabs/clack/pkg/domain/model"
	"github.com/clacklabs/clack/pkg/output"
	"github.com/clacklabs/clack/pkg/stream"
	"github.com/clacklabs/clack/pkg/utils/logging"
)

func (a *app) cmdAuth() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Verify the token and show the authenticated identity",
		Action: func(ctx context.Context, c *cli.Command) error {
			client, _, cleanup, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			identity, err := client.AuthTest(ctx)
			if err != nil {
				return err
			}
			return a.render(identity, nil)
		},
	}
}

func (a *app) cmdPins() *cli.Command {
	return &cli.Command{
		Name:      "pins",
		Usage:     "List, add or remove pins",
		ArgsUsage: "<channel> [timestamp]",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Pin a message",
				ArgsUsage: "<channel> <timestamp>",
				Action: func(ctx context.Context, c *cli.Command) error {
					return a.withConversation(ctx, c, func(ctx context.Context, client *api.Client, conversationID string) error {
						return client.AddPin(ctx, conversationID, c.Args().Get(1))
					})
				},
			},
			{
				Name:      "remove",
				Usage:     "Unpin a message",
				ArgsUsage: "<channel> <timestamp>",
				Action: func(ctx context.Context, c *cli.Command) error {
					return a.withConversation(ctx, c, func(ctx context.Context, client *api.Client, conversationID string) error {
						return client.RemovePin(ctx, conversationID, c.Args().Get(1))
					})
				},
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			var pins []*model.PinItem
			err := a.withConversation(ctx, c, func(ctx context.Context, client *api.Client, conversationID string) error {
				var err error
				pins, err = client.ListPins(ctx, conversationID)
				return err
			})
			if err != nil {
				return err
			}
			return a.render(pins, nil)
		},
	}
}

func (a *app) cmdReact() *cli.Command {
	var remove bool

	return &cli.Command{
		Name:      "react",
		Usage:     "Add or remove an emoji reaction",
		ArgsUsage: "<channel> <timestamp> <emoji>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "remove",
				Usage:       "Remove the reaction instead of adding it",
				Destination: &remove,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return a.withConversation(ctx, c, func(ctx context.Context, client *api.Client, conversationID string) error {
				ts, name := c.Args().Get(1), c.Args().Get(2)
				if remove {
					return client.RemoveReaction(ctx, conversationID, ts, name)
				}
				return client.AddReaction(ctx, conversationID, ts, name)
			})
		},
	}
}

func (a *app) cmdStream() *cli.Command {
	var interval time.Duration

	return &cli.Command{
		Name:      "stream",
		Usage:     "Continuously poll a message search and print new matches",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:        "interval",
				Usage:       "Poll interval",
				Value:       stream.DefaultInterval,
				Destination: &interval,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			client, _, cleanup, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			query := c.Args().First()
			fmt.Fprintf(os.Stderr, "Streaming messages matching %q (Ctrl+C to stop)...\n", query)

			err = stream.Run(ctx, client, query, interval, func(msgs []*model.SearchMessage) error {
				return a.render(msgs, func() { output.SearchMessages(os.Stdout, msgs) })
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "Stream stopped.")
			return nil
		},
	}
}

func (a *app) cmdCache() *cli.Command {
	var all bool

	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the local cache",
		Commands: []*cli.Command{
			{
				Name:  "clear",
				Usage: "Delete cached records for the current workspace",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "all",
						Usage:       "Delete cached records for every workspace",
						Destination: &all,
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if all {
						store := a.cacheCfg.Configure(ctx)
						if store == nil {
							return nil
						}
						defer func() { _ = store.Close() }()
						return store.ClearAll()
					}

					client, store, cleanup, err := a.connect(ctx)
					if err != nil {
						return err
					}
					defer cleanup()
					if store == nil {
						return nil
					}
					ws, err := client.WorkspaceID()
					if err != nil {
						return err
					}
					if err := store.ClearWorkspace(ws); err != nil {
						return err
					}
					logging.From(ctx).Info("cleared workspace cache", "workspace", ws)
					return nil
				},
			},
		},
	}
}

// withConversation connects, resolves the first argument to a conversation
// ID and invokes fn.
func (a *app) withConversation(ctx context.Context, c *cli.Command, fn func(ctx context.Context, client *api.Client, conversationID string) error) error {
	client, _, cleanup, err := a.connect(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	conversationID, err := client.ResolveConversationID(ctx, c.Args().First())
	if err != nil {
		return err
	}
	return fn(ctx, client, conversationID.String())
}
