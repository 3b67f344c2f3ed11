package cli

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/clacklabs/clack/pkg/output"
)

func (a *app) cmdFiles() *cli.Command {
	var channel, user string
	var count, page int

	return &cli.Command{
		Name:  "files",
		Usage: "List files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "channel",
				Usage:       "Only files shared in this channel",
				Destination: &channel,
			},
			&cli.StringFlag{
				Name:        "user",
				Usage:       "Only files uploaded by this user",
				Destination: &user,
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
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			client, _, cleanup, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var conversationID string
			if channel != "" {
				id, err := client.ResolveConversationID(ctx, channel)
				if err != nil {
					return err
				}
				conversationID = id.String()
			}
			var userID string
			if user != "" {
				id, err := client.ResolveUserID(ctx, user)
				if err != nil {
					return err
				}
				userID = id.String()
			}

			files, err := client.ListFiles(ctx, conversationID, userID, count, page)
			if err != nil {
				return err
			}
			return a.render(files, func() { output.Files(os.Stdout, files) })
		},
	}
}

func (a *app) cmdFile() *cli.Command {
	return &cli.Command{
		Name:      "file",
		Usage:     "Show one file's metadata",
		ArgsUsage: "<file-id>",
		Action: func(ctx context.Context, c *cli.Command) error {
			client, _, cleanup, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			file, err := client.GetFile(ctx, c.Args().First())
			if err != nil {
				return err
			}
			return a.render(file, nil)
		},
	}
}
