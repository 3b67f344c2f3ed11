package cli

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/clacklabs/clack/pkg/output"
)

func (a *app) cmdUsers() *cli.Command {
	var includeDeleted bool

	return &cli.Command{
		Name:  "users",
		Usage: "List workspace members",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "include-deleted",
				Usage:       "Include deactivated members",
				Destination: &includeDeleted,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			client, _, cleanup, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			users, err := client.ListUsers(ctx, includeDeleted)
			if err != nil {
				return err
			}
			return a.render(users, func() { output.Users(os.Stdout, users) })
		},
	}
}

func (a *app) cmdUser() *cli.Command {
	var profile bool

	return &cli.Command{
		Name:      "user",
		Usage:     "Show one member (by @handle, name, or ID)",
		ArgsUsage: "<user>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "profile",
				Usage:       "Show the profile instead of the member record",
				Destination: &profile,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			client, _, cleanup, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			userID, err := client.ResolveUserID(ctx, c.Args().First())
			if err != nil {
				return err
			}

			if profile {
				p, err := client.GetProfile(ctx, userID.String())
				if err != nil {
					return err
				}
				return a.render(p, nil)
			}

			user, err := client.GetUser(ctx, userID.String())
			if err != nil {
				return err
			}
			return a.render(user, nil)
		},
	}
}
