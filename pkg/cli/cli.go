package cli

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/clacklabs/clack/pkg/api"
	"github.com/clacklabs/clack/pkg/cache"
	"github.com/clacklabs/clack/pkg/cli/config"
	"github.com/clacklabs/clack/pkg/output"
	"github.com/clacklabs/clack/pkg/utils/logging"
	"github.com/clacklabs/clack/pkg/utils/safe"
)

// app carries the shared configuration threaded through every subcommand.
type app struct {
	loggerCfg config.Logger
	slackCfg  config.Slack
	cacheCfg  config.Cache
	format    string
}

// connect opens the store (best effort) and an initialized client. The
// returned cleanup closes the store.
func (a *app) connect(ctx context.Context) (*api.Client, *cache.Store, func(), error) {
	store := a.cacheCfg.Configure(ctx)
	cleanup := func() { safe.Close(ctx, store) }
	if store == nil {
		cleanup = func() {}
	}

	client, err := a.slackCfg.Configure(store)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	if _, err := client.InitWorkspace(ctx); err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	return client, store, cleanup, nil
}

func (a *app) outputFormat() (output.Format, error) {
	return output.ParseFormat(a.format)
}

// render writes v to stdout in the selected format, using human when the
// caller supplies a formatter for it.
func (a *app) render(v any, human func()) error {
	format, err := a.outputFormat()
	if err != nil {
		return err
	}
	if format == output.FormatHuman && human != nil {
		human()
		return nil
	}
	return output.Render(os.Stdout, format, v)
}

func Run(ctx context.Context, args []string, version string) error {
	var a app

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output format (human, json, yaml)",
			Value:       string(output.FormatHuman),
			Sources:     cli.EnvVars("CLACK_OUTPUT"),
			Destination: &a.format,
		},
	}
	flags = append(flags, a.loggerCfg.Flags()...)
	flags = append(flags, a.slackCfg.Flags()...)
	flags = append(flags, a.cacheCfg.Flags()...)

	cmd := &cli.Command{
		Name:    "clack",
		Usage:   "Slack workspace client with a local write-through cache",
		Version: version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, err := a.loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			logger.Debug("starting clack",
				"logger", a.loggerCfg,
				"slack", a.slackCfg,
				"cache", a.cacheCfg,
			)
			return logging.With(ctx, logger), nil
		},
		Commands: []*cli.Command{
			a.cmdAuth(),
			a.cmdUsers(),
			a.cmdUser(),
			a.cmdChannels(),
			a.cmdChannel(),
			a.cmdMessages(),
			a.cmdThread(),
			a.cmdPost(),
			a.cmdPins(),
			a.cmdReact(),
			a.cmdSearch(),
			a.cmdFiles(),
			a.cmdFile(),
			a.cmdStream(),
			a.cmdCache(),
		},
	}

	if err := cmd.Run(ctx, args); err != nil {
		logging.Default().Error("command failed", "error", err)
		return err
	}
	return nil
}
