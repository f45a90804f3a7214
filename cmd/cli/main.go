package main

import (
	"log/slog"
	"os"

	"github.com/apolo96/deployprep"
	"github.com/leaanthony/clir"
)

var devMode string

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(args []string) error {
	sp, err := NewServiceProvider(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	defer sp.logger.closer()
	slog.SetDefault(sp.logger.log)
	cli := clir.NewCli(deployprep.APP_NAME, "Prepare a bot server for GitHub and Railway 🚀", deployprep.APP_VERSION)
	cli.Action(func() error {
		return deployCmd(sp, &DeployFlags{})
	})
	cli.NewSubCommandFunction("deploy", "Prepare files, commit and configure the Telegram webhook", func(flags *DeployFlags) error {
		return deployCmd(sp, flags)
	})
	cli.NewSubCommandFunction("prepare", "Prepare the server directory for a GitHub upload", func(flags *PrepareFlags) error {
		return prepareCmd(sp, flags)
	})
	cli.NewSubCommandFunction("webhook", "Register and verify the Telegram webhook", func(flags *WebhookFlags) error {
		return webhookCmd(sp, flags)
	})
	cli.NewSubCommand("version", "Print the version").Action(func() error {
		return versionCmd(os.Stdout)
	})
	return cli.Run(args...)
}
