package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/apolo96/deployprep"
	"github.com/joho/godotenv"
)

type DeployFlags struct {
	WorkDir     string `name:"WorkDir" description:"Server directory to prepare.\nIf you don't enter a WorkDir, the current directory is used. \n"`
	BotToken    string `name:"BotToken" description:"Telegram bot token. You can get one from @BotFather.\nPrompted when empty. \n"`
	AppURL      string `name:"AppURL" description:"Public URL Railway generated for the app.\nPrompted when empty. \n"`
	ProjectName string `name:"ProjectName" description:"GitHub repository name used in the printed instructions. \n"`
	Silent      bool   `name:"Silent" description:"Hide the output of git commands. \n"`
}

type PrepareFlags struct {
	WorkDir     string `name:"WorkDir" description:"Server directory to prepare.\nIf you don't enter a WorkDir, the current directory is used. \n"`
	ProjectName string `name:"ProjectName" description:"GitHub repository name used in the printed instructions. \n"`
}

type WebhookFlags struct {
	WorkDir  string `name:"WorkDir" description:"Directory holding the .env file with BOT_TOKEN. \n"`
	BotToken string `name:"BotToken" description:"Telegram bot token. Read from .env or prompted when empty. \n"`
	AppURL   string `name:"AppURL" description:"Public URL of the app. Prompted when empty. \n"`
}

func resolveWorkDir(workdir string) (string, error) {
	if workdir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workdir)
}

// resolveToken prefers the flag, then BOT_TOKEN from the env file, then
// the operator.
func resolveToken(workdir string, token string, prompt deployprep.Prompter) string {
	if token = strings.TrimSpace(token); token != "" {
		return token
	}
	env, err := godotenv.Read(filepath.Join(workdir, deployprep.ENV_FILE_NAME))
	if err != nil {
		slog.Debug("reading env file", "error", err.Error())
	} else if env[deployprep.ENV_BOT_TOKEN] != "" {
		return env[deployprep.ENV_BOT_TOKEN]
	}
	return prompt.Ask("Bot Token: ")
}

func deployCmd(sp *ServiceProvider, flags *DeployFlags) error {
	workdir, err := resolveWorkDir(flags.WorkDir)
	if err != nil {
		slog.Error(err.Error())
		return err
	}
	config := &deployprep.AppConfig{
		WorkDir:     workdir,
		BotToken:    flags.BotToken,
		AppURL:      flags.AppURL,
		ProjectName: flags.ProjectName,
		Silent:      flags.Silent,
	}
	return sp.deployer.Run(context.Background(), config)
}

func prepareCmd(sp *ServiceProvider, flags *PrepareFlags) error {
	workdir, err := resolveWorkDir(flags.WorkDir)
	if err != nil {
		slog.Error(err.Error())
		return err
	}
	return sp.deployer.Prepare(&deployprep.AppConfig{WorkDir: workdir, ProjectName: flags.ProjectName})
}

func webhookCmd(sp *ServiceProvider, flags *WebhookFlags) error {
	workdir, err := resolveWorkDir(flags.WorkDir)
	if err != nil {
		slog.Error(err.Error())
		return err
	}
	token := resolveToken(workdir, flags.BotToken, sp.prompt)
	if token == "" {
		sp.console.Error("Bot token is required. Please restart and enter a valid token.")
		return deployprep.ErrTokenRequired
	}
	appURL := flags.AppURL
	if appURL == "" {
		appURL = sp.prompt.Ask("Enter your app URL: ")
	}
	if appURL == "" {
		sp.console.Text("You didn't provide an app URL. You can set up the webhook later with:")
		sp.console.Text("%s", sp.bot.ManualWebhookCommand(token))
		return nil
	}
	config := &deployprep.AppConfig{
		WorkDir:  workdir,
		BotToken: token,
		AppURL:   deployprep.NormalizeAppURL(appURL),
	}
	sp.deployer.ConfigureWebhook(context.Background(), config)
	return nil
}

func versionCmd(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s version %s\n", deployprep.APP_NAME, deployprep.APP_VERSION)
	return err
}
