package main

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/apolo96/deployprep"
)

type slogger struct {
	log    *slog.Logger
	closer func()
}

type ServiceProvider struct {
	deployer *deployprep.Deployer
	bot      *deployprep.BotServerSvc
	prompt   deployprep.Prompter
	console  *deployprep.Console
	logger   slogger
}

func NewServiceProvider(in io.Reader, out io.Writer) (*ServiceProvider, error) {
	/* Logger */
	file, closer, err := deployprep.NewLogFile(deployprep.APP_CLI_LOG_FILE)
	if err != nil {
		return nil, err
	}
	level := slog.LevelInfo
	if devMode == "on" {
		level = slog.LevelDebug
	}
	logger := deployprep.NewLogger(file, level)
	/* Services Provider */
	console := deployprep.NewConsole(out)
	prompt := NewStdinPrompter(in, out)
	appOS := &deployprep.AppOS{}
	gitRepoSvc := deployprep.NewGitRepositorySvc(logger, appOS, console)
	botServerSvc := deployprep.NewBotServerSvc(logger, &http.Client{Timeout: time.Second * 15}, console, deployprep.BOT_API_HOST)
	scaffoldSvc := deployprep.NewScaffoldSvc(logger, console)
	sp := &ServiceProvider{
		deployer: deployprep.NewDeployer(logger, console, prompt, appOS, gitRepoSvc, botServerSvc, scaffoldSvc),
		bot:      botServerSvc,
		prompt:   prompt,
		console:  console,
		logger: slogger{
			log: logger,
			closer: func() {
				closer()
			},
		},
	}
	return sp, nil
}
