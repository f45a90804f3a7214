package deployprep

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrTokenRequired = errors.New("bot token is required")

// Deployer runs the operator workflows step by step. Failures other than
// ErrGitNotFound and ErrTokenRequired are printed and the run continues.
type Deployer struct {
	git      *GitRepositorySvc
	bot      *BotServerSvc
	scaffold *ScaffoldSvc
	prompt   Prompter
	starter  OSStarter
	console  *Console
	logs     AppLogger
	Wait     func(time.Duration)
	Now      func() time.Time
}

func NewDeployer(
	logs AppLogger,
	console *Console,
	prompt Prompter,
	starter OSStarter,
	git *GitRepositorySvc,
	bot *BotServerSvc,
	scaffold *ScaffoldSvc,
) *Deployer {
	return &Deployer{
		git:      git,
		bot:      bot,
		scaffold: scaffold,
		prompt:   prompt,
		starter:  starter,
		console:  console,
		logs:     logs,
		Wait:     time.Sleep,
		Now:      time.Now,
	}
}

func projectName(config *AppConfig) string {
	if config.ProjectName == "" {
		return PROJECT_NAME
	}
	return config.ProjectName
}

// Run is the Railway deployment helper.
func (d *Deployer) Run(ctx context.Context, config *AppConfig) error {
	d.console.Banner("DevShare Server - Railway Deployment Helper")
	d.console.Text("\nThis script will help you deploy your DevShare server to Railway.")
	d.git.Silent = config.Silent
	if err := d.git.CheckGit(); err != nil {
		return err
	}
	config.BotToken = strings.TrimSpace(config.BotToken)
	if config.BotToken == "" {
		d.console.Header("Enter your Telegram Bot Token")
		d.console.Text("You can get this from the BotFather bot on Telegram (@BotFather)")
		config.BotToken = d.prompt.Ask("Bot Token: ")
	}
	config.BotToken = strings.TrimSpace(config.BotToken)
	if config.BotToken == "" {
		d.console.Error("Bot token is required. Please restart the script and enter a valid token.")
		return ErrTokenRequired
	}
	d.logs.Info("starting deployment preparation", "workdir", config.WorkDir)

	/* Scaffold */
	if err := d.scaffold.WriteEnvFile(config.WorkDir, config.BotToken); err != nil {
		d.logs.Error("env file", "error", err.Error())
	}
	d.console.Header("Preparing repository files")
	artifacts, err := DefaultArtifacts(d.Now())
	if err != nil {
		d.console.Error("ERROR: %s", err.Error())
	} else {
		created := d.scaffold.EnsureArtifacts(config.WorkDir, artifacts)
		d.logs.Info("scaffold finished", "created", fmt.Sprint(created))
	}
	if _, err := d.scaffold.CopyDocs(config.WorkDir); err != nil {
		d.logs.Warn("copying docs", "error", err.Error())
	}

	/* Git */
	d.git.EnsureRepository(config.WorkDir)
	d.git.CommitAll(config.WorkDir, GIT_COMMIT_MESSAGE)

	d.printRunbook(projectName(config))
	if d.prompt.Confirm("Would you like to open the Railway website now? (y/n): ") {
		d.console.Header("Opening Railway website")
		OpenBrowser(d.starter, PAAS_URL)
	}
	d.printNetworking()

	/* Webhook */
	if config.AppURL == "" {
		config.AppURL = d.prompt.Ask("\nEnter your app URL: ")
	}
	if config.AppURL == "" {
		d.console.Text("\nYou didn't provide an app URL. You can set up the webhook later with:")
		d.console.Text("%s", d.bot.ManualWebhookCommand(config.BotToken))
	} else {
		config.AppURL = NormalizeAppURL(config.AppURL)
		d.ConfigureWebhook(ctx, config)
		d.printComplete(config.AppURL)
	}
	d.console.Text("")
	d.console.Rule()
	d.console.Success("Deployment preparation complete!")
	d.console.Rule()
	return nil
}

// ConfigureWebhook registers the webhook, waits for the platform to pick it
// up and reads it back. config.AppURL must already be normalized.
func (d *Deployer) ConfigureWebhook(ctx context.Context, config *AppConfig) bool {
	registered := d.bot.RegisterWebhook(ctx, config.AppURL, config.BotToken)
	d.Wait(WEBHOOK_PROPAGATION_WAIT)
	active := d.bot.VerifyWebhook(ctx, config.BotToken)
	d.logs.Info("webhook configured", "registered", registered, "active", active)
	return registered && active
}

// Prepare readies the directory for a GitHub upload without running git.
func (d *Deployer) Prepare(config *AppConfig) error {
	d.console.Header("DevShare Server - GitHub Preparation Utility")
	d.console.Text("This script will prepare your server directory for GitHub upload.")
	d.scaffold.CheckEntryPoint(config.WorkDir)
	artifacts, err := DefaultArtifacts(d.Now())
	if err != nil {
		return err
	}
	created := d.scaffold.EnsureArtifacts(config.WorkDir, artifacts)
	d.logs.Info("scaffold finished", "created", fmt.Sprint(created))
	if _, err := d.scaffold.CopyDocs(config.WorkDir); err != nil {
		d.logs.Warn("copying docs", "error", err.Error())
	}
	name := projectName(config)
	d.console.Header("Preparation Complete")
	d.console.Success("Your server directory is now ready for GitHub!")
	d.console.Lines(
		"\nNext steps:",
		fmt.Sprintf("1. Create a new GitHub repository (e.g., '%s')", name),
		"2. Initialize git repository and commit all files:",
		"   $ git init",
		"   $ git add .",
		"   $ git commit -m \"Initial commit\"",
		"3. Add the GitHub repository as remote and push:",
		fmt.Sprintf("   $ git remote add origin https://github.com/YOUR_USERNAME/%s.git", name),
		"   $ git branch -M main",
		"   $ git push -u origin main",
		"\nNote: Desktop client repository: "+CLIENT_REPO_URL,
	)
	return nil
}

func (d *Deployer) printRunbook(name string) {
	d.console.Header("Railway Deployment Process")
	d.console.Lines(
		"Follow these steps to deploy your DevShare server to Railway:\n",
		"1. Create a GitHub repository for this project",
		"   - Go to https://github.com/new",
		"   - Name: "+name,
		"   - Description: "+PROJECT_DESCRIPTION,
		"   - Choose public or private repository",
		"   - Click 'Create repository'\n",
		"2. Push your code to GitHub",
		fmt.Sprintf("   $ git remote add origin https://github.com/YOUR_USERNAME/%s.git", name),
		"   $ git branch -M main",
		"   $ git push -u origin main\n",
		"3. Deploy on Railway",
		"   - Sign up/log in to Railway with your GitHub account",
		"   - Create a new project and select 'Deploy from GitHub repo'",
		"   - Find and select your "+name+" repository",
		"   - Your app will be automatically deployed",
		"   - Wait for the deployment to complete\n",
	)
}

func (d *Deployer) printNetworking() {
	d.console.Header("Getting your Railway App URL")
	d.console.Lines(
		"After deployment is complete:",
		"1. Go to the 'Settings' tab in your Railway project",
		"2. Look for the 'Networking' section",
		"3. Select 'Public Network' or 'Public Domain'",
		"4. Enter the port number from the deploy logs (typically 8080)",
		"5. Railway will generate a public URL for your application",
		"6. Copy this URL - you'll need it for the webhook setup and desktop client",
	)
}

func (d *Deployer) printComplete(appURL string) {
	d.console.Header("Deployment Complete!")
	d.console.Lines(
		"Your DevShare server is now available at: "+appURL,
		"To test it, send a message to your Telegram bot.",
		"\nTo connect with the DevShare desktop client:",
		"1. Enter your Telegram ID in the DevShare desktop app",
		"2. The desktop app will automatically connect to your server",
		"\nDesktop client repository: "+CLIENT_REPO_URL,
	)
}
