package deployprep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

var ErrGitNotFound = errors.New("git is not installed")

/* GitRepository */
type GitRepositorySvc struct {
	logs    AppLogger
	appOs   OSCommand
	console *Console
	Silent  bool
}

func NewGitRepositorySvc(logs AppLogger, appOs OSCommand, console *Console) *GitRepositorySvc {
	return &GitRepositorySvc{
		logs:    logs,
		appOs:   appOs,
		console: console,
	}
}

func (svc *GitRepositorySvc) run(workdir string, name string, args ...string) CommandResult {
	line := commandLine(name, args)
	svc.console.Command(line)
	result := svc.appOs.RunProgram(workdir, name, args...)
	svc.logs.Info("command executed", "cmd", line, "dir", workdir, "succeeded", result.Succeeded)
	if svc.Silent {
		return result
	}
	if out := strings.TrimRight(result.Stdout, "\n"); out != "" {
		svc.console.Text("%s", out)
	}
	if out := strings.TrimRight(result.Stderr, "\n"); out != "" {
		svc.console.Error("ERROR: %s", out)
	}
	return result
}

// CheckGit probes the git binary. Any failure here is fatal for the caller.
func (svc *GitRepositorySvc) CheckGit() error {
	svc.console.Header("Checking if Git is installed")
	if _, err := svc.appOs.LookProgram("git"); err != nil {
		svc.logs.Error("which git path", "error", err.Error())
		svc.console.Error("Git not found! Please install Git from: %s", GIT_DOWNLOAD_URL)
		return fmt.Errorf("%w: %v", ErrGitNotFound, err)
	}
	result := svc.run("", "git", "--version")
	if !result.Succeeded || !strings.Contains(strings.ToLower(result.Stdout), GIT_VERSION_MARKER) {
		svc.logs.Error("unexpected git version probe", "stdout", result.Stdout, "stderr", result.Stderr)
		svc.console.Error("Git not found! Please install Git from: %s", GIT_DOWNLOAD_URL)
		return ErrGitNotFound
	}
	return nil
}

// EnsureRepository runs git init unless workdir already holds a repository.
func (svc *GitRepositorySvc) EnsureRepository(workdir string) bool {
	svc.console.Header("Initializing git repository")
	_, err := os.Stat(filepath.Join(workdir, GIT_MARKER))
	if err == nil {
		svc.console.Text("Git repository already initialized")
		return true
	}
	if !errors.Is(err, os.ErrNotExist) {
		svc.logs.Warn("checking repository marker", "error", err.Error())
	}
	return svc.run(workdir, "git", "init").Succeeded
}

// CommitAll stages the whole tree and commits it. A clean tree is a
// successful no-op.
func (svc *GitRepositorySvc) CommitAll(workdir string, message string) bool {
	svc.console.Header("Committing changes")
	if add := svc.run(workdir, "git", "add", "."); !add.Succeeded {
		svc.logs.Error("staging files", "stderr", add.Stderr)
	}
	status := svc.appOs.RunProgram(workdir, "git", "status", "--porcelain")
	if status.Succeeded && strings.TrimSpace(status.Stdout) == "" {
		svc.logs.Info("working tree clean", "dir", workdir)
		svc.console.Text("No changes to commit")
		return true
	}
	commit := svc.run(workdir, "git", "commit", "-m", message)
	if strings.Contains(commit.Stdout, "nothing to commit") {
		svc.console.Text("No changes to commit")
		return true
	}
	if !commit.Succeeded {
		svc.logs.Error("committing changes", "stderr", commit.Stderr)
	}
	return commit.Succeeded
}

func commandLine(name string, args []string) string {
	parts := []string{name}
	for _, a := range args {
		if strings.ContainsAny(a, " \t") {
			a = `"` + a + `"`
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

/* BotServer */
type BotServerSvc struct {
	logs    AppLogger
	client  HttpClienter
	console *Console
	apiHost string
}

func NewBotServerSvc(logs AppLogger, client HttpClienter, console *Console, apiHost string) *BotServerSvc {
	if apiHost == "" {
		apiHost = BOT_API_HOST
	}
	return &BotServerSvc{
		logs:    logs,
		client:  client,
		console: console,
		apiHost: strings.TrimSuffix(apiHost, "/"),
	}
}

// NormalizeAppURL drops exactly one trailing slash.
func NormalizeAppURL(appURL string) string {
	return strings.TrimSuffix(appURL, "/")
}

func WebhookURL(appURL string) string {
	return appURL + WEBHOOK_PATH
}

func (svc *BotServerSvc) endpoint(token string, method string) string {
	return svc.apiHost + "/bot" + token + "/" + method
}

// ManualWebhookCommand is the curl line an operator can run later.
func (svc *BotServerSvc) ManualWebhookCommand(token string) string {
	return fmt.Sprintf(`curl "%s?url=YOUR_APP_URL%s"`, svc.endpoint(token, "setWebhook"), WEBHOOK_PATH)
}

func (svc *BotServerSvc) get(ctx context.Context, endpoint string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, err
	}
	resp, err := svc.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

// RegisterWebhook points the bot at appURL + /webhook. It reports true only
// for an HTTP 200 answer.
func (svc *BotServerSvc) RegisterWebhook(ctx context.Context, appURL string, token string) bool {
	svc.console.Header("Setting up webhook")
	hook := WebhookURL(appURL)
	svc.console.Text("Setting webhook to: %s", hook)
	endpoint := svc.endpoint(token, "setWebhook") + "?" + url.Values{"url": {hook}}.Encode()
	status, body, err := svc.get(ctx, endpoint)
	if err != nil {
		svc.logs.Error("setting webhook", "error", redact(err.Error(), token))
		svc.console.Error("Error setting webhook: %s", redact(err.Error(), token))
		return false
	}
	svc.logs.Info("set webhook response", "status", status, "webhook", hook)
	if status != http.StatusOK {
		svc.console.Error("Failed to set webhook: %s", string(body))
		return false
	}
	svc.console.Success("Webhook set successfully!")
	svc.console.Text("%s", string(body))
	return true
}

// VerifyWebhook reports whether the platform has a webhook URL on record.
func (svc *BotServerSvc) VerifyWebhook(ctx context.Context, token string) bool {
	svc.console.Header("Verifying webhook")
	status, body, err := svc.get(ctx, svc.endpoint(token, "getWebhookInfo"))
	if err != nil {
		svc.logs.Error("verifying webhook", "error", redact(err.Error(), token))
		svc.console.Error("Error verifying webhook: %s", redact(err.Error(), token))
		return false
	}
	if status != http.StatusOK {
		svc.logs.Warn("get webhook info response", "status", status)
		svc.console.Error("Failed to verify webhook: %s", string(body))
		return false
	}
	var info WebhookInfo
	if err := json.Unmarshal(body, &info); err != nil {
		svc.logs.Error("decoding webhook info", "error", err.Error())
		svc.console.Error("Error verifying webhook: %s", err.Error())
		return false
	}
	svc.console.Text("Current webhook URL: %s", info.Result.URL)
	if info.Result.URL != "" {
		svc.console.Success("Webhook status: ✓ Active")
	} else {
		svc.console.Error("Webhook status: ✗ Not set")
	}
	if info.Result.LastErrorMessage != "" {
		svc.console.Text("Last delivery error: %s", info.Result.LastErrorMessage)
	}
	svc.logs.Info("webhook info", "url", info.Result.URL, "pending", info.Result.PendingUpdateCount)
	return info.Result.URL != ""
}

// redact keeps the bot token out of logs and transport error text.
func redact(s string, token string) string {
	if token == "" {
		return s
	}
	return strings.ReplaceAll(s, token, "<token>")
}
