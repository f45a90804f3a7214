package deployprep

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func gitOS(run func(workdir string, name string, args ...string) CommandResult) *MockAppOS {
	return &MockAppOS{
		RunFunc: run,
		LookFunc: func(cmd string) (string, error) {
			return "/usr/bin/" + cmd, nil
		},
	}
}

func TestGitRepositorySvc_CheckGit(t *testing.T) {
	tests := []struct {
		name    string
		look    error
		result  CommandResult
		wantErr bool
	}{
		{
			name:   "git installed",
			result: CommandResult{Stdout: "git version 2.43.0\n", Succeeded: true},
		},
		{
			name:    "git missing from path",
			look:    errors.New("executable file not found in $PATH"),
			wantErr: true,
		},
		{
			name:    "probe fails",
			result:  CommandResult{Stderr: "boom", Succeeded: false},
			wantErr: true,
		},
		{
			name:    "unexpected probe output",
			result:  CommandResult{Stdout: "hg 6.0\n", Succeeded: true},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockAppOS{
				RunFunc: func(workdir string, name string, args ...string) CommandResult {
					return tt.result
				},
				LookFunc: func(cmd string) (string, error) {
					return "/usr/bin/git", tt.look
				},
			}
			console, _ := testConsole()
			svc := NewGitRepositorySvc(testLogger(), mock, console)
			err := svc.CheckGit()
			if (err != nil) != tt.wantErr {
				t.Fatalf("GitRepositorySvc.CheckGit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrGitNotFound) {
				t.Errorf("GitRepositorySvc.CheckGit() error = %v, want ErrGitNotFound", err)
			}
		})
	}
}

func TestGitRepositorySvc_EnsureRepository_Idempotent(t *testing.T) {
	dir := t.TempDir()
	mock := gitOS(func(workdir string, name string, args ...string) CommandResult {
		if err := os.Mkdir(filepath.Join(workdir, GIT_MARKER), 0755); err != nil {
			return CommandResult{Stderr: err.Error()}
		}
		return CommandResult{Stdout: "Initialized empty Git repository\n", Succeeded: true}
	})
	console, out := testConsole()
	svc := NewGitRepositorySvc(testLogger(), mock, console)

	if !svc.EnsureRepository(dir) {
		t.Fatal("first EnsureRepository() = false, want true")
	}
	if !svc.EnsureRepository(dir) {
		t.Fatal("second EnsureRepository() = false, want true")
	}
	want := [][]string{{"git", "init"}}
	if diff := cmp.Diff(want, mock.Calls); diff != "" {
		t.Error("EnsureRepository() commands = ", diff)
	}
	if !strings.Contains(out.String(), "Git repository already initialized") {
		t.Errorf("output %q does not report existing repository", out.String())
	}
}

func TestGitRepositorySvc_CommitAll(t *testing.T) {
	tests := []struct {
		name      string
		status    CommandResult
		commit    CommandResult
		want      bool
		wantCalls [][]string
	}{
		{
			name:   "commit staged changes",
			status: CommandResult{Stdout: "A  Procfile\n", Succeeded: true},
			commit: CommandResult{Stdout: "[main 1a2b3c4] Prepare for Railway deployment\n", Succeeded: true},
			want:   true,
			wantCalls: [][]string{
				{"git", "add", "."},
				{"git", "status", "--porcelain"},
				{"git", "commit", "-m", GIT_COMMIT_MESSAGE},
			},
		},
		{
			name:   "clean tree is a no-op",
			status: CommandResult{Succeeded: true},
			want:   true,
			wantCalls: [][]string{
				{"git", "add", "."},
				{"git", "status", "--porcelain"},
			},
		},
		{
			name:   "nothing to commit reported by commit",
			status: CommandResult{Stderr: "unknown option", Succeeded: false},
			commit: CommandResult{Stdout: "On branch main\nnothing to commit, working tree clean\n", Succeeded: false},
			want:   true,
			wantCalls: [][]string{
				{"git", "add", "."},
				{"git", "status", "--porcelain"},
				{"git", "commit", "-m", GIT_COMMIT_MESSAGE},
			},
		},
		{
			name:   "commit fails",
			status: CommandResult{Stdout: "A  Procfile\n", Succeeded: true},
			commit: CommandResult{Stderr: "Please tell me who you are.", Succeeded: false},
			want:   false,
			wantCalls: [][]string{
				{"git", "add", "."},
				{"git", "status", "--porcelain"},
				{"git", "commit", "-m", GIT_COMMIT_MESSAGE},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := gitOS(func(workdir string, name string, args ...string) CommandResult {
				switch args[0] {
				case "status":
					return tt.status
				case "commit":
					return tt.commit
				}
				return CommandResult{Succeeded: true}
			})
			console, _ := testConsole()
			svc := NewGitRepositorySvc(testLogger(), mock, console)
			if got := svc.CommitAll(t.TempDir(), GIT_COMMIT_MESSAGE); got != tt.want {
				t.Errorf("GitRepositorySvc.CommitAll() = %v, want %v", got, tt.want)
			}
			if diff := cmp.Diff(tt.wantCalls, mock.Calls); diff != "" {
				t.Error("GitRepositorySvc.CommitAll() commands = ", diff)
			}
		})
	}
}

func TestGitRepositorySvc_SilentStillRuns(t *testing.T) {
	mock := gitOS(func(workdir string, name string, args ...string) CommandResult {
		return CommandResult{Stdout: "raw output\n", Stderr: "raw error\n", Succeeded: true}
	})
	console, out := testConsole()
	svc := NewGitRepositorySvc(testLogger(), mock, console)
	svc.Silent = true
	svc.run("", "git", "init")
	if len(mock.Calls) != 1 {
		t.Fatalf("commands run = %d, want 1", len(mock.Calls))
	}
	if strings.Contains(out.String(), "raw output") || strings.Contains(out.String(), "raw error") {
		t.Errorf("silent run printed output: %q", out.String())
	}
}

func Test_commandLine(t *testing.T) {
	got := commandLine("git", []string{"commit", "-m", GIT_COMMIT_MESSAGE})
	want := `git commit -m "Prepare for Railway deployment"`
	if got != want {
		t.Errorf("commandLine() = %q, want %q", got, want)
	}
}

func TestWebhookURL(t *testing.T) {
	tests := []struct {
		name   string
		appURL string
		want   string
	}{
		{"no trailing slash", "https://x.example", "https://x.example/webhook"},
		{"one trailing slash", "https://x.example/", "https://x.example/webhook"},
		{"only one slash is stripped", "https://x.example//", "https://x.example//webhook"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WebhookURL(NormalizeAppURL(tt.appURL)); got != tt.want {
				t.Errorf("WebhookURL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBotServerSvc_RegisterWebhook(t *testing.T) {
	const token = "123456:ABC"
	tests := []struct {
		name     string
		status   int
		body     string
		want     bool
		wantText string
	}{
		{
			name:     "webhook set",
			status:   http.StatusOK,
			body:     `{"ok":true,"result":true,"description":"Webhook was set"}`,
			want:     true,
			wantText: "Webhook set successfully!",
		},
		{
			name:     "webhook rejected",
			status:   http.StatusBadRequest,
			body:     `{"ok":false,"error_code":400,"description":"Bad Request: bad webhook"}`,
			want:     false,
			wantText: "Bad Request: bad webhook",
		},
		{
			name:     "unauthorized token",
			status:   http.StatusUnauthorized,
			body:     `{"ok":false,"error_code":401,"description":"Unauthorized"}`,
			want:     false,
			wantText: "Failed to set webhook",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotHook string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotHook = r.URL.Query().Get("url")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()
			console, out := testConsole()
			svc := NewBotServerSvc(testLogger(), srv.Client(), console, srv.URL)
			got := svc.RegisterWebhook(context.Background(), "https://x.example", token)
			if got != tt.want {
				t.Errorf("BotServerSvc.RegisterWebhook() = %v, want %v", got, tt.want)
			}
			if gotPath != "/bot"+token+"/setWebhook" {
				t.Errorf("request path = %q", gotPath)
			}
			if gotHook != "https://x.example/webhook" {
				t.Errorf("url parameter = %q, want %q", gotHook, "https://x.example/webhook")
			}
			if !strings.Contains(out.String(), tt.wantText) {
				t.Errorf("output %q does not contain %q", out.String(), tt.wantText)
			}
		})
	}
}

func TestBotServerSvc_RegisterWebhook_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	host := srv.URL
	srv.Close()
	console, out := testConsole()
	svc := NewBotServerSvc(testLogger(), &http.Client{}, console, host)
	if svc.RegisterWebhook(context.Background(), "https://x.example", "secret-token") {
		t.Fatal("BotServerSvc.RegisterWebhook() = true on closed server")
	}
	if !strings.Contains(out.String(), "Error setting webhook") {
		t.Errorf("output %q does not report the transport error", out.String())
	}
	if strings.Contains(out.String(), "secret-token") {
		t.Errorf("output leaks the token: %q", out.String())
	}
}

func TestBotServerSvc_VerifyWebhook(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		want     bool
		wantText string
	}{
		{
			name:     "no webhook registered",
			status:   http.StatusOK,
			body:     `{"result":{"url":""}}`,
			want:     false,
			wantText: "✗ Not set",
		},
		{
			name:     "webhook registered",
			status:   http.StatusOK,
			body:     `{"result":{"url":"https://x.example/webhook"}}`,
			want:     true,
			wantText: "Current webhook URL: https://x.example/webhook",
		},
		{
			name:     "webhook with delivery error",
			status:   http.StatusOK,
			body:     `{"ok":true,"result":{"url":"https://x.example/webhook","last_error_message":"Connection refused"}}`,
			want:     true,
			wantText: "Last delivery error: Connection refused",
		},
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			body:     `oops`,
			want:     false,
			wantText: "Failed to verify webhook: oops",
		},
		{
			name:     "malformed body",
			status:   http.StatusOK,
			body:     `{"result":`,
			want:     false,
			wantText: "Error verifying webhook",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if !strings.HasSuffix(r.URL.Path, "/getWebhookInfo") {
					t.Errorf("unexpected path %q", r.URL.Path)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()
			console, out := testConsole()
			svc := NewBotServerSvc(testLogger(), srv.Client(), console, srv.URL)
			if got := svc.VerifyWebhook(context.Background(), "123:abc"); got != tt.want {
				t.Errorf("BotServerSvc.VerifyWebhook() = %v, want %v", got, tt.want)
			}
			if !strings.Contains(out.String(), tt.wantText) {
				t.Errorf("output %q does not contain %q", out.String(), tt.wantText)
			}
		})
	}
}

func TestBotServerSvc_ManualWebhookCommand(t *testing.T) {
	console, _ := testConsole()
	svc := NewBotServerSvc(testLogger(), &http.Client{}, console, "")
	got := svc.ManualWebhookCommand("123:abc")
	want := `curl "https://api.telegram.org/bot123:abc/setWebhook?url=YOUR_APP_URL/webhook"`
	if got != want {
		t.Errorf("ManualWebhookCommand() = %q, want %q", got, want)
	}
}
