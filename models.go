package deployprep

import "os"

// AppConfig holds the parameters of a single run. Every service receives
// the working directory through it instead of relying on os.Getwd.
type AppConfig struct {
	WorkDir     string
	BotToken    string
	AppURL      string
	ProjectName string
	Silent      bool
}

// CommandResult is the captured outcome of one external process.
type CommandResult struct {
	Stdout    string
	Stderr    string
	Succeeded bool
}

type WebhookInfo struct {
	Ok     bool `json:"ok"`
	Result struct {
		URL                string `json:"url"`
		PendingUpdateCount int    `json:"pending_update_count"`
		LastErrorMessage   string `json:"last_error_message"`
	} `json:"result"`
	Description string `json:"description"`
}

// Artifact is a scaffold file, relative to the working directory.
type Artifact struct {
	Path    string
	Content []byte
	Perm    os.FileMode
}
