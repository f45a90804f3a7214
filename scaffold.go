package deployprep

import (
	"fmt"
	"os"
	"time"
)

/* Scaffold */
type ScaffoldSvc struct {
	logs    AppLogger
	console *Console
}

func NewScaffoldSvc(logs AppLogger, console *Console) *ScaffoldSvc {
	return &ScaffoldSvc{logs: logs, console: console}
}

// DefaultArtifacts is the fixed catalog of files a hosted repository needs.
func DefaultArtifacts(now time.Time) ([]Artifact, error) {
	workflow, err := RenderWorkflow(PythonTestWorkflow())
	if err != nil {
		return nil, fmt.Errorf("rendering workflow: %w", err)
	}
	return []Artifact{
		{Path: GITIGNORE_FILE, Content: []byte(GITIGNORE_CONTENT)},
		{Path: WORKFLOW_FILE, Content: workflow},
		{Path: LICENSE_FILE, Content: []byte(LicenseContent(now.Year(), LICENSE_HOLDER))},
		{Path: PROCFILE_FILE, Content: []byte(PROCFILE_CONTENT)},
	}, nil
}

// EnsureArtifact writes a only when its path is free. Existing content is
// never touched.
func (svc *ScaffoldSvc) EnsureArtifact(workdir string, a Artifact) (bool, error) {
	fl := NewFlatFile(workdir, a.Path)
	fl.Perm = a.Perm
	ok, err := fl.Exists()
	if err != nil {
		svc.logs.Error("checking artifact", "path", a.Path, "error", err.Error())
		return false, err
	}
	if ok {
		svc.console.Text("%s already exists", a.Path)
		return false, nil
	}
	svc.console.Step("Creating %s", a.Path)
	if _, err := fl.Write(a.Content); err != nil {
		svc.console.Error("ERROR: creating %s: %s", a.Path, err.Error())
		return false, err
	}
	svc.logs.Info("artifact created", "path", a.Path)
	return true, nil
}

// EnsureArtifacts keeps going after a failed artifact and returns the
// paths it created.
func (svc *ScaffoldSvc) EnsureArtifacts(workdir string, artifacts []Artifact) []string {
	created := []string{}
	for _, a := range artifacts {
		ok, err := svc.EnsureArtifact(workdir, a)
		if err != nil {
			continue
		}
		if ok {
			created = append(created, a.Path)
		}
	}
	return created
}

// WriteEnvFile always overwrites the env file with the single token entry.
func (svc *ScaffoldSvc) WriteEnvFile(workdir string, token string) error {
	svc.console.Header("Creating .env file for Railway")
	fl := NewFlatFile(workdir, ENV_FILE_NAME)
	fl.Perm = 0600
	if _, err := fl.Write([]byte(ENV_BOT_TOKEN + "=" + token + "\n")); err != nil {
		svc.logs.Error("writing env file", "error", err.Error())
		svc.console.Error("ERROR: creating %s: %s", ENV_FILE_NAME, err.Error())
		return err
	}
	svc.console.Text("Created %s file with %s", ENV_FILE_NAME, ENV_BOT_TOKEN)
	return nil
}

// CopyDocs publishes the deployment notes under DEPLOY.md when only the
// old name is present.
func (svc *ScaffoldSvc) CopyDocs(workdir string) (bool, error) {
	target := NewFlatFile(workdir, DOCS_TARGET_FILE)
	ok, err := target.Exists()
	if err != nil || ok {
		return false, err
	}
	source := NewFlatFile(workdir, DOCS_SOURCE_FILE)
	info, err := os.Stat(source.File())
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	content, err := source.Read()
	if err != nil {
		return false, err
	}
	svc.console.Step("Renaming %s to %s", DOCS_SOURCE_FILE, DOCS_TARGET_FILE)
	target.Perm = info.Mode().Perm()
	if _, err := target.Write(content); err != nil {
		svc.console.Error("ERROR: copying %s: %s", DOCS_SOURCE_FILE, err.Error())
		return false, err
	}
	if err := os.Chtimes(target.File(), info.ModTime(), info.ModTime()); err != nil {
		svc.logs.Warn("preserving docs timestamps", "error", err.Error())
	}
	return true, nil
}

// CheckEntryPoint warns when workdir does not look like the server directory.
func (svc *ScaffoldSvc) CheckEntryPoint(workdir string) bool {
	ok, err := NewFlatFile(workdir, PROJECT_ENTRY_POINT).Exists()
	if err != nil || !ok {
		svc.console.Error("Warning: %s not found. Run this from the server directory.", PROJECT_ENTRY_POINT)
		return false
	}
	return true
}
