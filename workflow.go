package deployprep

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

const WORKFLOW_FILE = ".github/workflows/python-test.yml"
const WORKFLOW_PYTHON_VERSION = "3.9"

type GithubWorkflow struct {
	Name string                 `yaml:"name"`
	On   WorkflowTriggers       `yaml:"on"`
	Jobs map[string]WorkflowJob `yaml:"jobs"`
}

type WorkflowTriggers struct {
	Push        BranchFilter `yaml:"push"`
	PullRequest BranchFilter `yaml:"pull_request"`
}

type BranchFilter struct {
	Branches []string `yaml:"branches,flow"`
}

type WorkflowJob struct {
	RunsOn   string           `yaml:"runs-on"`
	Strategy WorkflowStrategy `yaml:"strategy"`
	Steps    []WorkflowStep   `yaml:"steps"`
}

type WorkflowStrategy struct {
	Matrix struct {
		PythonVersion []string `yaml:"python-version,flow"`
	} `yaml:"matrix"`
}

type WorkflowStep struct {
	Name string            `yaml:"name,omitempty"`
	Uses string            `yaml:"uses,omitempty"`
	With map[string]string `yaml:"with,omitempty"`
	Run  string            `yaml:"run,omitempty"`
}

func PythonTestWorkflow() GithubWorkflow {
	job := WorkflowJob{
		RunsOn: "ubuntu-latest",
		Steps: []WorkflowStep{
			{Uses: "actions/checkout@v3"},
			{
				Name: "Set up Python ${{ matrix.python-version }}",
				Uses: "actions/setup-python@v4",
				With: map[string]string{"python-version": "${{ matrix.python-version }}"},
			},
			{
				Name: "Install dependencies",
				Run: "python -m pip install --upgrade pip\n" +
					"if [ -f requirements.txt ]; then pip install -r requirements.txt; fi\n" +
					"pip install pytest pytest-cov\n",
			},
			{
				Name: "Lint with flake8",
				Run: "pip install flake8\n" +
					"# stop the build if there are Python syntax errors or undefined names\n" +
					"flake8 . --count --select=E9,F63,F7,F82 --show-source --statistics\n" +
					"# exit-zero treats all errors as warnings\n" +
					"flake8 . --count --exit-zero --max-complexity=10 --max-line-length=127 --statistics\n",
			},
			{
				Name: "Test with pytest",
				Run:  "pytest\n",
			},
		},
	}
	job.Strategy.Matrix.PythonVersion = []string{WORKFLOW_PYTHON_VERSION}
	return GithubWorkflow{
		Name: "Python Tests",
		On: WorkflowTriggers{
			Push:        BranchFilter{Branches: []string{"main"}},
			PullRequest: BranchFilter{Branches: []string{"main"}},
		},
		Jobs: map[string]WorkflowJob{"test": job},
	}
}

func RenderWorkflow(wf GithubWorkflow) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(wf); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
