package deployprep

import "time"

const APP_NAME = "deployprep"
const APP_VERSION = "v1.0.0"
const APP_FOLDER = ".deployprep"
const APP_CLI_LOG_FILE = "cli-log.json"
const APP_TUNNEL_LOG_FILE = "tunnel-log.json"

const BOT_API_HOST = "https://api.telegram.org"
const WEBHOOK_PATH = "/webhook"
const WEBHOOK_PROPAGATION_WAIT = 2 * time.Second

const ENV_FILE_NAME = ".env"
const ENV_BOT_TOKEN = "BOT_TOKEN"

const GIT_MARKER = ".git"
const GIT_VERSION_MARKER = "git version"
const GIT_DOWNLOAD_URL = "https://git-scm.com/downloads"
const GIT_COMMIT_MESSAGE = "Prepare for Railway deployment"

const PROJECT_NAME = "DevShare-server"
const PROJECT_DESCRIPTION = "Server component for the DevShare application"
const PROJECT_ENTRY_POINT = "app.py"
const CLIENT_REPO_URL = "https://github.com/Rkcr7/DevShare"
const PAAS_URL = "https://railway.app/"

const DOCS_SOURCE_FILE = "deploy_instructions.md"
const DOCS_TARGET_FILE = "DEPLOY.md"
