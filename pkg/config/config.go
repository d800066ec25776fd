// Package config loads environment-driven configuration for the Coding-Buddy
// processes. Everything is an input to component construction, not runtime
// state: the app name, the model identity, the external API base URLs, and
// the list of discoverable agent addresses.
package config

// External API defaults match the public endpoints the tools talk to.
const (
	DefaultGitHubBaseURL        = "https://api.github.com"
	DefaultRedditBaseURL        = "https://www.reddit.com"
	DefaultStackExchangeBaseURL = "https://api.stackexchange.com/2.3"
)

// Default listen addresses, one per process.
const (
	DefaultErrorExtractorAddr = ":8000"
	DefaultStackRedHubAddr    = ":8001"
	DefaultOrchestratorAddr   = ":8002"
	DefaultToolServerAddr     = ":8005"
)

// Config carries the environment-level inputs consumed by the components.
type Config struct {
	// AppName scopes session keys across agent processes.
	AppName string

	// Model is the model identity used by the think loop and the image
	// error extraction tool (e.g. "gemini-2.5-flash").
	Model string

	// APIKey authenticates against the model provider.
	APIKey string

	// AgentURLs is the configured set of discoverable agent base
	// addresses, each expected to serve /.well-known/agent.json.
	AgentURLs []string

	// Base URLs of the external knowledge sources.
	GitHubBaseURL        string
	RedditBaseURL        string
	StackExchangeBaseURL string
}

// Load reads configuration from the environment, after loading .env files
// if present. Unset values fall back to defaults; the API key is validated
// lazily by the model provider, not here.
func Load() (*Config, error) {
	if err := LoadEnvFiles(); err != nil {
		return nil, err
	}

	return &Config{
		AppName:              getEnv("APP_NAME", "coding-buddy"),
		Model:                getEnv("MODEL_NAME", "gemini-2.5-flash"),
		APIKey:               getEnv("GOOGLE_API_KEY", ""),
		AgentURLs:            getEnvList("AGENT_URLS"),
		GitHubBaseURL:        getEnv("GITHUB_BASE_URL", DefaultGitHubBaseURL),
		RedditBaseURL:        getEnv("REDDIT_BASE_URL", DefaultRedditBaseURL),
		StackExchangeBaseURL: getEnv("STACKEXCHANGE_BASE_URL", DefaultStackExchangeBaseURL),
	}, nil
}
