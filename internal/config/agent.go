package config

import (
	"fmt"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvAgentName         = "DOCKET_AGENT_NAME"
	EnvAgentProviderName = "DOCKET_AGENT_PROVIDER_NAME"
	EnvAgentBaseURL      = "DOCKET_AGENT_BASE_URL"
	EnvAgentToken        = "DOCKET_AGENT_TOKEN"
	EnvAgentDeployment   = "DOCKET_AGENT_DEPLOYMENT"
	EnvAgentAPIVersion   = "DOCKET_AGENT_API_VERSION"
	EnvAgentAuthType     = "DOCKET_AGENT_AUTH_TYPE"
	EnvAgentModelName    = "DOCKET_AGENT_MODEL_NAME"
)

// DefaultAgentName names the advisor agent when no name is configured.
const DefaultAgentName = "docket-advisor"

// FinalizeAgent applies the three-phase finalize pattern to a go-agents
// AgentConfig: go-agents defaults, DOCKET_AGENT_* overrides, validation.
// It only runs when the advisor is enabled.
func FinalizeAgent(c *gaconfig.AgentConfig) error {
	loadAgentDefaults(c)
	loadAgentEnv(c)
	return validateAgent(c)
}

func loadAgentDefaults(c *gaconfig.AgentConfig) {
	defaults := gaconfig.DefaultAgentConfig()
	defaults.Name = DefaultAgentName
	defaults.Merge(c)
	*c = defaults
}

func loadAgentEnv(c *gaconfig.AgentConfig) {
	if c.Provider == nil {
		c.Provider = &gaconfig.ProviderConfig{}
	}
	if c.Provider.Options == nil {
		c.Provider.Options = make(map[string]any)
	}
	if c.Model == nil {
		c.Model = &gaconfig.ModelConfig{}
	}
	if v := os.Getenv(EnvAgentName); v != "" {
		c.Name = v
	}
	if v := os.Getenv(EnvAgentProviderName); v != "" {
		c.Provider.Name = v
	}
	if v := os.Getenv(EnvAgentBaseURL); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv(EnvAgentModelName); v != "" {
		c.Model.Name = v
	}

	setOption := func(envVar, key string) {
		if v := os.Getenv(envVar); v != "" {
			c.Provider.Options[key] = v
		}
	}

	setOption(EnvAgentToken, "token")
	setOption(EnvAgentDeployment, "deployment")
	setOption(EnvAgentAPIVersion, "api_version")
	setOption(EnvAgentAuthType, "auth_type")
}

func validateAgent(c *gaconfig.AgentConfig) error {
	if c.Name == "" {
		return fmt.Errorf("name required")
	}
	if c.Provider == nil || c.Provider.Name == "" {
		return fmt.Errorf("provider name required")
	}
	if c.Model == nil || c.Model.Name == "" {
		return fmt.Errorf("model name required")
	}
	return nil
}
