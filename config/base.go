package config

import "os"

const (
	slackURLEnv     = "SLACK_WEBHOOK_URL"
	slackChannelEnv = "SLACK_CHANNEL"
)

type Config struct {
	Version bool
	Verbose bool

	Environment string
	Namespace   string
	ClusterName string

	ConfigFile    string
	ConfigMapName string
	Dataset       string

	SlackWebhookUrl string
	SlackChannel    string
}

// NewWithDefaults seeds the Slack settings from the environment. Flags
// override them.
func NewWithDefaults() Config {
	return Config{
		SlackWebhookUrl: os.Getenv(slackURLEnv),
		SlackChannel:    os.Getenv(slackChannelEnv),
	}
}

func (c Config) LogLevel() string {
	if c.Verbose {
		return "debug"
	}

	return "info"
}
