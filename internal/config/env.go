package config

import (
	"os"
	"strings"
)

// Environment variable names, kept identical to the secrets-file keys so one
// vocabulary covers both sources.
const (
	EnvOwner       = "GITHUB_OWNER"
	EnvRepo        = "GITHUB_REPO"
	EnvPath        = "GITHUB_PATH"
	EnvBranch      = "GITHUB_BRANCH"
	EnvToken       = "GITHUB_TOKEN"
	EnvTimezone    = "TIMEZONE"
	EnvAllowFuture = "ALLOW_FUTURE"
)

// parseEnv overlays non-empty environment values onto cfg.
func parseEnv(cfg *Config) {
	setIfPresent(EnvOwner, &cfg.Owner)
	setIfPresent(EnvRepo, &cfg.Repo)
	setIfPresent(EnvPath, &cfg.Path)
	setIfPresent(EnvBranch, &cfg.Branch)
	setIfPresent(EnvToken, &cfg.Token)
	setIfPresent(EnvTimezone, &cfg.Timezone)

	if v := strings.TrimSpace(os.Getenv(EnvAllowFuture)); v != "" {
		cfg.AllowFuture = parseAllowFuture(v)
	}
}

func setIfPresent(key string, dst *string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// parseAllowFuture accepts the historical truthy spellings; anything else
// means false.
func parseAllowFuture(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
