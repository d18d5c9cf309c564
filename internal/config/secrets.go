package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// EnvSecretsFile names the environment variable pointing at the secrets
// file. When unset, DefaultSecretsFile is tried.
const (
	EnvSecretsFile     = "PUNCHCLOCK_SECRETS"
	DefaultSecretsFile = "secrets.toml"
)

// secretsFile is a DTO used exclusively for TOML decoding. AllowFuture is a
// string so the file accepts the same truthy spellings as the environment.
type secretsFile struct {
	Owner       string `toml:"GITHUB_OWNER"`
	Repo        string `toml:"GITHUB_REPO"`
	Path        string `toml:"GITHUB_PATH"`
	Branch      string `toml:"GITHUB_BRANCH"`
	Token       string `toml:"GITHUB_TOKEN"`
	Timezone    string `toml:"TIMEZONE"`
	AllowFuture string `toml:"ALLOW_FUTURE"`
}

// parseSecrets overlays cfg with values from the secrets file, when one
// exists. A missing file is not an error; an unreadable or malformed one is.
func parseSecrets(cfg *Config) error {
	path := strings.TrimSpace(os.Getenv(EnvSecretsFile))
	explicit := path != ""
	if !explicit {
		path = DefaultSecretsFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("reading secrets file %s: %w", path, err)
	}

	var sf secretsFile
	if err := toml.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("decoding secrets file %s: %w", path, err)
	}

	overlay(&cfg.Owner, sf.Owner)
	overlay(&cfg.Repo, sf.Repo)
	overlay(&cfg.Path, sf.Path)
	overlay(&cfg.Branch, sf.Branch)
	overlay(&cfg.Token, sf.Token)
	overlay(&cfg.Timezone, sf.Timezone)
	if v := strings.TrimSpace(sf.AllowFuture); v != "" {
		cfg.AllowFuture = parseAllowFuture(v)
	}
	return nil
}

func overlay(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
