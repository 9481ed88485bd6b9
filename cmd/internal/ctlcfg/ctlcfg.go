// Package ctlcfg loads the taskctl configuration file.
package ctlcfg

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

const configFile = "config.toml"

// GatewayOutputKey is the stack output holding the API URL.
const GatewayOutputKey = "BackendTaskbackGatewayURL"

type Config struct {
	APIURL string `toml:"api_url" validate:"omitempty,url"`
	Stack  string `toml:"stack"`
	Region string `toml:"region" validate:"required_with=Stack"`
}

// StackOutputsFunc returns the outputs of a deployed stack.
type StackOutputsFunc func(ctx context.Context, region, stack string) (map[string]string, error)

// DefaultPath returns ~/.config/taskctl/config.toml, honoring XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "locate config directory")
	}
	return filepath.Join(dir, "taskctl", configFile), nil
}

// Load reads the file at path. A missing file yields an empty config.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrapf(err, "invalid %s", path)
	}
	return &cfg, nil
}

// Resolve picks the API URL. An explicit value wins over api_url, which wins
// over the gateway output of the configured stack.
func (c *Config) Resolve(ctx context.Context, explicit string, outputs StackOutputsFunc) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if c.APIURL != "" {
		return c.APIURL, nil
	}
	if c.Stack == "" {
		return "", errors.New("no API URL: pass --api-url or --stack, set TASKCTL_API_URL or api_url in the config file")
	}
	if c.Region == "" {
		return "", errors.Newf("stack %s given without a region", c.Stack)
	}

	outs, err := outputs(ctx, c.Region, c.Stack)
	if err != nil {
		return "", err
	}
	url, ok := outs[GatewayOutputKey]
	if !ok || url == "" {
		return "", errors.Newf("stack %s has no %s output", c.Stack, GatewayOutputKey)
	}
	return url, nil
}
