// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
	// ConfigDirPath overrides the config directory lookup when set.
	ConfigDirPath string
	// EnvFilePath names a dotenv file with GAMESYNC_* overrides.
	// Empty disables dotenv loading; a missing file is ignored.
	EnvFilePath string
}

// Provider loads configuration from explicit options.
type Provider interface {
	// Resolve returns the layered configuration and the config file that
	// was used ("" for defaults).
	Resolve(ctx context.Context, opts LoadOptions) (*Config, string, error)
}

type fileProvider struct{}

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Resolve reads configuration and reports the config file path used.
func (p *fileProvider) Resolve(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	return loadWithOptions(ctx, opts)
}
