// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	"github.com/gamesync/gamesync/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "gamesync"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// LocalConfigFile is looked up in the working directory when no user
	// config file exists.
	LocalConfigFile = "gamesync.cue"
	// EnvPrefix prefixes every environment override, e.g. GAMESYNC_BUILD_FAIL_ON_ERROR.
	EnvPrefix = "GAMESYNC"
	// DefaultEnvFile is read from the working directory when present.
	DefaultEnvFile = ".env"

	// maxConfigFileSize bounds how much of a config file is parsed.
	maxConfigFileSize = 1 << 20
)

//go:embed config_schema.cue
var configSchema string

// settingKeys lists every viper key; each one is also an env override.
var settingKeys = []string{
	"discovery.pattern",
	"discovery.strip_token",
	"build.extension",
	"build.command",
	"build.fail_on_error",
	"metadata.file_name",
	"collision_policy",
	"ui.verbose",
}

// ConfigDir returns the gamesync configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// EnvVarName returns the environment variable that overrides a viper key.
func EnvVarName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// loadWithOptions performs option-driven config loading and returns the
// config together with the config file path that was used ("" for defaults).
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("discovery.pattern", defaults.Discovery.Pattern)
	v.SetDefault("discovery.strip_token", defaults.Discovery.StripToken)
	v.SetDefault("build.extension", defaults.Build.Extension)
	v.SetDefault("build.command", defaults.Build.Command)
	v.SetDefault("build.fail_on_error", defaults.Build.FailOnError)
	v.SetDefault("metadata.file_name", defaults.Metadata.FileName)
	v.SetDefault("collision_policy", string(defaults.CollisionPolicy))
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	resolvedPath, err := resolveConfigFile(opts)
	if err != nil {
		return nil, "", err
	}
	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithIssue(issue.ConfigLoadFailedId).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				Wrap(err).
				BuildError()
		}
	}

	if err := applyEnvFile(v, opts.EnvFilePath); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("load environment file").
			WithResource(opts.EnvFilePath).
			WithIssue(issue.ConfigLoadFailedId).
			WithSuggestion("Use KEY=VALUE lines, e.g. GAMESYNC_BUILD_FAIL_ON_ERROR=true").
			Wrap(err).
			BuildError()
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Environment values arrive as one string; CUE files give a list.
	if raw, ok := v.Get("build.command").(string); ok {
		v.Set("build.command", splitCommand(raw))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithIssue(issue.ConfigLoadFailedId).
			WithSuggestion("Run 'gamesync config show' to see the effective values").
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// resolveConfigFile picks the config file to load. An explicit path must
// exist; the implicit locations are optional.
func resolveConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithIssue(issue.ConfigLoadFailedId).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'gamesync config dump' to generate a starting file").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	cfgDir := opts.ConfigDirPath
	if cfgDir == "" {
		dir, err := ConfigDir()
		if err != nil {
			return "", err
		}
		cfgDir = dir
	}

	if cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt); fileExists(cuePath) {
		return cuePath, nil
	}
	if fileExists(LocalConfigFile) {
		return LocalConfigFile, nil
	}
	return "", nil
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if len(data) > maxConfigFileSize {
		return fmt.Errorf("%s: file size %d exceeds limit of %d bytes", path, len(data), maxConfigFileSize)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return formatCUEError(userValue.Err(), path)
	}

	// Fields are optional, so only closedness and types are checked here.
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return formatCUEError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return formatCUEError(err, path)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// applyEnvFile copies GAMESYNC_* entries from a dotenv file into viper.
// Variables already present in the process environment win, and a missing
// file is not an error.
func applyEnvFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if !fileExists(path) {
		return nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return err
	}

	for _, key := range settingKeys {
		name := EnvVarName(key)
		if _, set := os.LookupEnv(name); set {
			continue
		}
		if val, ok := values[name]; ok {
			v.Set(key, val)
		}
	}
	return nil
}

// splitCommand turns "go build" or "go,build" into an argv.
func splitCommand(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// gamesync configuration file\n\n")

	sb.WriteString("discovery: {\n")
	fmt.Fprintf(&sb, "\tpattern:     %q\n", cfg.Discovery.Pattern)
	fmt.Fprintf(&sb, "\tstrip_token: %q\n", cfg.Discovery.StripToken)
	sb.WriteString("}\n")

	sb.WriteString("\nbuild: {\n")
	fmt.Fprintf(&sb, "\textension: %q\n", cfg.Build.Extension)
	quoted := make([]string, 0, len(cfg.Build.Command))
	for _, arg := range cfg.Build.Command {
		quoted = append(quoted, fmt.Sprintf("%q", arg))
	}
	fmt.Fprintf(&sb, "\tcommand: [%s]\n", strings.Join(quoted, ", "))
	fmt.Fprintf(&sb, "\tfail_on_error: %v\n", cfg.Build.FailOnError)
	sb.WriteString("}\n")

	sb.WriteString("\nmetadata: {\n")
	fmt.Fprintf(&sb, "\tfile_name: %q\n", cfg.Metadata.FileName)
	sb.WriteString("}\n")

	fmt.Fprintf(&sb, "\ncollision_policy: %q\n", cfg.CollisionPolicy)

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}
