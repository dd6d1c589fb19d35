// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// CollisionLastWins lets a later game directory overwrite the copy of an
	// earlier one that normalized to the same name.
	CollisionLastWins CollisionPolicy = "last_wins"
	// CollisionError aborts the run before any copy when names collide.
	CollisionError CollisionPolicy = "error"
)

var (
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidCollisionPolicy is returned when a CollisionPolicy value is not recognized.
	ErrInvalidCollisionPolicy = errors.New("invalid collision policy")
)

type (
	// CollisionPolicy decides what happens when two game directories
	// normalize to the same target name.
	CollisionPolicy string

	// InvalidCollisionPolicyError is returned when a CollisionPolicy value is not recognized.
	InvalidCollisionPolicyError struct {
		Value CollisionPolicy
	}

	// InvalidConfigError collects field-level validation errors.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		Discovery       DiscoveryConfig `json:"discovery" mapstructure:"discovery"`
		Build           BuildConfig     `json:"build" mapstructure:"build"`
		Metadata        MetadataConfig  `json:"metadata" mapstructure:"metadata"`
		CollisionPolicy CollisionPolicy `json:"collision_policy" mapstructure:"collision_policy"`
		UI              UIConfig        `json:"ui" mapstructure:"ui"`
	}

	// DiscoveryConfig controls which directories count as games and how
	// their target names are derived.
	DiscoveryConfig struct {
		// Pattern is matched case-insensitively against directory names.
		Pattern string `json:"pattern" mapstructure:"pattern"`
		// StripToken is removed (every occurrence) from directory names.
		StripToken string `json:"strip_token" mapstructure:"strip_token"`
	}

	// BuildConfig controls the compile step run in each copied game.
	BuildConfig struct {
		// Extension is the source file suffix that triggers a build.
		Extension string `json:"extension" mapstructure:"extension"`
		// Command is the build command; the source file name is appended.
		Command []string `json:"command" mapstructure:"command"`
		// FailOnError makes a failed build abort the run.
		FailOnError bool `json:"fail_on_error" mapstructure:"fail_on_error"`
	}

	// MetadataConfig controls the summary file written to the target root.
	MetadataConfig struct {
		// FileName is the bare file name, never a path.
		FileName string `json:"file_name" mapstructure:"file_name"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the configuration that reproduces the classic
// behavior: "game" directories, "_game" stripped, `go build` on *.go files,
// metadata.json, last-wins collisions.
func DefaultConfig() *Config {
	return &Config{
		Discovery: DiscoveryConfig{
			Pattern:    "game",
			StripToken: "_game",
		},
		Build: BuildConfig{
			Extension:   ".go",
			Command:     []string{"go", "build"},
			FailOnError: false,
		},
		Metadata: MetadataConfig{
			FileName: "metadata.json",
		},
		CollisionPolicy: CollisionLastWins,
		UI: UIConfig{
			Verbose: false,
		},
	}
}

// Validate returns an InvalidConfigError listing every invalid field, or nil.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Discovery.Pattern) == "" {
		errs = append(errs, errors.New("discovery.pattern: must be non-empty"))
	}
	if !strings.HasPrefix(c.Build.Extension, ".") || len(c.Build.Extension) < 2 {
		errs = append(errs, fmt.Errorf("build.extension: %q must start with '.' and name a suffix", c.Build.Extension))
	}
	if len(c.Build.Command) == 0 || strings.TrimSpace(c.Build.Command[0]) == "" {
		errs = append(errs, errors.New("build.command: must name an executable"))
	}
	if name := c.Metadata.FileName; strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) {
		errs = append(errs, fmt.Errorf("metadata.file_name: %q must be a bare file name", name))
	}
	if err := c.CollisionPolicy.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("collision_policy: %w", err))
	}

	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, fe := range e.FieldErrors {
		msgs = append(msgs, fe.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the CollisionPolicy.
func (p CollisionPolicy) String() string { return string(p) }

// Validate returns an error if the policy is not one of the known values.
func (p CollisionPolicy) Validate() error {
	switch p {
	case CollisionLastWins, CollisionError:
		return nil
	default:
		return &InvalidCollisionPolicyError{Value: p}
	}
}

// Error implements the error interface.
func (e *InvalidCollisionPolicyError) Error() string {
	return fmt.Sprintf("invalid collision policy %q (valid: last_wins, error)", e.Value)
}

// Unwrap returns ErrInvalidCollisionPolicy for errors.Is() compatibility.
func (e *InvalidCollisionPolicyError) Unwrap() error { return ErrInvalidCollisionPolicy }
