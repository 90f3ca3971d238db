// Package config provides repository configuration management,
// including reading and writing the .autofix.yml configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	autofixerrors "autofix.dev/autofix/internal/errors"
)

// FileName is the name of the configuration file at the repository root.
const FileName = ".autofix.yml"

// Default values applied when the config file omits a field.
const (
	DefaultRemote        = "origin"
	DefaultCommitMessage = "style: apply automated fixes"
	DefaultBotName       = "autofix-bot"
	DefaultBotEmail      = "autofix-bot@users.noreply.github.com"
	DefaultSkipToken     = "[autofix skip]"
)

// Tool describes one external lint/format tool invocation.
type Tool struct {
	Name      string            `yaml:"name"`
	Command   string            `yaml:"command"`
	Args      []string          `yaml:"args,omitempty"`
	FixArgs   []string          `yaml:"fixArgs,omitempty"`
	CheckArgs []string          `yaml:"checkArgs,omitempty"`
	Env       map[string]string `yaml:"env,omitempty"`
}

// Identity is the fixed author/committer used for automated commits.
type Identity struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// String renders the identity in "Name <email>" form.
func (i Identity) String() string {
	return fmt.Sprintf("%s <%s>", i.Name, i.Email)
}

// Config represents the repository configuration
type Config struct {
	Tools         []Tool   `yaml:"tools"`
	Bot           Identity `yaml:"bot"`
	CommitMessage string   `yaml:"commitMessage,omitempty"`
	Remote        string   `yaml:"remote,omitempty"`
	Push          *bool    `yaml:"push,omitempty"`
	SkipToken     string   `yaml:"skipToken,omitempty"`
}

// Default returns a config populated with default values and no tools.
func Default() *Config {
	push := true
	return &Config{
		Bot: Identity{
			Name:  DefaultBotName,
			Email: DefaultBotEmail,
		},
		CommitMessage: DefaultCommitMessage,
		Remote:        DefaultRemote,
		Push:          &push,
		SkipToken:     DefaultSkipToken,
	}
}

// Path returns the config file path for a repository root.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, FileName)
}

// Exists checks whether a config file is present at the repository root.
func Exists(repoRoot string) bool {
	_, err := os.Stat(Path(repoRoot))
	return err == nil
}

// Load reads the configuration from the repository root and applies defaults.
func Load(repoRoot string) (*Config, error) {
	data, err := os.ReadFile(Path(repoRoot))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s not found; run 'autofix init' first", FileName)
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the repository root.
func Save(repoRoot string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(Path(repoRoot), data, 0600)
}

// applyDefaults fills any fields the file left empty.
func (c *Config) applyDefaults() {
	if c.Remote == "" {
		c.Remote = DefaultRemote
	}
	if c.CommitMessage == "" {
		c.CommitMessage = DefaultCommitMessage
	}
	if c.Bot.Name == "" {
		c.Bot.Name = DefaultBotName
	}
	if c.Bot.Email == "" {
		c.Bot.Email = DefaultBotEmail
	}
	if c.SkipToken == "" {
		c.SkipToken = DefaultSkipToken
	}
	if c.Push == nil {
		push := true
		c.Push = &push
	}
}

// Validate checks the config for unusable values.
func (c *Config) Validate() error {
	if len(c.Tools) == 0 {
		return autofixerrors.ErrNoToolsConfigured
	}

	seen := make(map[string]bool, len(c.Tools))
	for _, tool := range c.Tools {
		if tool.Name == "" {
			return fmt.Errorf("tool with command %q has no name", tool.Command)
		}
		if tool.Command == "" {
			return fmt.Errorf("tool %q has no command", tool.Name)
		}
		if seen[tool.Name] {
			return fmt.Errorf("duplicate tool name %q", tool.Name)
		}
		seen[tool.Name] = true
	}

	if !strings.Contains(c.Bot.Email, "@") {
		return fmt.Errorf("bot email %q is not a valid address", c.Bot.Email)
	}

	return nil
}

// ShouldPush reports whether successful runs push the fix commit.
func (c *Config) ShouldPush() bool {
	return c.Push == nil || *c.Push
}

// FindTool returns the tool with the given name.
func (c *Config) FindTool(name string) (Tool, bool) {
	for _, tool := range c.Tools {
		if tool.Name == name {
			return tool, true
		}
	}
	return Tool{}, false
}
