// Package config provides Viper-based configuration loading for the
// Scoundrel game.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// GameConfig holds rule settings.
type GameConfig struct {
	// MaxHealth is the player's starting and maximum health.
	MaxHealth int `mapstructure:"max_health"`
	// MaxPotionsPerTurn caps effective potions per turn; 0 means no cap.
	MaxPotionsPerTurn int `mapstructure:"max_potions_per_turn"`
	// Seed seeds the shuffle for reproducible games; 0 uses crypto randomness.
	Seed int64 `mapstructure:"seed"`
	// DungeonPath is a dungeon definition YAML file; empty uses the classic
	// 44-card dungeon.
	DungeonPath string `mapstructure:"dungeon_path"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// EventLogConfig holds game event journal settings.
type EventLogConfig struct {
	// Path is the JSONL event log file; empty disables the file sink.
	Path string `mapstructure:"path"`
	// Console mirrors events to the structured logger.
	Console bool `mapstructure:"console"`
	// Snapshots attaches a full state snapshot to every event.
	Snapshots bool `mapstructure:"snapshots"`
}

// UIConfig holds terminal rendering settings.
type UIConfig struct {
	// Color enables ANSI color output.
	Color bool `mapstructure:"color"`
	// ClearScreen clears the terminal before each room render.
	ClearScreen bool `mapstructure:"clear_screen"`
	// ShowTitle prints the title banner on startup.
	ShowTitle bool `mapstructure:"show_title"`
}

// AgentConfig selects an automated player.
type AgentConfig struct {
	// Mode is the player mode: "interactive", "heuristic", "script", or "llm".
	Mode string `mapstructure:"mode"`
	// Script is the Lua agent script path; required when Mode is "script".
	Script string `mapstructure:"script"`
	// ScriptInstructionLimit bounds Lua opcodes per decision; 0 uses the
	// sandbox default.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
	// Model is the Anthropic model ID used when Mode is "llm"; empty uses
	// the agent package default.
	Model string `mapstructure:"model"`
}

// Config is the top-level application configuration.
type Config struct {
	Game     GameConfig     `mapstructure:"game"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	EventLog EventLogConfig `mapstructure:"eventlog"`
	UI       UIConfig       `mapstructure:"ui"`
	Agent    AgentConfig    `mapstructure:"agent"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateAgent(c.Agent); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.MaxHealth < 1 {
		errs = append(errs, fmt.Sprintf("game.max_health must be >= 1, got %d", g.MaxHealth))
	}
	if g.MaxPotionsPerTurn < 0 {
		errs = append(errs, fmt.Sprintf("game.max_potions_per_turn must be >= 0, got %d", g.MaxPotionsPerTurn))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateAgent(a AgentConfig) error {
	var errs []string
	validModes := map[string]bool{"interactive": true, "heuristic": true, "script": true, "llm": true}
	if !validModes[a.Mode] {
		errs = append(errs, fmt.Sprintf("agent.mode must be one of [interactive, heuristic, script, llm], got %q", a.Mode))
	}
	if a.Mode == "script" && a.Script == "" {
		errs = append(errs, "agent.script must not be empty when agent.mode is script")
	}
	if a.ScriptInstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("agent.script_instruction_limit must be >= 0, got %d", a.ScriptInstructionLimit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result. An empty path loads defaults
// and environment overrides only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with SCOUNDREL_ prefix
	v.SetEnvPrefix("SCOUNDREL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.max_health", 20)
	v.SetDefault("game.max_potions_per_turn", 0)
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.dungeon_path", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("eventlog.path", "")
	v.SetDefault("eventlog.console", false)
	v.SetDefault("eventlog.snapshots", false)

	v.SetDefault("ui.color", true)
	v.SetDefault("ui.clear_screen", false)
	v.SetDefault("ui.show_title", true)

	v.SetDefault("agent.mode", "interactive")
	v.SetDefault("agent.script", "")
	v.SetDefault("agent.script_instruction_limit", 0)
	v.SetDefault("agent.model", "")
}
