package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultSystemPrompt is the policy-laden prompt used when none is
// configured. It is what makes the backends English-only and
// fabrication-averse; the output guard is the enforcement backstop.
const DefaultSystemPrompt = "You are Dhirux Agentic Workflow Orchestrator. " +
	"Use concise, actionable responses and call tools when useful. " +
	"You must always respond in English only. Never respond in any other language. " +
	"If you do not know a fact, say exactly: 'I don't know based on available information.' " +
	"Do not invent people details, organizations, events, or profile links. " +
	"Never output any URL unless it came from a verified tool result."

type Config struct {
	DataDir       string `json:"data_dir"`
	LogLevel      string `json:"log_level"`
	HTTPAddr      string `json:"http_addr"`
	MaxConcurrent int    `json:"max_concurrent"`
	Agentic       struct {
		Enabled       bool   `json:"enabled"`
		SystemPrompt  string `json:"system_prompt"`
		ModelID       string `json:"model_id"`
		AllowFallback bool   `json:"allow_fallback"`
	} `json:"agentic"`
	LLM struct {
		BaseURL     string  `json:"base_url"`
		APIKey      string  `json:"api_key"`
		Model       string  `json:"model"`
		MaxTokens   int     `json:"max_tokens"`
		Temperature float32 `json:"temperature"`
	} `json:"llm"`
	Worker struct {
		BaseURL string `json:"base_url"`
		APIKey  string `json:"api_key"`
		Model   string `json:"model"`
	} `json:"worker"`
	Telegram struct {
		Token string `json:"token"`
	} `json:"telegram"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".dhirux", "config.json")
}

func defaults() *Config {
	cfg := &Config{
		DataDir:       filepath.Join(os.Getenv("HOME"), ".dhirux"),
		LogLevel:      "info",
		HTTPAddr:      ":8787",
		MaxConcurrent: 2,
	}
	cfg.Agentic.Enabled = true
	cfg.Agentic.SystemPrompt = DefaultSystemPrompt
	cfg.Agentic.ModelID = "local-qwen-worker"
	cfg.Agentic.AllowFallback = true
	cfg.LLM.BaseURL = "http://127.0.0.1:8089/v1"
	cfg.LLM.Model = "local-qwen-worker"
	cfg.LLM.MaxTokens = 2000
	cfg.LLM.Temperature = 0.7
	cfg.Worker.BaseURL = "http://127.0.0.1:8089/v1"
	cfg.Worker.Model = "local-qwen-worker"
	return cfg
}

// Load reads configuration from the JSON file at path, writing defaults
// there first if it does not exist, then applies environment overrides
// (highest precedence).
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if os.IsNotExist(err) {
		if err := write(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv layers environment overrides onto the config. The AGENTIC_*
// keys match the original deployment surface of this service.
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("AGENTIC_ENABLED"); ok {
		cfg.Agentic.Enabled = v == "1"
	}
	if v := os.Getenv("AGENTIC_SYSTEM_PROMPT"); v != "" {
		cfg.Agentic.SystemPrompt = v
	}
	if v := os.Getenv("AGENTIC_MODEL_ID"); v != "" {
		cfg.Agentic.ModelID = v
		cfg.LLM.Model = v
	}
	if v, ok := os.LookupEnv("AGENTIC_ALLOW_CLASSIC_FALLBACK"); ok {
		cfg.Agentic.AllowFallback = v == "1"
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.Token = v
	}
}

// write marshals the config with indentation and writes it atomically.
func write(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

// ListValues returns the config as a flat dot-keyed map, masking secrets
// when mask is true.
func ListValues(cfg *Config, mask bool) (map[string]any, error) {
	flat, err := flattenConfig(cfg)
	if err != nil {
		return nil, err
	}
	if mask {
		flat = MaskSecrets(flat)
	}
	return flat, nil
}

// GetValue reads the config file at path and returns the value for a
// dot-separated key, masked if secret.
func GetValue(path, key string) (any, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	flat, err := ListValues(cfg, true)
	if err != nil {
		return nil, err
	}
	v, ok := flat[key]
	if !ok {
		return nil, fmt.Errorf("unknown config key: %s", key)
	}
	return v, nil
}

// SetValue updates one dot-separated key in the config file at path.
// The raw value is decoded as JSON when possible so numbers and booleans
// round-trip; otherwise it is stored as a string.
func SetValue(path, key, raw string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	flat, err := flattenConfig(cfg)
	if err != nil {
		return err
	}
	if _, ok := flat[key]; !ok {
		return fmt.Errorf("unknown config key: %s", key)
	}

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		value = raw
	}
	flat[key] = value

	nested := Unflatten(flat)
	data, err := json.Marshal(nested)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	updated := defaults()
	if err := json.Unmarshal(data, updated); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return write(path, updated)
}

// flattenConfig round-trips the struct through JSON into a flat map.
func flattenConfig(cfg *Config) (map[string]any, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return Flatten(m), nil
}
