package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultSeparator = ";"
	defaultThrottle  = 300

	configPathEnv    = "BRAND_MENTION_CONFIG"
	csvPathEnv       = "BRANDS_CSV_PATH"
	resultsDBEnv     = "RESULTS_DB_PATH"
	chatGPTAPIKeyEnv = "CHATGPT_API_KEY"
	chatGPTModelEnv  = "CHATGPT_MODEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Input   InputConfig   `yaml:"input"`
	Wiki    WikiConfig    `yaml:"wiki"`
	ChatGPT ChatGPTConfig `yaml:"chatgpt"`
	Storage StorageConfig `yaml:"storage"`
}

// LoggingConfig controls console log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// InputConfig describes the delimited brand table on disk.
type InputConfig struct {
	CSVPath   string `yaml:"csvPath"`
	Separator string `yaml:"separator"`
}

// SeparatorRune resolves the configured column separator to a single rune.
func (i InputConfig) SeparatorRune() rune {
	for _, r := range i.Separator {
		return r
	}
	return ';'
}

// WikiConfig defines how to contact the encyclopedia lookup API.
type WikiConfig struct {
	APIURL     string              `yaml:"apiUrl"`
	ThrottleMS int                 `yaml:"throttleMs"`
	Aliases    map[string][]string `yaml:"aliases"`
}

// Throttle resolves the delay applied between successive brand lookups.
func (w WikiConfig) Throttle() time.Duration {
	if w.ThrottleMS <= 0 {
		return 0
	}
	return time.Duration(w.ThrottleMS) * time.Millisecond
}

// ChatGPTConfig defines how to contact the ChatGPT API.
type ChatGPTConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Model        string `yaml:"model"`
	APIKey       string `yaml:"apiKey"`
	SystemPrompt string `yaml:"systemPrompt"`
}

// StorageConfig points at the optional SQLite run archive.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(csvPathEnv); v != "" {
		c.Input.CSVPath = v
	}

	if v := os.Getenv(resultsDBEnv); v != "" {
		c.Storage.Path = v
	}

	if v := os.Getenv(chatGPTAPIKeyEnv); v != "" {
		c.ChatGPT.APIKey = v
	}

	if v := os.Getenv(chatGPTModelEnv); v != "" {
		c.ChatGPT.Model = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Input.CSVPath != "" {
		base.Input.CSVPath = override.Input.CSVPath
	}
	if override.Input.Separator != "" {
		base.Input.Separator = override.Input.Separator
	}

	if override.Wiki.APIURL != "" {
		base.Wiki.APIURL = override.Wiki.APIURL
	}
	if override.Wiki.ThrottleMS > 0 {
		base.Wiki.ThrottleMS = override.Wiki.ThrottleMS
	}
	if len(override.Wiki.Aliases) > 0 {
		base.Wiki.Aliases = override.Wiki.Aliases
	}

	if override.ChatGPT.Endpoint != "" {
		base.ChatGPT.Endpoint = override.ChatGPT.Endpoint
	}
	if override.ChatGPT.Model != "" {
		base.ChatGPT.Model = override.ChatGPT.Model
	}
	if override.ChatGPT.APIKey != "" {
		base.ChatGPT.APIKey = override.ChatGPT.APIKey
	}
	if override.ChatGPT.SystemPrompt != "" {
		base.ChatGPT.SystemPrompt = override.ChatGPT.SystemPrompt
	}

	if override.Storage.Path != "" {
		base.Storage.Path = override.Storage.Path
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Input:   InputConfig{CSVPath: "brands.csv", Separator: defaultSeparator},
		Wiki: WikiConfig{
			APIURL:     "https://en.wikipedia.org/w/api.php",
			ThrottleMS: defaultThrottle,
			Aliases: map[string][]string{
				"HP":      {"HP Inc.", "Hewlett-Packard"},
				"Apple":   {"Apple Inc."},
				"Dell":    {"Dell (company)", "Dell Inc."},
				"Lenovo":  {"Lenovo"},
				"Asus":    {"Asus"},
				"Jabra":   {"Jabra", "Jabra (company)"},
				"Samsung": {"Samsung Electronics", "Samsung"},
			},
		},
		ChatGPT: ChatGPTConfig{
			Endpoint:     "https://api.openai.com/v1/chat/completions",
			Model:        "gpt-4o-mini",
			APIKey:       "",
			SystemPrompt: "You answer short consumer questions about brands.",
		},
		Storage: StorageConfig{Path: ""},
	}
}
