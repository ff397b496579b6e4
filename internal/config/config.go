package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type TelegramConfig struct {
	BotToken  string `yaml:"bot_token"`
	OpsChatID int64  `yaml:"ops_chat_id"`
}

type ResetConfig struct {
	CodeTTL  string `yaml:"code_ttl"`
	TokenTTL string `yaml:"token_ttl"`
}

// TTLs parses the configured durations, falling back to the defaults
// (10m code, 30m token) when unset or malformed.
func (c ResetConfig) TTLs() (code, token time.Duration) {
	code, token = 10*time.Minute, 30*time.Minute
	if d, err := time.ParseDuration(c.CodeTTL); err == nil && d > 0 {
		code = d
	}
	if d, err := time.ParseDuration(c.TokenTTL); err == nil && d > 0 {
		token = d
	}
	return
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Reset    ResetConfig    `yaml:"reset"`
	Telegram TelegramConfig `yaml:"telegram"`
	Files    struct {
		RootDir string `yaml:"root_dir"`
	} `yaml:"files"`
}

func LoadConfig() *Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}
	f, err := os.Open(path)
	if err != nil {
		panic("Failed to open config: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config: " + err.Error())
	}

	if cfg.Files.RootDir == "" {
		cfg.Files.RootDir = "./files"
	}
	return &cfg
}
