package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-core-fx/config"
)

type http struct {
	Address     string   `koanf:"address"`
	ProxyHeader string   `koanf:"proxy_header"`
	Proxies     []string `koanf:"proxies"`
}

type storageConfig struct {
	DataDir string `koanf:"data_dir"`
}

type gitConfig struct {
	Binary  string        `koanf:"binary"`
	Timeout time.Duration `koanf:"timeout"`
}

type githubConfig struct {
	APIBase   string        `koanf:"api_base"`
	UserAgent string        `koanf:"user_agent"`
	Timeout   time.Duration `koanf:"timeout"`
}

type watchConfig struct {
	Interval time.Duration `koanf:"interval"`
	MaxAge   time.Duration `koanf:"max_age"`
	Repos    []string      `koanf:"repos"`
}

type Config struct {
	HTTP http `koanf:"http"`

	Storage storageConfig `koanf:"storage"`
	Git     gitConfig     `koanf:"git"`
	GitHub  githubConfig  `koanf:"github"`
	Watch   watchConfig   `koanf:"watch"`
}

func Default() Config {
	//nolint:exhaustruct,mnd //default values
	return Config{
		HTTP: http{
			Address:     "127.0.0.1:3000",
			ProxyHeader: "X-Forwarded-For",
			Proxies:     []string{},
		},

		Storage: storageConfig{
			DataDir: "./data",
		},

		Git: gitConfig{
			Binary:  "git",
			Timeout: 30 * time.Second,
		},

		GitHub: githubConfig{
			APIBase:   "https://api.github.com",
			UserAgent: "repowatch",
			Timeout:   10 * time.Second,
		},

		Watch: watchConfig{
			Interval: 15 * time.Minute,
			MaxAge:   1 * time.Hour,
			Repos:    []string{},
		},
	}
}

func New() (Config, error) {
	cfg := Default()

	options := []config.Option{}
	if yamlPath := os.Getenv("CONFIG_PATH"); yamlPath != "" {
		options = append(options, config.WithLocalYAML(yamlPath))
	}

	if err := config.Load(&cfg, options...); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}
