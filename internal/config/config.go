package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port     int    `yaml:"port"`
		DataPath string `yaml:"data_path"`
		Debug    bool   `yaml:"debug"`
	} `yaml:"app"`

	TMDB struct {
		APIKey   string `yaml:"api_key"`
		BaseURL  string `yaml:"base_url"`
		Language string `yaml:"language"`
	} `yaml:"tmdb"`

	Refresh struct {
		// Interval for the popular-list prefetch job, e.g. "1h".
		// Empty disables the scheduler.
		PopularInterval string `yaml:"popular_interval"`
	} `yaml:"refresh"`

	Notifications struct {
		Pushbullet struct {
			APIKey string `yaml:"api_key"`
		} `yaml:"pushbullet"`
	} `yaml:"notifications"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	loadFromEnv(cfg)
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.App.Port = 5000
	cfg.App.DataPath = "./data"
	cfg.App.Debug = false

	cfg.TMDB.BaseURL = "https://api.themoviedb.org/3"
	cfg.TMDB.Language = "en-US"

	cfg.Refresh.PopularInterval = ""
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TMDB_API_KEY"); v != "" {
		cfg.TMDB.APIKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = port
		}
	}
	if v := os.Getenv("PUSHBULLET_API_KEY"); v != "" {
		cfg.Notifications.Pushbullet.APIKey = v
	}
}
