package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	AI struct {
		// KeyEnv names the env var holding the server-held premium
		// credential. Defaults to OPENAI_API_KEY.
		KeyEnv       string `yaml:"keyEnv"`
		DefaultModel string `yaml:"defaultModel"`
	} `yaml:"ai"`

	Auth struct {
		// Keys maps tenant -> API key. Empty map disables auth.
		Keys map[string]string `yaml:"keys"`
	} `yaml:"auth"`
}

// Load baca file config.yaml
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.AI.KeyEnv == "" {
		cfg.AI.KeyEnv = "OPENAI_API_KEY"
	}
	return &cfg, nil
}

// ServerAPIKey resolves the premium credential from the environment.
func (c *Config) ServerAPIKey() string {
	return os.Getenv(c.AI.KeyEnv)
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}
