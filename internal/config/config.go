package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrConfiguration is raised at startup when a required credential or setting
// is absent. Configuration problems are never surfaced per-request.
var ErrConfiguration = errors.New("configuration error")

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	// Database is optional; leave driver empty to run without history storage.
	Database struct {
		Driver   string `yaml:"driver"` // mysql | postgres | ""
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"`
	} `yaml:"database"`

	// Minio is optional; leave endpoint empty to keep artifacts local only.
	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	Analysis struct {
		BaseURL        string `yaml:"baseURL"`
		Model          string `yaml:"model"`
		NFTThreshold   int    `yaml:"nftThreshold"`
		TimeoutSeconds int    `yaml:"timeoutSeconds"`
	} `yaml:"analysis"`

	Speech struct {
		BaseURL        string `yaml:"baseURL"`
		VoiceID        string `yaml:"voiceID"`
		TimeoutSeconds int    `yaml:"timeoutSeconds"`
	} `yaml:"speech"`

	RateLimit struct {
		Capacity   int `yaml:"capacity"`
		RefillRate int `yaml:"refillRate"`
	} `yaml:"rateLimit"`

	// APIKeys maps client name -> key; empty map disables auth.
	APIKeys map[string]string `yaml:"apiKeys"`
}

// Load reads the yaml config file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a config with no file backing, defaults only.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Analysis.BaseURL == "" {
		c.Analysis.BaseURL = "https://api.mistral.ai/v1"
	}
	if c.Analysis.Model == "" {
		c.Analysis.Model = "mistral-small-latest"
	}
	if c.Analysis.NFTThreshold == 0 {
		c.Analysis.NFTThreshold = 70
	}
	if c.Analysis.TimeoutSeconds == 0 {
		c.Analysis.TimeoutSeconds = 45
	}
	if c.Speech.BaseURL == "" {
		c.Speech.BaseURL = "https://api.elevenlabs.io"
	}
	if c.Speech.TimeoutSeconds == 0 {
		c.Speech.TimeoutSeconds = 45
	}
	if c.RateLimit.Capacity == 0 {
		c.RateLimit.Capacity = 30
	}
	if c.RateLimit.RefillRate == 0 {
		c.RateLimit.RefillRate = 1
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
}

func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Keys holds the third-party service credentials, read once at process start.
type Keys struct {
	Mistral    string
	ElevenLabs string
	OpenAI     string
}

func KeysFromEnv() Keys {
	return Keys{
		Mistral:    os.Getenv("MISTRAL_API_KEY"),
		ElevenLabs: os.Getenv("ELEVENLABS_API_KEY"),
		OpenAI:     os.Getenv("OPENAI_API_KEY"),
	}
}

// RequireAnalysis checks the credentials the analysis API needs.
func (k Keys) RequireAnalysis() error {
	if k.Mistral == "" {
		return fmt.Errorf("%w: MISTRAL_API_KEY not set", ErrConfiguration)
	}
	if k.ElevenLabs == "" {
		return fmt.Errorf("%w: ELEVENLABS_API_KEY not set", ErrConfiguration)
	}
	return nil
}

// RequireDeck checks the credentials the deck generator needs.
func (k Keys) RequireDeck() error {
	if err := k.RequireAnalysis(); err != nil {
		return err
	}
	if k.OpenAI == "" {
		return fmt.Errorf("%w: OPENAI_API_KEY not set", ErrConfiguration)
	}
	return nil
}
