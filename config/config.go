package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Cfg is the process-wide configuration, loaded once at startup.
var Cfg *Config

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port string `yaml:"port"`
	} `yaml:"server"`

	DB struct {
		DSN string `yaml:"dsn"`
	} `yaml:"db"`

	JWT struct {
		SecretKey string `yaml:"secret_key"`
	} `yaml:"jwt"`

	// Per-provider API keys for the chat model resolver.
	Providers struct {
		OpenAI struct {
			APIKey  string `yaml:"api_key"`
			BaseURL string `yaml:"base_url"`
		} `yaml:"openai"`
		Anthropic struct {
			APIKey string `yaml:"api_key"`
		} `yaml:"anthropic"`
		Google struct {
			APIKey string `yaml:"api_key"`
		} `yaml:"google"`
	} `yaml:"providers"`

	// Fixed models for background LLM work (titles, research agent, embeddings).
	Model struct {
		TitleModel     string `yaml:"title_model"`
		ResearchModel  string `yaml:"research_model"`
		EmbeddingModel string `yaml:"embedding_model"`
	} `yaml:"model"`

	// External image/video generation API.
	MediaGen struct {
		Endpoint string `yaml:"endpoint"`
		APIKey   string `yaml:"api_key"`
	} `yaml:"media_gen"`

	MQ struct {
		NameServer []string `yaml:"name_server"`
	} `yaml:"mq"`

	OSS struct {
		Region          string `yaml:"region"`
		Endpoint        string `yaml:"endpoint"`
		BucketName      string `yaml:"bucket_name"`
		AccessKeyID     string `yaml:"access_key_id"`
		AccessKeySecret string `yaml:"access_key_secret"`
	} `yaml:"oss"`

	Milvus struct {
		Endpoint string `yaml:"endpoint"`
		APIKey   string `yaml:"api_key"`
	} `yaml:"milvus"`
}

const defaultConfigPath = "config.yaml"

// Load parses the yaml config file and applies env-var overrides for secrets.
func Load(path string) error {
	if path == "" {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %v", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %v", path, err)
	}

	overrideFromEnv(&cfg.JWT.SecretKey, "JWT_SECRET_KEY")
	overrideFromEnv(&cfg.Providers.OpenAI.APIKey, "OPENAI_API_KEY")
	overrideFromEnv(&cfg.Providers.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	overrideFromEnv(&cfg.Providers.Google.APIKey, "GOOGLE_API_KEY")
	overrideFromEnv(&cfg.MediaGen.APIKey, "MEDIA_GEN_API_KEY")
	overrideFromEnv(&cfg.OSS.AccessKeyID, "OSS_ACCESS_KEY_ID")
	overrideFromEnv(&cfg.OSS.AccessKeySecret, "OSS_ACCESS_KEY_SECRET")
	overrideFromEnv(&cfg.Milvus.APIKey, "MILVUS_API_KEY")

	Cfg = cfg
	return nil
}

func overrideFromEnv(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}
