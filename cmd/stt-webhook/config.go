package main

import (
	"time"

	"github.com/kbukum/elevenlabs-stt/auth"
	"github.com/kbukum/elevenlabs-stt/config"
	"github.com/kbukum/elevenlabs-stt/database"
	"github.com/kbukum/elevenlabs-stt/encryption"
	"github.com/kbukum/elevenlabs-stt/kafka"
	"github.com/kbukum/elevenlabs-stt/redis"
	"github.com/kbukum/elevenlabs-stt/storage"
	"github.com/kbukum/elevenlabs-stt/webhook"
)

// eventsConfig controls the server-sent event stream at /events.
type eventsConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	KeepAlive time.Duration `yaml:"keep_alive" mapstructure:"keep_alive"`
}

type appConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Webhook  webhook.Config  `yaml:"webhook" mapstructure:"webhook"`
	Storage  storage.Config  `yaml:"storage" mapstructure:"storage"`
	Database database.Config `yaml:"database" mapstructure:"database"`
	Redis    redis.Config    `yaml:"redis" mapstructure:"redis"`
	Kafka    kafka.Config    `yaml:"kafka" mapstructure:"kafka"`
	Events   eventsConfig    `yaml:"events" mapstructure:"events"`

	Auth       auth.Config       `yaml:"auth" mapstructure:"auth"`
	Encryption encryption.Config `yaml:"encryption" mapstructure:"encryption"`

	// DedupTTL is how long a delivered request ID is remembered in Redis.
	DedupTTL time.Duration `yaml:"dedup_ttl" mapstructure:"dedup_ttl"`
}

func (c *appConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Webhook.ApplyDefaults()
	c.Storage.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Redis.ApplyDefaults()
	c.Kafka.ApplyDefaults()
	c.Auth.ApplyDefaults()
	c.Encryption.ApplyDefaults()
	if c.DedupTTL == 0 {
		c.DedupTTL = 24 * time.Hour
	}
}

func (c *appConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Webhook.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Redis.Validate(); err != nil {
		return err
	}
	if err := c.Kafka.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return c.Encryption.Validate()
}
