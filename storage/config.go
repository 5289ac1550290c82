package storage

import (
	"errors"
	"fmt"
)

// Supported providers.
const (
	ProviderLocal = "local"
	ProviderS3    = "s3"
)

const (
	DefaultBasePath = "transcripts"
	DefaultRegion   = "us-east-1"
)

// Config selects and configures a storage backend, loaded under the
// "storage" key.
type Config struct {
	// Provider selects the backend: "local" or "s3".
	Provider string `yaml:"provider" mapstructure:"provider"`

	// BasePath is the root directory of the local backend.
	BasePath string `yaml:"base_path" mapstructure:"base_path"`

	Bucket string `yaml:"bucket" mapstructure:"bucket"`
	Region string `yaml:"region" mapstructure:"region"`

	// Endpoint points the s3 backend at an S3-compatible service such as
	// MinIO. Setting it implies path-style addressing.
	Endpoint       string `yaml:"endpoint" mapstructure:"endpoint"`
	AccessKey      string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey      string `yaml:"secret_key" mapstructure:"secret_key"`
	ForcePathStyle bool   `yaml:"force_path_style" mapstructure:"force_path_style"`
}

// ApplyDefaults sets defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderLocal
	}
	if c.Provider == ProviderLocal && c.BasePath == "" {
		c.BasePath = DefaultBasePath
	}
	if c.Provider == ProviderS3 && c.Region == "" {
		c.Region = DefaultRegion
	}
}

// Validate checks the settings the selected provider needs.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderLocal:
		if c.BasePath == "" {
			return errors.New("storage.base_path is required for the local provider")
		}
	case ProviderS3:
		var errs []error
		if c.Bucket == "" {
			errs = append(errs, errors.New("storage.bucket is required for the s3 provider"))
		}
		if (c.AccessKey == "") != (c.SecretKey == "") {
			errs = append(errs, errors.New("storage.access_key and storage.secret_key must be set together"))
		}
		if len(errs) > 0 {
			return errors.Join(errs...)
		}
	default:
		return fmt.Errorf("storage.provider %q is not supported", c.Provider)
	}
	return nil
}
