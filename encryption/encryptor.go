package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// Sealer encrypts and authenticates byte payloads. ad is authenticated but
// not encrypted; Open fails unless it receives the same ad as Seal.
type Sealer interface {
	Seal(plaintext, ad []byte) ([]byte, error)
	Open(ciphertext, ad []byte) ([]byte, error)
}

// Algorithm names a supported AEAD.
type Algorithm string

const (
	// AlgorithmAESGCM is AES-256-GCM (default).
	AlgorithmAESGCM Algorithm = "aes-256-gcm"
	// AlgorithmXChaCha20 is XChaCha20-Poly1305, fast without AES hardware and
	// safe with random nonces at any volume.
	AlgorithmXChaCha20 Algorithm = "xchacha20-poly1305"
)

// Config selects the algorithm and key, loaded under the "encryption" key.
type Config struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Key is a passphrase; SHA-256 derives the 256-bit key from it.
	Key       string    `yaml:"key" mapstructure:"key"`
	Algorithm Algorithm `yaml:"algorithm" mapstructure:"algorithm"`
}

func (c *Config) ApplyDefaults() {
	if c.Algorithm == "" {
		c.Algorithm = AlgorithmAESGCM
	}
}

// Validate checks the configuration. A disabled config is always valid.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if len(c.Key) < 16 {
		return errors.New("encryption.key must be at least 16 characters")
	}
	switch c.Algorithm {
	case AlgorithmAESGCM, AlgorithmXChaCha20:
		return nil
	default:
		return fmt.Errorf("encryption.algorithm %q is not supported", c.Algorithm)
	}
}

// New creates a Sealer from cfg.
func New(cfg Config) (Sealer, error) {
	cfg.ApplyDefaults()
	key := sha256.Sum256([]byte(cfg.Key))

	switch cfg.Algorithm {
	case AlgorithmXChaCha20:
		aead, err := chacha20poly1305.NewX(key[:])
		if err != nil {
			return nil, fmt.Errorf("create xchacha20: %w", err)
		}
		return &aeadSealer{aead: aead, tag: tagXChaCha20}, nil
	case AlgorithmAESGCM:
		block, err := aes.NewCipher(key[:])
		if err != nil {
			return nil, fmt.Errorf("create cipher: %w", err)
		}
		gcm, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("create GCM: %w", err)
		}
		return &aeadSealer{aead: gcm, tag: tagAESGCM}, nil
	default:
		return nil, fmt.Errorf("unsupported algorithm %q", cfg.Algorithm)
	}
}
