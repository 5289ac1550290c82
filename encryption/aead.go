package encryption

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
)

// Sealed payloads are tag || nonce || ciphertext. The tag byte names the
// algorithm so a key change of algorithm is detected instead of misread.
const (
	tagAESGCM    byte = 0x01
	tagXChaCha20 byte = 0x02
)

// ErrDecrypt is returned for payloads that fail authentication.
var ErrDecrypt = errors.New("encryption: message authentication failed")

type aeadSealer struct {
	aead cipher.AEAD
	tag  byte
}

func (s *aeadSealer) Seal(plaintext, ad []byte) ([]byte, error) {
	n := s.aead.NonceSize()
	out := make([]byte, 1+n, 1+n+len(plaintext)+s.aead.Overhead())
	out[0] = s.tag
	if _, err := rand.Read(out[1:]); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return s.aead.Seal(out, out[1:], plaintext, ad), nil
}

func (s *aeadSealer) Open(ciphertext, ad []byte) ([]byte, error) {
	n := s.aead.NonceSize()
	if len(ciphertext) < 1+n+s.aead.Overhead() {
		return nil, errors.New("encryption: ciphertext too short")
	}
	if ciphertext[0] != s.tag {
		return nil, fmt.Errorf("encryption: payload tag %#x does not match the configured algorithm", ciphertext[0])
	}
	plaintext, err := s.aead.Open(nil, ciphertext[1:1+n], ciphertext[1+n:], ad)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}
