// Package encryption seals payloads at rest with AES-256-GCM or
// XChaCha20-Poly1305.
//
// Keys are derived from a passphrase with SHA-256.
//
//	s, err := encryption.New(encryption.Config{Key: passphrase})
//	sealed, err := s.Seal(data, []byte(objectKey))
//	data, err = s.Open(sealed, []byte(objectKey))
package encryption
