package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"hash"
	"io"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/oksasatya/go-ddd-credentials/internal/domain/service"
)

const (
	AlgorithmSHA256  = "sha256"
	AlgorithmSHA3256 = "sha3-256"

	MinSaltLength     = 16
	DefaultSaltLength = 16

	digestSeparator = ":"
)

var ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")

// Config selects the hash primitive and salt size of a SaltedHashEncoder.
type Config struct {
	Algorithm  string
	SaltLength int
}

// DefaultConfig is SHA-256 with a 16 byte salt.
func DefaultConfig() Config {
	return Config{Algorithm: AlgorithmSHA256, SaltLength: DefaultSaltLength}
}

// SaltedHashEncoder stores passwords as base64(salt) + ":" + base64(hash(password + base64(salt))).
// The salt is hashed in its encoded text form so digests stay interchangeable
// with existing "salt:hash" rows.
type SaltedHashEncoder struct {
	newHash    func() hash.Hash
	saltLength int
	random     io.Reader
}

func NewSaltedHashEncoder(cfg Config) (*SaltedHashEncoder, error) {
	if cfg.SaltLength < MinSaltLength {
		return nil, fmt.Errorf("salt length must be at least %d bytes, got %d", MinSaltLength, cfg.SaltLength)
	}
	var newHash func() hash.Hash
	switch strings.ToLower(cfg.Algorithm) {
	case "", AlgorithmSHA256:
		newHash = sha256.New
	case AlgorithmSHA3256:
		newHash = sha3.New256
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, cfg.Algorithm)
	}
	return &SaltedHashEncoder{newHash: newHash, saltLength: cfg.SaltLength, random: rand.Reader}, nil
}

func (e *SaltedHashEncoder) Encode(raw string) (string, error) {
	salt := make([]byte, e.saltLength)
	if _, err := io.ReadFull(e.random, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	saltText := base64.StdEncoding.EncodeToString(salt)
	return saltText + digestSeparator + base64.StdEncoding.EncodeToString(e.sum(raw, saltText)), nil
}

func (e *SaltedHashEncoder) Matches(raw, digest string) bool {
	parts := strings.Split(digest, digestSeparator)
	if len(parts) != 2 {
		return false
	}
	if salt, err := base64.StdEncoding.DecodeString(parts[0]); err != nil || len(salt) == 0 {
		return false
	}
	stored, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil || len(stored) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(e.sum(raw, parts[0]), stored) == 1
}

// password first, then the encoded salt
func (e *SaltedHashEncoder) sum(raw, saltText string) []byte {
	h := e.newHash()
	h.Write([]byte(raw))
	h.Write([]byte(saltText))
	return h.Sum(nil)
}

var _ service.PasswordEncoder = (*SaltedHashEncoder)(nil)
