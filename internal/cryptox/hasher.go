// Package cryptox derives salted password hashes.
//
// Hashes are produced with Argon2id and encoded as
//
//	$argon2id$v=19$m=<memory KiB>,t=<time>,p=<threads>$<key>
//
// so every stored hash carries the parameters it was derived with. Keys and
// salts are unpadded standard base64. The salt is kept apart from the hash.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/walletkeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

var encoding = base64.RawStdEncoding

// Params are the Argon2id cost parameters applied to new hashes. Existing
// hashes are checked with the parameters encoded in them.
type Params struct {
	Time      uint32 `json:"time"`
	MemoryKiB uint32 `json:"memory_kib"`
	Threads   uint8  `json:"threads"`
	KeyLen    uint32 `json:"key_len"`
	SaltLen   uint32 `json:"salt_len"`
}

// DefaultParams returns the parameters used when nothing is configured.
func DefaultParams() Params {
	return Params{Time: 1, MemoryKiB: 64 * 1024, Threads: 4, KeyLen: 32, SaltLen: 16}
}

// Validate reports parameters Argon2id cannot run with.
func (p Params) Validate() error {
	if p.Time == 0 || p.MemoryKiB == 0 || p.Threads == 0 {
		return fmt.Errorf("%w: argon2 time, memory and threads must be positive", common.ErrConfiguration)
	}
	if p.KeyLen < 16 || p.SaltLen < 16 {
		return fmt.Errorf("%w: argon2 key and salt must be at least 16 bytes", common.ErrConfiguration)
	}
	return nil
}

// Digest is the output of Hash.
type Digest struct {
	Hash string
	Salt string
}

// Hasher hashes passwords. It holds no mutable state and is safe for
// concurrent use.
type Hasher struct {
	params Params
}

// NewHasher validates p and returns a Hasher using it.
func NewHasher(p Params) (*Hasher, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Hasher{params: p}, nil
}

// NewSalt returns a fresh encoded salt.
func (h *Hasher) NewSalt() string {
	return encoding.EncodeToString(common.GenerateRandByteArray(int(h.params.SaltLen)))
}

// Hash derives the salted hash of plaintext with the configured parameters.
//
// An empty salt makes Hash generate a fresh one (signup). A non-empty salt is
// reused as is, so the same plaintext and salt always give the same hash.
func (h *Hasher) Hash(plaintext, salt string) (Digest, error) {
	if plaintext == "" {
		return Digest{}, fmt.Errorf("%w: empty password", common.ErrInvalidInput)
	}
	if salt == "" {
		salt = h.NewSalt()
	}

	rawSalt, err := encoding.DecodeString(salt)
	if err != nil || len(rawSalt) != int(h.params.SaltLen) {
		return Digest{}, fmt.Errorf("%w: malformed salt", common.ErrInvalidInput)
	}

	key := derive(plaintext, rawSalt, h.params.Time, h.params.MemoryKiB, h.params.Threads, h.params.KeyLen)
	return Digest{Hash: encode(h.params, key), Salt: salt}, nil
}

// Verify reports whether plaintext and salt reproduce encoded. The cost
// parameters and key length come from encoded, not from the Hasher, so hashes
// stay valid after the configuration changes.
//
// A false result with a nil error is a mismatch. An error means encoded or
// salt cannot be parsed.
func (h *Hasher) Verify(plaintext, salt, encoded string) (bool, error) {
	if plaintext == "" {
		return false, fmt.Errorf("%w: empty password", common.ErrInvalidInput)
	}

	stored, err := decode(encoded)
	if err != nil {
		return false, err
	}

	rawSalt, err := encoding.DecodeString(salt)
	if err != nil || len(rawSalt) == 0 {
		return false, fmt.Errorf("%w: malformed salt", common.ErrInvalidInput)
	}

	key := derive(plaintext, rawSalt, stored.time, stored.memoryKiB, stored.threads, uint32(len(stored.key)))
	return subtle.ConstantTimeCompare(key, stored.key) == 1, nil
}

func derive(plaintext string, salt []byte, time, memory uint32, threads uint8, keyLen uint32) []byte {
	password := []byte(plaintext)
	defer common.WipeByteArray(password)

	return argon2.IDKey(password, salt, time, memory, threads, keyLen)
}

const prefix = "$argon2id$"

func encode(p Params, key []byte) string {
	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s",
		prefix, argon2.Version, p.MemoryKiB, p.Time, p.Threads, encoding.EncodeToString(key))
}

type storedHash struct {
	time      uint32
	memoryKiB uint32
	threads   uint8
	key       []byte
}

func decode(encoded string) (storedHash, error) {
	malformed := fmt.Errorf("%w: malformed hash", common.ErrInvalidInput)

	rest, ok := strings.CutPrefix(encoded, prefix)
	if !ok {
		return storedHash{}, malformed
	}

	parts := strings.Split(rest, "$")
	if len(parts) != 3 {
		return storedHash{}, malformed
	}

	var version int
	if _, err := fmt.Sscanf(parts[0], "v=%d", &version); err != nil {
		return storedHash{}, malformed
	}
	if version != argon2.Version {
		return storedHash{}, fmt.Errorf("%w: unsupported argon2 version %d", common.ErrInvalidInput, version)
	}

	var out storedHash
	if _, err := fmt.Sscanf(parts[1], "m=%d,t=%d,p=%d", &out.memoryKiB, &out.time, &out.threads); err != nil {
		return storedHash{}, malformed
	}
	if out.time == 0 || out.memoryKiB == 0 || out.threads == 0 {
		return storedHash{}, malformed
	}

	key, err := encoding.DecodeString(parts[2])
	if err != nil || len(key) == 0 {
		return storedHash{}, malformed
	}
	out.key = key

	return out, nil
}
