// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"

	"github.com/carterperez-dev/greensteps/internal/config"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLength   = 16

	argonPrefix = "$argon2id$"
)

// PasswordHasher turns a password into its stored form and checks a
// candidate against it. Verify must return (false, "", nil) for a
// mismatch. A non-empty upgraded value replaces stored.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, stored string) (ok bool, upgraded string, err error)
	// VerifyMissing burns comparable work when no stored value exists.
	VerifyMissing(password string)
}

func NewPasswordHasher(scheme string) (PasswordHasher, error) {
	switch scheme {
	case config.SchemePlaintext:
		return PlaintextHasher{}, nil
	case config.SchemeArgon2id, "":
		return Argon2Hasher{}, nil
	default:
		return nil, fmt.Errorf("unsupported password scheme %q", scheme)
	}
}

// PlaintextHasher stores the password as-is.
type PlaintextHasher struct{}

func (PlaintextHasher) Hash(password string) (string, error) {
	return password, nil
}

// Verify still accepts values hashed while argon2id was configured. It
// never downgrades them.
func (PlaintextHasher) Verify(password, stored string) (bool, string, error) {
	if stored == "" {
		return false, "", nil
	}
	if IsArgon2Hash(stored) {
		ok, err := VerifyPassword(password, stored)
		return ok, "", err
	}
	return constantTimeEqual(password, stored), "", nil
}

func (PlaintextHasher) VerifyMissing(string) {}

// Argon2Hasher stores PHC-style encoded argon2id hashes.
type Argon2Hasher struct{}

func (Argon2Hasher) Hash(password string) (string, error) {
	return HashPassword(password)
}

// Verify accepts raw values left by the plaintext scheme and hands back
// their argon2id form on a match.
func (h Argon2Hasher) Verify(password, stored string) (bool, string, error) {
	if stored == "" {
		h.VerifyMissing(password)
		return false, "", nil
	}
	if IsArgon2Hash(stored) {
		return VerifyPasswordWithRehash(password, stored)
	}

	if !constantTimeEqual(password, stored) {
		h.VerifyMissing(password)
		return false, "", nil
	}

	upgraded, err := HashPassword(password)
	if err != nil {
		//nolint:nilerr // password verified; the upgrade can wait for the next login
		return true, "", nil
	}
	return true, upgraded, nil
}

func (Argon2Hasher) VerifyMissing(password string) {
	//nolint:errcheck // timing attack prevention only
	_, _ = VerifyPassword(password, getDummyHash())
}

func IsArgon2Hash(stored string) bool {
	return strings.HasPrefix(stored, argonPrefix)
}

func HashPassword(password string) (string, error) {
	return hashWithParams(password, argonParams{
		memory:  argonMemory,
		time:    argonTime,
		threads: argonThreads,
		keyLen:  argonKeyLen,
	})
}

func hashWithParams(password string, p argonParams) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash := argon2.IDKey(
		[]byte(password),
		salt,
		p.time,
		p.memory,
		p.threads,
		p.keyLen,
	)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	encoded := fmt.Sprintf(
		"%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argonPrefix,
		argon2.Version,
		p.memory,
		p.time,
		p.threads,
		b64Salt,
		b64Hash,
	)

	return encoded, nil
}

func VerifyPassword(password, encodedHash string) (bool, error) {
	params, salt, hash, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	otherHash := argon2.IDKey(
		[]byte(password),
		salt,
		params.time,
		params.memory,
		params.threads,
		params.keyLen,
	)

	if subtle.ConstantTimeCompare(hash, otherHash) == 1 {
		return true, nil
	}

	return false, nil
}

// VerifyPasswordWithRehash also returns a fresh hash when the stored one
// was made with other parameters.
func VerifyPasswordWithRehash(
	password, encodedHash string,
) (bool, string, error) {
	valid, err := VerifyPassword(password, encodedHash)
	if err != nil {
		return false, "", err
	}

	if !valid {
		return false, "", nil
	}

	if needsRehash(encodedHash) {
		newHash, hashErr := HashPassword(password)
		if hashErr != nil {
			//nolint:nilerr // password verified successfully; rehash failure is non-critical
			return true, "", nil
		}
		return true, newHash, nil
	}

	return true, "", nil
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

var (
	dummyHash     string
	dummyHashOnce sync.Once
)

func getDummyHash() string {
	dummyHashOnce.Do(func() {
		hash, err := HashPassword("dummy_password_for_timing_attack_prevention")
		if err != nil {
			panic(fmt.Sprintf("security: failed to generate dummy hash: %v", err))
		}
		dummyHash = hash
	})
	return dummyHash
}

type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
	keyLen  uint32
}

func decodeHash(encodedHash string) (*argonParams, []byte, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return nil, nil, nil, fmt.Errorf("invalid hash format")
	}

	if parts[1] != "argon2id" {
		return nil, nil, nil, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	_, err := fmt.Sscanf(parts[2], "v=%d", &version)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid version: %w", err)
	}

	if version != argon2.Version {
		return nil, nil, nil, fmt.Errorf("incompatible version: %d", version)
	}

	params := &argonParams{}
	_, err = fmt.Sscanf(
		parts[3],
		"m=%d,t=%d,p=%d",
		&params.memory,
		&params.time,
		&params.threads,
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid params: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("decode salt: %w", err)
	}

	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("decode hash: %w", err)
	}

	//nolint:gosec // G115: hash length is always small (32 bytes for Argon2id)
	params.keyLen = uint32(len(hash))

	return params, salt, hash, nil
}

func needsRehash(encodedHash string) bool {
	params, _, _, err := decodeHash(encodedHash)
	if err != nil {
		return true
	}

	return params.memory != argonMemory ||
		params.time != argonTime ||
		params.threads != argonThreads ||
		params.keyLen != argonKeyLen
}
