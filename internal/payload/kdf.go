package payload

import (
	"crypto/sha256"
	"fmt"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/argon2"
)

// KeySize is the size in bytes of the derived cipher key (AES-256).
const KeySize = 32

// KDF identifies how the passphrase is turned into a cipher key. Every
// KDF is a pure function of the passphrase: no salt is stored in the
// image, so decode must derive the identical key from the passphrase
// alone.
type KDF uint8

const (
	// KDFSHA256 hashes the passphrase once with SHA-256.
	KDFSHA256 KDF = iota

	// KDFBLAKE3 hashes the passphrase once with BLAKE3-256.
	KDFBLAKE3

	// KDFArgon2id stretches the passphrase with Argon2id under a fixed
	// salt. Much slower to brute force than a single hash.
	KDFArgon2id
)

// Argon2id parameters. Changing any of them changes every derived key.
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // KiB
	argon2Threads = 4
)

var argon2Salt = []byte("lsbsteg passphrase key v1")

// String returns the human-readable name of a KDF.
func (k KDF) String() string {
	switch k {
	case KDFSHA256:
		return "sha256"
	case KDFBLAKE3:
		return "blake3"
	case KDFArgon2id:
		return "argon2id"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// ParseKDF parses a KDF from its string representation.
func ParseKDF(name string) (KDF, error) {
	switch name {
	case "sha256", "":
		return KDFSHA256, nil
	case "blake3":
		return KDFBLAKE3, nil
	case "argon2id":
		return KDFArgon2id, nil
	default:
		return 0, fmt.Errorf("unknown key derivation: %q", name)
	}
}

// DeriveKey derives a 256-bit key from passphrase.
func DeriveKey(passphrase string, kdf KDF) ([KeySize]byte, error) {
	var key [KeySize]byte
	switch kdf {
	case KDFSHA256:
		key = sha256.Sum256([]byte(passphrase))
	case KDFBLAKE3:
		key = blake3.Sum256([]byte(passphrase))
	case KDFArgon2id:
		copy(key[:], argon2.IDKey([]byte(passphrase), argon2Salt, argon2Time, argon2Memory, argon2Threads, KeySize))
	default:
		return key, fmt.Errorf("unsupported key derivation: %d", kdf)
	}
	return key, nil
}
