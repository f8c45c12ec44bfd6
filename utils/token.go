package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math/big"
	"os"
	"strings"
)

const publicIDCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// PublicIDPrefix is prepended to every booking public id.
const PublicIDPrefix = "FOTO-"

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// GeneratePublicID returns "FOTO-" plus n random uppercase alphanumerics.
// Uses crypto/rand + big.Int to avoid modulo bias.
func GeneratePublicID(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	sb.WriteString(PublicIDPrefix)
	alphaLen := big.NewInt(int64(len(publicIDCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(publicIDCharset[num.Int64()])
	}
	return sb.String(), nil
}

// GenerateSecureToken returns a hex token from length random bytes.
func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid token length")
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashToken returns the SHA-256 hex digest of a raw bearer token. Only the
// hash ever reaches the database.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
