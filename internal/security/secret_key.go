package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	// MinSecretKeyLength is the shortest accepted token signing secret.
	MinSecretKeyLength     = 32
	DefaultSecretKeyLength = 48

	secretKeyAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789-_"
)

var errEmptyAlphabet = errors.New("alphabet must not be empty")

// GenerateSecretKey returns a random signing secret. Lengths below MinSecretKeyLength
// are raised to it.
func GenerateSecretKey(length int) (string, error) {
	if length < MinSecretKeyLength {
		length = MinSecretKeyLength
	}
	return randomString(length, secretKeyAlphabet)
}

// randomString draws every character uniformly from alphabet using crypto/rand.
func randomString(length int, alphabet string) (string, error) {
	if length <= 0 {
		return "", nil
	}
	if alphabet == "" {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}
	return string(value), nil
}
