package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashString is the hex HMAC-SHA256 of data under hashKey. The server
// stores passwords this way.
func HashString(data, hashKey string) string {
	return hex.EncodeToString(mac(data, hashKey))
}

// HashMatches reports whether hexHash is HashString(data, hashKey), in
// constant time. Malformed hex never matches.
func HashMatches(hexHash, data, hashKey string) bool {
	stored, err := hex.DecodeString(hexHash)
	if err != nil {
		return false
	}
	return hmac.Equal(stored, mac(data, hashKey))
}

func mac(data, key string) []byte {
	h := hmac.New(sha256.New, []byte(key))
	h.Write([]byte(data))
	return h.Sum(nil)
}
