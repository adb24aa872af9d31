package utils

import (
	"crypto/rand"
	"math/big"
)

const stateCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateLoginState returns a random anti-forgery token for the OAuth
// handshake, drawn from uppercase letters and digits.
func GenerateLoginState(length int) (string, error) {
	state := make([]byte, length)
	for i := range state {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(stateCharset))))
		if err != nil {
			return "", err
		}
		state[i] = stateCharset[n.Int64()]
	}
	return string(state), nil
}
