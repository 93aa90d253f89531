// file: utils/code_generator.go
package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateInvitationCode returns a random code of the given length.
func GenerateInvitationCode(length int) string {
	var sb strings.Builder
	sb.Grow(length)
	max := big.NewInt(int64(len(charset)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		sb.WriteByte(charset[n.Int64()])
	}
	return sb.String()
}
