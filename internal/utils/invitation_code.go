package utils

import (
	"crypto/rand"
	"fmt"

	"github.com/shirokane/esports-hub-api/internal/constants"
)

// Uppercase alphanumerics without lookalikes would be nicer for support
// calls, but the original codes use the full set (e.g. X7K2M9Q1).
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateInvitationCode returns a short opaque code for team invitations.
// Uniqueness is enforced by the database index, not here.
func GenerateInvitationCode() (string, error) {
	bytes := make([]byte, constants.InvitationCodeLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	for i, b := range bytes {
		bytes[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(bytes), nil
}
