package common

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateUUID generates a random UUID string.
func GenerateUUID() string {
	return uuid.New().String()
}

// PrefixedID mints an identifier with a provenance prefix and a random UUID
// suffix, e.g. "onetime-6f1c...".
func PrefixedID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.New().String())
}
