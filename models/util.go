package models

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// GenerateGroupID generates a random 128-bit group identifier rendered as
// 32 hex characters (a v4 UUID with the hyphens stripped).
func GenerateGroupID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// InstanceID builds the identifier of the nth instance of a group.
// Sequence numbering starts at 1.
func InstanceID(groupID string, seq int) string {
	return groupID + "_" + strconv.Itoa(seq)
}
