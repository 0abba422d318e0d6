package store

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

const (
	boardIDPrefix = "board"
	listIDPrefix  = "list"
	taskIDPrefix  = "task"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32 (lowercase, no padding).
// 8 chars base32 ~= 40 bits of space; collisions are still checked against the db on insert.
func newRandomID(prefix string) (string, error) {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	return prefix + "-" + strings.ToLower(enc.EncodeToString(b[:])), nil
}
