// Package uuid generates and checks the string identifiers used as primary
// keys for investments, lots and ledger entries.
package uuid

import (
	"time"

	googleuuid "github.com/google/uuid"
)

// New returns a time-ordered UUIDv7 so that rows created later sort later.
// It falls back to a random UUIDv4 if the random source fails.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.NewString()
	}
	return id.String()
}

// Canonical parses s and returns it in lower-case hyphenated form.
func Canonical(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid reports whether s is a hyphenated UUID.
func IsValid(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := googleuuid.Parse(s)
	return err == nil
}

// CreatedAt returns the creation time embedded in a UUIDv7. ok is false for
// any other version.
func CreatedAt(s string) (t time.Time, ok bool) {
	parsed, err := googleuuid.Parse(s)
	if err != nil || parsed.Version() != 7 {
		return time.Time{}, false
	}
	sec, nsec := parsed.Time().UnixTime()
	return time.Unix(sec, nsec).UTC(), true
}
