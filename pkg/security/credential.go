package security

import (
	"crypto/subtle"
	"strings"
)

const hashedPrefix = "$argon2id$"

// CredentialKind tells whether a stored credential is a modern hash or a
// plaintext value carried over from the pre-hashing database.
type CredentialKind int

const (
	CredentialHashed CredentialKind = iota
	CredentialLegacy
)

// Credential is a stored credential decoded at read time. The variant is
// decided by a structural check on the stored value, never by catching a
// verification failure.
type Credential struct {
	kind   CredentialKind
	stored string
}

// ParseCredential classifies a stored credential value.
func ParseCredential(stored string) Credential {
	if strings.HasPrefix(stored, hashedPrefix) {
		return Credential{kind: CredentialHashed, stored: stored}
	}
	return Credential{kind: CredentialLegacy, stored: stored}
}

// Kind returns the credential variant.
func (c Credential) Kind() CredentialKind {
	return c.kind
}

// Matches reports whether the raw password matches this credential.
// Hashed credentials go through Argon2id verification; legacy values are
// compared byte for byte in constant time.
func (c Credential) Matches(rawPassword string) (bool, error) {
	if c.kind == CredentialHashed {
		return VerifyPassword(rawPassword, c.stored)
	}
	return subtle.ConstantTimeCompare([]byte(rawPassword), []byte(c.stored)) == 1, nil
}
