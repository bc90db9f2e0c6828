package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions
// (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// SectionUUID derives the document identifier for a section key so repeated
// merge-writes always target the same row.
func SectionUUID(sectionKey string) uuid.UUID {
	return UUID("go-sitecontent:section:" + strings.ToLower(strings.TrimSpace(sectionKey)))
}

// UserUUID derives the identifier for a user record keyed by provider uid.
func UserUUID(uid string) uuid.UUID {
	return UUID("go-sitecontent:user:" + strings.TrimSpace(uid))
}
