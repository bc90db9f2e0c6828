package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRecord holds the stored profile for an authenticated principal. Role
// drives admin gating; anything other than "admin" is treated as a regular
// visitor.
type UserRecord struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        uuid.UUID `bun:",pk,type:uuid"      json:"id"`
	UID       string    `bun:"uid,notnull,unique" json:"uid"`
	Email     string    `bun:"email"              json:"email,omitempty"`
	Role      string    `bun:"role,notnull"       json:"role"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func cloneUser(user *UserRecord) *UserRecord {
	if user == nil {
		return nil
	}
	copied := *user
	return &copied
}
