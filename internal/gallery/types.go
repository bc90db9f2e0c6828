package gallery

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Item is one browsable photo or document in a gallery collection. Items are
// independently identified records, not array fields on a section document.
type Item struct {
	bun.BaseModel `bun:"table:gallery_items,alias:gi"`

	ID        uuid.UUID `bun:",pk,type:uuid"      json:"id"`
	Category  string    `bun:"category,notnull"   json:"category"`
	Title     string    `bun:"title,notnull"      json:"title"`
	Location  string    `bun:"location"           json:"location,omitempty"`
	Image     string    `bun:"image"              json:"image,omitempty"`
	CreatedBy string    `bun:"created_by"         json:"created_by,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func cloneItem(src *Item) *Item {
	if src == nil {
		return nil
	}
	copied := *src
	return &copied
}
