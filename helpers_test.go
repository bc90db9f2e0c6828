package sitecontent_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-sitecontent/internal/auth"
	"github.com/goliatone/go-sitecontent/internal/gallery"
	"github.com/goliatone/go-sitecontent/pkg/interfaces"

	sitecontent "github.com/goliatone/go-sitecontent"
)

func newAdminUserStore(t *testing.T) *auth.MemoryRepository {
	t.Helper()
	users := auth.NewMemoryRepository()
	_, err := users.Upsert(context.Background(), &auth.UserRecord{
		UID:   "uid-admin",
		Email: "head@school.test",
		Role:  "admin",
	})
	if err != nil {
		t.Fatalf("seed admin user: %v", err)
	}
	return users
}

func galleryCreateRequest(actor sitecontent.Actor, category, title string) gallery.CreateRequest {
	upload := interfaces.Upload{
		Name:    strings.ToLower(strings.ReplaceAll(title, " ", "_")) + ".jpg",
		Content: strings.NewReader("image-bytes"),
	}
	return gallery.CreateRequest{
		Category: category,
		Title:    title,
		Upload:   &upload,
		Actor:    actor,
	}
}
