package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	sitecontent "github.com/goliatone/go-sitecontent"
	"github.com/goliatone/go-sitecontent/internal/auth"
	"github.com/goliatone/go-sitecontent/internal/di"
	"github.com/goliatone/go-sitecontent/internal/gallery"
	"github.com/goliatone/go-sitecontent/internal/mailer"
	"github.com/goliatone/go-sitecontent/internal/sections"
	"github.com/goliatone/go-sitecontent/pkg/interfaces"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

type envIdentity struct {
	session *interfaces.Session
}

func (p *envIdentity) Subscribe(fn func(session *interfaces.Session)) func() {
	fn(p.session)
	return func() {}
}

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	dsn := os.Getenv("SITECONTENT_DSN")
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	if err := runMigrations(ctx, db); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	cfg := sitecontent.DefaultConfig()
	cfg.Site.Name = "example-school"
	cfg.Blob.Provider = "fs"
	cfg.Blob.Root = "uploads"
	cfg.Blob.BaseURL = "/uploads"
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = os.Getenv("SITECONTENT_LOG_LEVEL")
	cfg.Logging.Format = "console"
	cfg.Navigation.RouteConfig = &urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    "site",
				BaseURL: "https://example-school.test",
				Paths: map[string]string{
					"activity": "/activities/:slug",
				},
			},
		},
	}
	cfg.Navigation.URLKit = sitecontent.URLKitResolverConfig{
		Group:     "site",
		Route:     "activity",
		SlugParam: "slug",
	}

	cfg.Features.Mailer = true
	cfg.Mailer.Endpoint = os.Getenv("SITECONTENT_MAILER_ENDPOINT")
	cfg.Mailer.ServiceID = os.Getenv("SITECONTENT_MAILER_SERVICE_ID")
	cfg.Mailer.PublicKey = os.Getenv("SITECONTENT_MAILER_PUBLIC_KEY")
	var mailOpts []di.Option
	if cfg.Mailer.Endpoint == "" {
		// without a relay endpoint the demo drops outgoing mail
		cfg.Mailer.Endpoint = "https://relay.invalid"
		mailOpts = append(mailOpts, di.WithMailProvider(mailer.NoOpProvider{}))
	}

	users := auth.NewBunRepository(db)
	if _, err := users.Upsert(ctx, &auth.UserRecord{
		UID:   "uid-admin",
		Email: "head@example-school.test",
		Role:  "admin",
	}); err != nil {
		log.Fatalf("seed admin user: %v", err)
	}

	moduleOpts := append([]di.Option{
		di.WithBunDB(db),
		di.WithUserRepository(users),
		di.WithIdentityProvider(&envIdentity{
			session: &interfaces.Session{UID: "uid-admin", Email: "head@example-school.test"},
		}),
	}, mailOpts...)
	module, err := sitecontent.New(cfg, moduleOpts...)
	if err != nil {
		log.Fatalf("initialise module: %v", err)
	}

	actor := module.Auth().Actor()
	fmt.Printf("signed in as %s (admin=%v)\n\n", actor.UID, actor.IsAdmin())
	fmt.Printf("registered sections: %s\n\n", strings.Join(module.Container().Registry().Keys(), ", "))

	session, err := module.Edit(ctx, sections.KeyContactPage)
	if err != nil {
		log.Fatalf("open edit session: %v", err)
	}
	if err := session.Begin(ctx); err != nil {
		log.Fatalf("begin editing: %v", err)
	}
	if err := session.SetField("email", "office@example-school.test"); err != nil {
		log.Fatalf("set field: %v", err)
	}
	if err := session.SetField("phone", "555-0100"); err != nil {
		log.Fatalf("set field: %v", err)
	}
	if _, err := session.Save(ctx); err != nil {
		log.Fatalf("save contact page: %v", err)
	}

	view, err := module.Sections().View(ctx, sections.KeyContactPage)
	if err != nil {
		log.Fatalf("view contact page: %v", err)
	}
	printSection("contact_page", view)

	entry, err := module.Navigation().AddEntry(ctx, "Science Fair", actor)
	if err != nil {
		log.Fatalf("add navigation entry: %v", err)
	}
	fmt.Printf("navigation entry: %s -> %s\n", entry.Name, entry.Path)

	item, err := module.Galleries().Create(ctx, galleryRequest(actor))
	if err != nil {
		log.Fatalf("create gallery item: %v", err)
	}
	fmt.Printf("gallery item %s stored at %s\n", item.Title, item.Image)

	categories := module.Galleries().Categories(ctx)
	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Value)
	}
	sort.Strings(names)
	fmt.Printf("gallery categories: %s\n", strings.Join(names, ", "))

	enquiry := sitecontent.ContactMessage{
		Name:    "Ravi Kumar",
		Email:   "ravi@example.test",
		Phone:   "555-0101",
		Message: "Requesting admission details for class VI.",
	}
	if err := module.Mailer().SendContact(ctx, enquiry); err != nil {
		log.Fatalf("send enquiry: %v", err)
	}
	fmt.Println("contact enquiry dispatched")
}

func galleryRequest(actor sitecontent.Actor) gallery.CreateRequest {
	upload := interfaces.Upload{
		Name:    "volcano_model.jpg",
		Content: strings.NewReader("image-bytes"),
	}
	return gallery.CreateRequest{
		Category: "science-fair",
		Title:    "Volcano Model",
		Location: "Main Hall",
		Upload:   &upload,
		Actor:    actor,
	}
}

func runMigrations(ctx context.Context, db *bun.DB) error {
	entries, err := sitecontent.GetMigrationsFS().ReadDir("data/sql/migrations")
	if err != nil {
		return err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	for _, name := range names {
		content, err := sitecontent.GetMigrationsFS().ReadFile("data/sql/migrations/" + name)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
	}
	return nil
}

func printSection(key string, view map[string]any) {
	encoded, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		log.Fatalf("encode %s: %v", key, err)
	}
	fmt.Printf("%s:\n%s\n\n", key, encoded)
}
