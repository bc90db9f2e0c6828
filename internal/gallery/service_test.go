package gallery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-sitecontent/internal/domain"
	"github.com/goliatone/go-sitecontent/pkg/interfaces"
	"github.com/google/uuid"
)

type stubBlobProvider struct {
	mu       sync.Mutex
	uploads  []string
	failFor  map[string]error
	failWith error
}

func (s *stubBlobProvider) Put(_ context.Context, folder string, upload interfaces.Upload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return "", s.failWith
	}
	if err, ok := s.failFor[upload.Name]; ok {
		return "", err
	}
	s.uploads = append(s.uploads, upload.Name)
	return fmt.Sprintf("https://cdn.test/%s/%s", folder, upload.Name), nil
}

type stubCategoryProvider struct {
	categories []Category
	err        error
}

func (s *stubCategoryProvider) Categories(context.Context) ([]Category, error) {
	return s.categories, s.err
}

func adminActor() domain.Actor {
	return domain.Actor{UID: "admin-1", Role: domain.RoleAdmin}
}

func upload(name string) interfaces.Upload {
	return interfaces.Upload{Name: name, Content: strings.NewReader("image-bytes")}
}

func TestServiceCreateStoresUploadURL(t *testing.T) {
	repo := NewMemoryRepository()
	blobs := &stubBlobProvider{}
	svc := NewService(repo, WithBlobProvider(blobs), WithUploadFolder("activities"))

	file := upload("sports_day.jpg")
	item, err := svc.Create(context.Background(), CreateRequest{
		Category: "sports",
		Title:    "Sports Day",
		Location: "Main Ground",
		Upload:   &file,
		Actor:    adminActor(),
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if item.Image != "https://cdn.test/activities/sports_day.jpg" {
		t.Fatalf("expected uploaded image URL, got %q", item.Image)
	}
	if item.CreatedBy != "admin-1" {
		t.Fatalf("expected creator uid, got %q", item.CreatedBy)
	}
}

func TestServiceCreateFailsWholeOperationOnUploadError(t *testing.T) {
	repo := NewMemoryRepository()
	blobs := &stubBlobProvider{failWith: errors.New("bucket offline")}
	svc := NewService(repo, WithBlobProvider(blobs))

	file := upload("banner.jpg")
	_, err := svc.Create(context.Background(), CreateRequest{
		Category: "sports",
		Title:    "Banner",
		Upload:   &file,
		Actor:    adminActor(),
	})
	if err == nil {
		t.Fatal("expected create to fail when the upload fails")
	}

	items, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no record after failed upload, got %d", len(items))
	}
}

func TestServiceCreateRejectsNonAdmins(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	_, err := svc.Create(context.Background(), CreateRequest{
		Category: "sports",
		Title:    "Sneaky",
		Actor:    domain.Actor{UID: "viewer", Role: domain.RoleUser},
	})
	if !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
}

func TestServiceCreateValidatesRequiredFields(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	_, err := svc.Create(context.Background(), CreateRequest{
		Title: "No Category",
		Actor: adminActor(),
	})
	if err == nil {
		t.Fatal("expected validation error without a category")
	}
}

func TestServiceListFiltersByExactCategory(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	for i, category := range []string{"sports", "annual-function", "sports"} {
		if _, err := svc.Create(ctx, CreateRequest{
			Category: category,
			Title:    fmt.Sprintf("Item %d", i),
			Actor:    adminActor(),
		}); err != nil {
			t.Fatalf("seed item %d: %v", i, err)
		}
	}

	items, err := svc.List(ctx, ListFilter{Category: "sports"})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 sports items, got %d", len(items))
	}
	if items[0].Title != "Item 0" || items[1].Title != "Item 2" {
		t.Fatalf("expected insertion order preserved, got %q then %q", items[0].Title, items[1].Title)
	}

	all, err := svc.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 items without a filter, got %d", len(all))
	}
}

func TestServiceUpdatePreservesUnsetFields(t *testing.T) {
	repo := NewMemoryRepository()
	blobs := &stubBlobProvider{}
	svc := NewService(repo, WithBlobProvider(blobs))
	ctx := context.Background()

	file := upload("before.jpg")
	created, err := svc.Create(ctx, CreateRequest{
		Category: "sports",
		Title:    "Relay Race",
		Location: "Track",
		Upload:   &file,
		Actor:    adminActor(),
	})
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}

	title := "Relay Finals"
	updated, err := svc.Update(ctx, UpdateRequest{
		ID:    created.ID,
		Title: &title,
		Actor: adminActor(),
	})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if updated.Title != "Relay Finals" {
		t.Fatalf("expected new title, got %q", updated.Title)
	}
	if updated.Location != "Track" {
		t.Fatalf("expected location untouched, got %q", updated.Location)
	}
	if updated.Image != created.Image {
		t.Fatalf("expected image untouched without a new upload, got %q", updated.Image)
	}
}

func TestServiceUpdateReplacesImageOnNewUpload(t *testing.T) {
	repo := NewMemoryRepository()
	blobs := &stubBlobProvider{}
	svc := NewService(repo, WithBlobProvider(blobs))
	ctx := context.Background()

	first := upload("old.jpg")
	created, err := svc.Create(ctx, CreateRequest{
		Category: "sports",
		Title:    "Old",
		Upload:   &first,
		Actor:    adminActor(),
	})
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}

	replacement := upload("new.jpg")
	updated, err := svc.Update(ctx, UpdateRequest{
		ID:     created.ID,
		Upload: &replacement,
		Actor:  adminActor(),
	})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if !strings.HasSuffix(updated.Image, "/new.jpg") {
		t.Fatalf("expected replaced image URL, got %q", updated.Image)
	}
}

func TestServiceDeleteRemovesOnlyTargetItem(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateRequest{Category: "sports", Title: "Keep", Actor: adminActor()})
	if err != nil {
		t.Fatalf("seed first: %v", err)
	}
	second, err := svc.Create(ctx, CreateRequest{Category: "sports", Title: "Drop", Actor: adminActor()})
	if err != nil {
		t.Fatalf("seed second: %v", err)
	}

	if err := svc.Delete(ctx, second.ID, adminActor()); err != nil {
		t.Fatalf("delete item: %v", err)
	}

	items, err := svc.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 1 || items[0].ID != first.ID {
		t.Fatalf("expected only the first item to survive, got %d items", len(items))
	}

	if err := svc.Delete(ctx, uuid.Nil, adminActor()); !errors.Is(err, ErrItemIDRequired) {
		t.Fatalf("expected ErrItemIDRequired for nil id, got %v", err)
	}
}

func TestServiceCreateManyReportsIndependentFailures(t *testing.T) {
	repo := NewMemoryRepository()
	blobs := &stubBlobProvider{failFor: map[string]error{
		"broken.jpg": errors.New("checksum mismatch"),
	}}
	svc := NewService(repo, WithBlobProvider(blobs))

	results := svc.CreateMany(context.Background(), CreateManyRequest{
		Category: "annual-function",
		Title:    "Annual Function 2026",
		Uploads: []interfaces.Upload{
			upload("one.jpg"),
			upload("broken.jpg"),
			upload("three.jpg"),
		},
		Actor: adminActor(),
	})
	if len(results) != 3 {
		t.Fatalf("expected one result per upload, got %d", len(results))
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Fatalf("expected siblings to succeed, got %v and %v", results[0].Err, results[2].Err)
	}
	if results[1].Err == nil {
		t.Fatal("expected the broken upload to fail")
	}

	items, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 surviving records, got %d", len(items))
	}
	for _, item := range items {
		if item.Title != "Annual Function 2026" {
			t.Fatalf("expected shared metadata on %q", item.Title)
		}
	}
}

func TestServiceCreateManyValidatesOnce(t *testing.T) {
	svc := NewService(NewMemoryRepository(), WithBlobProvider(&stubBlobProvider{}))

	results := svc.CreateMany(context.Background(), CreateManyRequest{
		Title:   "Missing Category",
		Uploads: []interfaces.Upload{upload("a.jpg"), upload("b.jpg")},
		Actor:   adminActor(),
	})
	if len(results) != 2 {
		t.Fatalf("expected one result per upload, got %d", len(results))
	}
	for i, result := range results {
		if result.Err == nil {
			t.Fatalf("expected validation error on result %d", i)
		}
	}
}

func TestServiceCreateManyWithoutUploadsSurfacesError(t *testing.T) {
	svc := NewService(NewMemoryRepository(), WithBlobProvider(&stubBlobProvider{}))

	results := svc.CreateMany(context.Background(), CreateManyRequest{
		Category: "sports",
		Title:    "Sports Meet",
		Actor:    adminActor(),
	})
	if len(results) != 1 {
		t.Fatalf("expected a single failed result, got %d", len(results))
	}
	if results[0].Err == nil {
		t.Fatal("expected validation error for empty upload batch")
	}
}

func TestServiceCategoriesPrefersProvider(t *testing.T) {
	svc := NewService(NewMemoryRepository(), WithCategoryProvider(&stubCategoryProvider{
		categories: []Category{{Name: "Science Fair", Value: "science-fair"}},
	}))

	categories := svc.Categories(context.Background())
	if len(categories) != 1 || categories[0].Value != "science-fair" {
		t.Fatalf("expected provider categories, got %+v", categories)
	}
}

func TestServiceCategoriesFallsBackWhenProviderFails(t *testing.T) {
	svc := NewService(NewMemoryRepository(), WithCategoryProvider(&stubCategoryProvider{
		err: errors.New("document unreachable"),
	}))

	categories := svc.Categories(context.Background())
	if len(categories) == 0 {
		t.Fatal("expected fallback categories when the provider errors")
	}

	empty := NewService(NewMemoryRepository(), WithCategoryProvider(&stubCategoryProvider{}))
	if got := empty.Categories(context.Background()); len(got) == 0 {
		t.Fatal("expected fallback categories when the provider returns none")
	}
}

func TestServiceTimestampsUseInjectedClock(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	svc := NewService(NewMemoryRepository(), WithClock(func() time.Time { return fixed }))

	item, err := svc.Create(context.Background(), CreateRequest{
		Category: "sports",
		Title:    "Clocked",
		Actor:    adminActor(),
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if !item.CreatedAt.Equal(fixed) || !item.UpdatedAt.Equal(fixed) {
		t.Fatalf("expected injected timestamps, got %v / %v", item.CreatedAt, item.UpdatedAt)
	}
}
