package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-sitecontent/pkg/interfaces"
)

func fixedClock() func() time.Time {
	fixed := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	return func() time.Time { return fixed }
}

func TestFSProviderWritesTimestampPrefixedFile(t *testing.T) {
	root := t.TempDir()
	clock := fixedClock()
	provider := NewFSProvider(root, "https://cdn.test", WithClock(clock))

	url, err := provider.Put(context.Background(), "activities", interfaces.Upload{
		Name:    "sports_day.jpg",
		Content: strings.NewReader("image-bytes"),
	})
	if err != nil {
		t.Fatalf("put upload: %v", err)
	}

	wantName := fmt.Sprintf("%d_sports_day.jpg", clock().UnixMilli())
	if url != "https://cdn.test/activities/"+wantName {
		t.Fatalf("unexpected url %q", url)
	}

	content, err := os.ReadFile(filepath.Join(root, "activities", wantName))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(content) != "image-bytes" {
		t.Fatalf("unexpected file content %q", content)
	}
}

func TestFSProviderDistinctTimestampsNeverCollide(t *testing.T) {
	root := t.TempDir()
	tick := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	provider := NewFSProvider(root, "https://cdn.test", WithClock(func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}))

	first, err := provider.Put(context.Background(), "gallery", interfaces.Upload{
		Name:    "same.jpg",
		Content: strings.NewReader("one"),
	})
	if err != nil {
		t.Fatalf("first put: %v", err)
	}
	second, err := provider.Put(context.Background(), "gallery", interfaces.Upload{
		Name:    "same.jpg",
		Content: strings.NewReader("two"),
	})
	if err != nil {
		t.Fatalf("second put: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct URLs for repeated filenames, both were %q", first)
	}
}

func TestFSProviderSanitizesHostileNames(t *testing.T) {
	root := t.TempDir()
	provider := NewFSProvider(root, "https://cdn.test", WithClock(fixedClock()))

	url, err := provider.Put(context.Background(), "../escape", interfaces.Upload{
		Name:    "../../etc/passwd",
		Content: strings.NewReader("nope"),
	})
	if err != nil {
		t.Fatalf("put upload: %v", err)
	}
	if strings.Contains(url, "..") {
		t.Fatalf("expected traversal segments stripped, got %q", url)
	}
	if _, err := os.Stat(filepath.Join(root, "escape")); err != nil {
		t.Fatalf("expected folder collapsed inside root: %v", err)
	}
}

func TestFSProviderRejectsEmptyName(t *testing.T) {
	provider := NewFSProvider(t.TempDir(), "https://cdn.test")

	_, err := provider.Put(context.Background(), "gallery", interfaces.Upload{
		Name:    "   ",
		Content: strings.NewReader("x"),
	})
	if err != ErrUploadNameRequired {
		t.Fatalf("expected ErrUploadNameRequired, got %v", err)
	}
}

func TestMemoryProviderStoresAndServesObjects(t *testing.T) {
	clock := fixedClock()
	provider := NewMemoryProvider("https://cdn.test", WithMemoryClock(clock))

	url, err := provider.Put(context.Background(), "gallery", interfaces.Upload{
		Name:    "pic.jpg",
		Content: strings.NewReader("bytes"),
	})
	if err != nil {
		t.Fatalf("put upload: %v", err)
	}

	key := fmt.Sprintf("gallery/%d_pic.jpg", clock().UnixMilli())
	if url != "https://cdn.test/"+key {
		t.Fatalf("unexpected url %q", url)
	}
	content, ok := provider.Object(key)
	if !ok || string(content) != "bytes" {
		t.Fatalf("expected stored object for %q", key)
	}
}
