package sections

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-sitecontent/internal/domain"
	"github.com/goliatone/go-sitecontent/internal/merge"
	"github.com/goliatone/go-sitecontent/pkg/interfaces"
)

// State identifies the edit-session lifecycle stage.
type State string

const (
	StateViewing State = "viewing"
	StateEditing State = "editing"
	StateSaving  State = "saving"
)

var (
	ErrNotEditing     = errors.New("sections: session is not editing")
	ErrAlreadyEditing = errors.New("sections: session already editing")
	ErrSaveInProgress = errors.New("sections: save already in progress")
)

// EditSession mediates between the read-only merged view and a mutable draft
// for one section. The session is long-lived for the page's mounted lifetime;
// there are no terminal states.
//
// The remote document may change while a draft is open; this is not detected
// or merged. Save is an unconditional merge-write: last write wins.
type EditSession struct {
	mu    sync.Mutex
	svc   *service
	key   string
	actor domain.Actor

	state State
	view  map[string]any
	draft map[string]any
}

// Key returns the section key the session edits.
func (e *EditSession) Key() string { return e.key }

// State reports the current lifecycle stage.
func (e *EditSession) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// View returns the last rendered merged view.
func (e *EditSession) View() map[string]any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return merge.Clone(e.view)
}

// Draft returns the working copy, or nil outside of editing.
func (e *EditSession) Draft() map[string]any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return merge.Clone(e.draft)
}

// Begin transitions Viewing -> Editing. The draft is a deep clone of the
// merged view computed fresh at transition time, so later draft mutations
// never alias the rendered view.
func (e *EditSession) Begin(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateEditing:
		return ErrAlreadyEditing
	case StateSaving:
		return ErrSaveInProgress
	}

	view, err := e.svc.View(ctx, e.key)
	if err != nil {
		return err
	}
	e.view = view
	e.draft = merge.Clone(view)
	e.state = StateEditing
	return nil
}

// SetField writes a value into the draft at a dotted path, creating
// intermediate records as needed. The store is not touched.
func (e *EditSession) SetField(path string, value any) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateEditing {
		return ErrNotEditing
	}
	return setFieldPath(e.draft, path, value)
}

// Field reads a draft value at a dotted path.
func (e *EditSession) Field(path string) (any, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.draft == nil {
		return nil, false
	}
	return fieldPath(e.draft, path)
}

// AttachImage uploads the file through the blob store and writes the returned
// URL into the draft field. A failed upload leaves the prior field value
// intact; the admin may retry the same field.
func (e *EditSession) AttachImage(ctx context.Context, field, folder string, upload interfaces.Upload) (string, error) {
	e.mu.Lock()
	if e.state != StateEditing {
		e.mu.Unlock()
		return "", ErrNotEditing
	}
	blobs := e.svc.blobs
	e.mu.Unlock()

	if blobs == nil {
		return "", ErrUploadUnavailable
	}

	url, err := blobs.Put(ctx, folder, upload)
	if err != nil {
		return "", fmt.Errorf("sections: image upload failed: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateEditing {
		return "", ErrNotEditing
	}
	if err := setFieldPath(e.draft, field, url); err != nil {
		return "", err
	}
	return url, nil
}

// Save transitions Editing -> Saving -> Viewing. The entire draft is sent as
// one merge-write and the remote is refetched so Viewing reflects durable
// state. On failure the session returns to Editing with the draft intact.
func (e *EditSession) Save(ctx context.Context) (map[string]any, error) {
	e.mu.Lock()
	if e.state != StateEditing {
		e.mu.Unlock()
		return nil, ErrNotEditing
	}
	e.state = StateSaving
	draft := merge.Clone(e.draft)
	e.mu.Unlock()

	view, err := e.svc.Save(ctx, SaveRequest{
		Key:      e.key,
		Document: draft,
		Actor:    e.actor,
	})

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.state = StateEditing
		return nil, err
	}
	e.view = view
	e.draft = nil
	e.state = StateViewing
	return merge.Clone(view), nil
}

// Cancel discards the draft unconditionally and returns to Viewing. No store
// write happens. Cancel while already viewing is a no-op.
func (e *EditSession) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateEditing {
		return
	}
	e.draft = nil
	e.state = StateViewing
}

func setFieldPath(doc map[string]any, path string, value any) error {
	parts, err := splitFieldPath(path)
	if err != nil {
		return err
	}
	current := doc
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
	return nil
}

func fieldPath(doc map[string]any, path string) (any, bool) {
	parts, err := splitFieldPath(path)
	if err != nil {
		return nil, false
	}
	current := doc
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	value, ok := current[parts[len(parts)-1]]
	return value, ok
}

func splitFieldPath(path string) ([]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sections: field path is required")
	}
	parts := strings.Split(path, ".")
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			return nil, fmt.Errorf("sections: invalid field path %q", path)
		}
	}
	return parts, nil
}
