package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-sitecontent/pkg/interfaces"
)

type stubIdentityProvider struct {
	mu        sync.Mutex
	callbacks []func(*interfaces.Session)
	current   *interfaces.Session
	deferred  bool
}

func (p *stubIdentityProvider) Subscribe(fn func(session *interfaces.Session)) func() {
	p.mu.Lock()
	p.callbacks = append(p.callbacks, fn)
	current := p.current
	deferred := p.deferred
	p.mu.Unlock()

	if !deferred {
		fn(current)
	}
	return func() {}
}

func (p *stubIdentityProvider) emit(session *interfaces.Session) {
	p.mu.Lock()
	p.current = session
	callbacks := append([]func(*interfaces.Session){}, p.callbacks...)
	p.mu.Unlock()

	for _, fn := range callbacks {
		fn(session)
	}
}

func seedUser(t *testing.T, repo *MemoryRepository, uid, role string) {
	t.Helper()
	if _, err := repo.Upsert(context.Background(), &UserRecord{UID: uid, Role: role}); err != nil {
		t.Fatalf("seed user %q: %v", uid, err)
	}
}

func TestServiceResolvesAnonymousImmediately(t *testing.T) {
	provider := &stubIdentityProvider{}
	svc := NewService(provider, NewMemoryRepository())
	defer svc.Close()

	state := svc.State()
	if !state.Resolved {
		t.Fatal("expected state resolved after the initial provider report")
	}
	if state.Session != nil || svc.IsAdmin() {
		t.Fatal("expected anonymous non-admin state")
	}
}

func TestServiceResolvesAdminFromStoredRole(t *testing.T) {
	users := NewMemoryRepository()
	seedUser(t, users, "uid-admin", "admin")

	provider := &stubIdentityProvider{current: &interfaces.Session{UID: "uid-admin", Email: "head@school.test"}}
	svc := NewService(provider, users)
	defer svc.Close()

	if !svc.IsAdmin() {
		t.Fatal("expected admin role from the stored record")
	}
	if actor := svc.Actor(); actor.UID != "uid-admin" {
		t.Fatalf("expected actor uid, got %q", actor.UID)
	}
}

func TestServiceFailsClosedWithoutUserRecord(t *testing.T) {
	provider := &stubIdentityProvider{current: &interfaces.Session{UID: "uid-unknown"}}
	svc := NewService(provider, NewMemoryRepository())
	defer svc.Close()

	if svc.IsAdmin() {
		t.Fatal("expected a session without a record to resolve as a regular visitor")
	}
	if !svc.State().Resolved {
		t.Fatal("expected resolution despite the missing record")
	}
}

func TestServiceFailsClosedOnLookupError(t *testing.T) {
	users := NewMemoryRepository()
	users.FailGets = errors.New("store offline")

	provider := &stubIdentityProvider{current: &interfaces.Session{UID: "uid-admin"}}
	svc := NewService(provider, users)
	defer svc.Close()

	if svc.IsAdmin() {
		t.Fatal("expected a failed lookup to resolve as a regular visitor")
	}
}

func TestServiceTreatsUnknownRolesAsUser(t *testing.T) {
	users := NewMemoryRepository()
	seedUser(t, users, "uid-editor", "editor")

	provider := &stubIdentityProvider{current: &interfaces.Session{UID: "uid-editor"}}
	svc := NewService(provider, users)
	defer svc.Close()

	if svc.IsAdmin() {
		t.Fatal("expected unrecognized roles to be regular visitors")
	}
}

func TestServiceSignOutClearsActor(t *testing.T) {
	users := NewMemoryRepository()
	seedUser(t, users, "uid-admin", "admin")

	provider := &stubIdentityProvider{current: &interfaces.Session{UID: "uid-admin"}}
	svc := NewService(provider, users)
	defer svc.Close()

	provider.emit(nil)

	state := svc.State()
	if state.Session != nil || state.Actor.UID != "" {
		t.Fatalf("expected cleared state after sign-out, got %+v", state)
	}
	if !state.Resolved {
		t.Fatal("expected state to stay resolved after sign-out")
	}
}

func TestServiceSubscribeFiresImmediatelyAndOnChange(t *testing.T) {
	users := NewMemoryRepository()
	seedUser(t, users, "uid-admin", "admin")

	provider := &stubIdentityProvider{}
	svc := NewService(provider, users)
	defer svc.Close()

	var mu sync.Mutex
	var seen []bool
	unsubscribe := svc.Subscribe(func(state State) {
		mu.Lock()
		seen = append(seen, state.Actor.IsAdmin())
		mu.Unlock()
	})

	provider.emit(&interfaces.Session{UID: "uid-admin"})

	mu.Lock()
	got := append([]bool(nil), seen...)
	mu.Unlock()
	if len(got) != 2 || got[0] || !got[1] {
		t.Fatalf("expected immediate non-admin then admin notification, got %v", got)
	}

	unsubscribe()
	provider.emit(nil)

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 {
		t.Fatalf("expected no notifications after unsubscribe, got %d", len(seen))
	}
}

func TestGuardBlocksUntilResolution(t *testing.T) {
	users := NewMemoryRepository()
	seedUser(t, users, "uid-admin", "admin")

	provider := &stubIdentityProvider{deferred: true}
	svc := NewService(provider, users)
	defer svc.Close()
	guard := NewGuard(svc)

	go func() {
		time.Sleep(20 * time.Millisecond)
		provider.emit(&interfaces.Session{UID: "uid-admin"})
	}()

	decision, err := guard.Decide(context.Background())
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decision != DecisionAllow {
		t.Fatalf("expected allow once the admin session resolves, got %q", decision)
	}
}

func TestGuardRedirectsAnonymousAndRegularVisitors(t *testing.T) {
	users := NewMemoryRepository()
	seedUser(t, users, "uid-user", "user")

	provider := &stubIdentityProvider{}
	svc := NewService(provider, users)
	defer svc.Close()
	guard := NewGuard(svc)

	decision, err := guard.Decide(context.Background())
	if err != nil {
		t.Fatalf("decide anonymous: %v", err)
	}
	if decision != DecisionRedirectToLogin {
		t.Fatalf("expected redirect for anonymous visitor, got %q", decision)
	}

	provider.emit(&interfaces.Session{UID: "uid-user"})
	decision, err = guard.Decide(context.Background())
	if err != nil {
		t.Fatalf("decide regular visitor: %v", err)
	}
	if decision != DecisionRedirectToLogin {
		t.Fatalf("expected redirect for regular visitor, got %q", decision)
	}
}

func TestGuardRedirectsWhenResolutionTimesOut(t *testing.T) {
	provider := &stubIdentityProvider{deferred: true}
	svc := NewService(provider, NewMemoryRepository())
	defer svc.Close()
	guard := NewGuard(svc)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	decision, err := guard.Decide(ctx)
	if err == nil {
		t.Fatal("expected an error when identity never resolves")
	}
	if decision != DecisionRedirectToLogin {
		t.Fatalf("expected redirect on timeout, got %q", decision)
	}
}
