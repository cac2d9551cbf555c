package users

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePasswords(t *testing.T) {
	hash, err := HashPassword("leyndarmál", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	user := &User{ID: "u1", Username: "alice", PasswordHash: hash}

	if !ComparePasswords("leyndarmál", user) {
		t.Fatal("expected correct password to match")
	}
	if ComparePasswords("rangt", user) {
		t.Fatal("expected wrong password to be rejected")
	}
	if ComparePasswords("", user) {
		t.Fatal("expected empty password to be rejected")
	}
}

func TestProfile(t *testing.T) {
	user := &User{ID: "u1", Username: "alice", Admin: true}
	p := user.Profile()
	if p.Username != "alice" || !p.Admin {
		t.Fatalf("unexpected profile: %#v", p)
	}

	var missing *User
	if got := missing.Profile(); got != (Profile{}) {
		t.Fatalf("nil user should project to zero profile, got %#v", got)
	}
}

func TestMemoryStoreFind(t *testing.T) {
	store := NewMemoryStore()
	store.Add(User{ID: "u1", Username: "alice", Admin: true})

	ctx := context.Background()

	byName, err := store.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("FindByUsername returned error: %v", err)
	}
	if byName.ID != "u1" || !byName.Admin {
		t.Fatalf("unexpected user: %#v", byName)
	}

	byID, err := store.FindByID(ctx, "u1")
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if byID.Username != "alice" {
		t.Fatalf("unexpected user: %#v", byID)
	}

	if _, err := store.FindByUsername(ctx, "bob"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.FindByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreRemove(t *testing.T) {
	store := NewMemoryStore()
	store.Add(User{ID: "u1", Username: "alice"})
	store.Remove("u1")

	ctx := context.Background()
	if _, err := store.FindByID(ctx, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
	if _, err := store.FindByUsername(ctx, "alice"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected username index to be removed, got %v", err)
	}
}

func TestRedisKeyLayout(t *testing.T) {
	if got := userKey("u1"); got != "user:u1" {
		t.Fatalf("unexpected user key: %s", got)
	}
	if got := usernameKey("alice"); got != "username:alice" {
		t.Fatalf("unexpected username key: %s", got)
	}
}
