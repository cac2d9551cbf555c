package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/robinson/internal/users"
)

type failingStore struct {
	err error
}

func (s *failingStore) FindByUsername(ctx context.Context, username string) (*users.User, error) {
	return nil, s.err
}

func (s *failingStore) FindByID(ctx context.Context, id string) (*users.User, error) {
	return nil, s.err
}

func newSeededStore(t *testing.T) *users.MemoryStore {
	t.Helper()
	hash, err := users.HashPassword("rett-lykilord", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	store := users.NewMemoryStore()
	store.Add(users.User{ID: "u1", Username: "alice", PasswordHash: hash, Admin: true})
	return store
}

func TestVerifyUnknownUserSkipsComparison(t *testing.T) {
	verifier := NewVerifier(newSeededStore(t))

	compared := false
	verifier.compare = func(password string, user *users.User) bool {
		compared = true
		return false
	}

	_, err := verifier.Verify(context.Background(), "bob", "hvad-sem-er")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if compared {
		t.Fatal("comparison must not run for an unknown username")
	}
}

func TestVerifyCorrectPassword(t *testing.T) {
	verifier := NewVerifier(newSeededStore(t))

	user, err := verifier.Verify(context.Background(), "alice", "rett-lykilord")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected user: %#v", user)
	}
}

func TestVerifyWrongPassword(t *testing.T) {
	verifier := NewVerifier(newSeededStore(t))

	_, err := verifier.Verify(context.Background(), "alice", "rangt-lykilord")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyEmptyInputs(t *testing.T) {
	verifier := NewVerifier(newSeededStore(t))

	_, err := verifier.Verify(context.Background(), "", "")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyLookupFailureIsDistinct(t *testing.T) {
	cause := errors.New("store unavailable")
	verifier := NewVerifier(&failingStore{err: cause})

	_, err := verifier.Verify(context.Background(), "alice", "rett-lykilord")
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("store failure must not look like bad credentials")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}
