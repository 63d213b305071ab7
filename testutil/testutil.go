// Package testutil provides shared fixtures for package tests: a throwaway
// sqlite store, document seeding, and token minting.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/girojogos/duoguard/identity"
	"github.com/girojogos/duoguard/logger"
	"github.com/girojogos/duoguard/store"
)

// OpenStore opens a store backed by a temp file, closed when the test ends.
func OpenStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(store.Config{Path: filepath.Join(t.TempDir(), "test.db")}, logger.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// Seed writes a document directly into the store, bypassing policy.
func Seed(t *testing.T, s *store.Store, path string, data map[string]any) {
	t.Helper()
	if _, err := s.Put(context.Background(), path, data); err != nil {
		t.Fatalf("seed %s: %v", path, err)
	}
}

// TokenService returns a token service with a fixed test secret.
func TokenService(t *testing.T) *identity.Service {
	t.Helper()
	svc, err := identity.NewService(&identity.Config{Secret: "test-secret"})
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return svc
}

// Token mints a signed token for uid. admin follows the claim's three-state
// convention: nil omits the claim entirely.
func Token(t *testing.T, svc *identity.Service, uid string, admin *bool) string {
	t.Helper()
	token, err := svc.Generate(uid, admin)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

// BoolPtr returns a pointer to b, for admin claims.
func BoolPtr(b bool) *bool { return &b }

// Participant builds the canonical participant document entry.
func Participant(id, name string) map[string]any {
	return map[string]any{"id": id, "name": name}
}

// SeedDuo writes a duo with the given invite code and participants.
func SeedDuo(t *testing.T, s *store.Store, duoID, inviteCode string, participants ...map[string]any) {
	t.Helper()
	members := make([]any, 0, len(participants))
	for _, p := range participants {
		members = append(members, p)
	}
	Seed(t, s, "duos/"+duoID+"/invites/"+inviteCode, map[string]any{
		"inviteCode":   inviteCode,
		"participants": members,
	})
}
