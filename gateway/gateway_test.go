package gateway

import (
	"context"
	"testing"

	"github.com/girojogos/duoguard/errors"
	"github.com/girojogos/duoguard/identity"
	"github.com/girojogos/duoguard/logger"
	"github.com/girojogos/duoguard/policy"
	"github.com/girojogos/duoguard/store"
	"github.com/girojogos/duoguard/testutil"
)

func newTestGateway(t *testing.T) (*Gateway, *store.Store) {
	t.Helper()
	s := testutil.OpenStore(t)
	return New(s, logger.Nop(), nil), s
}

func seed(t *testing.T, s *store.Store, path string, data map[string]any) {
	t.Helper()
	testutil.Seed(t, s, path, data)
}

func asUser(uid string) context.Context {
	return identity.NewContext(context.Background(), identity.User(uid))
}

func asAdmin(uid string) context.Context {
	return identity.NewContext(context.Background(), identity.AdminUser(uid))
}

func seedDuo(t *testing.T, s *store.Store) {
	t.Helper()
	testutil.SeedDuo(t, s, "duo-1", "CODE123",
		testutil.Participant("alice", "Alice"),
		testutil.Participant("bob", "Bob"),
	)
}

func TestReadDuo(t *testing.T) {
	g, s := newTestGateway(t)
	seedDuo(t, s)

	t.Run("participant reads through matching invite code", func(t *testing.T) {
		doc, err := g.Read(asUser("alice"), "duos/duo-1/invites/CODE123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.Data["inviteCode"] != "CODE123" {
			t.Errorf("unexpected document: %v", doc.Data)
		}
	})

	t.Run("outsider denied", func(t *testing.T) {
		_, err := g.Read(asUser("mallory"), "duos/duo-1/invites/CODE123")
		if !errors.IsCode(err, errors.ErrCodePermissionDenied) {
			t.Fatalf("expected PERMISSION_DENIED, got %v", err)
		}
	})

	t.Run("anonymous gets unauthorized", func(t *testing.T) {
		_, err := g.Read(context.Background(), "duos/duo-1/invites/CODE123")
		if !errors.IsCode(err, errors.ErrCodeUnauthorized) {
			t.Fatalf("expected UNAUTHORIZED, got %v", err)
		}
	})

	t.Run("missing duo is not found", func(t *testing.T) {
		_, err := g.Read(asUser("alice"), "duos/ghost/invites/CODE123")
		if !errors.IsCode(err, errors.ErrCodeNotFound) {
			t.Fatalf("expected NOT_FOUND, got %v", err)
		}
	})
}

func TestCreateDuo(t *testing.T) {
	g, _ := newTestGateway(t)

	t.Run("creator as sole participant", func(t *testing.T) {
		doc, err := g.Create(asUser("alice"), "duos/duo-new/invites/INV1", map[string]any{
			"inviteCode":   "INV1",
			"participants": []any{map[string]any{"id": "alice", "name": "Alice"}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.Path != "duos/duo-new/invites/INV1" {
			t.Errorf("unexpected path %q", doc.Path)
		}
	})

	t.Run("second create at same path conflicts", func(t *testing.T) {
		_, err := g.Create(asUser("alice"), "duos/duo-new/invites/INV1", map[string]any{
			"inviteCode":   "INV1",
			"participants": []any{map[string]any{"id": "alice", "name": "Alice"}},
		})
		if !errors.IsCode(err, errors.ErrCodeAlreadyExists) {
			t.Fatalf("expected ALREADY_EXISTS, got %v", err)
		}
	})

	t.Run("creating on behalf of someone else denied", func(t *testing.T) {
		_, err := g.Create(asUser("alice"), "duos/duo-x/invites/INV2", map[string]any{
			"inviteCode":   "INV2",
			"participants": []any{map[string]any{"id": "bob", "name": "Bob"}},
		})
		if !errors.IsCode(err, errors.ErrCodePermissionDenied) {
			t.Fatalf("expected PERMISSION_DENIED, got %v", err)
		}
	})

	t.Run("denied create does not reveal existence", func(t *testing.T) {
		_, err := g.Create(asUser("mallory"), "duos/duo-new/invites/INV1", map[string]any{
			"inviteCode":   "INV1",
			"participants": []any{map[string]any{"id": "bob", "name": "Bob"}},
		})
		if !errors.IsCode(err, errors.ErrCodePermissionDenied) {
			t.Fatalf("expected PERMISSION_DENIED, got %v", err)
		}
	})
}

func TestUpdateDuo(t *testing.T) {
	g, s := newTestGateway(t)
	seed(t, s, "duos/duo-1/invites/CODE123", map[string]any{
		"inviteCode":   "CODE123",
		"participants": []any{map[string]any{"id": "alice", "name": "Alice"}},
	})

	t.Run("participant adds a partner", func(t *testing.T) {
		_, err := g.Update(asUser("alice"), "duos/duo-1/invites/CODE123", map[string]any{
			"inviteCode": "CODE123",
			"participants": []any{
				map[string]any{"id": "alice", "name": "Alice"},
				map[string]any{"id": "bob", "name": "Bob"},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("third participant denied", func(t *testing.T) {
		_, err := g.Update(asUser("alice"), "duos/duo-1/invites/CODE123", map[string]any{
			"inviteCode": "CODE123",
			"participants": []any{
				map[string]any{"id": "alice", "name": "Alice"},
				map[string]any{"id": "bob", "name": "Bob"},
				map[string]any{"id": "carol", "name": "Carol"},
			},
		})
		if !errors.IsCode(err, errors.ErrCodePermissionDenied) {
			t.Fatalf("expected PERMISSION_DENIED, got %v", err)
		}
	})

	t.Run("malformed payload is invalid document", func(t *testing.T) {
		_, err := g.Update(asUser("alice"), "duos/duo-1/invites/CODE123", map[string]any{
			"inviteCode":   "CODE123",
			"participants": []any{"alice", "bob"},
		})
		if !errors.IsCode(err, errors.ErrCodeInvalidDocument) {
			t.Fatalf("expected INVALID_DOCUMENT, got %v", err)
		}
	})
}

func TestChallengeAccess(t *testing.T) {
	g, s := newTestGateway(t)
	seed(t, s, "challenges/2", map[string]any{"id": 2, "title": "Morning run", "isActive": true})
	seed(t, s, "challenges/3", map[string]any{"id": 3, "title": "Night owl", "isActive": false})

	t.Run("active challenge readable by any user", func(t *testing.T) {
		if _, err := g.Read(asUser("alice"), "challenges/2"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("inactive challenge hidden from users", func(t *testing.T) {
		_, err := g.Read(asUser("alice"), "challenges/3")
		if !errors.IsCode(err, errors.ErrCodePermissionDenied) {
			t.Fatalf("expected PERMISSION_DENIED, got %v", err)
		}
	})

	t.Run("inactive challenge readable by admin", func(t *testing.T) {
		if _, err := g.Read(asAdmin("root"), "challenges/3"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("user cannot write challenges", func(t *testing.T) {
		_, err := g.Update(asUser("alice"), "challenges/2", map[string]any{"id": 2, "isActive": false})
		if !errors.IsCode(err, errors.ErrCodePermissionDenied) {
			t.Fatalf("expected PERMISSION_DENIED, got %v", err)
		}
	})
}

func TestListChallenges(t *testing.T) {
	g, s := newTestGateway(t)
	seed(t, s, "challenges/2", map[string]any{"id": 2, "isActive": true})
	seed(t, s, "challenges/3", map[string]any{"id": 3, "isActive": false})
	seed(t, s, "challenges/4", map[string]any{"id": 4, "isActive": true})

	t.Run("active-only filter allowed", func(t *testing.T) {
		docs, err := g.List(asUser("alice"), "challenges", []policy.Filter{{Field: "isActive", Value: true}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(docs) != 2 {
			t.Fatalf("expected 2 active challenges, got %d", len(docs))
		}
		for _, doc := range docs {
			if doc.Data["isActive"] != true {
				t.Errorf("inactive challenge leaked: %v", doc.Data)
			}
		}
	})

	t.Run("unfiltered list denied", func(t *testing.T) {
		_, err := g.List(asUser("alice"), "challenges", nil)
		if !errors.IsCode(err, errors.ErrCodePermissionDenied) {
			t.Fatalf("expected PERMISSION_DENIED, got %v", err)
		}
	})

	t.Run("wrong filter value denied", func(t *testing.T) {
		_, err := g.List(asUser("alice"), "challenges", []policy.Filter{{Field: "isActive", Value: false}})
		if !errors.IsCode(err, errors.ErrCodePermissionDenied) {
			t.Fatalf("expected PERMISSION_DENIED, got %v", err)
		}
	})

	t.Run("admin lists unfiltered", func(t *testing.T) {
		docs, err := g.List(asAdmin("root"), "challenges", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(docs) != 3 {
			t.Fatalf("expected 3 challenges, got %d", len(docs))
		}
	})
}

func TestSubmissions(t *testing.T) {
	g, s := newTestGateway(t)
	seedDuo(t, s)
	seed(t, s, "users/alice/duo/current", map[string]any{"duoId": "duo-1", "inviteCode": "CODE123"})

	t.Run("participant submits", func(t *testing.T) {
		_, err := g.Create(asUser("alice"), "challenges/2/submissions/sub-1", map[string]any{
			"duoId":         "duo-1",
			"duoInviteCode": "CODE123",
			"value":         42,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("submission is immutable", func(t *testing.T) {
		_, err := g.Update(asUser("alice"), "challenges/2/submissions/sub-1", map[string]any{
			"duoId": "duo-1", "duoInviteCode": "CODE123", "value": 99,
		})
		if !errors.IsCode(err, errors.ErrCodePermissionDenied) {
			t.Fatalf("expected PERMISSION_DENIED, got %v", err)
		}
		if err := g.Delete(asUser("alice"), "challenges/2/submissions/sub-1"); !errors.IsCode(err, errors.ErrCodePermissionDenied) {
			t.Fatalf("expected PERMISSION_DENIED on delete, got %v", err)
		}
	})

	t.Run("outsider cannot submit for the duo", func(t *testing.T) {
		_, err := g.Create(asUser("mallory"), "challenges/2/submissions/sub-2", map[string]any{
			"duoId": "duo-1", "duoInviteCode": "CODE123", "value": 1,
		})
		if !errors.IsCode(err, errors.ErrCodePermissionDenied) {
			t.Fatalf("expected PERMISSION_DENIED, got %v", err)
		}
	})
}

func TestIndexAccess(t *testing.T) {
	g, s := newTestGateway(t)
	seedDuo(t, s)
	seed(t, s, "users/alice/duo/current", map[string]any{"duoId": "duo-1", "inviteCode": "CODE123"})
	seed(t, s, "duo_submissions_index/duo-1", map[string]any{"count": 1})

	t.Run("participant reads own duo index", func(t *testing.T) {
		if _, err := g.Read(asUser("alice"), "duo_submissions_index/duo-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("outsider denied", func(t *testing.T) {
		_, err := g.Read(asUser("mallory"), "duo_submissions_index/duo-1")
		if !errors.IsCode(err, errors.ErrCodePermissionDenied) {
			t.Fatalf("expected PERMISSION_DENIED, got %v", err)
		}
	})

	t.Run("index is read only even for admins", func(t *testing.T) {
		_, err := g.Update(asAdmin("root"), "duo_submissions_index/duo-1", map[string]any{"count": 2})
		if !errors.IsCode(err, errors.ErrCodePermissionDenied) {
			t.Fatalf("expected PERMISSION_DENIED, got %v", err)
		}
	})
}

func TestUnmatchedPathDenied(t *testing.T) {
	g, _ := newTestGateway(t)
	_, err := g.Read(asAdmin("root"), "secrets/launch-codes")
	if !errors.IsCode(err, errors.ErrCodePermissionDenied) {
		t.Fatalf("expected PERMISSION_DENIED, got %v", err)
	}
}

func TestElevated(t *testing.T) {
	g, s := newTestGateway(t)
	e := g.Elevated("import-script")

	ctx := context.Background()
	if _, err := e.Put(ctx, "challenges/7", map[string]any{"id": 7, "isActive": false}); err != nil {
		t.Fatalf("elevated put: %v", err)
	}
	if _, err := e.Get(ctx, "challenges/7"); err != nil {
		t.Fatalf("elevated get: %v", err)
	}
	docs, err := e.List(ctx, "challenges", nil)
	if err != nil {
		t.Fatalf("elevated list: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 challenge, got %d", len(docs))
	}

	trail, err := s.AuditTrail(ctx, "import-script")
	if err != nil {
		t.Fatalf("audit trail: %v", err)
	}
	if len(trail) != 3 {
		t.Fatalf("expected 3 audit entries, got %d", len(trail))
	}
	for _, entry := range trail {
		if entry.Actor != "import-script" {
			t.Errorf("unexpected actor %q", entry.Actor)
		}
		if entry.ID == "" {
			t.Error("audit entry missing id")
		}
	}
}
