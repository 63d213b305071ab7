package identity

import (
	"context"
	"testing"
	"time"

	"github.com/girojogos/duoguard/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(&Config{Secret: "test-secret"})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func boolPtr(b bool) *bool { return &b }

func TestResolveBearerToken(t *testing.T) {
	svc := newTestService(t)
	r := NewResolver(svc, nil, logger.Nop())

	token, err := svc.Generate("user123", nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	id := r.Resolve(context.Background(), "Bearer "+token)
	if !id.Authenticated {
		t.Fatal("expected authenticated identity")
	}
	if id.UID != "user123" {
		t.Errorf("expected uid user123, got %q", id.UID)
	}
	if id.Admin {
		t.Error("no admin claim should mean no admin")
	}
}

func TestResolveAdminClaim(t *testing.T) {
	svc := newTestService(t)
	r := NewResolver(svc, nil, logger.Nop())

	token, err := svc.Generate("admin123", boolPtr(true))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	id := r.Resolve(context.Background(), "Bearer "+token)
	if !id.Admin {
		t.Error("expected admin identity from claim")
	}
}

type staticDirectory map[string]bool

func (d staticDirectory) IsAdmin(_ context.Context, uid string) (bool, error) {
	return d[uid], nil
}

func TestResolveAdminFallback(t *testing.T) {
	svc := newTestService(t)
	dir := staticDirectory{"admin123": true}
	r := NewResolver(svc, dir, logger.Nop())

	t.Run("no claim falls back to directory", func(t *testing.T) {
		token, _ := svc.Generate("admin123", nil)
		id := r.Resolve(context.Background(), "Bearer "+token)
		if !id.Admin {
			t.Error("expected admin via directory fallback")
		}
	})

	t.Run("explicit false claim wins over directory", func(t *testing.T) {
		token, _ := svc.Generate("admin123", boolPtr(false))
		id := r.Resolve(context.Background(), "Bearer "+token)
		if id.Admin {
			t.Error("an explicit admin=false claim must not be overridden")
		}
	})
}

func TestResolveRejections(t *testing.T) {
	svc := newTestService(t)
	r := NewResolver(svc, nil, logger.Nop())
	ctx := context.Background()

	tests := []struct {
		name   string
		header string
	}{
		{"empty header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not.a.token"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id := r.Resolve(ctx, tc.header)
			if id.Authenticated {
				t.Error("expected anonymous identity")
			}
		})
	}
}

func TestResolveExpiredToken(t *testing.T) {
	cfg := &Config{Secret: "test-secret", TokenTTL: -time.Minute}
	svc, err := NewService(cfg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	r := NewResolver(svc, nil, logger.Nop())

	token, _ := svc.Generate("user123", nil)
	id := r.Resolve(context.Background(), "Bearer "+token)
	if id.Authenticated {
		t.Error("expected expired token to resolve anonymous")
	}
}

func TestResolveWrongSecret(t *testing.T) {
	svc := newTestService(t)
	other, _ := NewService(&Config{Secret: "other-secret"})
	r := NewResolver(svc, nil, logger.Nop())

	token, _ := other.Generate("user123", nil)
	id := r.Resolve(context.Background(), "Bearer "+token)
	if id.Authenticated {
		t.Error("expected token signed with a different secret to be rejected")
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := NewContext(context.Background(), User("user123"))
	id := FromContext(ctx)
	if id.UID != "user123" || !id.Authenticated {
		t.Errorf("unexpected identity: %+v", id)
	}
}

func TestContextDefaultsToAnonymous(t *testing.T) {
	id := FromContext(context.Background())
	if id.Authenticated {
		t.Error("expected anonymous from empty context")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Secret: "s", Method: HS256}, false},
		{"missing secret", Config{Method: HS256}, true},
		{"bad method", Config{Secret: "s", Method: "RS256"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
