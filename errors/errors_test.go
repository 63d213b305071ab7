package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestPermissionDenied(t *testing.T) {
	err := PermissionDenied("not_participant", "")
	if err.Code != ErrCodePermissionDenied {
		t.Errorf("expected PERMISSION_DENIED, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusForbidden {
		t.Errorf("expected 403, got %d", err.HTTPStatus)
	}
	if err.Details["reason"] != "not_participant" {
		t.Errorf("expected reason detail, got %v", err.Details["reason"])
	}
	if err.Retryable {
		t.Error("a policy denial must never be retryable")
	}
}

func TestNotFound(t *testing.T) {
	err := NotFound("duos/duo456/invites/ABC123")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected 404, got %d", err.HTTPStatus)
	}
	if err.Details["path"] != "duos/duo456/invites/ABC123" {
		t.Errorf("expected path detail, got %v", err.Details["path"])
	}
}

func TestTaxonomyStaysDistinguishable(t *testing.T) {
	// A denied operation, a missing document, and a malformed payload must
	// map to different codes and statuses.
	denied := PermissionDenied("not_owner", "")
	missing := NotFound("users/u1/duo/current")
	invalid := InvalidDocument("participants must be objects")

	codes := map[ErrorCode]bool{denied.Code: true, missing.Code: true, invalid.Code: true}
	if len(codes) != 3 {
		t.Fatalf("expected 3 distinct codes, got %v", codes)
	}
	statuses := map[int]bool{denied.HTTPStatus: true, missing.HTTPStatus: true, invalid.HTTPStatus: true}
	if len(statuses) != 3 {
		t.Fatalf("expected 3 distinct statuses, got %v", statuses)
	}
}

func TestInternalWrapsCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Internal(cause)
	if err.Cause != cause {
		t.Error("expected cause to be set")
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestStoreIsRetryable(t *testing.T) {
	err := Store(fmt.Errorf("locked"))
	if !err.Retryable {
		t.Error("store failures should be retryable")
	}
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", Unauthorized(""))
	if !IsCode(err, ErrCodeUnauthorized) {
		t.Error("expected IsCode to unwrap")
	}
	if IsCode(err, ErrCodeNotFound) {
		t.Error("unexpected code match")
	}
	if IsCode(fmt.Errorf("plain"), ErrCodeInternal) {
		t.Error("plain errors have no code")
	}
}

func TestToResponse(t *testing.T) {
	err := PermissionDenied("invite_code_mismatch", "wrong invite code")
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodePermissionDenied {
		t.Errorf("expected code preserved, got %s", resp.Error.Code)
	}
	if resp.Error.Message != "wrong invite code" {
		t.Errorf("expected message preserved, got %q", resp.Error.Message)
	}
	if resp.Error.Details["reason"] != "invite_code_mismatch" {
		t.Errorf("expected details preserved, got %v", resp.Error.Details)
	}
}

func TestWithDetail(t *testing.T) {
	err := Validation("bad filter").WithDetail("field", "isActive")
	if err.Details["field"] != "isActive" {
		t.Errorf("expected detail set, got %v", err.Details)
	}
}
