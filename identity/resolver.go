package identity

import (
	"context"
	"strings"

	"github.com/girojogos/duoguard/logger"
)

// AdminDirectory answers whether a uid has an AdminUser record. Implemented
// by the document store; used only when the token has no admin claim.
type AdminDirectory interface {
	IsAdmin(ctx context.Context, uid string) (bool, error)
}

// Resolver extracts the caller's identity from an Authorization header.
type Resolver struct {
	svc    *Service
	admins AdminDirectory
	log    *logger.Logger
}

// NewResolver creates a resolver. admins may be nil, in which case a token
// without an admin claim resolves to a non-admin identity.
func NewResolver(svc *Service, admins AdminDirectory, log *logger.Logger) *Resolver {
	return &Resolver{svc: svc, admins: admins, log: log.WithComponent("identity")}
}

// Resolve turns an Authorization header value into an Identity. Absent,
// malformed, or expired credentials resolve to Anonymous — the policy layer
// denies with its own reason code.
func (r *Resolver) Resolve(ctx context.Context, authHeader string) Identity {
	if authHeader == "" {
		return Anonymous()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		r.log.Debug("malformed authorization header")
		return Anonymous()
	}

	claims, err := r.svc.Parse(parts[1])
	if err != nil {
		r.log.Debug("token rejected", logger.Fields(logger.FieldError, err.Error()))
		return Anonymous()
	}
	if claims.Subject == "" {
		return Anonymous()
	}

	id := Identity{UID: claims.Subject, Authenticated: true}
	switch {
	case claims.Admin != nil:
		// The claim is the snapshot the caller presented; it wins over the
		// AdminUser document even when the two disagree.
		id.Admin = *claims.Admin
	case r.admins != nil:
		isAdmin, err := r.admins.IsAdmin(ctx, claims.Subject)
		if err != nil {
			r.log.Warn("admin directory lookup failed",
				logger.Fields(logger.FieldUserID, claims.Subject, logger.FieldError, err.Error()))
		} else {
			id.Admin = isAdmin
		}
	}
	return id
}
