package admin

import (
	"context"
	"fmt"

	"github.com/girojogos/duoguard/gateway"
	"github.com/girojogos/duoguard/logger"
	"github.com/girojogos/duoguard/store"
)

// AssignSummary reports how many users an assignment touched.
type AssignSummary struct {
	Granted  int
	NotFound []string
}

// Assigner grants admin rights to users identified by email.
type Assigner struct {
	elevated *gateway.Elevated
	log      *logger.Logger
}

// NewAssigner creates an assigner writing as the given actor.
func NewAssigner(gw *gateway.Gateway, actor string, log *logger.Logger) *Assigner {
	return &Assigner{
		elevated: gw.Elevated(actor),
		log:      log.WithComponent("admin.assigner"),
	}
}

// AssignAdmins sets isAdmin on the user document of every email in the
// list. Tokens minted afterwards pick the flag up through the admin
// directory fallback; tokens carrying an explicit admin claim are
// unaffected until reissued.
func (a *Assigner) AssignAdmins(ctx context.Context, emails []string) (*AssignSummary, error) {
	summary := &AssignSummary{}
	for _, email := range emails {
		users, err := a.elevated.List(ctx, "users", []store.Filter{{Field: "email", Value: email}})
		if err != nil {
			return nil, fmt.Errorf("admin: find user %s: %w", email, err)
		}
		if len(users) == 0 {
			summary.NotFound = append(summary.NotFound, email)
			a.log.Warn("no user for email", logger.Fields(logger.FieldEmail, email))
			continue
		}

		for _, user := range users {
			data := user.Data
			data["isAdmin"] = true
			if _, err := a.elevated.Put(ctx, user.Path, data); err != nil {
				return nil, fmt.Errorf("admin: grant %s: %w", email, err)
			}
			summary.Granted++
			a.log.Info("admin granted", logger.Fields(
				logger.FieldEmail, email,
				logger.FieldPath, user.Path,
			))
		}
	}
	return summary, nil
}
