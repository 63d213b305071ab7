package gateway

import (
	"context"
	stderrors "errors"

	"github.com/girojogos/duoguard/errors"
	"github.com/girojogos/duoguard/logger"
	"github.com/girojogos/duoguard/store"
)

// Elevated is a privileged handle over the store that skips policy
// evaluation. Provisioning tools use it; the request path never does.
// Every call is recorded in the audit trail under the actor's name.
type Elevated struct {
	store *store.Store
	actor string
	log   *logger.Logger
}

// Elevated returns a privileged handle acting as the named actor.
func (g *Gateway) Elevated(actor string) *Elevated {
	return &Elevated{
		store: g.store,
		actor: actor,
		log:   g.log.WithComponent("gateway.elevated"),
	}
}

// Put writes a document unconditionally.
func (e *Elevated) Put(ctx context.Context, path string, data map[string]any) (*store.Document, error) {
	doc, err := e.store.Put(ctx, path, data)
	if err != nil {
		return nil, err
	}
	e.audit(ctx, "put", path)
	return doc, nil
}

// Get reads a document without policy checks.
func (e *Elevated) Get(ctx context.Context, path string) (*store.Document, error) {
	doc, err := e.store.Get(ctx, path)
	if stderrors.Is(err, store.ErrNotFound) {
		return nil, errors.NotFound(path)
	}
	if err != nil {
		return nil, err
	}
	e.audit(ctx, "get", path)
	return doc, nil
}

// Delete removes a document unconditionally.
func (e *Elevated) Delete(ctx context.Context, path string) error {
	if err := e.store.Delete(ctx, path); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return errors.NotFound(path)
		}
		return err
	}
	e.audit(ctx, "delete", path)
	return nil
}

// List returns every document of a collection matching the filters, without
// policy checks.
func (e *Elevated) List(ctx context.Context, collection string, filters []store.Filter) ([]*store.Document, error) {
	docs, err := e.store.List(ctx, collection, filters)
	if err != nil {
		return nil, err
	}
	e.audit(ctx, "list", collection)
	return docs, nil
}

func (e *Elevated) audit(ctx context.Context, op, path string) {
	if _, err := e.store.AppendAudit(ctx, e.actor, op, path); err != nil {
		// The operation already happened; a failed audit write is logged,
		// not surfaced.
		e.log.Error("audit append failed", logger.Fields(
			logger.FieldActor, e.actor,
			logger.FieldOperation, op,
			logger.FieldPath, path,
			logger.FieldError, err.Error(),
		))
	}
}
