package gateway

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/girojogos/duoguard/errors"
	"github.com/girojogos/duoguard/identity"
	"github.com/girojogos/duoguard/logger"
	"github.com/girojogos/duoguard/observability"
	"github.com/girojogos/duoguard/policy"
	"github.com/girojogos/duoguard/store"
)

// Gateway mediates document operations through the authorization policy.
type Gateway struct {
	store   *store.Store
	eval    *policy.Evaluator
	log     *logger.Logger
	metrics *observability.DecisionMetrics
}

// New creates a gateway over the given store. metrics may be nil.
func New(s *store.Store, log *logger.Logger, metrics *observability.DecisionMetrics) *Gateway {
	return &Gateway{
		store:   s,
		eval:    policy.NewEvaluator(s),
		log:     log.WithComponent("gateway"),
		metrics: metrics,
	}
}

// Create writes a new document at path. Fails if a document already exists
// there.
func (g *Gateway) Create(ctx context.Context, path string, data map[string]any) (*store.Document, error) {
	ref, err := g.match(path)
	if err != nil {
		return nil, err
	}
	if err := g.decide(ctx, policy.Request{
		Op:       policy.OpCreate,
		Ref:      ref,
		Identity: identity.FromContext(ctx),
		Incoming: data,
	}); err != nil {
		return nil, err
	}
	// Existence is only revealed to callers the policy already admitted.
	existing, err := g.fetchExisting(ctx, path)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.AlreadyExists(path)
	}
	return g.put(ctx, path, data)
}

// Read returns the document at path.
func (g *Gateway) Read(ctx context.Context, path string) (*store.Document, error) {
	ref, err := g.match(path)
	if err != nil {
		return nil, err
	}
	existing, err := g.fetchExisting(ctx, path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if existing != nil {
		data = existing.Data
	}
	if err := g.decide(ctx, policy.Request{
		Op:       policy.OpRead,
		Ref:      ref,
		Identity: identity.FromContext(ctx),
		Existing: data,
	}); err != nil {
		return nil, err
	}
	if existing == nil {
		// Rules that never consult the existing document (index reads) can
		// allow a read of a path that holds nothing.
		return nil, errors.NotFound(path)
	}
	return existing, nil
}

// Update replaces the document at path.
func (g *Gateway) Update(ctx context.Context, path string, data map[string]any) (*store.Document, error) {
	ref, err := g.match(path)
	if err != nil {
		return nil, err
	}
	existing, err := g.fetchExisting(ctx, path)
	if err != nil {
		return nil, err
	}
	var existingData map[string]any
	if existing != nil {
		existingData = existing.Data
	}
	if err := g.decide(ctx, policy.Request{
		Op:       policy.OpUpdate,
		Ref:      ref,
		Identity: identity.FromContext(ctx),
		Existing: existingData,
		Incoming: data,
	}); err != nil {
		return nil, err
	}
	return g.put(ctx, path, data)
}

// Delete removes the document at path.
func (g *Gateway) Delete(ctx context.Context, path string) error {
	ref, err := g.match(path)
	if err != nil {
		return err
	}
	existing, err := g.fetchExisting(ctx, path)
	if err != nil {
		return err
	}
	var existingData map[string]any
	if existing != nil {
		existingData = existing.Data
	}
	if err := g.decide(ctx, policy.Request{
		Op:       policy.OpDelete,
		Ref:      ref,
		Identity: identity.FromContext(ctx),
		Existing: existingData,
	}); err != nil {
		return err
	}
	ctx, span := observability.StartSpan(ctx, "store.Delete")
	defer span.End()
	if err := g.store.Delete(ctx, path); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return errors.NotFound(path)
		}
		return err
	}
	return nil
}

// List returns the documents of a collection matching the given equality
// filters.
func (g *Gateway) List(ctx context.Context, path string, filters []policy.Filter) ([]*store.Document, error) {
	ref, err := g.match(path)
	if err != nil {
		return nil, err
	}
	if err := g.decide(ctx, policy.Request{
		Op:       policy.OpList,
		Ref:      ref,
		Identity: identity.FromContext(ctx),
		Filters:  filters,
	}); err != nil {
		return nil, err
	}
	storeFilters := make([]store.Filter, 0, len(filters))
	for _, f := range filters {
		storeFilters = append(storeFilters, store.Filter{Field: f.Field, Value: f.Value})
	}
	ctx, span := observability.StartSpan(ctx, "store.List")
	defer span.End()
	return g.store.List(ctx, ref.Path, storeFilters)
}

func (g *Gateway) put(ctx context.Context, path string, data map[string]any) (*store.Document, error) {
	ctx, span := observability.StartSpan(ctx, "store.Put")
	defer span.End()
	return g.store.Put(ctx, path, data)
}

// match resolves a path to its resource pattern. Unmatched paths deny.
func (g *Gateway) match(path string) (policy.Ref, error) {
	ref, ok := policy.Match(path)
	if !ok {
		g.log.Info("denied", logger.Fields(
			logger.FieldPath, path,
			logger.FieldDecision, "deny",
			logger.FieldReason, string(policy.ReasonNoRule),
		))
		return policy.Ref{}, errors.PermissionDenied(string(policy.ReasonNoRule), "No rule covers this path.")
	}
	return ref, nil
}

func (g *Gateway) fetchExisting(ctx context.Context, path string) (*store.Document, error) {
	doc, err := g.store.Get(ctx, path)
	if stderrors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// decide runs the evaluator and maps its decision onto the error taxonomy:
// a missing required document surfaces as NotFound, a malformed payload as
// InvalidDocument, anything else denied as PermissionDenied.
func (g *Gateway) decide(ctx context.Context, req policy.Request) error {
	ctx, span := observability.StartSpan(ctx, "policy.Evaluate")
	start := time.Now()
	dec, err := g.eval.Evaluate(ctx, req)
	elapsed := time.Since(start)
	span.End()
	if err != nil {
		return errors.Internal(err)
	}

	g.metrics.Record(ctx, string(req.Ref.Pattern), string(req.Op), dec.Effect(), string(dec.Reason), elapsed)

	if dec.Allowed {
		return nil
	}

	g.log.Info("denied", logger.Fields(
		logger.FieldUserID, req.Identity.UID,
		logger.FieldOperation, string(req.Op),
		logger.FieldPath, req.Ref.Path,
		logger.FieldPattern, string(req.Ref.Pattern),
		logger.FieldReason, string(dec.Reason),
	))

	switch dec.Reason {
	case policy.ReasonNotFound:
		return errors.NotFound(req.Ref.Path)
	case policy.ReasonInvalidDocument:
		return errors.InvalidDocument("")
	case policy.ReasonUnauthenticated:
		return errors.Unauthorized("")
	default:
		return errors.PermissionDenied(string(dec.Reason), "")
	}
}
