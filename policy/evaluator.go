package policy

import (
	"context"
	"fmt"

	"github.com/girojogos/duoguard/document"
	"github.com/girojogos/duoguard/identity"
)

// StateReader is a read-only snapshot of the document store, used for the
// cross-document lookups some rules need (duo membership for submissions,
// pointer lookups for index reads). Reading through it has no side effects,
// which keeps the evaluator pure.
type StateReader interface {
	// GetDocument returns the raw data at path, and whether it exists.
	GetDocument(ctx context.Context, path string) (map[string]any, bool, error)
}

// Request is one document operation to evaluate.
type Request struct {
	Op       Operation
	Ref      Ref
	Identity identity.Identity
	// Existing is the document state the write would observe at commit
	// time; nil when the document does not exist.
	Existing map[string]any
	// Incoming is the payload of a create or update; nil otherwise.
	Incoming map[string]any
	// Filters are the equality constraints of a list operation.
	Filters []Filter
}

// Evaluator decides, per resource pattern and operation, whether a request
// is permitted. Stateless and safe for concurrent use.
type Evaluator struct {
	state StateReader
}

// NewEvaluator creates an evaluator over the given state snapshot reader.
func NewEvaluator(state StateReader) *Evaluator {
	return &Evaluator{state: state}
}

// Evaluate returns the decision for req. The error return is reserved for
// state-reader infrastructure failures; every policy outcome, including
// missing documents and malformed payloads, is expressed as a Decision.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) (Decision, error) {
	if !req.Identity.Authenticated {
		return Deny(ReasonUnauthenticated), nil
	}

	switch req.Ref.Pattern {
	case PatternUserDuoPointer:
		return evalUserDuoPointer(req), nil
	case PatternDuo:
		return evalDuo(req), nil
	case PatternChallenge:
		return evalChallenge(req), nil
	case PatternChallengeCollection:
		return evalChallengeCollection(req), nil
	case PatternSubmission:
		return e.evalSubmission(ctx, req)
	case PatternSubmissionCollection:
		return e.evalSubmissionCollection(ctx, req)
	case PatternDuoIndex, PatternDuoIndexChallenge:
		return e.evalIndex(ctx, req)
	}
	return Deny(ReasonNoRule), nil
}

// evalUserDuoPointer: the pointer is visible and writable only to the user
// it belongs to. No list operation is defined over it.
func evalUserDuoPointer(req Request) Decision {
	if req.Op == OpList {
		return Deny(ReasonNoRule)
	}
	if req.Ref.UserID != req.Identity.UID {
		return Deny(ReasonNotOwner)
	}
	// Read and update need the pointer to exist; create is the only
	// operation defined over an absent one.
	if (req.Op == OpRead || req.Op == OpUpdate) && req.Existing == nil {
		return Deny(ReasonNotFound)
	}
	return Allow()
}

func evalDuo(req Request) Decision {
	switch req.Op {
	case OpCreate:
		duo, err := document.DecodeDuo(req.Incoming)
		if err != nil {
			return Deny(ReasonInvalidDocument)
		}
		// The sole initial participant must be the creating identity.
		if len(duo.Participants) != 1 || duo.Participants[0].ID != req.Identity.UID {
			return Deny(ReasonCreatorNotSole)
		}
		return Allow()

	case OpRead:
		duo, dec := decodeExistingDuo(req)
		if !dec.Allowed {
			return dec
		}
		if !duo.HasParticipant(req.Identity.UID) {
			return Deny(ReasonNotParticipant)
		}
		if req.Ref.InviteCode != duo.InviteCode {
			return Deny(ReasonInviteCodeMismatch)
		}
		return Allow()

	case OpUpdate:
		duo, dec := decodeExistingDuo(req)
		if !dec.Allowed {
			return dec
		}
		if !duo.HasParticipant(req.Identity.UID) {
			return Deny(ReasonNotParticipant)
		}
		// The participant invariant is checked on the post-write state,
		// not the delta. Size is checked on the raw array first so an
		// oversized list reports the limit, not a shape error.
		if raw, ok := document.Field(req.Incoming, "participants"); ok {
			if list, ok := raw.([]any); ok && len(list) > 2 {
				return Deny(ReasonParticipantLimit)
			}
		}
		if _, err := document.DecodeDuo(req.Incoming); err != nil {
			return Deny(ReasonInvalidDocument)
		}
		return Allow()

	case OpDelete:
		duo, dec := decodeExistingDuo(req)
		if !dec.Allowed {
			return dec
		}
		if !duo.HasParticipant(req.Identity.UID) {
			return Deny(ReasonNotParticipant)
		}
		return Allow()
	}
	return Deny(ReasonNoRule)
}

func decodeExistingDuo(req Request) (*document.Duo, Decision) {
	if req.Existing == nil {
		return nil, Deny(ReasonNotFound)
	}
	duo, err := document.DecodeDuo(req.Existing)
	if err != nil {
		return nil, Deny(ReasonInvalidDocument)
	}
	return duo, Allow()
}

// evalChallenge: single-document reads only; challenges are written solely
// through the provisioning path.
func evalChallenge(req Request) Decision {
	if req.Op != OpRead {
		return Deny(ReasonReadOnly)
	}
	if req.Existing == nil {
		return Deny(ReasonNotFound)
	}
	if req.Identity.Admin {
		return Allow()
	}
	ch, err := document.DecodeChallenge(req.Existing)
	if err != nil {
		return Deny(ReasonInvalidDocument)
	}
	if !ch.IsActive {
		return Deny(ReasonChallengeInactive)
	}
	return Allow()
}

// evalChallengeCollection: an unconstrained scan cannot be filtered
// per-document at this layer, so only queries pinned to isActive == true
// are allowed. Deliberate constraint, not a gap.
func evalChallengeCollection(req Request) Decision {
	if req.Op != OpList {
		return Deny(ReasonNoRule)
	}
	// The scan constraint binds non-admin callers; admins already read
	// inactive challenges one by one.
	if req.Identity.Admin {
		return Allow()
	}
	for _, f := range req.Filters {
		if f.Field == "isActive" && f.Value == true {
			return Allow()
		}
	}
	return Deny(ReasonUnfilteredList)
}

func (e *Evaluator) evalSubmission(ctx context.Context, req Request) (Decision, error) {
	switch req.Op {
	case OpCreate:
		sub, err := document.DecodeSubmission(req.Incoming)
		if err != nil {
			return Deny(ReasonInvalidDocument), nil
		}
		return e.checkDuoMembership(ctx, req.Identity.UID, sub.DuoID, sub.DuoInviteCode)

	case OpRead:
		if req.Existing == nil {
			return Deny(ReasonNotFound), nil
		}
		sub, err := document.DecodeSubmission(req.Existing)
		if err != nil {
			return Deny(ReasonInvalidDocument), nil
		}
		return e.checkDuoMembership(ctx, req.Identity.UID, sub.DuoID, sub.DuoInviteCode)

	case OpUpdate, OpDelete:
		return Deny(ReasonImmutable), nil
	}
	return Deny(ReasonNoRule), nil
}

// evalSubmissionCollection: listing is allowed for callers who belong to a
// duo, proven by their own pointer document.
func (e *Evaluator) evalSubmissionCollection(ctx context.Context, req Request) (Decision, error) {
	if req.Op != OpList {
		return Deny(ReasonNoRule), nil
	}
	_, ok, err := e.state.GetDocument(ctx, pointerPath(req.Identity.UID))
	if err != nil {
		return Decision{}, fmt.Errorf("policy: pointer lookup: %w", err)
	}
	if !ok {
		return Deny(ReasonNotParticipant), nil
	}
	return Allow(), nil
}

// evalIndex: index documents are written only by trusted server logic.
// Reads require duo membership, proven by the caller's pointer, or admin.
func (e *Evaluator) evalIndex(ctx context.Context, req Request) (Decision, error) {
	if req.Op != OpRead {
		return Deny(ReasonReadOnly), nil
	}
	if req.Identity.Admin {
		return Allow(), nil
	}
	data, ok, err := e.state.GetDocument(ctx, pointerPath(req.Identity.UID))
	if err != nil {
		return Decision{}, fmt.Errorf("policy: pointer lookup: %w", err)
	}
	if !ok {
		return Deny(ReasonNotParticipant), nil
	}
	ptr, err := document.DecodeUserDuoPointer(data)
	if err != nil {
		return Deny(ReasonInvalidDocument), nil
	}
	if ptr.DuoID != req.Ref.DuoID {
		return Deny(ReasonNotParticipant), nil
	}
	return Allow(), nil
}

// checkDuoMembership resolves the duo named by a submission payload and
// verifies the caller is a recorded participant.
func (e *Evaluator) checkDuoMembership(ctx context.Context, uid, duoID, inviteCode string) (Decision, error) {
	data, ok, err := e.state.GetDocument(ctx, duoPath(duoID, inviteCode))
	if err != nil {
		return Decision{}, fmt.Errorf("policy: duo lookup: %w", err)
	}
	if !ok {
		return Deny(ReasonNotParticipant), nil
	}
	duo, err := document.DecodeDuo(data)
	if err != nil {
		return Deny(ReasonInvalidDocument), nil
	}
	if !duo.HasParticipant(uid) {
		return Deny(ReasonNotParticipant), nil
	}
	return Allow(), nil
}

func pointerPath(uid string) string {
	return "users/" + uid + "/duo/current"
}

func duoPath(duoID, inviteCode string) string {
	return "duos/" + duoID + "/invites/" + inviteCode
}
