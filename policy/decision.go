package policy

// Operation is a document operation the policy evaluates.
type Operation string

const (
	OpCreate Operation = "create"
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpList   Operation = "list"
)

// Reason is the machine-readable ground for a decision.
type Reason string

const (
	// ReasonAllowed accompanies every allow.
	ReasonAllowed Reason = "allowed"

	// ReasonUnauthenticated denies requests with no resolved identity.
	ReasonUnauthenticated Reason = "unauthenticated"
	// ReasonNoRule denies path/operation combinations no rule covers.
	ReasonNoRule Reason = "no_rule"
	// ReasonNotOwner denies access to another user's pointer document.
	ReasonNotOwner Reason = "not_owner"
	// ReasonNotParticipant denies callers outside the referenced duo.
	ReasonNotParticipant Reason = "not_participant"
	// ReasonInviteCodeMismatch denies duo reads through the wrong invite code.
	ReasonInviteCodeMismatch Reason = "invite_code_mismatch"
	// ReasonParticipantLimit denies writes that would leave a duo with more
	// than two participants.
	ReasonParticipantLimit Reason = "participant_limit"
	// ReasonCreatorNotSole denies duo creates whose participant list is not
	// exactly the creating identity.
	ReasonCreatorNotSole Reason = "creator_not_sole_participant"
	// ReasonChallengeInactive denies non-admin reads of inactive challenges.
	ReasonChallengeInactive Reason = "challenge_inactive"
	// ReasonUnfilteredList denies collection scans without an
	// isActive == true equality filter.
	ReasonUnfilteredList Reason = "unfiltered_list"
	// ReasonReadOnly denies end-user writes to server-maintained documents.
	ReasonReadOnly Reason = "read_only"
	// ReasonImmutable denies updates and deletes of submissions.
	ReasonImmutable Reason = "immutable"
	// ReasonNotFound denies operations whose required existing document is
	// absent.
	ReasonNotFound Reason = "not_found"
	// ReasonInvalidDocument denies operations whose payload the policy
	// cannot interpret.
	ReasonInvalidDocument Reason = "invalid_document"
)

// Decision is the evaluator's only outcome type: a binary effect plus the
// reason, for observability. Never an exception.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Allow returns an allowing decision.
func Allow() Decision {
	return Decision{Allowed: true, Reason: ReasonAllowed}
}

// Deny returns a denying decision with the given reason.
func Deny(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Effect returns "allow" or "deny", for logs and metrics.
func (d Decision) Effect() string {
	if d.Allowed {
		return "allow"
	}
	return "deny"
}

// Filter is an equality constraint on a list operation.
type Filter struct {
	Field string
	Value any
}
