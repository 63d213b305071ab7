package policy

import "strings"

// Pattern identifies one of the fixed resource patterns the policy covers.
type Pattern string

const (
	PatternUserDuoPointer       Pattern = "user_duo_pointer"
	PatternDuo                  Pattern = "duo_invite"
	PatternChallenge            Pattern = "challenge"
	PatternChallengeCollection  Pattern = "challenge_collection"
	PatternSubmission           Pattern = "submission"
	PatternSubmissionCollection Pattern = "submission_collection"
	PatternDuoIndex             Pattern = "duo_index"
	PatternDuoIndexChallenge    Pattern = "duo_index_challenge"
)

// Ref is a matched document or collection path with its captured parameters.
type Ref struct {
	Pattern      Pattern
	Path         string
	UserID       string
	DuoID        string
	InviteCode   string
	ChallengeID  string
	SubmissionID string
}

// Match maps a slash-separated document path onto a resource pattern.
// Deterministic, stateless, and total over the declared patterns; any path
// it does not recognize is reported as unmatched and must deny.
func Match(path string) (Ref, bool) {
	path = strings.Trim(path, "/")
	if path == "" {
		return Ref{}, false
	}
	return MatchSegments(strings.Split(path, "/"))
}

// MatchSegments is Match over pre-split path segments.
func MatchSegments(segs []string) (Ref, bool) {
	for _, s := range segs {
		if s == "" {
			return Ref{}, false
		}
	}
	ref := Ref{Path: strings.Join(segs, "/")}

	switch segs[0] {
	case "users":
		// users/{uid}/duo/current
		if len(segs) == 4 && segs[2] == "duo" && segs[3] == "current" {
			ref.Pattern = PatternUserDuoPointer
			ref.UserID = segs[1]
			return ref, true
		}
	case "duos":
		// duos/{duoId}/invites/{inviteCode}
		if len(segs) == 4 && segs[2] == "invites" {
			ref.Pattern = PatternDuo
			ref.DuoID = segs[1]
			ref.InviteCode = segs[3]
			return ref, true
		}
	case "challenges":
		switch len(segs) {
		case 1:
			ref.Pattern = PatternChallengeCollection
			return ref, true
		case 2:
			ref.Pattern = PatternChallenge
			ref.ChallengeID = segs[1]
			return ref, true
		case 3:
			if segs[2] == "submissions" {
				ref.Pattern = PatternSubmissionCollection
				ref.ChallengeID = segs[1]
				return ref, true
			}
		case 4:
			if segs[2] == "submissions" {
				ref.Pattern = PatternSubmission
				ref.ChallengeID = segs[1]
				ref.SubmissionID = segs[3]
				return ref, true
			}
		}
	case "duo_submissions_index":
		switch len(segs) {
		case 2:
			ref.Pattern = PatternDuoIndex
			ref.DuoID = segs[1]
			return ref, true
		case 4:
			if segs[2] == "challenges" {
				ref.Pattern = PatternDuoIndexChallenge
				ref.DuoID = segs[1]
				ref.ChallengeID = segs[3]
				return ref, true
			}
		}
	}
	return Ref{}, false
}

// IsCollection reports whether the pattern names a collection rather than a
// single document.
func (p Pattern) IsCollection() bool {
	return p == PatternChallengeCollection || p == PatternSubmissionCollection
}
