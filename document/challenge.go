package document

import "time"

// Challenge is a content item describing a task. Visible to end users only
// while active.
type Challenge struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	MaxPoints   int    `json:"maxPoints"`
	IsActive    bool   `json:"isActive"`
}

// DecodeChallenge decodes raw challenge data.
func DecodeChallenge(data map[string]any) (*Challenge, error) {
	var c Challenge
	if err := decode(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Submission is a proof-of-completion artifact a duo posts against a
// challenge, stored at challenges/{challengeId}/submissions/{submissionId}.
// Submissions are immutable once created.
type Submission struct {
	DuoID          string    `json:"duoId" validate:"required"`
	DuoInviteCode  string    `json:"duoInviteCode" validate:"required"`
	MediaURL       string    `json:"mediaUrl"`
	MediaType      string    `json:"mediaType"`
	SubmissionTime time.Time `json:"submissionTime"`
}

// DecodeSubmission decodes and validates raw submission data.
func DecodeSubmission(data map[string]any) (*Submission, error) {
	var s Submission
	if err := decode(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
