package document

import "time"

// DuoSubmissionsIndex is the duo-level aggregate at
// duo_submissions_index/{duoId}. Maintained by trusted server logic only;
// end users never write it.
type DuoSubmissionsIndex struct {
	TotalSubmissions int       `json:"totalSubmissions"`
	LastActivity     time.Time `json:"lastActivity"`
}

// ChallengeSubmissionsIndex is the per-challenge entry at
// duo_submissions_index/{duoId}/challenges/{challengeId}.
type ChallengeSubmissionsIndex struct {
	SubmissionCount int       `json:"submissionCount"`
	LastSubmission  time.Time `json:"lastSubmission"`
}

// AdminUser is the per-user record at users/{uid} that backs the admin
// fallback lookup when a token carries no admin claim.
type AdminUser struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Name    string `json:"name"`
}

// DecodeAdminUser decodes raw admin user data.
func DecodeAdminUser(data map[string]any) (*AdminUser, error) {
	var a AdminUser
	if err := decode(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
