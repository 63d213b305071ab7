package document

import (
	"fmt"
	"time"
)

// Participant is one member of a duo. The {id, name} object form is
// canonical; plain uid strings are rejected at decode time.
type Participant struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name"`
}

// Duo is a pairing of one or two users sharing progress, stored at
// duos/{duoId}/invites/{inviteCode}.
type Duo struct {
	Name         string        `json:"name"`
	InviteCode   string        `json:"inviteCode"`
	Participants []Participant `json:"participants" validate:"required,min=1,max=2,dive"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// DecodeDuo decodes and validates raw duo data. Beyond struct validation it
// enforces participant id uniqueness, which tags cannot express across
// nested struct fields.
func DecodeDuo(data map[string]any) (*Duo, error) {
	var d Duo
	if err := decode(data, &d); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(d.Participants))
	for _, p := range d.Participants {
		if seen[p.ID] {
			return nil, fmt.Errorf("document: duplicate participant id %q", p.ID)
		}
		seen[p.ID] = true
	}
	return &d, nil
}

// HasParticipant reports whether uid is a current participant.
func (d *Duo) HasParticipant(uid string) bool {
	for _, p := range d.Participants {
		if p.ID == uid {
			return true
		}
	}
	return false
}

// UserDuoPointer is the per-user back-reference to the user's active duo,
// stored at users/{uid}/duo/current. Owned exclusively by that user.
type UserDuoPointer struct {
	DuoID      string    `json:"duoId" validate:"required"`
	InviteCode string    `json:"inviteCode" validate:"required"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// DecodeUserDuoPointer decodes and validates raw pointer data.
func DecodeUserDuoPointer(data map[string]any) (*UserDuoPointer, error) {
	var p UserDuoPointer
	if err := decode(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
