package household

import (
	"crypto/rand"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("household not found")
	ErrInvalidName        = errors.New("household name cannot be empty")
	ErrInvalidUsername    = errors.New("invited username cannot be empty")
	ErrNotMember          = errors.New("user does not belong to a household")
	ErrAlreadyMember      = errors.New("user already belongs to a household")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationResolved = errors.New("invitation already resolved")
	ErrInvitationExpired  = errors.New("invitation expired")
)

type Household struct {
	ID        uuid.UUID
	Name      string
	OwnerID   uuid.UUID
	CreatedAt time.Time
}

type InvitationStatus string

const (
	StatusPending  InvitationStatus = "pending"
	StatusAccepted InvitationStatus = "accepted"
	StatusRejected InvitationStatus = "rejected"
)

// Invitation is a single-use, time-limited code granting household membership.
// Expiry is derived at read time from ExpiresAt; a stored status of pending
// with ExpiresAt in the past means expired. There is no background sweep, so
// an invitation nobody revisits simply stays pending in storage.
type Invitation struct {
	ID              uuid.UUID
	Code            string
	HouseholdID     uuid.UUID
	InvitedByUserID uuid.UUID
	InvitedUsername string
	InvitedUserID   *uuid.UUID
	Status          InvitationStatus
	CreatedAt       time.Time
	ExpiresAt       time.Time
}

func (i *Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// Codes are short enough to read over the phone; the alphabet drops the
// lookalikes 0/O and 1/I.
const codeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

func newCode() string {
	buf := make([]byte, 8)
	rand.Read(buf)

	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}

	return string(buf)
}
