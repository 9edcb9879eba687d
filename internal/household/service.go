package household

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nidofinanciero/nido/internal/user"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=household
type Repository interface {
	// CreateHousehold inserts the household and enrolls the owner in the same
	// database transaction. Fails with ErrAlreadyMember when the owner is in a
	// household.
	CreateHousehold(ctx context.Context, h *Household) error
	GetHousehold(ctx context.Context, id uuid.UUID) (*Household, error)
	ListMembers(ctx context.Context, householdID uuid.UUID) ([]*user.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*user.User, error)

	CreateInvitation(ctx context.Context, inv *Invitation) error
	GetInvitationByCode(ctx context.Context, code string) (*Invitation, error)
	// AcceptInvitation flips the invitation and sets the user's household as
	// one transaction; exactly one concurrent accept can win.
	AcceptInvitation(ctx context.Context, code string, userID uuid.UUID, now time.Time) (*Invitation, error)
	RejectInvitation(ctx context.Context, code string, now time.Time) error
	ClearMembership(ctx context.Context, userID uuid.UUID) error
}

type Service struct {
	repo          Repository
	invitationTTL time.Duration
}

func NewService(repo Repository, invitationTTL time.Duration) *Service {
	return &Service{repo: repo, invitationTTL: invitationTTL}
}

func (s *Service) Create(ctx context.Context, name string, ownerID uuid.UUID) (*Household, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}

	h := &Household{
		Name:    strings.TrimSpace(name),
		OwnerID: ownerID,
	}

	if err := s.repo.CreateHousehold(ctx, h); err != nil {
		return nil, err
	}

	return h, nil
}

// Invite generates a pending invitation code for the inviter's household.
// Only current members can invite.
func (s *Service) Invite(ctx context.Context, inviterID uuid.UUID, invitedUsername string) (*Invitation, error) {
	if strings.TrimSpace(invitedUsername) == "" {
		return nil, ErrInvalidUsername
	}

	inviter, err := s.repo.GetUser(ctx, inviterID)
	if err != nil {
		return nil, err
	}

	if inviter.HouseholdID == nil {
		return nil, ErrNotMember
	}

	now := time.Now()

	inv := &Invitation{
		Code:            newCode(),
		HouseholdID:     *inviter.HouseholdID,
		InvitedByUserID: inviterID,
		InvitedUsername: strings.TrimSpace(invitedUsername),
		Status:          StatusPending,
		ExpiresAt:       now.Add(s.invitationTTL),
	}

	if err := s.repo.CreateInvitation(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

// Validation is the answer to a code lookup. Invalid covers unknown, resolved
// and expired codes alike; no state changes on validate.
type Validation struct {
	Valid         bool
	HouseholdID   uuid.UUID
	HouseholdName string
	InviterID     uuid.UUID
}

func (s *Service) Validate(ctx context.Context, code string) (*Validation, error) {
	inv, err := s.repo.GetInvitationByCode(ctx, code)
	if err != nil {
		if err == ErrInvitationNotFound {
			return &Validation{}, nil
		}

		return nil, err
	}

	if inv.Status != StatusPending || inv.Expired(time.Now()) {
		return &Validation{}, nil
	}

	h, err := s.repo.GetHousehold(ctx, inv.HouseholdID)
	if err != nil {
		return nil, err
	}

	return &Validation{
		Valid:         true,
		HouseholdID:   h.ID,
		HouseholdName: h.Name,
		InviterID:     inv.InvitedByUserID,
	}, nil
}

// Accept consumes a pending, unexpired invitation: the invitation flips to
// accepted and the accepting user joins the household, all-or-nothing. A user
// already in a household gets ErrAlreadyMember rather than a silent move.
func (s *Service) Accept(ctx context.Context, code string, userID uuid.UUID) (*Invitation, error) {
	return s.repo.AcceptInvitation(ctx, code, userID, time.Now())
}

func (s *Service) Reject(ctx context.Context, code string) error {
	return s.repo.RejectInvitation(ctx, code, time.Now())
}

// Leave clears the user's membership. The household itself survives,
// ownership is not reassigned and past balance transfers stay untouched.
func (s *Service) Leave(ctx context.Context, userID uuid.UUID) error {
	return s.repo.ClearMembership(ctx, userID)
}

func (s *Service) Members(ctx context.Context, userID uuid.UUID) (*Household, []*user.User, error) {
	u, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if u.HouseholdID == nil {
		return nil, nil, ErrNotMember
	}

	h, err := s.repo.GetHousehold(ctx, *u.HouseholdID)
	if err != nil {
		return nil, nil, err
	}

	members, err := s.repo.ListMembers(ctx, h.ID)
	if err != nil {
		return nil, nil, err
	}

	return h, members, nil
}
