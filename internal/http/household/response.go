package household

import (
	"time"

	"github.com/google/uuid"

	"github.com/nidofinanciero/nido/internal/household"
	"github.com/nidofinanciero/nido/internal/user"
)

type householdResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toHouseholdResponse(h *household.Household) householdResponse {
	return householdResponse{
		ID:        h.ID,
		Name:      h.Name,
		OwnerID:   h.OwnerID,
		CreatedAt: h.CreatedAt,
	}
}

type memberResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type membersResponse struct {
	Household householdResponse `json:"household"`
	Members   []memberResponse  `json:"members"`
}

func toMembersResponse(h *household.Household, members []*user.User) membersResponse {
	resp := membersResponse{
		Household: toHouseholdResponse(h),
		Members:   make([]memberResponse, len(members)),
	}

	for i, m := range members {
		resp.Members[i] = memberResponse{ID: m.ID, Username: m.Username}
	}

	return resp
}

type invitationResponse struct {
	Code            string                     `json:"code"`
	HouseholdID     uuid.UUID                  `json:"household_id"`
	InvitedUsername string                     `json:"invited_username"`
	Status          household.InvitationStatus `json:"status"`
	ExpiresAt       time.Time                  `json:"expires_at"`
}

func toInvitationResponse(inv *household.Invitation) invitationResponse {
	return invitationResponse{
		Code:            inv.Code,
		HouseholdID:     inv.HouseholdID,
		InvitedUsername: inv.InvitedUsername,
		Status:          inv.Status,
		ExpiresAt:       inv.ExpiresAt,
	}
}

type validationResponse struct {
	Valid         bool       `json:"valid"`
	HouseholdID   *uuid.UUID `json:"household_id,omitempty"`
	HouseholdName string     `json:"household_name,omitempty"`
	InviterID     *uuid.UUID `json:"inviter_id,omitempty"`
}

func toValidationResponse(v *household.Validation) validationResponse {
	if !v.Valid {
		return validationResponse{}
	}

	return validationResponse{
		Valid:         true,
		HouseholdID:   new(v.HouseholdID),
		HouseholdName: v.HouseholdName,
		InviterID:     new(v.InviterID),
	}
}
