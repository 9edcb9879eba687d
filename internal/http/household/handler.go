package household

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nidofinanciero/nido/internal/household"
	"github.com/nidofinanciero/nido/internal/http/auth"
	"github.com/nidofinanciero/nido/internal/user"
)

type Handler struct {
	svc *household.Service
}

func NewHandler(svc *household.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/members", h.members)
	r.Post("/leave", h.leave)
	r.Post("/invitations", h.invite)
	r.Post("/invitations/validate", h.validate)
	r.Post("/invitations/{code}/accept", h.accept)
	r.Post("/invitations/{code}/reject", h.reject)
}

type createHouseholdRequest struct {
	Name string `json:"name"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req createHouseholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	hh, err := h.svc.Create(r.Context(), req.Name, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toHouseholdResponse(hh))
}

func (h *Handler) members(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	hh, members, err := h.svc.Members(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMembersResponse(hh, members))
}

func (h *Handler) leave(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	if err := h.svc.Leave(r.Context(), userID); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type inviteRequest struct {
	Username string `json:"username"`
}

func (h *Handler) invite(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Invite(r.Context(), userID, req.Username)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toInvitationResponse(inv))
}

type validateRequest struct {
	Code string `json:"code"`
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	v, err := h.svc.Validate(r.Context(), req.Code)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toValidationResponse(v))
}

func (h *Handler) accept(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	inv, err := h.svc.Accept(r.Context(), chi.URLParam(r, "code"), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toInvitationResponse(inv))
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reject(r.Context(), chi.URLParam(r, "code")); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeError maps the household error taxonomy: bad input 400, unknown
// entities 404, lifecycle conflicts 409.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, household.ErrInvalidName), errors.Is(err, household.ErrInvalidUsername):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, household.ErrNotFound),
		errors.Is(err, household.ErrInvitationNotFound),
		errors.Is(err, user.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, household.ErrNotMember),
		errors.Is(err, household.ErrAlreadyMember),
		errors.Is(err, household.ErrInvitationResolved),
		errors.Is(err, household.ErrInvitationExpired):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
