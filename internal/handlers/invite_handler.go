package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/senyabanana/shift-market/internal/models"
	"github.com/senyabanana/shift-market/internal/services"
	"github.com/senyabanana/shift-market/internal/utils"
)

// InviteHandler - структура для обработки решений по приглашениям.
type InviteHandler struct {
	Service *services.InviteService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewInviteHandler создаёт новый экземпляр InviteHandler.
func NewInviteHandler(service *services.InviteService, logger *log.Logger, timeout time.Duration) *InviteHandler {
	return &InviteHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// UpdateInviteStatus обрабатывает решение участника по приглашению.
func (h *InviteHandler) UpdateInviteStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	tenderId := r.PathValue("tenderId")
	userId := r.PathValue("userId")

	var body struct {
		Status models.InviteStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tender, err := h.Service.ApplyInviteDecision(ctx, tenderId, userId, body.Status)
	if err != nil {
		respondServiceError(w, h.Logger, err, "failed to update invite status")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, tender)
}
