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

// TenderHandler - структура для обработки HTTP-запросов к тендерам.
type TenderHandler struct {
	Service *services.TenderService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewTenderHandler создаёт новый экземпляр TenderHandler.
func NewTenderHandler(service *services.TenderService, logger *log.Logger, timeout time.Duration) *TenderHandler {
	return &TenderHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// respondServiceError логирует ошибку и отвечает её кодом либо запасным 500.
func respondServiceError(w http.ResponseWriter, logger *log.Logger, err error, fallback string) {
	logger.Println(err)
	if errorResponse, ok := err.(*models.ErrorResponse); ok {
		utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
		return
	}
	utils.SendErrorResponse(w, http.StatusInternalServerError, fallback)
}

// GetTenders обрабатывает запросы для получения списка тендеров.
func (h *TenderHandler) GetTenders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")
	statuses := r.URL.Query()["status"]

	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	tenders, err := h.Service.FetchTenders(ctx, limit, offset, statuses)
	if err != nil {
		respondServiceError(w, h.Logger, err, "failed to fetch tenders")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, tenders)
}

// CreateTender обрабатывает запросы для создания тендера.
func (h *TenderHandler) CreateTender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var tenderReq models.TenderRequest
	if err := json.NewDecoder(r.Body).Decode(&tenderReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tender, err := h.Service.CreateTender(ctx, tenderReq)
	if err != nil {
		respondServiceError(w, h.Logger, err, "failed to create tender")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, tender)
}

// GetTenderByID обрабатывает запросы для получения тендера с приглашениями.
func (h *TenderHandler) GetTenderByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	tenderId := r.PathValue("tenderId")

	tender, err := h.Service.GetTenderByID(ctx, tenderId)
	if err != nil {
		respondServiceError(w, h.Logger, err, "failed to fetch tender")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, tender)
}

// GetTenderStatus обрабатывает запросы для получения статуса тендера.
func (h *TenderHandler) GetTenderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	tenderId := r.PathValue("tenderId")

	status, err := h.Service.GetTenderStatus(ctx, tenderId)
	if err != nil {
		respondServiceError(w, h.Logger, err, "failed to fetch tender status")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, status)
}

// CloseTender обрабатывает запросы на закрытие тендера организатором.
func (h *TenderHandler) CloseTender(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	tenderId := r.PathValue("tenderId")
	userId := r.URL.Query().Get("userId")

	tender, err := h.Service.CloseTender(ctx, tenderId, userId)
	if err != nil {
		respondServiceError(w, h.Logger, err, "failed to close tender")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, tender)
}

// GetOrganizerTenders обрабатывает запросы для получения тендеров организатора.
func (h *TenderHandler) GetOrganizerTenders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	userId := r.URL.Query().Get("userId")

	tenders, err := h.Service.OrganizerTendersView(ctx, userId)
	if err != nil {
		respondServiceError(w, h.Logger, err, "failed to fetch tenders")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, tenders)
}

// GetParticipantFeed обрабатывает запросы для получения ленты участника.
func (h *TenderHandler) GetParticipantFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	userId := r.URL.Query().Get("userId")

	feed, err := h.Service.ParticipantFeedView(ctx, userId, time.Now().UTC())
	if err != nil {
		respondServiceError(w, h.Logger, err, "failed to fetch participant feed")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, feed)
}
