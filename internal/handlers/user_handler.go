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

// UserHandler - структура для обработки HTTP-запросов к пользователям.
type UserHandler struct {
	Service *services.UserService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewUserHandler создаёт новый экземпляр UserHandler.
func NewUserHandler(service *services.UserService, logger *log.Logger, timeout time.Duration) *UserHandler {
	return &UserHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// RegisterUser обрабатывает запросы на регистрацию пользователя.
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var userReq models.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&userReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Service.RegisterUser(ctx, userReq)
	if err != nil {
		respondServiceError(w, h.Logger, err, "failed to register user")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, user)
}

// GetUserByPhone обрабатывает поиск пользователя по номеру телефона.
func (h *UserHandler) GetUserByPhone(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	phone := r.URL.Query().Get("phone")

	user, err := h.Service.GetUserByPhone(ctx, phone)
	if err != nil {
		respondServiceError(w, h.Logger, err, "failed to fetch user")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, user)
}

// DeductCredit обрабатывает списание кредита.
func (h *UserHandler) DeductCredit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	userId := r.PathValue("userId")

	user, err := h.Service.DeductCredit(ctx, userId)
	if err != nil {
		respondServiceError(w, h.Logger, err, "failed to deduct credit")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, user)
}

// AddCredits обрабатывает начисление кредитов.
func (h *UserHandler) AddCredits(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	userId := r.PathValue("userId")

	var body struct {
		Amount int `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Service.AddCredits(ctx, userId, body.Amount)
	if err != nil {
		respondServiceError(w, h.Logger, err, "failed to add credits")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, user)
}

// DeleteUser обрабатывает удаление учётной записи.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	userId := r.PathValue("userId")

	if err := h.Service.DeleteUser(ctx, userId); err != nil {
		respondServiceError(w, h.Logger, err, "failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
