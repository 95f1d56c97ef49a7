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

// ContactHandler - структура для обработки HTTP-запросов к адресной книге.
type ContactHandler struct {
	Service *services.ContactService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewContactHandler создаёт новый экземпляр ContactHandler.
func NewContactHandler(service *services.ContactService, logger *log.Logger, timeout time.Duration) *ContactHandler {
	return &ContactHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetContacts обрабатывает запросы для получения адресной книги.
func (h *ContactHandler) GetContacts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	ownerId := r.URL.Query().Get("userId")

	contacts, err := h.Service.FetchContacts(ctx, ownerId)
	if err != nil {
		respondServiceError(w, h.Logger, err, "failed to fetch contacts")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, contacts)
}

// CreateContact обрабатывает запросы для добавления контакта.
func (h *ContactHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	ownerId := r.URL.Query().Get("userId")

	var contactReq models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&contactReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contact, err := h.Service.CreateContact(ctx, ownerId, contactReq)
	if err != nil {
		respondServiceError(w, h.Logger, err, "failed to create contact")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, contact)
}

// ImportContacts обрабатывает пакетный импорт контактов.
func (h *ContactHandler) ImportContacts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	ownerId := r.URL.Query().Get("userId")

	var contactReqs []models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&contactReqs); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contacts, err := h.Service.ImportContacts(ctx, ownerId, contactReqs)
	if err != nil {
		respondServiceError(w, h.Logger, err, "failed to import contacts")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, contacts)
}

// UpdateContact обрабатывает изменение контакта.
func (h *ContactHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	ownerId := r.URL.Query().Get("userId")
	contactId := r.PathValue("contactId")

	var updateFields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updateFields); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contact, err := h.Service.UpdateContact(ctx, ownerId, contactId, updateFields)
	if err != nil {
		respondServiceError(w, h.Logger, err, "failed to update contact")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, contact)
}

// DeleteContact обрабатывает удаление контакта.
func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	ownerId := r.URL.Query().Get("userId")
	contactId := r.PathValue("contactId")

	if err := h.Service.DeleteContact(ctx, ownerId, contactId); err != nil {
		respondServiceError(w, h.Logger, err, "failed to delete contact")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetGroups обрабатывает запросы для получения групп контактов.
func (h *ContactHandler) GetGroups(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	ownerId := r.URL.Query().Get("userId")

	groups, err := h.Service.FetchGroups(ctx, ownerId)
	if err != nil {
		respondServiceError(w, h.Logger, err, "failed to fetch groups")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, groups)
}
