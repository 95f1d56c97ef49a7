package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/senyabanana/shift-market/internal/models"
	"github.com/senyabanana/shift-market/internal/repository"
	"github.com/senyabanana/shift-market/internal/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ContactService struct {
	Repo   repository.ContactRepository
	dbPool *pgxpool.Pool
}

// NewContactService создаёт новый экземпляр ContactService.
func NewContactService(repo repository.ContactRepository, dbPool *pgxpool.Pool) *ContactService {
	return &ContactService{Repo: repo, dbPool: dbPool}
}

func (s *ContactService) checkOwner(ctx context.Context, ownerId string) error {
	if ownerId == "" {
		return models.NewErrorResponse(http.StatusBadRequest, "missing required query parameter: userId")
	}
	exists, err := utils.CheckUserExists(ctx, s.dbPool, ownerId)
	if err != nil {
		return models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !exists {
		return models.NewErrorResponse(http.StatusUnauthorized, "user does not exist")
	}
	return nil
}

// FetchContacts получает адресную книгу пользователя.
func (s *ContactService) FetchContacts(ctx context.Context, ownerId string) ([]models.Contact, error) {
	if err := s.checkOwner(ctx, ownerId); err != nil {
		return nil, err
	}
	return s.Repo.GetContactsByOwner(ctx, ownerId)
}

// CreateContact добавляет контакт в адресную книгу.
func (s *ContactService) CreateContact(ctx context.Context, ownerId string, contactReq models.ContactRequest) (*models.Contact, error) {
	if err := s.checkOwner(ctx, ownerId); err != nil {
		return nil, err
	}
	if contactReq.Name == "" || contactReq.Phone == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required fields: name or phone")
	}
	return s.Repo.CreateContact(ctx, ownerId, contactReq)
}

// ImportContacts добавляет несколько контактов за один запрос.
func (s *ContactService) ImportContacts(ctx context.Context, ownerId string, contactReqs []models.ContactRequest) ([]models.Contact, error) {
	if err := s.checkOwner(ctx, ownerId); err != nil {
		return nil, err
	}
	if len(contactReqs) == 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "contacts list is empty")
	}
	for _, contactReq := range contactReqs {
		if contactReq.Name == "" || contactReq.Phone == "" {
			return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required fields: name or phone")
		}
	}
	return s.Repo.CreateContacts(ctx, ownerId, contactReqs)
}

// UpdateContact меняет поля контакта.
func (s *ContactService) UpdateContact(ctx context.Context, ownerId, contactId string, updateFields map[string]interface{}) (*models.Contact, error) {
	if err := s.checkOwner(ctx, ownerId); err != nil {
		return nil, err
	}
	owned, err := utils.CheckContactOwned(ctx, s.dbPool, contactId, ownerId)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !owned {
		return nil, models.NewNotFoundResponse("contact not found")
	}

	contact, err := s.Repo.UpdateContact(ctx, contactId, updateFields)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, models.NewNotFoundResponse("contact not found")
		}
		return nil, err
	}
	return contact, nil
}

// DeleteContact удаляет контакт из адресной книги.
func (s *ContactService) DeleteContact(ctx context.Context, ownerId, contactId string) error {
	if err := s.checkOwner(ctx, ownerId); err != nil {
		return err
	}
	owned, err := utils.CheckContactOwned(ctx, s.dbPool, contactId, ownerId)
	if err != nil {
		return models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !owned {
		return models.NewNotFoundResponse("contact not found")
	}

	if err := s.Repo.DeleteContact(ctx, contactId); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return models.NewNotFoundResponse("contact not found")
		}
		return err
	}
	return nil
}

// FetchGroups получает группы контактов пользователя.
func (s *ContactService) FetchGroups(ctx context.Context, ownerId string) ([]models.Group, error) {
	if err := s.checkOwner(ctx, ownerId); err != nil {
		return nil, err
	}
	return s.Repo.GetGroupsByOwner(ctx, ownerId)
}
