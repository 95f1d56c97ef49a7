package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/senyabanana/shift-market/internal/models"
	"github.com/senyabanana/shift-market/internal/repository"
)

type InviteService struct {
	Repo repository.TenderRepository
	// Разрешать ли решения по приглашениям после закрытия тендера.
	AllowLateDecisions bool
}

// NewInviteService создаёт новый экземпляр InviteService.
func NewInviteService(repo repository.TenderRepository, allowLateDecisions bool) *InviteService {
	return &InviteService{Repo: repo, AllowLateDecisions: allowLateDecisions}
}

// ApplyInviteDecision применяет решение участника по приглашению и возвращает
// тендер с пересчитанным статусом. Повторное одинаковое решение идемпотентно:
// меняется только updated_at. Тендер со статусом full продолжает принимать
// решения - отказ должен освобождать место и возвращать тендер в open.
func (s *InviteService) ApplyInviteDecision(ctx context.Context, tenderId, userId string, newStatus models.InviteStatus) (*models.Tender, error) {
	if tenderId == "" || userId == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required parameters: tenderId or userId")
	}
	if !newStatus.IsDecision() {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "invalid invite status, must be accepted or rejected")
	}

	if !s.AllowLateDecisions {
		status, err := s.Repo.GetTenderStatus(ctx, tenderId)
		if err != nil {
			if errors.Is(err, repository.ErrTenderNotFound) {
				return nil, models.NewNotFoundResponse("tender not found")
			}
			return nil, err
		}
		if status == models.ClosedTender {
			return nil, models.NewErrorResponse(http.StatusBadRequest, "tender is closed and no longer accepts decisions")
		}
	}

	tender, err := s.Repo.ApplyInviteDecision(ctx, tenderId, userId, newStatus)
	if err != nil {
		if errors.Is(err, repository.ErrTenderNotFound) {
			return nil, models.NewNotFoundResponse("tender not found")
		}
		if errors.Is(err, repository.ErrInviteNotFound) {
			return nil, models.NewNotFoundResponse("invite not found for this user")
		}
		return nil, err
	}
	return tender, nil
}
