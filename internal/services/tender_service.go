package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/senyabanana/shift-market/internal/models"
	"github.com/senyabanana/shift-market/internal/repository"
)

type TenderService struct {
	Repo  repository.TenderRepository
	Users repository.UserRepository
}

// NewTenderService создаёт новый экземпляр TenderService.
func NewTenderService(repo repository.TenderRepository, users repository.UserRepository) *TenderService {
	return &TenderService{Repo: repo, Users: users}
}

// FetchTenders получает список тендеров с необязательным фильтром по статусу.
func (s *TenderService) FetchTenders(ctx context.Context, limit, offset int, statuses []string) ([]models.Tender, error) {
	allowedStatuses := map[models.TenderStatus]bool{
		models.OpenTender:   true,
		models.FullTender:   true,
		models.ClosedTender: true,
	}
	for _, status := range statuses {
		if !allowedStatuses[models.TenderStatus(status)] {
			return nil, models.NewErrorResponse(http.StatusBadRequest, "unsupported status: "+status)
		}
	}
	return s.Repo.GetTenders(ctx, limit, offset, statuses)
}

// CreateTender создает новый тендер со статусом open и списывает кредит организатора.
func (s *TenderService) CreateTender(ctx context.Context, tenderReq models.TenderRequest) (*models.Tender, error) {
	if tenderReq.Title == "" || tenderReq.Location == "" || tenderReq.OrganizerID == "" || tenderReq.Date.IsZero() {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required fields")
	}
	if tenderReq.Quota <= 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "quota must be a positive integer")
	}
	if err := models.ValidateInvites(tenderReq.Invites); err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	organizer, err := s.Users.GetUserByID(ctx, tenderReq.OrganizerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, models.NewErrorResponse(http.StatusUnauthorized, "user does not exist")
		}
		return nil, err
	}
	if organizer.Role != models.Organizer {
		return nil, models.NewErrorResponse(http.StatusForbidden, "only organizers can create tenders")
	}

	tender, err := s.Repo.CreateTender(ctx, tenderReq)
	if err != nil {
		return nil, err
	}

	// Бизнес-правило: одна публикация стоит один кредит.
	if _, err := s.Users.DeductCredit(ctx, tenderReq.OrganizerID); err != nil {
		return nil, err
	}
	return tender, nil
}

// GetTenderByID получает тендер с приглашениями.
func (s *TenderService) GetTenderByID(ctx context.Context, tenderId string) (*models.Tender, error) {
	if tenderId == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required path parameter: tenderId")
	}
	tender, err := s.Repo.GetTenderByID(ctx, tenderId)
	if err != nil {
		if errors.Is(err, repository.ErrTenderNotFound) {
			return nil, models.NewNotFoundResponse("tender not found")
		}
		return nil, err
	}
	return tender, nil
}

// GetTenderStatus получает статус тендера.
func (s *TenderService) GetTenderStatus(ctx context.Context, tenderId string) (models.TenderStatus, error) {
	if tenderId == "" {
		return "", models.NewErrorResponse(http.StatusBadRequest, "missing required path parameter: tenderId")
	}
	status, err := s.Repo.GetTenderStatus(ctx, tenderId)
	if err != nil {
		if errors.Is(err, repository.ErrTenderNotFound) {
			return "", models.NewNotFoundResponse("tender not found")
		}
		return "", err
	}
	return status, nil
}

// CloseTender закрывает тендер. Закрытие терминально и не отменяется
// дальнейшими решениями по приглашениям.
func (s *TenderService) CloseTender(ctx context.Context, tenderId, userId string) (*models.Tender, error) {
	if tenderId == "" || userId == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required parameters: tenderId or userId")
	}

	tender, err := s.Repo.GetTenderByID(ctx, tenderId)
	if err != nil {
		if errors.Is(err, repository.ErrTenderNotFound) {
			return nil, models.NewNotFoundResponse("tender not found")
		}
		return nil, err
	}
	if tender.OrganizerID != userId {
		return nil, models.NewErrorResponse(http.StatusForbidden, "you are not authorized to close this tender")
	}
	if tender.Status == models.ClosedTender {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "tender is already closed")
	}
	return s.Repo.CloseTender(ctx, tenderId)
}

// OrganizerTendersView возвращает тендеры организатора в порядке хранилища.
func (s *TenderService) OrganizerTendersView(ctx context.Context, organizerId string) ([]models.Tender, error) {
	if organizerId == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required query parameter: userId")
	}
	allTenders, err := s.Repo.GetAllTenders(ctx)
	if err != nil {
		return nil, err
	}
	return OrganizerTenders(allTenders, organizerId), nil
}

// ParticipantFeedView возвращает активные и архивные тендеры участника.
func (s *TenderService) ParticipantFeedView(ctx context.Context, participantId string, now time.Time) (*ParticipantFeed, error) {
	if participantId == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required query parameter: userId")
	}
	allTenders, err := s.Repo.GetAllTenders(ctx)
	if err != nil {
		return nil, err
	}
	feed := SplitParticipantTenders(allTenders, participantId, now)
	return &feed, nil
}
