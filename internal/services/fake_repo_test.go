package services

import (
	"context"
	"time"

	"github.com/senyabanana/shift-market/internal/models"
	"github.com/senyabanana/shift-market/internal/repository"

	"github.com/google/uuid"
)

// fakeTenderRepository - хранилище тендеров в памяти для тестов сервисов.
// Повторяет контракт PostgresTenderRepository, включая пересчёт статуса
// по живой коллекции приглашений при каждом решении.
type fakeTenderRepository struct {
	tenders map[string]*models.Tender
	order   []string
	failErr error
}

func newFakeTenderRepository() *fakeTenderRepository {
	return &fakeTenderRepository{tenders: make(map[string]*models.Tender)}
}

func (f *fakeTenderRepository) put(tender models.Tender) {
	f.tenders[tender.ID] = &tender
	f.order = append([]string{tender.ID}, f.order...)
}

func copyTender(t *models.Tender) *models.Tender {
	clone := *t
	clone.Invites = append([]models.Invite(nil), t.Invites...)
	return &clone
}

func (f *fakeTenderRepository) GetTenders(ctx context.Context, limit, offset int, statuses []string) ([]models.Tender, error) {
	return f.GetAllTenders(ctx)
}

func (f *fakeTenderRepository) GetAllTenders(ctx context.Context) ([]models.Tender, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	var tenders []models.Tender
	for _, id := range f.order {
		tenders = append(tenders, *copyTender(f.tenders[id]))
	}
	return tenders, nil
}

func (f *fakeTenderRepository) GetTenderByID(ctx context.Context, tenderId string) (*models.Tender, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	tender, ok := f.tenders[tenderId]
	if !ok {
		return nil, repository.ErrTenderNotFound
	}
	return copyTender(tender), nil
}

func (f *fakeTenderRepository) CreateTender(ctx context.Context, tenderReq models.TenderRequest) (*models.Tender, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	now := time.Now().UTC()
	tender := models.Tender{
		ID:          uuid.New().String(),
		OrganizerID: tenderReq.OrganizerID,
		Title:       tenderReq.Title,
		Description: tenderReq.Description,
		Location:    tenderReq.Location,
		Date:        tenderReq.Date,
		StartTime:   tenderReq.StartTime,
		EndTime:     tenderReq.EndTime,
		Pay:         tenderReq.Pay,
		Quota:       tenderReq.Quota,
		Status:      models.OpenTender,
		CreatedAt:   now,
	}
	for _, inviteReq := range tenderReq.Invites {
		var userId *string
		if inviteReq.UserID != "" {
			id := inviteReq.UserID
			userId = &id
		}
		tender.Invites = append(tender.Invites, models.Invite{
			UserID:    userId,
			UserName:  inviteReq.UserName,
			UserPhone: inviteReq.UserPhone,
			Status:    models.PendingInvite,
			IsGuest:   userId == nil,
			UpdatedAt: now,
		})
	}
	f.put(tender)
	return copyTender(&tender), nil
}

func (f *fakeTenderRepository) GetTenderStatus(ctx context.Context, tenderId string) (models.TenderStatus, error) {
	if f.failErr != nil {
		return "", f.failErr
	}
	tender, ok := f.tenders[tenderId]
	if !ok {
		return "", repository.ErrTenderNotFound
	}
	return tender.Status, nil
}

func (f *fakeTenderRepository) CloseTender(ctx context.Context, tenderId string) (*models.Tender, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	tender, ok := f.tenders[tenderId]
	if !ok {
		return nil, repository.ErrTenderNotFound
	}
	tender.Status = models.ClosedTender
	return copyTender(tender), nil
}

func (f *fakeTenderRepository) ApplyInviteDecision(ctx context.Context, tenderId, userId string, status models.InviteStatus) (*models.Tender, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	tender, ok := f.tenders[tenderId]
	if !ok {
		return nil, repository.ErrTenderNotFound
	}

	found := false
	for i := range tender.Invites {
		if tender.Invites[i].UserID != nil && *tender.Invites[i].UserID == userId {
			tender.Invites[i].Status = status
			tender.Invites[i].UpdatedAt = time.Now().UTC()
			found = true
			break
		}
	}
	if !found {
		return nil, repository.ErrInviteNotFound
	}

	tender.Status = models.DeriveTenderStatus(tender.Invites, tender.Quota, tender.Status)
	return copyTender(tender), nil
}
