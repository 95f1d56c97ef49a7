package services

import (
	"time"

	"github.com/senyabanana/shift-market/internal/models"
)

// ParticipantFeed - разбивка тендеров участника на активные и архивные.
// Множества не являются строгим разбиением: тендер с непросроченным pending
// приглашением и прошедшей датой попадает в оба списка. Это поведение продукта,
// а не ошибка, и сохраняется намеренно.
type ParticipantFeed struct {
	Active  []models.Tender `json:"active"`
	History []models.Tender `json:"history"`
}

// FindInvite возвращает приглашение участника в тендере, если оно есть.
func FindInvite(tender models.Tender, userId string) *models.Invite {
	for i := range tender.Invites {
		if tender.Invites[i].UserID != nil && *tender.Invites[i].UserID == userId {
			return &tender.Invites[i]
		}
	}
	return nil
}

// OrganizerTenders отбирает тендеры организатора, сохраняя порядок коллекции.
// Статусы не фильтруются: активность отсекает вызывающая сторона.
func OrganizerTenders(allTenders []models.Tender, organizerId string) []models.Tender {
	var tenders []models.Tender
	for _, tender := range allTenders {
		if tender.OrganizerID == organizerId {
			tenders = append(tenders, tender)
		}
	}
	return tenders
}

// SplitParticipantTenders разбивает тендеры с приглашением участника
// на активные и архивные. Каждый предикат вычисляется независимо.
func SplitParticipantTenders(allTenders []models.Tender, participantId string, now time.Time) ParticipantFeed {
	feed := ParticipantFeed{
		Active:  []models.Tender{},
		History: []models.Tender{},
	}

	for _, tender := range allTenders {
		invite := FindInvite(tender, participantId)
		if invite == nil {
			continue
		}

		isPending := invite.Status == models.PendingInvite
		isFutureAccepted := invite.Status == models.AcceptedInvite && !tender.Date.Before(now)
		if isPending || isFutureAccepted {
			feed.Active = append(feed.Active, tender)
		}

		isPast := tender.Date.Before(now)
		isRejected := invite.Status == models.RejectedInvite
		if isPast || isRejected {
			feed.History = append(feed.History, tender)
		}
	}
	return feed
}
