package models

import (
	"fmt"
	"time"
)

type TenderStatus string // Статус тендера

const (
	OpenTender   TenderStatus = "open"   // Тендер открыт, квота не набрана
	FullTender   TenderStatus = "full"   // Квота набрана
	ClosedTender TenderStatus = "closed" // Тендер закрыт организатором, терминальный статус
)

// Tender представляет модель тендера.
type Tender struct {
	ID          string       `json:"id"`
	OrganizerID string       `json:"organizerId"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Location    string       `json:"location"`
	Date        time.Time    `json:"date"`
	StartTime   string       `json:"startTime"`
	EndTime     string       `json:"endTime"`
	Pay         float64      `json:"pay"`
	Quota       int          `json:"quota"`
	Status      TenderStatus `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
	Invites     []Invite     `json:"invites"`
}

// TenderRequest представляет структуру запроса для создания тендера.
type TenderRequest struct {
	OrganizerID string          `json:"organizerId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	Date        time.Time       `json:"date"`
	StartTime   string          `json:"startTime"`
	EndTime     string          `json:"endTime"`
	Pay         float64         `json:"pay"`
	Quota       int             `json:"quota"`
	Invites     []InviteRequest `json:"invites"`
}

// AcceptedCount считает принятые приглашения по живой коллекции.
func AcceptedCount(invites []Invite) int {
	count := 0
	for _, invite := range invites {
		if invite.Status == AcceptedInvite {
			count++
		}
	}
	return count
}

// DeriveTenderStatus вычисляет статус тендера по его приглашениям.
// Статус full наступает при наборе квоты, closed сохраняется как терминальный,
// иначе тендер остаётся open. Квота <= 0 считается набранной сразу.
func DeriveTenderStatus(invites []Invite, quota int, current TenderStatus) TenderStatus {
	return DeriveStatusFromCount(AcceptedCount(invites), quota, current)
}

// DeriveStatusFromCount вычисляет статус тендера по числу принятых приглашений.
func DeriveStatusFromCount(acceptedCount, quota int, current TenderStatus) TenderStatus {
	if acceptedCount >= quota {
		return FullTender
	}
	if current == ClosedTender {
		return ClosedTender
	}
	return OpenTender
}

// ValidateInvites проверяет, что среди приглашений нет двух записей
// с одинаковым непустым userId.
func ValidateInvites(invites []InviteRequest) error {
	seen := make(map[string]bool, len(invites))
	for _, invite := range invites {
		if invite.UserID == "" {
			continue
		}
		if seen[invite.UserID] {
			return fmt.Errorf("duplicate invite for user %s", invite.UserID)
		}
		seen[invite.UserID] = true
	}
	return nil
}
