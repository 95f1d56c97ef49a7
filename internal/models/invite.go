package models

import "time"

type InviteStatus string // Статус приглашения

const (
	PendingInvite  InviteStatus = "pending"  // Участник ещё не ответил
	AcceptedInvite InviteStatus = "accepted" // Участник принял приглашение
	RejectedInvite InviteStatus = "rejected" // Участник отклонил приглашение
)

// Invite представляет приглашение участника на тендер.
// UserId пустой для гостевых приглашений, ещё не привязанных к пользователю.
type Invite struct {
	UserID    *string      `json:"userId"`
	UserName  string       `json:"userName"`
	UserPhone string       `json:"userPhone"`
	Status    InviteStatus `json:"status"`
	IsGuest   bool         `json:"isGuest"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// InviteRequest представляет приглашение в запросе на создание тендера.
type InviteRequest struct {
	UserID    string `json:"userId,omitempty"`
	UserName  string `json:"userName"`
	UserPhone string `json:"userPhone"`
}

// IsDecision сообщает, является ли статус допустимой целью перехода:
// приглашение можно только принять или отклонить, возврат в pending не определён.
func (s InviteStatus) IsDecision() bool {
	return s == AcceptedInvite || s == RejectedInvite
}
